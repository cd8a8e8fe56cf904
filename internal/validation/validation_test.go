package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name" validate:"notblank"`
	When  string `json:"when" validate:"required,date"`
	Grade int    `json:"grade" validate:"gte=0,lte=10"`
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name   string
		in     sample
		fields map[string]string
	}{
		{name: "valid", in: sample{Name: "x", When: "2026-10-19", Grade: 5}},
		{name: "blank name", in: sample{Name: "  ", When: "2026-10-19"}, fields: map[string]string{"name": "this field cannot be blank"}},
		{name: "bad date", in: sample{Name: "x", When: "19/10/2026"}, fields: map[string]string{"when": "must be a date formatted as YYYY-MM-DD"}},
		{name: "grade out of range", in: sample{Name: "x", When: "2026-10-19", Grade: 11}, fields: map[string]string{"grade": "grade must be 10 or less"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.in)
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}
			verr, ok := As(err)
			require.True(t, ok, "expected *Error, got %v", err)
			assert.Equal(t, tt.fields, verr.FieldMap())
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-10-19")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("yesterday")
	assert.Error(t, err)

	none, err := ParseOptionalDate("")
	assert.NoError(t, err)
	assert.Nil(t, none)
}

func TestFieldError(t *testing.T) {
	err := Field("reason", "unknown reason")
	verr, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, "invalid input", verr.Error())
	assert.Equal(t, map[string]string{"reason": "unknown reason"}, verr.FieldMap())
}

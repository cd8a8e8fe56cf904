package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)

	want := []struct {
		code    string
		name    string
		reasons int
	}{
		{"leave", "Leave Application", 10},
		{"bonafide", "Bonafide Certificate Request", 8},
		{"character", "HR / Character Certificate Request", 6},
		{"attendance_report", "Attendance Report Request", 4},
		{"marksheet", "Marksheet / Transcript Request", 4},
		{"event_permission", "Event Participation Permission", 5},
		{"internship_letter", "Internship Letter Request", 3},
		{"fee_receipt", "Fee Receipt/Scholarship Application", 3},
		{"bus_hostel", "Bus/Hostel Application", 4},
		{"id_card", "IT/ID Card Reissue Request", 4},
	}
	types := c.Types()
	require.Len(t, types, len(want))
	for i, w := range want {
		assert.Equal(t, w.code, types[i].Code)
		assert.Equal(t, w.name, types[i].Name)
		assert.Len(t, types[i].Reasons, w.reasons, w.code)
	}

	assert.Equal(t, "Fever / Illness", c.Reasons("leave")[0])
	assert.Contains(t, c.Reasons("bonafide"), "Loan & Documents")
	assert.Equal(t, []string{"Other"}, c.Reasons("parking"))
	assert.True(t, c.AllowsReason("id_card", "ID Card Lost"))
	assert.False(t, c.AllowsReason("id_card", "Fever / Illness"))
}

func TestCatalogIsNotMutatedByCallers(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)

	r := c.Reasons("leave")
	r[0] = "changed"
	types := c.Types()
	types[0].Code = "changed"

	assert.Equal(t, "Fever / Illness", c.Reasons("leave")[0])
	assert.Equal(t, "leave", c.Types()[0].Code)
}

func TestParseCatalogRejectsBadDocuments(t *testing.T) {
	_, err := ParseCatalog([]byte("types:\n  - code: a\n    name: A\n  - code: a\n    name: B\n"))
	assert.Error(t, err)
	_, err = ParseCatalog([]byte("types:\n  - code: a\n"))
	assert.Error(t, err)
	_, err = ParseCatalog([]byte("types: [[["))
	assert.Error(t, err)
}

package validation

import (
	"time"

	"github.com/pkg/errors"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

// Error is returned when caller input fails validation.
type Error struct {
	Err    error
	Fields []FieldError
}

// New returns a validation error with an optional list of field errors.
func New(err error, flds ...FieldError) error {
	return &Error{Err: err, Fields: flds}
}

// Field returns a validation error for a single field.
func Field(field, msg string) error {
	return &Error{Err: ErrInvalidInput, Fields: []FieldError{{Field: field, Error: msg}}}
}

func (err Error) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// FieldMap flattens the field errors for a response body.
func (err Error) FieldMap() map[string]string {
	if len(err.Fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(err.Fields))
	for _, f := range err.Fields {
		out[f.Field] = f.Error
	}
	return out
}

// As reports whether err wraps an *Error and returns it.
func As(err error) (*Error, bool) {
	var verr *Error
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

// ParseDate parses a YYYY-MM-DD date as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "parse date %q", s)
	}
	return t, nil
}

// ParseOptionalDate parses s when it is non-empty.
func ParseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

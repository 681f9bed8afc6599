// Package validate implements the field-rule checks the resource services run
// before touching the store. Rules accumulate into an Errors list so a
// response can report every failing field at once.
package validate

import (
	"net/mail"
	"strings"
	"time"

	"github.com/healthvault/healthvault/internal/platform/httperr"
)

// Errors accumulates field-rule failures.
type Errors struct {
	fields []httperr.FieldError
}

// Add records a failure for field.
func (e *Errors) Add(field, message string) {
	e.fields = append(e.fields, httperr.FieldError{Field: field, Message: message})
}

// Ok reports whether no rule has failed.
func (e *Errors) Ok() bool {
	return len(e.fields) == 0
}

// Err returns the accumulated failures as a ValidationError, or nil.
func (e *Errors) Err() error {
	if len(e.fields) == 0 {
		return nil
	}
	return httperr.Validation(e.fields)
}

// Required fails when value is empty or whitespace.
func (e *Errors) Required(field, value string) {
	if strings.TrimSpace(value) == "" {
		e.Add(field, "is required")
	}
}

// Email fails when value is not an address net/mail can parse.
func (e *Errors) Email(field, value string) {
	if _, err := mail.ParseAddress(value); err != nil {
		e.Add(field, "must be a valid email address")
	}
}

// dateLayouts are the accepted ISO-8601 shapes, most specific first.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ISODate parses value as an ISO-8601 date, recording a failure when it does
// not parse. The zero time is returned on failure.
func (e *Errors) ISODate(field, value string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	e.Add(field, "must be an ISO-8601 date")
	return time.Time{}
}

// Enum fails when value is not one of allowed.
func (e *Errors) Enum(field, value string, allowed map[string]bool) {
	if !allowed[value] {
		e.Add(field, "is not an allowed value")
	}
}

// IntRange fails when v is outside [min, max].
func (e *Errors) IntRange(field string, v, min, max int) {
	if v < min || v > max {
		e.Add(field, "is out of range")
	}
}

// FloatMin fails when v is below min.
func (e *Errors) FloatMin(field string, v, min float64) {
	if v < min {
		e.Add(field, "must not be negative")
	}
}

// Phone applies a loose phone-number shape check: 7 to 20 characters drawn
// from digits, spaces, and + - ( ).
func (e *Errors) Phone(field, value string) {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) < 7 || len(trimmed) > 20 {
		e.Add(field, "must be a valid phone number")
		return
	}
	for _, r := range trimmed {
		switch {
		case r >= '0' && r <= '9':
		case r == ' ' || r == '+' || r == '-' || r == '(' || r == ')':
		default:
			e.Add(field, "must be a valid phone number")
			return
		}
	}
}

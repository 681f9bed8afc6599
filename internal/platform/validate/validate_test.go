package validate

import (
	"errors"
	"testing"
	"time"

	"github.com/healthvault/healthvault/internal/platform/httperr"
)

func TestRequired(t *testing.T) {
	var v Errors
	v.Required("name", "A. Ali")
	v.Required("email", "  ")
	v.Required("phone", "")

	if v.Ok() {
		t.Fatal("expected failures for blank fields")
	}
	err := v.Err()
	var verr *httperr.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Fields) != 2 {
		t.Errorf("expected 2 field errors, got %d", len(verr.Fields))
	}
	if verr.Fields[0].Field != "email" {
		t.Errorf("expected first failure on email, got %s", verr.Fields[0].Field)
	}
}

func TestErr_NilWhenClean(t *testing.T) {
	var v Errors
	v.Required("name", "ok")
	if err := v.Err(); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}

func TestEmail(t *testing.T) {
	cases := []struct {
		value string
		ok    bool
	}{
		{"x@example.com", true},
		{"First Last <f@example.com>", true},
		{"not-an-email", false},
		{"@example.com", false},
		{"", false},
	}
	for _, tc := range cases {
		var v Errors
		v.Email("email", tc.value)
		if v.Ok() != tc.ok {
			t.Errorf("Email(%q): expected ok=%v", tc.value, tc.ok)
		}
	}
}

func TestISODate(t *testing.T) {
	var v Errors

	d := v.ISODate("date", "2024-01-10")
	if !v.Ok() {
		t.Fatalf("unexpected failure: %v", v.Err())
	}
	if d.Year() != 2024 || d.Month() != time.January || d.Day() != 10 {
		t.Errorf("unexpected parsed date: %v", d)
	}

	d = v.ISODate("date", "2024-01-10T08:30:00Z")
	if !v.Ok() {
		t.Fatalf("unexpected failure for RFC3339: %v", v.Err())
	}
	if d.Hour() != 8 {
		t.Errorf("expected hour 8, got %d", d.Hour())
	}
}

func TestISODate_Invalid(t *testing.T) {
	var v Errors
	d := v.ISODate("date", "10/01/2024")
	if v.Ok() {
		t.Error("expected failure for non-ISO date")
	}
	if !d.IsZero() {
		t.Error("expected zero time on failure")
	}
}

func TestEnum(t *testing.T) {
	allowed := map[string]bool{"pending": true, "taken": true}

	var v Errors
	v.Enum("status", "taken", allowed)
	if !v.Ok() {
		t.Error("expected taken to pass")
	}

	v.Enum("status", "done", allowed)
	if v.Ok() {
		t.Error("expected done to fail")
	}
}

func TestIntRange(t *testing.T) {
	var v Errors
	v.IntRange("age", 34, 0, 120)
	v.IntRange("age", 0, 0, 120)
	v.IntRange("age", 120, 0, 120)
	if !v.Ok() {
		t.Errorf("expected boundary values to pass: %v", v.Err())
	}

	v.IntRange("age", 121, 0, 120)
	if v.Ok() {
		t.Error("expected 121 to fail")
	}
}

func TestFloatMin(t *testing.T) {
	var v Errors
	v.FloatMin("weight", 0, 0)
	v.FloatMin("weight", 58.5, 0)
	if !v.Ok() {
		t.Errorf("expected non-negative values to pass: %v", v.Err())
	}

	v.FloatMin("weight", -1, 0)
	if v.Ok() {
		t.Error("expected negative weight to fail")
	}
}

func TestPhone(t *testing.T) {
	cases := []struct {
		value string
		ok    bool
	}{
		{"+92 300 1234567", true},
		{"(042) 111-222", true},
		{"1234567", true},
		{"123", false},
		{"phone-number", false},
		{"123456789012345678901", false},
	}
	for _, tc := range cases {
		var v Errors
		v.Phone("phone", tc.value)
		if v.Ok() != tc.ok {
			t.Errorf("Phone(%q): expected ok=%v", tc.value, tc.ok)
		}
	}
}

package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Feed field names.
const (
	FieldDate       = "DATE"
	FieldNewIn      = "NEW_IN"
	FieldTotalIn    = "TOTAL_IN"
	FieldTotalInICU = "TOTAL_IN_ICU"
	FieldTestsAll   = "TESTS_ALL"
	FieldCases      = "CASES"
	FieldAgeGroup   = "AGEGROUP"
)

// isoDate is the layout of the DATE field.
const isoDate = "2006-01-02"

// ErrMissingField is returned when a record lacks a numeric field it is
// expected to carry.
var ErrMissingField = errors.New("missing field")

// Record is one flat object from an epistat feed, as decoded from JSON.
type Record map[string]any

// Date returns the record's ISO date. ok is false when DATE is absent, not a
// string, or too short to hold "YYYY-MM-DD".
func (r Record) Date() (string, bool) {
	s, ok := r[FieldDate].(string)
	if !ok || len(s) < len(isoDate) {
		return "", false
	}
	return s[:len(isoDate)], true
}

// Number returns the numeric value of field.
func (r Record) Number(field string) (float64, error) {
	v, ok := r[field]
	if !ok || v == nil {
		return 0, fmt.Errorf("%w: %s", ErrMissingField, field)
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("field %s: %w", field, err)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("field %s: unexpected type %T", field, v)
	}
}

// FormatDate renders t the way the feeds spell DATE.
func FormatDate(t time.Time) string {
	return t.Format(isoDate)
}

// ParseDate parses a DATE value into midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(isoDate, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// SumAtDate adds up field over every record dated date. Records without a
// date are ignored.
func SumAtDate(records []Record, date, field string) (float64, error) {
	var total float64
	for _, r := range records {
		d, ok := r.Date()
		if !ok || d != date {
			continue
		}
		v, err := r.Number(field)
		if err != nil {
			return 0, fmt.Errorf("record dated %s: %w", date, err)
		}
		total += v
	}
	return total, nil
}

// Feed names one remote JSON array of records.
type Feed struct {
	Name string
	URL  string
}

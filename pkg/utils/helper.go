package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDate accepts RFC 3339 timestamps and plain dates. Values without a
// zone are read as UTC.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", value)
}

// ParseOptionalFloat returns nil for an empty query value. Non-finite values
// are rejected.
func ParseOptionalFloat(value string) (*float64, error) {
	if value == "" {
		return nil, nil
	}

	result, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", value, err)
	}
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return nil, fmt.Errorf("parse %q: not a finite number", value)
	}

	return &result, nil
}

// StartOfDay truncates t to local midnight.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

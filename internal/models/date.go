package models

import (
	"fmt"
	"time"
)

// DateLayout is the canonical YYYY-MM-DD format used for cache keys and API parameters.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string, wrapping failures in ErrInvalidDate.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: expected YYYY-MM-DD", ErrInvalidDate, value)
	}
	return t, nil
}

// FormatDate formats t as YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

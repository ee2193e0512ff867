// internal/domain/date.go
package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DisplayDateLayout renders e.g. "Mon Jan 01 2024".
	DisplayDateLayout = "Mon Jan 02 2006"
	// CalendarDateLayout is the YYYY-MM-DD form accepted from clients.
	CalendarDateLayout = "2006-01-02"
)

// FormatDate renders t in UTC using DisplayDateLayout. The output does not depend
// on the process locale or local timezone.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DisplayDateLayout)
}

// ParseCalendarDate parses a YYYY-MM-DD string as UTC midnight of that day.
func ParseCalendarDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(CalendarDateLayout, strings.TrimSpace(value), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return t, nil
}

// ParseBoundDate parses a query bound. It accepts YYYY-MM-DD (UTC midnight) or a
// full RFC 3339 timestamp.
func ParseBoundDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.ParseInLocation(CalendarDateLayout, value, time.UTC); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
}

package utils

import (
	"fmt"
	"strings"
	"time"
)

type DateFormat string

const (
	FormatISO8601Date     DateFormat = "2006-01-02"
	FormatISO8601         DateFormat = time.RFC3339
	FormatISO8601Nano     DateFormat = time.RFC3339Nano
	FormatISO8601NoZone   DateFormat = "2006-01-02T15:04:05"
	FormatISO8601DateTime DateFormat = "2006-01-02 15:04:05"
)

var supportedDateFormats = []DateFormat{
	FormatISO8601Date,
	FormatISO8601,
	FormatISO8601Nano,
	FormatISO8601NoZone,
	FormatISO8601DateTime,
}

// ParseDate accepts a calendar date or an ISO 8601 timestamp. Values without a
// zone are read as UTC.
func ParseDate(input string) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	for _, format := range supportedDateFormats {
		if parsed, err := time.Parse(string(format), input); err == nil {
			return parsed.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("unsupported date format: %s", input)
}

// StartOfDay truncates t to midnight UTC.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// IsCalendarDate reports whether input is a bare YYYY-MM-DD date.
func IsCalendarDate(input string) bool {
	_, err := time.Parse(string(FormatISO8601Date), strings.TrimSpace(input))
	return err == nil
}

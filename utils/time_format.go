package utils

import "time"

const TimestampLayout = "2006-01-02 15:04:05"

// FormatTimestamp renders t as "YYYY-MM-DD HH:MM:SS" in UTC; the zero time is nil.
func FormatTimestamp(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.UTC().Format(TimestampLayout)
	return &s
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	TimestampLayout,
	"2006-01-02",
}

// ParseDate accepts the date formats the dashboard and API clients send:
// datetime-local inputs, RFC 3339 and the MySQL layout. Zone-less values are UTC.
func ParseDate(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

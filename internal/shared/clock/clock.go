package clock

import (
	"fmt"
	"time"
)

const isoLayout = "2006-01-02T15:04:05.000Z07:00"

// Func supplies the current time; services take one so tests can pin it.
type Func func() time.Time

// Now returns the current UTC time at millisecond precision, the resolution
// the dashboard works with.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// ISO formats t like 2024-01-15T10:30:00.000Z.
func ISO(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

// ISOPtr is ISO for optional times; nil stays nil.
func ISOPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := ISO(*t)
	return &s
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDate accepts the date forms the dashboard sends in query strings.
// Values without a zone are read as UTC.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

// ParseOptionalDate is ParseDate for optional query values; "" yields nil.
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

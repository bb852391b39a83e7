// Package datetime holds the pure temporal helpers the planner relies on:
// tolerant ISO 8601 parsing, instant and calendar-day comparisons, and the
// year bump applied to date-only timestamps that already passed.
package datetime

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Layouts accepted by ParseDate, tried in order. Offset-less layouts are
// interpreted as UTC.
var parseLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// dateOnlyPattern matches a local-midnight timestamp: a calendar date with a
// zero time-of-day and an optional offset suffix ("Z" or ±hh:mm).
var dateOnlyPattern = regexp.MustCompile(`^(\d{4})(-\d{2}-\d{2}T00:00:00(?:\.0+)?)(Z|[+-]\d{2}:\d{2})?$`)

// ParseDate parses value into an instant. It never panics; malformed input
// returns ok=false.
func ParseDate(value string) (time.Time, bool) {
	v := strings.TrimSpace(value)
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// IsFutureOrPresent reports whether value's instant is at or after ref.
// Malformed input yields false.
func IsFutureOrPresent(value string, ref time.Time) bool {
	t, ok := ParseDate(value)
	if !ok {
		return false
	}
	return !t.Before(ref)
}

// IsBefore reports whether value's instant is strictly before comparison's.
// Malformed input on either side yields false, never an error.
func IsBefore(value, comparison string) bool {
	a, ok := ParseDate(value)
	if !ok {
		return false
	}
	b, ok := ParseDate(comparison)
	if !ok {
		return false
	}
	return a.Before(b)
}

// IsSameOrAfterDay compares calendar days rendered in loc rather than
// absolute instants. A date-only (midnight) timestamp can be "today" in the
// target zone while its instant is already past in UTC; comparing day
// strings avoids that false rejection.
func IsSameOrAfterDay(value string, ref time.Time, loc *time.Location) bool {
	t, ok := ParseDate(value)
	if !ok {
		return false
	}
	if loc == nil {
		loc = time.UTC
	}
	return localDay(t, loc) >= localDay(ref, loc)
}

// BumpDateOnlyToNextYearIfPast advances a date-only timestamp by one year
// when its calendar day in loc is strictly before ref's. Only local-midnight
// values are touched; anything else passes through unchanged. The offset
// suffix is preserved verbatim; a missing suffix becomes "Z" on the bumped
// output only. A single bump is applied even if the result is still past.
func BumpDateOnlyToNextYearIfPast(value string, ref time.Time, loc *time.Location) string {
	m := dateOnlyPattern.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return value
	}

	suffix := m[3]
	canonical := m[1] + m[2] + suffix
	if suffix == "" {
		canonical += "Z"
	}

	t, ok := ParseDate(canonical)
	if !ok {
		return value
	}
	if loc == nil {
		loc = time.UTC
	}
	if localDay(t, loc) >= localDay(ref, loc) {
		return value
	}

	var year int
	fmt.Sscanf(m[1], "%d", &year)
	if suffix == "" {
		suffix = "Z"
	}
	return fmt.Sprintf("%04d%s%s", year+1, m[2], suffix)
}

func localDay(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

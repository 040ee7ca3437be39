// Package dateutils provides the lenient date parsing and window helpers used by
// the aggregation code. Inputs come from several upstream sources, so parsing
// tries a fixed list of layouts and reports failure instead of guessing.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Common date layouts, tried in order by ParseDate.
const (
	DateLayoutISO       = "2006-01-02"
	DateLayoutFull      = "2006-01-02 15:04:05"
	DateLayoutLocalISO  = "2006-01-02T15:04:05"
	DateLayoutUS        = "01/02/2006"
	DateLayoutEuropean  = "02.01.2006"
	DateLayoutWithMonth = "2-Jan-2006"
)

// CommonFormats is the ordered list of layouts ParseDate accepts. Layouts that
// carry an offset come first so that timestamps keep their zone.
var CommonFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	DateLayoutISO,
	DateLayoutLocalISO,
	DateLayoutFull,
	DateLayoutUS,
	DateLayoutEuropean,
	DateLayoutWithMonth,
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
}

var whitespace = regexp.MustCompile(`\s+`)

// ParseDate parses dateStr with the first matching layout. Zone-less layouts are
// interpreted in UTC. Empty and unrecognized strings return an error.
func ParseDate(dateStr string) (time.Time, error) {
	cleaned := CleanDateString(dateStr)
	if cleaned == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	for _, layout := range CommonFormats {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// CleanDateString trims and collapses whitespace.
func CleanDateString(dateStr string) string {
	return whitespace.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// StartOfMonth returns midnight on the first day of date's month, in date's location.
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// StartOfDay returns midnight of date's day, in date's location.
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// Within reports whether t lies in the closed interval [from, to].
func Within(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD).
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

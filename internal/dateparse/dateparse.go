// Package dateparse turns the date strings found in spreadsheet exports into
// time values. Sheets arrive with wildly different formats ("Nov 15, 2025,
// 5:08:33 PM", "August 6th, 2025 at 5:52 PM GMT+8", "2025-11-15", ...), so
// parsing runs a fixed cascade of layouts over a normalized copy of the
// input. A miss is an expected outcome, not an error: callers skip the row
// and move on.
package dateparse

import (
	"regexp"
	"strings"
	"time"
)

// Cascade holds the generic layouts in the order they are attempted. The two
// slash layouts are ambiguous by construction; month-first is deliberately
// tried before day-first and that precedence is fixed.
var Cascade = []string{
	"January 2, 2006 at 3:04 PM",
	"Jan 2, 2006 at 3:04 PM",
	"Jan 2, 2006, 3:04:05 PM",
	"January 2, 2006, 3:04:05 PM",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"02/01/2006",
	"2006-01-02 15:04",
	"2006/01/02 15:04",
}

var ordinalSuffix = regexp.MustCompile(`(\d+)(st|nd|rd|th)`)

// Normalize prepares a raw cell value for the cascade: trims whitespace,
// drops a trailing timezone marker (" GMT" and everything after it), and
// strips ordinal suffixes from day numbers ("6th" -> "6").
func Normalize(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if i := strings.Index(cleaned, " GMT"); i >= 0 {
		cleaned = strings.TrimSpace(cleaned[:i])
	}
	return ordinalSuffix.ReplaceAllString(cleaned, "$1")
}

// TryLayouts attempts each layout in order against s and returns the first
// hit. Shared by the per-sheet fast path and the generic cascade.
func TryLayouts(s string, layouts []string) (time.Time, bool) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Parse runs the full cascade over the normalized input. When every layout
// misses and the string is long enough, the first ten characters are retried
// on their own: two hyphens there means a date-only prefix ("2025-11-15..."),
// two slashes means a slash date with unknown field order.
func Parse(raw string) (time.Time, bool) {
	cleaned := Normalize(raw)

	if t, ok := TryLayouts(cleaned, Cascade); ok {
		return t, true
	}

	if len(cleaned) >= 10 {
		prefix := cleaned[:10]
		switch {
		case strings.Count(prefix, "-") == 2:
			if t, err := time.Parse("2006-01-02", prefix); err == nil {
				return t, true
			}
		case strings.Count(prefix, "/") == 2:
			if t, ok := TryLayouts(prefix, []string{"01/02/2006", "02/01/2006"}); ok {
				return t, true
			}
		}
	}

	return time.Time{}, false
}

// Attempt records the outcome of probing one layout against an input.
type Attempt struct {
	Layout string
	Result time.Time
	OK     bool
}

// probeLayouts is the short list reported by Explain; the full cascade
// outcome is reported separately.
var probeLayouts = []string{
	"Jan 2, 2006",
	"January 2, 2006",
	"2006-01-02",
	"01/02/2006",
	"02/01/2006",
}

// Explain probes a handful of representative layouts against the raw input
// as-is and also runs the full cascade, so an operator can see which formats
// a troublesome spreadsheet value does and does not satisfy.
func Explain(raw string) (attempts []Attempt, cascade time.Time, ok bool) {
	for _, layout := range probeLayouts {
		t, err := time.Parse(layout, raw)
		attempts = append(attempts, Attempt{Layout: layout, Result: t, OK: err == nil})
	}
	cascade, ok = Parse(raw)
	return attempts, cascade, ok
}

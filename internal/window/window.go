package window

import (
	"errors"
	"fmt"
	"time"
)

// Sales windows divide each month into three spans: the 28th of the previous
// month through the 7th, the 8th through the 17th, and the 18th through the
// 27th. All computation is done in UTC on a caller-supplied clock reading.

var ErrUnknownWindow = errors.New("unknown window name")

// Bounds is an inclusive aggregation period: Start is a midnight instant,
// End is the last representable microsecond of the closing day.
type Bounds struct {
	Start time.Time
	End   time.Time
}

// String renders the bounds the way they appear in diagnostics output.
func (b Bounds) String() string {
	return fmt.Sprintf("%s to %s", b.Start.Format("2006-01-02"), b.End.Format("2006-01-02"))
}

// Contains reports whether t falls inside the bounds, endpoints included.
func (b Bounds) Contains(t time.Time) bool {
	return !t.Before(b.Start) && !t.After(b.End)
}

// Normalize pins Start to midnight and End to the last microsecond of its
// day, so callers can hand in bare dates and still get full-day coverage.
func (b Bounds) Normalize() Bounds {
	return Bounds{
		Start: time.Date(b.Start.Year(), b.Start.Month(), b.Start.Day(), 0, 0, 0, 0, time.UTC),
		End:   time.Date(b.End.Year(), b.End.Month(), b.End.Day(), 0, 0, 0, 0, time.UTC).Add(endOfDay),
	}
}

const endOfDay = 24*time.Hour - time.Microsecond

// CurrentDays returns how many days of the active window have elapsed as of
// now, counting the window's first day as 1. For days 1-7 the active window
// began on the 28th of the previous month, so the count crosses the month
// boundary and can exceed ten when the previous month runs past day 28 by
// more than two days. That overshoot is part of the window definition.
func CurrentDays(now time.Time) int {
	now = now.UTC()
	day := now.Day()

	var startDay int
	switch {
	case day >= 8 && day <= 17:
		startDay = 8
	case day >= 18 && day <= 27:
		startDay = 18
	case day >= 28:
		startDay = 28
	default:
		// Days 1-7: window opened on the 28th of the previous month.
		start := time.Date(now.Year(), now.Month()-1, 28, 0, 0, 0, 0, time.UTC)
		return int(now.Sub(start).Hours()/24) + 1
	}

	start := time.Date(now.Year(), now.Month(), startDay, 0, 0, 0, 0, time.UTC)
	return int(now.Sub(start).Hours()/24) + 1
}

// Range resolves a named window ("first", "second", "third") to explicit
// bounds within the month containing now. The first window always starts on
// the previous month's day 28, whatever that month's length, and ends on day
// 7 of the current month. Any other name is a caller bug and yields
// ErrUnknownWindow.
func Range(name string, now time.Time) (Bounds, error) {
	now = now.UTC()
	year, month := now.Year(), now.Month()

	switch name {
	case "first":
		return Bounds{
			Start: time.Date(year, month-1, 28, 0, 0, 0, 0, time.UTC),
			End:   time.Date(year, month, 7, 0, 0, 0, 0, time.UTC).Add(endOfDay),
		}, nil
	case "second":
		return Bounds{
			Start: time.Date(year, month, 8, 0, 0, 0, 0, time.UTC),
			End:   time.Date(year, month, 17, 0, 0, 0, 0, time.UTC).Add(endOfDay),
		}, nil
	case "third":
		return Bounds{
			Start: time.Date(year, month, 18, 0, 0, 0, 0, time.UTC),
			End:   time.Date(year, month, 27, 0, 0, 0, 0, time.UTC).Add(endOfDay),
		}, nil
	}
	return Bounds{}, fmt.Errorf("%w: %q", ErrUnknownWindow, name)
}

// LastDays returns bounds covering the past days calendar days ending today:
// midnight (days-1) days before now through the end of now's day. days < 1 is
// treated as 1 (today only).
func LastDays(days int, now time.Time) Bounds {
	now = now.UTC()
	if days < 1 {
		days = 1
	}
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -(days - 1))
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).Add(endOfDay)
	return Bounds{Start: start, End: end}
}

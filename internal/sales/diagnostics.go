package sales

import (
	"strings"
	"time"
)

const sampleDateCap = 5

// Stats accumulates row-matching counters across every sheet in a run.
// TotalRows >= NameMatches >= MatchingSales always holds: each counter only
// advances after the previous gate passes.
type Stats struct {
	TotalRows     int
	NameMatches   int
	MatchingSales int

	sampleDates []string
}

// addSample records the date of a parsed name-matched row, window hit or not,
// so a misconfigured window still shows what dates the sheets actually hold.
func (s *Stats) addSample(t time.Time) {
	if len(s.sampleDates) < sampleDateCap {
		s.sampleDates = append(s.sampleDates, t.Format("2006-01-02"))
	}
}

// SampleDates renders the collected sample dates for diagnostics output.
func (s *Stats) SampleDates() string {
	if len(s.sampleDates) == 0 {
		return "None found"
	}
	return strings.Join(s.sampleDates, ", ")
}

// Report is the diagnostic block attached to every aggregation result.
type Report struct {
	TotalRows     int
	NameMatches   int
	MatchingSales int
	DateRange     string
	SampleDates   string
}

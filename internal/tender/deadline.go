package tender

import (
	"math"
	"strings"
	"time"
)

// deadlineLayouts are tried in order. Portal exports are inconsistent, so
// both day-first and month-first layouts are accepted; day-first wins when
// a date is valid under both.
var deadlineLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"02-01-2006",
	"2006/01/02",
}

// ParseDeadline parses a submission deadline string. A missing or
// unparseable deadline yields ok == false, never an error: the algorithms
// downstream degrade to their "no deadline" behavior instead of aborting.
func ParseDeadline(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	// Tolerate a trailing Z on layouts that have no zone designator.
	if trimmed, found := strings.CutSuffix(s, "Z"); found {
		for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02"} {
			if t, err := time.Parse(layout, trimmed); err == nil {
				return t, true
			}
		}
	}

	return time.Time{}, false
}

// DaysUntil returns whole days between now and the deadline, negative when
// the deadline has passed.
func DaysUntil(deadline, now time.Time) float64 {
	return math.Floor(deadline.Sub(now).Hours() / 24)
}

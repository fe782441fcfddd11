package watcher

import (
	"fmt"
	"sort"
	"time"
)

// Compare detects notable changes between two watch states and returns
// alerts, most severe first. A score drop of at least scoreDrop points is
// critical.
func Compare(prev, curr *WatchState, scoreDrop int) []Alert {
	var alerts []Alert
	now := time.Now()

	delta := curr.Score - prev.Score
	switch {
	case -delta >= scoreDrop:
		alerts = append(alerts, Alert{
			Level:   "critical",
			Title:   "Score dropped",
			Message: fmt.Sprintf("Score fell from %d to %d (%d)", prev.Score, curr.Score, delta),
			Time:    now,
		})
	case delta >= scoreDrop:
		alerts = append(alerts, Alert{
			Level:   "info",
			Title:   "Score improved",
			Message: fmt.Sprintf("Score rose from %d to %d (+%d)", prev.Score, curr.Score, delta),
			Time:    now,
		})
	}

	// Sorted so repeated cycles produce identical alert keys.
	var added []string
	for key := range curr.highSeverity {
		if _, seen := prev.highSeverity[key]; !seen {
			added = append(added, key)
		}
	}
	sort.Strings(added)
	for _, key := range added {
		s := curr.highSeverity[key]
		alerts = append(alerts, Alert{
			Level:   "warning",
			Title:   fmt.Sprintf("New %s issue", s.Type),
			Message: fmt.Sprintf("%q: %s", s.OriginalText, s.Explanation),
			Time:    now,
		})
	}

	if curr.BandLevel < prev.BandLevel {
		alerts = append(alerts, Alert{
			Level:   "warning",
			Title:   "Readability dropped",
			Message: fmt.Sprintf("Reading ease moved from %s (%.1f) to %s (%.1f)", prev.Band, prev.Readability, curr.Band, curr.Readability),
			Time:    now,
		})
	}

	resolved := 0
	for key := range prev.highSeverity {
		if _, still := curr.highSeverity[key]; !still {
			resolved++
		}
	}
	if resolved > 0 {
		alerts = append(alerts, Alert{
			Level:   "info",
			Title:   "Issues resolved",
			Message: fmt.Sprintf("%d high-severity issue(s) fixed, %d remaining", resolved, curr.HighSeverityCount()),
			Time:    now,
		})
	}

	return alerts
}

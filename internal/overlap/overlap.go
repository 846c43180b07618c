// Package overlap detects pairs of time entries whose tracked spans
// intersect, which usually indicates a tracking mistake or genuinely
// concurrent activity.
package overlap

import (
	"sort"
	"time"

	"toggl-tidy/internal/domain"
)

const dayFormat = "2006-01-02"

// Find reports every unordered pair of completed entries whose overlap is
// at least minOverlapSec seconds. Touching or disjoint entries (zero or
// negative overlap) are never reported, regardless of the threshold.
//
// Pairs are grouped by the calendar day, in loc, of the earlier entry's
// start; within a day they are ordered by that start, ties by ID. Running
// entries are excluded. Entries with start after stop come back on the
// skipped list and do not participate.
func Find(entries []domain.TimeEntry, loc *time.Location, minOverlapSec int64) (domain.OverlapReport, []domain.SkippedEntry) {
	var skipped []domain.SkippedEntry

	candidates := make([]domain.TimeEntry, 0, len(entries))
	for _, e := range entries {
		if e.Running() {
			continue
		}
		if e.Stop.Before(e.Start) {
			skipped = append(skipped, domain.SkippedEntry{
				Entry: e,
				Err:   &domain.MalformedEntryError{EntryID: e.ID, Reason: "start after stop"},
			})
			continue
		}
		candidates = append(candidates, e)
	}

	sort.Slice(candidates, func(i, j int) bool {
		if !candidates[i].Start.Equal(candidates[j].Start) {
			return candidates[i].Start.Before(candidates[j].Start)
		}
		return candidates[i].ID < candidates[j].ID
	})

	report := domain.OverlapReport{ByDay: make(map[string][]domain.OverlapPair)}
	for i, a := range candidates {
		for _, b := range candidates[i+1:] {
			// Sorted by start, so once b starts at or after a's
			// stop, no later entry can overlap a either.
			if !b.Start.Before(*a.Stop) {
				break
			}
			if a.ID == b.ID {
				continue
			}
			ov := overlapSeconds(a, b)
			if ov <= 0 || ov < minOverlapSec {
				continue
			}
			day := a.Start.In(loc).Format(dayFormat)
			report.ByDay[day] = append(report.ByDay[day], domain.OverlapPair{
				First:      a,
				Second:     b,
				OverlapSec: ov,
			})
		}
	}
	return report, skipped
}

func overlapSeconds(a, b domain.TimeEntry) int64 {
	start := a.Start
	if b.Start.After(start) {
		start = b.Start
	}
	stop := *a.Stop
	if b.Stop.Before(stop) {
		stop = *b.Stop
	}
	return int64(stop.Sub(start) / time.Second)
}

package domain

import "sort"

// OverlapPair reports two completed entries whose tracked spans intersect.
// First is always the entry with the earlier start (ties broken by ID), so
// a pair never appears twice with its entries swapped.
type OverlapPair struct {
	First      TimeEntry
	Second     TimeEntry
	OverlapSec int64
}

// OverlapReport groups overlapping pairs by the calendar day (in the
// timezone the detector ran with) of the earlier entry's start.
type OverlapReport struct {
	// ByDay maps YYYY-MM-DD to pairs ordered by the earlier entry's
	// start ascending, ties by ID.
	ByDay map[string][]OverlapPair
}

// Days returns the report's day keys in ascending order.
func (r OverlapReport) Days() []string {
	days := make([]string, 0, len(r.ByDay))
	for d := range r.ByDay {
		days = append(days, d)
	}
	sort.Strings(days)
	return days
}

// Total returns the number of pairs across all days.
func (r OverlapReport) Total() int {
	n := 0
	for _, pairs := range r.ByDay {
		n += len(pairs)
	}
	return n
}

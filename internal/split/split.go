// Package split plans the replacement of entries that cross a local
// midnight or exceed a duration cap with sub-entries that do neither.
package split

import (
	"fmt"
	"time"

	"toggl-tidy/internal/domain"
)

// segment is a half-open working range; the recorded stop of every
// non-final replacement is cut-1s so no second is counted twice at a seam.
type segment struct {
	start time.Time
	stop  time.Time
}

// Plan returns one SplitPlan per entry that crosses a local midnight in
// loc or runs longer than maxDurationSec. Entries needing neither are
// absent from the result, as are entries that would produce fewer than
// two replacements. Running and zero-duration entries are excluded;
// entries with start after stop come back on the skipped list.
//
// DeleteOriginal is set on every plan unless retainOriginals is true; the
// caller must still withhold deletion until all replacements were created.
func Plan(entries []domain.TimeEntry, loc *time.Location, maxDurationSec int64, retainOriginals bool) ([]domain.SplitPlan, []domain.SkippedEntry) {
	var (
		plans   []domain.SplitPlan
		skipped []domain.SkippedEntry
	)
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
		if e.Stop.Equal(e.Start) {
			continue
		}
		if !needsSplit(e, loc, maxDurationSec) {
			continue
		}
		reps := replacements(e, loc, maxDurationSec)
		if len(reps) < 2 {
			// No cut point exists (stop exactly at midnight, or an
			// oversized entry too short to cut); replacing the entry
			// with a renamed copy of itself would achieve nothing.
			continue
		}
		plans = append(plans, domain.SplitPlan{
			Original:       e,
			Replacements:   reps,
			DeleteOriginal: !retainOriginals,
		})
	}
	return plans, skipped
}

func needsSplit(e domain.TimeEntry, loc *time.Location, maxDurationSec int64) bool {
	startLocal := e.Start.In(loc)
	stopLocal := e.Stop.In(loc)
	if dateOf(startLocal) != dateOf(stopLocal) {
		return true
	}
	return e.DurationSec() > maxDurationSec
}

func dateOf(t time.Time) string { return t.Format("2006-01-02") }

// replacements builds the ordered sub-entries for one entry: cut at every
// local midnight strictly between start and stop, then cut any sub-range
// still over the cap until all fit or a sub-range is too small to cut.
func replacements(e domain.TimeEntry, loc *time.Location, maxDurationSec int64) []domain.TimeEntry {
	segs := cutAtMidnights(e.Start, *e.Stop, loc)
	segs = cutOversized(segs, maxDurationSec)

	out := make([]domain.TimeEntry, 0, len(segs))
	n := len(segs)
	for i, s := range segs {
		start := s.start
		stop := s.stop
		if i < n-1 {
			// End-inclusive seam: never touch the next segment's
			// first instant.
			stop = stop.Add(-time.Second)
		}
		stopCopy := stop
		out = append(out, domain.TimeEntry{
			Description: fmt.Sprintf("%s (split %d/%d)", e.Description, i+1, n),
			ProjectID:   e.ProjectID,
			WorkspaceID: e.WorkspaceID,
			Tags:        append([]string(nil), e.Tags...),
			Billable:    e.Billable,
			Start:       start,
			Stop:        &stopCopy,
		})
	}
	return out
}

func cutAtMidnights(start, stop time.Time, loc *time.Location) []segment {
	var segs []segment
	cur := start
	for {
		next := nextMidnight(cur.In(loc))
		if !next.Before(stop.In(loc)) {
			break
		}
		segs = append(segs, segment{start: cur, stop: next.In(start.Location())})
		cur = next.In(start.Location())
	}
	return append(segs, segment{start: cur, stop: stop})
}

// nextMidnight returns the first local midnight strictly after t.
func nextMidnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, t.Location())
}

// cutOversized splits every segment longer than the cap at
// start+cap truncated to the whole minute, repeatedly. A segment of one
// minute or less is accepted as-is rather than cut forever.
func cutOversized(segs []segment, maxDurationSec int64) []segment {
	maxDur := time.Duration(maxDurationSec) * time.Second
	var out []segment
	for _, s := range segs {
		for s.stop.Sub(s.start) > maxDur && s.stop.Sub(s.start) > time.Minute {
			cut := s.start.Add(maxDur).Truncate(time.Minute)
			if !cut.After(s.start) || !cut.Before(s.stop) {
				break
			}
			out = append(out, segment{start: s.start, stop: cut})
			s = segment{start: cut, stop: s.stop}
		}
		out = append(out, s)
	}
	return out
}

package domain

import "time"

// TimeEntry represents a Toggl time entry in the domain.
// An ID of zero marks an entry that has not been created remotely yet.
type TimeEntry struct {
	ID          int64
	Description string
	ProjectID   *int64
	WorkspaceID *int64
	Tags        []string
	Billable    bool
	Start       time.Time
	Stop        *time.Time // nil means the entry is still running
}

// Running reports whether the entry has no stop time yet.
func (e TimeEntry) Running() bool { return e.Stop == nil }

// Duration returns the tracked span. Running entries have no defined
// duration and report zero.
func (e TimeEntry) Duration() time.Duration {
	if e.Stop == nil {
		return 0
	}
	return e.Stop.Sub(e.Start)
}

// DurationSec returns the tracked span in whole seconds.
func (e TimeEntry) DurationSec() int64 {
	return int64(e.Duration() / time.Second)
}

// Tagged reports whether the entry carries at least one tag.
func (e TimeEntry) Tagged() bool { return len(e.Tags) > 0 }

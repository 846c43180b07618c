package ports

import (
	"context"
	"time"

	"toggl-tidy/internal/domain"
)

// TogglClient defines the remote API surface the tools consume. Reads feed
// the pure cores; writes apply split plans and tag assignments.
type TogglClient interface {
	ListTimeEntries(ctx context.Context, from, to time.Time) ([]domain.TimeEntry, error)
	ListProjects(ctx context.Context) ([]domain.Project, error)
	ListTags(ctx context.Context) ([]string, error)
	CreateTimeEntry(ctx context.Context, entry domain.TimeEntry) (domain.TimeEntry, error)
	DeleteTimeEntry(ctx context.Context, id int64) error
	UpdateEntryTags(ctx context.Context, id int64, tags []string) error
}

// Sink receives entries and persists them to a target system. The export
// tool uses it as an optional archive target next to the JSON file; the
// interface is intentionally generic to support other sinks.
type Sink interface {
	SyncEntries(ctx context.Context, entries []domain.TimeEntry) error
	SyncProjects(ctx context.Context, projects []domain.Project) error
}

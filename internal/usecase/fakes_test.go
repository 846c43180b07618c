package usecase

import (
	"context"
	"io"
	"log/slog"
	"time"

	"toggl-tidy/internal/domain"
)

// fakeToggl implements ports.TogglClient in memory, recording writes.
type fakeToggl struct {
	entries  []domain.TimeEntry
	projects []domain.Project
	tags     []string

	created []domain.TimeEntry
	deleted []int64
	tagged  map[int64][]string

	listErr   error
	createErr map[int]error // fails the nth (0-based) create
	deleteErr error
	updateErr error

	nextID int64
}

func newFakeToggl(entries ...domain.TimeEntry) *fakeToggl {
	return &fakeToggl{entries: entries, tagged: make(map[int64][]string), nextID: 1000}
}

func (f *fakeToggl) ListTimeEntries(ctx context.Context, from, to time.Time) ([]domain.TimeEntry, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.entries, nil
}

func (f *fakeToggl) ListProjects(ctx context.Context) ([]domain.Project, error) {
	return f.projects, nil
}

func (f *fakeToggl) ListTags(ctx context.Context) ([]string, error) {
	return f.tags, nil
}

func (f *fakeToggl) CreateTimeEntry(ctx context.Context, entry domain.TimeEntry) (domain.TimeEntry, error) {
	if err, ok := f.createErr[len(f.created)]; ok {
		return domain.TimeEntry{}, err
	}
	entry.ID = f.nextID
	f.nextID++
	f.created = append(f.created, entry)
	return entry, nil
}

func (f *fakeToggl) DeleteTimeEntry(ctx context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeToggl) UpdateEntryTags(ctx context.Context, id int64, tags []string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.tagged[id] = tags
	return nil
}

// fakeSink records what the export archive path hands it.
type fakeSink struct {
	entries  []domain.TimeEntry
	projects []domain.Project
}

func (s *fakeSink) SyncEntries(ctx context.Context, entries []domain.TimeEntry) error {
	s.entries = append(s.entries, entries...)
	return nil
}

func (s *fakeSink) SyncProjects(ctx context.Context, projects []domain.Project) error {
	s.projects = append(s.projects, projects...)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func completed(id int64, desc string, start time.Time, d time.Duration, tags ...string) domain.TimeEntry {
	stop := start.Add(d)
	return domain.TimeEntry{ID: id, Description: desc, Tags: tags, Start: start, Stop: &stop}
}

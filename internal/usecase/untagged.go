package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"time"

	"toggl-tidy/internal/domain"
	"toggl-tidy/internal/ports"
)

// Sort orders accepted by the untagged finder.
const (
	SortByDate        = "date"
	SortByDuration    = "duration"
	SortByDescription = "description"
)

// UntaggedUseCase lists completed entries that carry no tags.
type UntaggedUseCase struct {
	Log   *slog.Logger
	Toggl ports.TogglClient
}

func (uc *UntaggedUseCase) Run(ctx context.Context, from, to time.Time, minDurationSec int64, sortBy string) ([]domain.TimeEntry, error) {
	if uc.Toggl == nil {
		return nil, errors.New("usecase not initialized: missing dependencies")
	}
	uc.Log.Info("fetching time entries", slog.Time("from", from), slog.Time("to", to))

	entries, err := uc.Toggl.ListTimeEntries(ctx, from, to)
	if err != nil {
		return nil, err
	}
	uc.Log.Info("fetched time entries", slog.Int("count", len(entries)))

	var untagged []domain.TimeEntry
	for _, e := range entries {
		if e.Running() || e.Tagged() {
			continue
		}
		if e.DurationSec() < minDurationSec {
			continue
		}
		untagged = append(untagged, e)
	}
	sortEntries(untagged, sortBy)
	uc.Log.Info("found untagged entries", slog.Int("count", len(untagged)))
	return untagged, nil
}

func sortEntries(entries []domain.TimeEntry, sortBy string) {
	switch sortBy {
	case SortByDuration:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].DurationSec() > entries[j].DurationSec()
		})
	case SortByDescription:
		sort.SliceStable(entries, func(i, j int) bool {
			return strings.ToLower(entries[i].Description) < strings.ToLower(entries[j].Description)
		})
	default: // date
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Start.Before(entries[j].Start)
		})
	}
}

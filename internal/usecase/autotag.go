package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"toggl-tidy/internal/domain"
	"toggl-tidy/internal/ports"
	"toggl-tidy/internal/tagging"
)

// AutoTagUseCase applies tags to entries whose descriptions match the
// patterns in a mapping file.
type AutoTagUseCase struct {
	Log   *slog.Logger
	Toggl ports.TogglClient

	// ConfirmTags, when set, is asked before tagging each entry and may
	// rewrite the tag list. A nil return skips the entry. Nil callback
	// means apply as matched.
	ConfirmTags func(entry domain.TimeEntry, tags []string) []string
}

// TagStats summarizes one tagging pass.
type TagStats struct {
	Processed   int
	Tagged      int
	Skipped     int
	Errors      int
	TagsApplied map[string]int
}

// Run matches and applies tags. Running entries are always skipped;
// entries already tagged are skipped unless allEntries is set; dryRun
// counts matches without writing.
func (uc *AutoTagUseCase) Run(ctx context.Context, from, to time.Time, mappings tagging.Mappings, minDurationSec int64, allEntries, dryRun bool) (TagStats, error) {
	stats := TagStats{TagsApplied: make(map[string]int)}
	if uc.Toggl == nil {
		return stats, errors.New("usecase not initialized: missing dependencies")
	}
	uc.Log.Info("fetching time entries", slog.Time("from", from), slog.Time("to", to))

	entries, err := uc.Toggl.ListTimeEntries(ctx, from, to)
	if err != nil {
		return stats, err
	}
	uc.Log.Info("fetched time entries", slog.Int("count", len(entries)))

	for _, e := range entries {
		stats.Processed++
		// A running entry has no settled duration yet; tag it once it
		// is stopped.
		if e.Running() {
			stats.Skipped++
			continue
		}
		if e.DurationSec() < minDurationSec {
			stats.Skipped++
			continue
		}
		if !allEntries && e.Tagged() {
			stats.Skipped++
			continue
		}
		tags := tagging.Match(e.Description, mappings)
		if len(tags) == 0 {
			stats.Skipped++
			continue
		}
		if uc.ConfirmTags != nil {
			tags = uc.ConfirmTags(e, tags)
			if len(tags) == 0 {
				stats.Skipped++
				continue
			}
		}
		if !dryRun {
			if err := uc.Toggl.UpdateEntryTags(ctx, e.ID, tags); err != nil {
				uc.Log.Error("applying tags failed",
					slog.Int64("id", e.ID),
					slog.String("error", err.Error()),
				)
				stats.Errors++
				continue
			}
		}
		stats.Tagged++
		for _, t := range tags {
			stats.TagsApplied[t]++
		}
		uc.Log.Debug("tagged entry", slog.Int64("id", e.ID), slog.Any("tags", tags))
	}
	uc.Log.Info("tagging completed",
		slog.Int("processed", stats.Processed),
		slog.Int("tagged", stats.Tagged),
		slog.Int("skipped", stats.Skipped),
		slog.Int("errors", stats.Errors),
	)
	return stats, nil
}

// CreateMappingTemplate writes a mapping skeleton from the workspace's
// existing tags.
func (uc *AutoTagUseCase) CreateMappingTemplate(ctx context.Context, path string) error {
	tags, err := uc.Toggl.ListTags(ctx)
	if err != nil {
		return err
	}
	if len(tags) == 0 {
		return errors.New("no tags found in workspace")
	}
	if err := tagging.WriteTemplate(path, tags); err != nil {
		return err
	}
	uc.Log.Info("created mapping template", slog.String("path", path), slog.Int("tags", len(tags)))
	return nil
}

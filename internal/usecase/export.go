package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"toggl-tidy/internal/export"
	"toggl-tidy/internal/ports"
)

// ExportUseCase writes a window of entries to a JSON file and, when a sink
// is wired, archives the entries and the workspace's projects there too.
type ExportUseCase struct {
	Log   *slog.Logger
	Toggl ports.TogglClient
	Sink  ports.Sink // optional archive target
}

// ExportOptions control filtering and encoding.
type ExportOptions struct {
	OutputFile     string
	Pretty         bool
	IncludeRunning bool
	MinDurationSec int64
}

func (uc *ExportUseCase) Run(ctx context.Context, from, to time.Time, opts ExportOptions) (int, error) {
	if uc.Toggl == nil {
		return 0, errors.New("usecase not initialized: missing dependencies")
	}
	uc.Log.Info("fetching time entries in batches", slog.Time("from", from), slog.Time("to", to))

	entries, err := export.FetchBatches(ctx, uc.Toggl, from, to)
	if err != nil {
		return 0, err
	}
	uc.Log.Info("fetched time entries", slog.Int("count", len(entries)))

	doc := export.Build(entries, opts.MinDurationSec, opts.IncludeRunning, time.Now())
	if err := export.WriteFile(doc, opts.OutputFile, opts.Pretty); err != nil {
		return 0, err
	}
	uc.Log.Info("exported entries",
		slog.Int("count", doc.Metadata.EntryCount),
		slog.String("file", opts.OutputFile),
	)

	if uc.Sink != nil {
		if len(entries) > 0 {
			if err := uc.Sink.SyncEntries(ctx, entries); err != nil {
				return doc.Metadata.EntryCount, err
			}
			uc.Log.Info("archived entries to sink", slog.Int("count", len(entries)))
		}
		projects, err := uc.Toggl.ListProjects(ctx)
		if err != nil {
			return doc.Metadata.EntryCount, err
		}
		if len(projects) > 0 {
			if err := uc.Sink.SyncProjects(ctx, projects); err != nil {
				return doc.Metadata.EntryCount, err
			}
			uc.Log.Info("archived projects to sink", slog.Int("count", len(projects)))
		}
	}
	return doc.Metadata.EntryCount, nil
}

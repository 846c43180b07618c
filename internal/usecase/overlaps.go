package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"toggl-tidy/internal/domain"
	"toggl-tidy/internal/overlap"
	"toggl-tidy/internal/ports"
)

// OverlapUseCase fetches a window of entries and reports overlapping pairs.
type OverlapUseCase struct {
	Log   *slog.Logger
	Toggl ports.TogglClient
}

func (uc *OverlapUseCase) Run(ctx context.Context, from, to time.Time, loc *time.Location, minOverlapSec int64) (domain.OverlapReport, error) {
	if uc.Toggl == nil {
		return domain.OverlapReport{}, errors.New("usecase not initialized: missing dependencies")
	}
	uc.Log.Info("fetching time entries", slog.Time("from", from), slog.Time("to", to))

	entries, err := uc.Toggl.ListTimeEntries(ctx, from, to)
	if err != nil {
		return domain.OverlapReport{}, err
	}
	uc.Log.Info("fetched time entries", slog.Int("count", len(entries)))

	report, skipped := overlap.Find(entries, loc, minOverlapSec)
	logSkipped(uc.Log, skipped)
	uc.Log.Info("overlap detection completed",
		slog.Int("pairs", report.Total()),
		slog.Int("days", len(report.ByDay)),
	)
	return report, nil
}

func logSkipped(log *slog.Logger, skipped []domain.SkippedEntry) {
	for _, s := range skipped {
		log.Warn("skipping entry",
			slog.Int64("id", s.Entry.ID),
			slog.String("reason", s.Err.Error()),
		)
	}
}

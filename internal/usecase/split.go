package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"toggl-tidy/internal/domain"
	"toggl-tidy/internal/ports"
	"toggl-tidy/internal/split"
)

// SplitUseCase plans and applies entry splits at local midnights and
// duration caps.
type SplitUseCase struct {
	Log   *slog.Logger
	Toggl ports.TogglClient

	// Confirm, when set, is asked before each plan is applied. A false
	// return skips that plan. Nil means apply everything.
	Confirm func(domain.SplitPlan) bool
}

// SplitResult summarizes one apply pass.
type SplitResult struct {
	Plans          []domain.SplitPlan
	Applied        int
	SkippedByUser  int
	Failed         int
	EntriesCreated int
}

// PlanOnly fetches the window and returns the plans without writing.
func (uc *SplitUseCase) PlanOnly(ctx context.Context, from, to time.Time, loc *time.Location, maxDurationSec int64, retainOriginals bool) ([]domain.SplitPlan, error) {
	if uc.Toggl == nil {
		return nil, errors.New("usecase not initialized: missing dependencies")
	}
	uc.Log.Info("fetching time entries", slog.Time("from", from), slog.Time("to", to))

	entries, err := uc.Toggl.ListTimeEntries(ctx, from, to)
	if err != nil {
		return nil, err
	}
	uc.Log.Info("fetched time entries", slog.Int("count", len(entries)))

	plans, skipped := split.Plan(entries, loc, maxDurationSec, retainOriginals)
	logSkipped(uc.Log, skipped)
	uc.Log.Info("split planning completed", slog.Int("plans", len(plans)))
	return plans, nil
}

// Run plans and applies. For each plan every replacement is created first;
// the original is deleted only when all creates succeeded and the plan
// asks for deletion. A create failure leaves the original untouched and
// moves on to the next plan.
func (uc *SplitUseCase) Run(ctx context.Context, from, to time.Time, loc *time.Location, maxDurationSec int64, retainOriginals bool) (SplitResult, error) {
	plans, err := uc.PlanOnly(ctx, from, to, loc, maxDurationSec, retainOriginals)
	if err != nil {
		return SplitResult{}, err
	}
	res := SplitResult{Plans: plans}
	for _, plan := range plans {
		if uc.Confirm != nil && !uc.Confirm(plan) {
			uc.Log.Info("skipping split as per user request", slog.Int64("id", plan.Original.ID))
			res.SkippedByUser++
			continue
		}
		created, err := uc.apply(ctx, plan)
		res.EntriesCreated += created
		if err != nil {
			uc.Log.Error("splitting entry failed",
				slog.Int64("id", plan.Original.ID),
				slog.Int("created", created),
				slog.Int("planned", len(plan.Replacements)),
				slog.String("error", err.Error()),
			)
			res.Failed++
			continue
		}
		res.Applied++
	}
	uc.Log.Info("split run completed",
		slog.Int("applied", res.Applied),
		slog.Int("failed", res.Failed),
		slog.Int("created", res.EntriesCreated),
	)
	return res, nil
}

// apply creates the replacements in order, then deletes the original. The
// number of successful creates is returned so partial failures can be
// reported precisely.
func (uc *SplitUseCase) apply(ctx context.Context, plan domain.SplitPlan) (int, error) {
	created := 0
	for _, r := range plan.Replacements {
		newEntry, err := uc.Toggl.CreateTimeEntry(ctx, r)
		if err != nil {
			// Partial creation with a surviving original is the
			// safe degraded state; never delete here.
			return created, err
		}
		created++
		uc.Log.Debug("created split entry", slog.Int64("id", newEntry.ID))
	}
	if plan.DeleteOriginal {
		if err := uc.Toggl.DeleteTimeEntry(ctx, plan.Original.ID); err != nil {
			return created, err
		}
		uc.Log.Debug("deleted original entry", slog.Int64("id", plan.Original.ID))
	}
	return created, nil
}

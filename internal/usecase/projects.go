package usecase

import (
	"context"
	"errors"
	"log/slog"

	"toggl-tidy/internal/ports"
)

// ProjectUseCase resolves project IDs to names for report labelling.
type ProjectUseCase struct {
	Log   *slog.Logger
	Toggl ports.TogglClient
}

// Names returns an ID to name map of the workspace's projects.
func (uc *ProjectUseCase) Names(ctx context.Context) (map[int64]string, error) {
	if uc.Toggl == nil {
		return nil, errors.New("usecase not initialized: missing dependencies")
	}
	projects, err := uc.Toggl.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(projects))
	for _, p := range projects {
		names[p.ID] = p.Name
	}
	uc.Log.Debug("fetched projects", slog.Int("count", len(names)))
	return names, nil
}

package app

import (
	"context"
	"log/slog"

	msql "toggl-tidy/internal/adapter/mysql"
	tg "toggl-tidy/internal/adapter/toggl"
	"toggl-tidy/internal/config"
	"toggl-tidy/internal/migrate"
	"toggl-tidy/internal/usecase"
)

// App wires the adapter into the per-tool use cases.
type App struct {
	log *slog.Logger
	cfg config.Config

	Overlaps *usecase.OverlapUseCase
	Split    *usecase.SplitUseCase
	Untagged *usecase.UntaggedUseCase
	AutoTag  *usecase.AutoTagUseCase
	Export   *usecase.ExportUseCase
	Projects *usecase.ProjectUseCase
}

func New(log *slog.Logger, cfg config.Config) *App {
	client := tg.NewClient(cfg.Toggl.BaseURL, cfg.Toggl.APIToken, cfg.Toggl.WorkspaceID, log)
	return &App{
		log:      log,
		cfg:      cfg,
		Overlaps: &usecase.OverlapUseCase{Log: log, Toggl: client},
		Split:    &usecase.SplitUseCase{Log: log, Toggl: client},
		Untagged: &usecase.UntaggedUseCase{Log: log, Toggl: client},
		AutoTag:  &usecase.AutoTagUseCase{Log: log, Toggl: client},
		Export:   &usecase.ExportUseCase{Log: log, Toggl: client},
		Projects: &usecase.ProjectUseCase{Log: log, Toggl: client},
	}
}

// EnableArchive migrates the archive schema and attaches the MySQL sink to
// the export use case. Called only when the export tool asks to archive.
func (a *App) EnableArchive(ctx context.Context) error {
	if err := migrate.Run(ctx, a.cfg.MySQL.DSN, a.log); err != nil {
		return err
	}
	sink, err := msql.NewClient(ctx, a.cfg.MySQL.DSN, a.log)
	if err != nil {
		return err
	}
	a.Export.Sink = sink
	return nil
}

// Package cli implements the toggl-tidy command tree.
package cli

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"toggl-tidy/internal/app"
	"toggl-tidy/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "toggl-tidy",
	Short: "Tidy up Toggl time entries from the command line",
	Long: `toggl-tidy is a set of small utilities over the Toggl Track API:
detect overlapping entries, split entries that cross midnight or run too
long, find and auto-tag untagged entries, and export entries to JSON.

Credentials come from TOGGL_API_TOKEN (a .env file in the working
directory is honored).`,
	SilenceUsage: true,
}

var (
	flagVerbose  bool
	flagTimezone string
)

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&flagTimezone, "timezone", "", "IANA timezone for day boundaries (default: TIDY_TZ or Asia/Shanghai)")

	// Subcommands (alphabetical)
	rootCmd.AddCommand(autotagCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(overlapsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(splitCmd)
	rootCmd.AddCommand(untaggedCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads configuration, builds the logger and wires the app. Every
// subcommand starts here.
func setup() (*app.App, *slog.Logger, *time.Location, error) {
	level := slog.LevelInfo
	if flagVerbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	logger := slog.New(handler)
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	tz := flagTimezone
	if tz == "" {
		tz = cfg.Defaults.Timezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, nil, nil, err
	}

	return app.New(logger, cfg), logger, loc, nil
}

// projectNames fetches the project lookup map for report labelling. A
// failed lookup degrades the reports to bare IDs instead of failing them.
func projectNames(ctx context.Context, a *app.App, logger *slog.Logger) map[int64]string {
	names, err := a.Projects.Names(ctx)
	if err != nil {
		logger.Warn("could not fetch projects, reports will show project IDs", slog.String("error", err.Error()))
		return nil
	}
	return names
}

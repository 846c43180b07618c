package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"toggl-tidy/internal/usecase"
)

var (
	exportDays           int
	exportFrom           string
	exportTo             string
	exportOutputFile     string
	exportPretty         bool
	exportIncludeRunning bool
	exportMinDuration    int64
	exportArchive        bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export time entries to a JSON file",
	Long: `Export fetches entries in batches and writes them, sorted by start
time, to a JSON file with export metadata. With --archive and MYSQL_DSN
set, the same entries are also upserted into the MySQL archive tables.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, _, _, err := setup()
		if err != nil {
			return err
		}
		from, to, err := resolveWindow(exportDays, exportFrom, exportTo)
		if err != nil {
			return err
		}
		if exportArchive {
			if err := a.EnableArchive(cmd.Context()); err != nil {
				return fmt.Errorf("enabling archive sink: %w", err)
			}
		}
		count, err := a.Export.Run(cmd.Context(), from, to, usecase.ExportOptions{
			OutputFile:     exportOutputFile,
			Pretty:         exportPretty,
			IncludeRunning: exportIncludeRunning,
			MinDurationSec: exportMinDuration * 60,
		})
		if err != nil {
			return err
		}
		fmt.Println(styleSuccess.Render(fmt.Sprintf("Exported %d entries to %s", count, exportOutputFile)))
		return nil
	},
}

func init() {
	exportCmd.Flags().IntVar(&exportDays, "days", 30, "number of days to look back")
	exportCmd.Flags().StringVar(&exportFrom, "from", "", "window start (RFC3339 or YYYY-MM-DD, overrides --days)")
	exportCmd.Flags().StringVar(&exportTo, "to", "", "window end (RFC3339 or YYYY-MM-DD, default now)")
	exportCmd.Flags().StringVar(&exportOutputFile, "output-file", "toggl_entries.json", "output JSON file path")
	exportCmd.Flags().BoolVar(&exportPretty, "pretty", false, "pretty-print the JSON output")
	exportCmd.Flags().BoolVar(&exportIncludeRunning, "include-running", false, "include currently running entries")
	exportCmd.Flags().Int64Var(&exportMinDuration, "min-duration", 0, "minimum duration in minutes to include")
	exportCmd.Flags().BoolVar(&exportArchive, "archive", false, "also archive entries to MySQL (requires MYSQL_DSN)")
}

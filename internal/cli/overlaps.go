package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	overlapsDays       int
	overlapsFrom       string
	overlapsTo         string
	overlapsMinOverlap int64
)

var overlapsCmd = &cobra.Command{
	Use:   "overlaps",
	Short: "Report overlapping time entries grouped by day",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, logger, loc, err := setup()
		if err != nil {
			return err
		}
		from, to, err := resolveWindow(overlapsDays, overlapsFrom, overlapsTo)
		if err != nil {
			return err
		}
		report, err := a.Overlaps.Run(cmd.Context(), from, to, loc, overlapsMinOverlap)
		if err != nil {
			return err
		}
		if report.Total() == 0 {
			fmt.Printf("No overlapping time entries found with minimum overlap of %d seconds.\n", overlapsMinOverlap)
			return nil
		}
		renderOverlapReport(os.Stdout, report, loc, projectNames(cmd.Context(), a, logger))
		return nil
	},
}

func init() {
	overlapsCmd.Flags().IntVar(&overlapsDays, "days", 7, "number of days to look back")
	overlapsCmd.Flags().StringVar(&overlapsFrom, "from", "", "window start (RFC3339 or YYYY-MM-DD, overrides --days)")
	overlapsCmd.Flags().StringVar(&overlapsTo, "to", "", "window end (RFC3339 or YYYY-MM-DD, default now)")
	overlapsCmd.Flags().Int64Var(&overlapsMinOverlap, "min-overlap", 60, "minimum overlap in seconds to report")
}

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	untaggedDays        int
	untaggedFrom        string
	untaggedTo          string
	untaggedOutput      string
	untaggedSortBy      string
	untaggedMinDuration int64
)

var untaggedCmd = &cobra.Command{
	Use:   "untagged",
	Short: "List completed entries that carry no tags",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, logger, loc, err := setup()
		if err != nil {
			return err
		}
		from, to, err := resolveWindow(untaggedDays, untaggedFrom, untaggedTo)
		if err != nil {
			return err
		}
		entries, err := a.Untagged.Run(cmd.Context(), from, to, untaggedMinDuration*60, untaggedSortBy)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No untagged entries found.")
			return nil
		}
		projects := projectNames(cmd.Context(), a, logger)
		switch untaggedOutput {
		case "csv":
			return renderEntryCSV(os.Stdout, entries, loc, projects)
		case "json":
			return renderEntryJSON(os.Stdout, entries, loc, projects)
		default:
			renderEntryTable(os.Stdout, entries, loc, projects)
			return nil
		}
	},
}

func init() {
	untaggedCmd.Flags().IntVar(&untaggedDays, "days", 7, "number of days to look back")
	untaggedCmd.Flags().StringVar(&untaggedFrom, "from", "", "window start (RFC3339 or YYYY-MM-DD, overrides --days)")
	untaggedCmd.Flags().StringVar(&untaggedTo, "to", "", "window end (RFC3339 or YYYY-MM-DD, default now)")
	untaggedCmd.Flags().StringVar(&untaggedOutput, "output", "table", "output format: table, csv or json")
	untaggedCmd.Flags().StringVar(&untaggedSortBy, "sort-by", "date", "sort results by date, duration or description")
	untaggedCmd.Flags().Int64Var(&untaggedMinDuration, "min-duration", 0, "minimum duration in minutes to include")
}

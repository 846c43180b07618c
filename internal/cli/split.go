package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"toggl-tidy/internal/domain"
)

var (
	splitDays        int
	splitFrom        string
	splitTo          string
	splitMaxHours    int64
	splitDryRun      bool
	splitInteractive bool
	splitNoDelete    bool
)

var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Split entries that cross midnight or exceed a duration cap",
	Long: `Split finds entries spanning a local midnight or running longer than
--max-hours and replaces each with sub-entries that do neither. New
entries are created before the original is deleted, so a failed create
leaves the original in place.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, _, loc, err := setup()
		if err != nil {
			return err
		}
		from, to, err := resolveWindow(splitDays, splitFrom, splitTo)
		if err != nil {
			return err
		}
		maxDurationSec := splitMaxHours * 3600

		if splitDryRun {
			plans, err := a.Split.PlanOnly(cmd.Context(), from, to, loc, maxDurationSec, splitNoDelete)
			if err != nil {
				return err
			}
			if len(plans) == 0 {
				fmt.Println("No entries need splitting.")
				return nil
			}
			for _, plan := range plans {
				renderSplitPlan(os.Stdout, plan, loc)
				fmt.Println()
			}
			fmt.Println(styleHint.Render("Dry run: no changes were made."))
			return nil
		}

		if splitInteractive {
			a.Split.Confirm = func(plan domain.SplitPlan) bool {
				renderSplitPlan(os.Stdout, plan, loc)
				return confirm("Apply this split?")
			}
		}
		res, err := a.Split.Run(cmd.Context(), from, to, loc, maxDurationSec, splitNoDelete)
		if err != nil {
			return err
		}
		if len(res.Plans) == 0 {
			fmt.Println("No entries need splitting.")
			return nil
		}
		fmt.Println(styleSuccess.Render(fmt.Sprintf("Split %d entr(ies) into %d new entries.", res.Applied, res.EntriesCreated)))
		if res.SkippedByUser > 0 {
			fmt.Printf("Skipped %d entr(ies) on request.\n", res.SkippedByUser)
		}
		if res.Failed > 0 {
			fmt.Println(styleError.Render(fmt.Sprintf("%d split(s) failed; originals were kept.", res.Failed)))
		}
		return nil
	},
}

func init() {
	splitCmd.Flags().IntVar(&splitDays, "days", 7, "number of days to look back")
	splitCmd.Flags().StringVar(&splitFrom, "from", "", "window start (RFC3339 or YYYY-MM-DD, overrides --days)")
	splitCmd.Flags().StringVar(&splitTo, "to", "", "window end (RFC3339 or YYYY-MM-DD, default now)")
	splitCmd.Flags().Int64Var(&splitMaxHours, "max-hours", 24, "maximum entry duration in hours before splitting")
	splitCmd.Flags().BoolVar(&splitDryRun, "dry-run", false, "show planned splits without applying them")
	splitCmd.Flags().BoolVar(&splitInteractive, "interactive", false, "confirm each split before applying")
	splitCmd.Flags().BoolVar(&splitNoDelete, "no-delete", false, "keep original entries after splitting")
}

package cli

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"toggl-tidy/internal/domain"
	"toggl-tidy/internal/export"
	"toggl-tidy/internal/tagging"
)

var (
	autotagDays          int
	autotagFrom          string
	autotagTo            string
	autotagMappingFile   string
	autotagCreateMapping bool
	autotagDryRun        bool
	autotagInteractive   bool
	autotagAllEntries    bool
	autotagMinDuration   int64
)

var autotagCmd = &cobra.Command{
	Use:   "autotag",
	Short: "Tag entries by matching descriptions against a mapping file",
	Long: `Autotag matches entry descriptions against the patterns in a JSON
mapping file (tag -> list of patterns) and applies the matching tags.
Patterns match as whole words; patterns containing regex metacharacters
are also tried as regular expressions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, _, loc, err := setup()
		if err != nil {
			return err
		}
		if autotagCreateMapping {
			if err := a.AutoTag.CreateMappingTemplate(cmd.Context(), autotagMappingFile); err != nil {
				return err
			}
			fmt.Println(styleSuccess.Render("Created mapping template in " + autotagMappingFile))
			fmt.Println(styleHint.Render("Edit this file to add description patterns for each tag."))
			return nil
		}

		mappings, err := tagging.LoadMappings(autotagMappingFile)
		if err != nil {
			return err
		}
		if len(mappings) == 0 {
			return fmt.Errorf("no tag mappings in %s; use --create-mapping to create a template", autotagMappingFile)
		}
		from, to, err := resolveWindow(autotagDays, autotagFrom, autotagTo)
		if err != nil {
			return err
		}

		if autotagInteractive {
			a.AutoTag.ConfirmTags = func(e domain.TimeEntry, tags []string) []string {
				fmt.Printf("\n%s %s - %s (%s)\n",
					styleHeading.Render("Entry:"),
					e.Start.In(loc).Format(timeFormat),
					orNoDescription(e.Description),
					export.FormatDuration(e.DurationSec()),
				)
				if e.Tagged() {
					fmt.Printf("%s %s\n", styleHeading.Render("Existing tags:"), strings.Join(e.Tags, ", "))
				}
				fmt.Printf("%s %s\n", styleHeading.Render("Tags to apply:"), strings.Join(tags, ", "))
				return promptTags(tags)
			}
		}
		if autotagDryRun {
			fmt.Println(styleWarning.Render("DRY RUN: no changes will be made"))
		}

		stats, err := a.AutoTag.Run(cmd.Context(), from, to, mappings, autotagMinDuration*60, autotagAllEntries, autotagDryRun)
		if err != nil {
			return err
		}
		printTagStats(stats.Processed, stats.Tagged, stats.Skipped, stats.Errors, stats.TagsApplied)
		return nil
	},
}

// promptTags asks y/n/edit; edit lets the user type a comma-separated
// replacement list. Nil means skip the entry.
func promptTags(tags []string) []string {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Apply these tags? (y/n/edit): ")
	line, err := reader.ReadString('\n')
	if err != nil {
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return tags
	case "edit":
		fmt.Print("Enter comma-separated tags: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil
		}
		var edited []string
		for _, t := range strings.Split(line, ",") {
			if t = strings.TrimSpace(t); t != "" {
				edited = append(edited, t)
			}
		}
		return edited
	default:
		return nil
	}
}

func printTagStats(processed, tagged, skipped, errs int, applied map[string]int) {
	fmt.Println(styleHeading.Render("\n=== Tagging Statistics ==="))
	fmt.Printf("Entries processed: %d\n", processed)
	fmt.Printf("Entries tagged: %d\n", tagged)
	fmt.Printf("Entries skipped: %d\n", skipped)
	fmt.Printf("Errors: %d\n", errs)
	if len(applied) == 0 {
		return
	}
	fmt.Println(styleHeading.Render("Tags applied:"))
	tags := make([]string, 0, len(applied))
	for t := range applied {
		tags = append(tags, t)
	}
	sort.Slice(tags, func(i, j int) bool {
		if applied[tags[i]] != applied[tags[j]] {
			return applied[tags[i]] > applied[tags[j]]
		}
		return tags[i] < tags[j]
	})
	for _, t := range tags {
		fmt.Printf("  %s: %d\n", t, applied[t])
	}
}

func init() {
	autotagCmd.Flags().IntVar(&autotagDays, "days", 7, "number of days to look back")
	autotagCmd.Flags().StringVar(&autotagFrom, "from", "", "window start (RFC3339 or YYYY-MM-DD, overrides --days)")
	autotagCmd.Flags().StringVar(&autotagTo, "to", "", "window end (RFC3339 or YYYY-MM-DD, default now)")
	autotagCmd.Flags().StringVar(&autotagMappingFile, "mapping-file", "tag_mappings.json", "JSON file mapping tags to description patterns")
	autotagCmd.Flags().BoolVar(&autotagCreateMapping, "create-mapping", false, "create a mapping template from the workspace's tags and exit")
	autotagCmd.Flags().BoolVar(&autotagDryRun, "dry-run", false, "show what would be tagged without making changes")
	autotagCmd.Flags().BoolVar(&autotagInteractive, "interactive", false, "confirm each tag assignment before applying")
	autotagCmd.Flags().BoolVar(&autotagAllEntries, "all-entries", false, "process entries that already have tags as well")
	autotagCmd.Flags().Int64Var(&autotagMinDuration, "min-duration", 0, "minimum duration in minutes to include")
}

package cli

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"toggl-tidy/internal/domain"
	"toggl-tidy/internal/export"
)

const timeFormat = "2006-01-02 15:04"

// renderEntryTable prints entries as an aligned table in local time.
func renderEntryTable(w io.Writer, entries []domain.TimeEntry, loc *time.Location, projects map[int64]string) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tDESCRIPTION\tDURATION\tPROJECT")
	var totalSec int64
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			e.Start.In(loc).Format(timeFormat),
			orNoDescription(e.Description),
			export.FormatDuration(e.DurationSec()),
			projectLabel(e.ProjectID, projects),
		)
		totalSec += e.DurationSec()
	}
	tw.Flush()
	fmt.Fprintln(w, styleSuccess.Render(fmt.Sprintf("Total: %d entries, %s", len(entries), export.FormatDuration(totalSec))))
}

func renderEntryCSV(w io.Writer, entries []domain.TimeEntry, loc *time.Location, projects map[int64]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "description", "duration", "project"}); err != nil {
		return err
	}
	for _, e := range entries {
		rec := []string{
			e.Start.In(loc).Format(timeFormat),
			orNoDescription(e.Description),
			export.FormatDuration(e.DurationSec()),
			projectLabel(e.ProjectID, projects),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func renderEntryJSON(w io.Writer, entries []domain.TimeEntry, loc *time.Location, projects map[int64]string) error {
	type entryJSON struct {
		ID          int64  `json:"id"`
		Description string `json:"description"`
		Start       string `json:"start"`
		Stop        string `json:"stop,omitempty"`
		DurationSec int64  `json:"duration"`
		Duration    string `json:"duration_formatted"`
		ProjectID   *int64 `json:"project_id,omitempty"`
		Project     string `json:"project,omitempty"`
	}
	out := make([]entryJSON, 0, len(entries))
	for _, e := range entries {
		j := entryJSON{
			ID:          e.ID,
			Description: orNoDescription(e.Description),
			Start:       e.Start.In(loc).Format(time.RFC3339),
			DurationSec: e.DurationSec(),
			Duration:    export.FormatDuration(e.DurationSec()),
			ProjectID:   e.ProjectID,
		}
		if e.ProjectID != nil {
			j.Project = projectLabel(e.ProjectID, projects)
		}
		if e.Stop != nil {
			j.Stop = e.Stop.In(loc).Format(time.RFC3339)
		}
		out = append(out, j)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// renderOverlapReport prints pairs grouped by day, earlier entry first.
func renderOverlapReport(w io.Writer, report domain.OverlapReport, loc *time.Location, projects map[int64]string) {
	for _, day := range report.Days() {
		pairs := report.ByDay[day]
		fmt.Fprintln(w, styleHeading.Render(fmt.Sprintf("%s — %d overlap(s)", day, len(pairs))))
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, p := range pairs {
			fmt.Fprintf(tw, "  %d\t%s\t%s\t%s - %s\t%s\n",
				p.First.ID,
				orNoDescription(p.First.Description),
				projectLabel(p.First.ProjectID, projects),
				p.First.Start.In(loc).Format("15:04"),
				p.First.Stop.In(loc).Format("15:04"),
				styleWarning.Render("overlaps "+export.FormatDuration(p.OverlapSec)),
			)
			fmt.Fprintf(tw, "  %d\t%s\t%s\t%s - %s\t\n",
				p.Second.ID,
				orNoDescription(p.Second.Description),
				projectLabel(p.Second.ProjectID, projects),
				p.Second.Start.In(loc).Format("15:04"),
				p.Second.Stop.In(loc).Format("15:04"),
			)
			fmt.Fprintln(tw, "\t\t\t\t")
		}
		tw.Flush()
	}
}

// renderSplitPlan previews how one entry would be replaced.
func renderSplitPlan(w io.Writer, plan domain.SplitPlan, loc *time.Location) {
	o := plan.Original
	fmt.Fprintln(w, styleHeading.Render("Original entry:"))
	fmt.Fprintf(w, "  %s  %s - %s  (%s)\n",
		orNoDescription(o.Description),
		o.Start.In(loc).Format(timeFormat),
		o.Stop.In(loc).Format(timeFormat),
		export.FormatDuration(o.DurationSec()),
	)
	fmt.Fprintln(w, styleHeading.Render("Will be split into:"))
	for _, r := range plan.Replacements {
		fmt.Fprintf(w, "  %s  %s - %s  (%s)\n",
			r.Description,
			r.Start.In(loc).Format(timeFormat),
			r.Stop.In(loc).Format(timeFormat),
			export.FormatDuration(r.DurationSec()),
		)
	}
	if !plan.DeleteOriginal {
		fmt.Fprintln(w, styleHint.Render("  (original entry will be kept)"))
	}
}

// confirm asks a y/n question on the terminal.
func confirm(prompt string) bool {
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Printf("%s (y/n): ", prompt)
		line, err := reader.ReadString('\n')
		if err != nil {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		}
		fmt.Println("Please enter 'y' or 'n'.")
	}
}

func orNoDescription(s string) string {
	if s == "" {
		return "No description"
	}
	return s
}

// projectLabel resolves a project ID to its name, falling back to the
// bare ID when the lookup map is missing or incomplete.
func projectLabel(id *int64, projects map[int64]string) string {
	if id == nil {
		return "No project"
	}
	if name, ok := projects[*id]; ok {
		return name
	}
	return strconv.FormatInt(*id, 10)
}

// Package export assembles a JSON backup document from fetched entries.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"toggl-tidy/internal/domain"
	"toggl-tidy/internal/ports"
)

// maxBatchDays caps a single list call; the API declines very wide windows.
const maxBatchDays = 30

// Document is the exported file layout.
type Document struct {
	Metadata Metadata `json:"metadata"`
	Entries  []Entry  `json:"entries"`
}

type Metadata struct {
	ExportedAt time.Time `json:"exported_at"`
	EntryCount int       `json:"entry_count"`
}

// Entry is the serialized form of a time entry.
type Entry struct {
	ID                int64      `json:"id"`
	Description       string     `json:"description"`
	ProjectID         *int64     `json:"project_id,omitempty"`
	Tags              []string   `json:"tags,omitempty"`
	Billable          bool       `json:"billable"`
	Start             time.Time  `json:"start"`
	Stop              *time.Time `json:"stop,omitempty"`
	DurationSec       int64      `json:"duration"`
	DurationFormatted string     `json:"duration_formatted"`
}

// FetchBatches lists entries for [from, to] in windows of at most 30 days.
// Future boundaries are clamped to now; a window entirely in the future
// yields nothing.
func FetchBatches(ctx context.Context, client ports.TogglClient, from, to time.Time) ([]domain.TimeEntry, error) {
	now := time.Now()
	if to.After(now) {
		to = now
	}
	if from.After(now) {
		return nil, nil
	}

	var all []domain.TimeEntry
	for cur := from; cur.Before(to); {
		end := cur.AddDate(0, 0, maxBatchDays)
		if end.After(to) {
			end = to
		}
		batch, err := client.ListTimeEntries(ctx, cur, end)
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		cur = end
	}
	return all, nil
}

// Build filters and orders entries into an export document. Running
// entries are dropped unless includeRunning; entries shorter than
// minDurationSec are dropped.
func Build(entries []domain.TimeEntry, minDurationSec int64, includeRunning bool, now time.Time) Document {
	kept := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Running() && !includeRunning {
			continue
		}
		if !e.Running() && e.DurationSec() < minDurationSec {
			continue
		}
		kept = append(kept, Entry{
			ID:                e.ID,
			Description:       e.Description,
			ProjectID:         e.ProjectID,
			Tags:              e.Tags,
			Billable:          e.Billable,
			Start:             e.Start,
			Stop:              e.Stop,
			DurationSec:       e.DurationSec(),
			DurationFormatted: FormatDuration(e.DurationSec()),
		})
	}
	sort.Slice(kept, func(i, j int) bool { return kept[i].Start.Before(kept[j].Start) })
	return Document{
		Metadata: Metadata{ExportedAt: now, EntryCount: len(kept)},
		Entries:  kept,
	}
}

// WriteFile writes the document as JSON, optionally indented.
func WriteFile(doc Document, path string, pretty bool) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(doc)
}

// FormatDuration renders seconds as "2h 30m", or "45m" under an hour.
func FormatDuration(seconds int64) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

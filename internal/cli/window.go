package cli

import (
	"fmt"
	"time"
)

// resolveWindow turns the shared lookback flags into an absolute window.
// --from/--to accept RFC3339 or YYYY-MM-DD and override the --days
// lookback; a date-only --to is treated as inclusive.
func resolveWindow(days int, fromFlag, toFlag string) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	to, err := parseBoundaryFlag(toFlag, now, true)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --to: %w", err)
	}
	from, err := parseBoundaryFlag(fromFlag, to.AddDate(0, 0, -days), false)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --from: %w", err)
	}
	if !from.Before(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("window start %s is not before end %s", from.Format(time.RFC3339), to.Format(time.RFC3339))
	}
	return from, to, nil
}

func parseBoundaryFlag(val string, fallback time.Time, endInclusive bool) (time.Time, error) {
	if val == "" {
		return fallback, nil
	}
	if t, err := time.Parse(time.RFC3339, val); err == nil {
		return t, nil
	}
	if d, err := time.Parse("2006-01-02", val); err == nil {
		if endInclusive {
			d = d.Add(24 * time.Hour)
		}
		return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, fmt.Errorf("expected RFC3339 or YYYY-MM-DD, got %q", val)
}

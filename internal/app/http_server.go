package app

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"toggl-tidy/internal/export"
	"toggl-tidy/internal/usecase"
)

// HTTPServer returns a configured http.Server exposing the read-only
// reports as JSON. Call ListenAndServe on it in a goroutine and Shutdown
// it on exit.
func (a *App) HTTPServer(addr string, loc *time.Location) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// /overlaps?from=...&to=...&min_overlap=60
	// from/to accept RFC3339 or YYYY-MM-DD; default window is the last 7 days.
	mux.HandleFunc("/overlaps", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		from, to := windowParams(r, 7*24*time.Hour)
		minOverlap := int64(60)
		if v := r.URL.Query().Get("min_overlap"); v != "" {
			if n, err := strconv.ParseInt(v, 10, 64); err == nil && n >= 0 {
				minOverlap = n
			}
		}
		report, err := a.Overlaps.Run(r.Context(), from, to, loc, minOverlap)
		if err != nil {
			writeError(w, err)
			return
		}
		type pairJSON struct {
			FirstID     int64  `json:"first_id"`
			FirstDesc   string `json:"first_description"`
			SecondID    int64  `json:"second_id"`
			SecondDesc  string `json:"second_description"`
			OverlapSec  int64  `json:"overlap_sec"`
			OverlapText string `json:"overlap"`
		}
		byDay := make(map[string][]pairJSON, len(report.ByDay))
		for day, pairs := range report.ByDay {
			for _, p := range pairs {
				byDay[day] = append(byDay[day], pairJSON{
					FirstID:     p.First.ID,
					FirstDesc:   p.First.Description,
					SecondID:    p.Second.ID,
					SecondDesc:  p.Second.Description,
					OverlapSec:  p.OverlapSec,
					OverlapText: export.FormatDuration(p.OverlapSec),
				})
			}
		}
		writeJSON(w, map[string]any{
			"from":   from.Format(time.RFC3339),
			"to":     to.Format(time.RFC3339),
			"pairs":  report.Total(),
			"by_day": byDay,
		})
	})

	// /untagged?from=...&to=...&min_duration=0&sort=date
	mux.HandleFunc("/untagged", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		from, to := windowParams(r, 7*24*time.Hour)
		var minDuration int64
		if v := r.URL.Query().Get("min_duration"); v != "" {
			if n, err := strconv.ParseInt(v, 10, 64); err == nil && n >= 0 {
				minDuration = n * 60
			}
		}
		sortBy := r.URL.Query().Get("sort")
		if sortBy == "" {
			sortBy = usecase.SortByDate
		}
		entries, err := a.Untagged.Run(r.Context(), from, to, minDuration, sortBy)
		if err != nil {
			writeError(w, err)
			return
		}
		type entryJSON struct {
			ID          int64      `json:"id"`
			Description string     `json:"description"`
			Start       time.Time  `json:"start"`
			Stop        *time.Time `json:"stop,omitempty"`
			Duration    string     `json:"duration"`
		}
		out := make([]entryJSON, 0, len(entries))
		for _, e := range entries {
			out = append(out, entryJSON{
				ID:          e.ID,
				Description: e.Description,
				Start:       e.Start.In(loc),
				Stop:        e.Stop,
				Duration:    export.FormatDuration(e.DurationSec()),
			})
		}
		writeJSON(w, map[string]any{
			"from":    from.Format(time.RFC3339),
			"to":      to.Format(time.RFC3339),
			"count":   len(out),
			"entries": out,
		})
	})

	srv := &http.Server{Addr: addr, Handler: loggingMiddleware(a.log, mux)}
	a.log.Info("http report server configured", slog.String("addr", addr))
	return srv
}

// loggingMiddleware provides basic request logging.
func loggingMiddleware(log *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Info("http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote", r.RemoteAddr),
			slog.Duration("dur", time.Since(start)),
		)
	})
}

// windowParams parses from/to query params that may be RFC3339 or
// YYYY-MM-DD; date-only end values are treated as inclusive. Invalid or
// missing values fall back to [now-lookback, now].
func windowParams(r *http.Request, lookback time.Duration) (time.Time, time.Time) {
	q := r.URL.Query()
	now := time.Now().UTC()
	to := parseBoundary(q.Get("to"), now, true)
	from := parseBoundary(q.Get("from"), to.Add(-lookback), false)
	return from, to
}

func parseBoundary(val string, fallback time.Time, endInclusive bool) time.Time {
	if val == "" {
		return fallback
	}
	if t, err := time.Parse(time.RFC3339, val); err == nil {
		return t
	}
	if d, err := time.Parse("2006-01-02", val); err == nil {
		if endInclusive {
			d = d.Add(24 * time.Hour)
		}
		return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	}
	return fallback
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(map[string]any{"status": "error", "error": err.Error()})
}

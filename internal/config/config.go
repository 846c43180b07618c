package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds environment-driven configuration.
type Config struct {
	Toggl struct {
		APIToken    string
		WorkspaceID int64
		BaseURL     string // default: https://api.track.toggl.com
	}
	MySQL struct {
		DSN string // optional archive sink, e.g. user:pass@tcp(host:3306)/db?parseTime=true&multiStatements=true
	}
	Defaults struct {
		Timezone string // IANA zone for day boundaries, e.g. Asia/Shanghai
	}
}

// Load reads configuration from the environment. A .env file in the
// working directory, when present, overrides existing variables, matching
// the behavior users of these tools expect.
func Load() (Config, error) {
	var cfg Config

	// Missing .env is fine; only the variables matter.
	_ = godotenv.Overload()

	cfg.Toggl.APIToken = os.Getenv("TOGGL_API_TOKEN")
	if cfg.Toggl.APIToken == "" {
		return cfg, errors.New("TOGGL_API_TOKEN is required")
	}
	if ws := os.Getenv("TOGGL_WORKSPACE_ID"); ws != "" {
		v, err := strconv.ParseInt(ws, 10, 64)
		if err != nil {
			return cfg, errors.New("TOGGL_WORKSPACE_ID must be an integer")
		}
		cfg.Toggl.WorkspaceID = v
	}
	cfg.Toggl.BaseURL = os.Getenv("TOGGL_BASE_URL")
	if cfg.Toggl.BaseURL == "" {
		cfg.Toggl.BaseURL = "https://api.track.toggl.com"
	}

	cfg.MySQL.DSN = os.Getenv("MYSQL_DSN")

	cfg.Defaults.Timezone = os.Getenv("TIDY_TZ")
	if cfg.Defaults.Timezone == "" {
		cfg.Defaults.Timezone = "Asia/Shanghai"
	}

	return cfg, nil
}

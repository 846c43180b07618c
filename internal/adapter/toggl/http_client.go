package toggl

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"toggl-tidy/internal/domain"
)

// Client implements ports.TogglClient using the Toggl Track API v9.
type Client struct {
	baseURL   string
	apiToken  string
	http      *http.Client
	workspace int64
	log       *slog.Logger
}

func NewClient(baseURL, apiToken string, workspaceID int64, log *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = "https://api.track.toggl.com"
	}
	return &Client{
		baseURL:   baseURL,
		apiToken:  apiToken,
		workspace: workspaceID,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

// ListTimeEntries fetches entries in [from, to].
// Toggl v9: GET /api/v9/me/time_entries?start_date=...&end_date=...
func (c *Client) ListTimeEntries(ctx context.Context, from, to time.Time) ([]domain.TimeEntry, error) {
	u, err := c.endpoint("/api/v9/me/time_entries")
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("start_date", from.Format(time.RFC3339))
	q.Set("end_date", to.Format(time.RFC3339))
	u.RawQuery = q.Encode()

	var raw []rawTimeEntry
	if err := c.do(ctx, http.MethodGet, u.String(), nil, &raw); err != nil {
		return nil, err
	}
	out := make([]domain.TimeEntry, 0, len(raw))
	for _, r := range raw {
		out = append(out, r.toDomain())
	}
	return out, nil
}

// ListProjects fetches projects accessible to the configured token.
// If a workspace ID is configured, it scopes the request to that workspace.
func (c *Client) ListProjects(ctx context.Context) ([]domain.Project, error) {
	path := "/api/v9/me/projects"
	if c.workspace != 0 {
		path = fmt.Sprintf("/api/v9/workspaces/%d/projects", c.workspace)
	}
	u, err := c.endpoint(path)
	if err != nil {
		return nil, err
	}
	var raw []rawProject
	if err := c.do(ctx, http.MethodGet, u.String(), nil, &raw); err != nil {
		return nil, err
	}
	out := make([]domain.Project, 0, len(raw))
	for _, p := range raw {
		var clientID *int64
		if p.ClientID != nil {
			id := *p.ClientID
			clientID = &id
		}
		out = append(out, domain.Project{
			ID:          p.ID,
			WorkspaceID: p.WorkspaceID,
			Name:        p.Name,
			Active:      p.Active,
			Color:       p.Color,
			ClientID:    clientID,
			At:          p.At,
		})
	}
	return out, nil
}

// ListTags fetches the workspace's tag names, used for mapping templates.
func (c *Client) ListTags(ctx context.Context) ([]string, error) {
	ws, err := c.workspaceID(ctx)
	if err != nil {
		return nil, err
	}
	u, err := c.endpoint(fmt.Sprintf("/api/v9/workspaces/%d/tags", ws))
	if err != nil {
		return nil, err
	}
	var raw []struct {
		Name string `json:"name"`
	}
	if err := c.do(ctx, http.MethodGet, u.String(), nil, &raw); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(raw))
	for _, t := range raw {
		if t.Name != "" {
			names = append(names, t.Name)
		}
	}
	return names, nil
}

// CreateTimeEntry creates a completed entry and returns it with the ID the
// service assigned. Non-2xx responses become *domain.RemoteWriteError.
func (c *Client) CreateTimeEntry(ctx context.Context, entry domain.TimeEntry) (domain.TimeEntry, error) {
	if entry.Stop == nil {
		return domain.TimeEntry{}, errors.New("toggl: refusing to create entry without stop time")
	}
	ws, err := c.workspaceID(ctx)
	if err != nil {
		return domain.TimeEntry{}, err
	}
	u, err := c.endpoint(fmt.Sprintf("/api/v9/workspaces/%d/time_entries", ws))
	if err != nil {
		return domain.TimeEntry{}, err
	}
	body := map[string]any{
		"created_with": "toggl-tidy",
		"description":  entry.Description,
		"start":        entry.Start.UTC().Format(time.RFC3339),
		"stop":         entry.Stop.UTC().Format(time.RFC3339),
		"duration":     entry.DurationSec(),
		"billable":     entry.Billable,
		"wid":          ws,
	}
	if len(entry.Tags) > 0 {
		body["tags"] = entry.Tags
	}
	if entry.ProjectID != nil {
		body["project_id"] = *entry.ProjectID
	}
	var raw rawTimeEntry
	if err := c.write(ctx, http.MethodPost, u.String(), "create time entry", body, &raw); err != nil {
		return domain.TimeEntry{}, err
	}
	return raw.toDomain(), nil
}

// DeleteTimeEntry deletes an entry by ID.
func (c *Client) DeleteTimeEntry(ctx context.Context, id int64) error {
	ws, err := c.workspaceID(ctx)
	if err != nil {
		return err
	}
	u, err := c.endpoint(fmt.Sprintf("/api/v9/workspaces/%d/time_entries/%d", ws, id))
	if err != nil {
		return err
	}
	return c.write(ctx, http.MethodDelete, u.String(), "delete time entry", nil, nil)
}

// UpdateEntryTags adds tags to an existing entry.
func (c *Client) UpdateEntryTags(ctx context.Context, id int64, tags []string) error {
	ws, err := c.workspaceID(ctx)
	if err != nil {
		return err
	}
	u, err := c.endpoint(fmt.Sprintf("/api/v9/workspaces/%d/time_entries/%d", ws, id))
	if err != nil {
		return err
	}
	body := map[string]any{
		"tags":       tags,
		"tag_action": "add",
	}
	return c.write(ctx, http.MethodPut, u.String(), "update entry tags", body, nil)
}

// workspaceID returns the configured workspace or, once, resolves the
// account's default workspace via GET /api/v9/me.
func (c *Client) workspaceID(ctx context.Context) (int64, error) {
	if c.workspace != 0 {
		return c.workspace, nil
	}
	u, err := c.endpoint("/api/v9/me")
	if err != nil {
		return 0, err
	}
	var me struct {
		DefaultWorkspaceID int64 `json:"default_workspace_id"`
	}
	if err := c.do(ctx, http.MethodGet, u.String(), nil, &me); err != nil {
		return 0, err
	}
	if me.DefaultWorkspaceID == 0 {
		return 0, errors.New("toggl: could not determine workspace ID")
	}
	c.workspace = me.DefaultWorkspaceID
	c.log.Debug("resolved default workspace", slog.Int64("workspace_id", c.workspace))
	return c.workspace, nil
}

func (c *Client) endpoint(path string) (*url.URL, error) {
	if c.apiToken == "" {
		return nil, errors.New("missing api token")
	}
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, err
	}
	u.Path = path
	return u, nil
}

// do performs a read request and decodes the JSON response into out.
func (c *Client) do(ctx context.Context, method, url string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return err
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("toggl: unexpected status %d: %s", resp.StatusCode, string(b))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// write performs a mutating request. Non-2xx responses become
// *domain.RemoteWriteError so callers can apply the safe-degraded policy.
func (c *Client) write(ctx context.Context, method, url, op string, body map[string]any, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	c.authorize(req)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &domain.RemoteWriteError{Op: op, Status: resp.StatusCode, Body: string(b)}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Basic auth: token:api_token
func (c *Client) authorize(req *http.Request) {
	auth := base64.StdEncoding.EncodeToString([]byte(fmt.Sprintf("%s:%s", c.apiToken, "api_token")))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Accept", "application/json")
}

// rawTimeEntry mirrors the JSON from Toggl v9.
type rawTimeEntry struct {
	ID          int64      `json:"id"`
	Description string     `json:"description"`
	ProjectID   *int64     `json:"project_id"`
	WorkspaceID *int64     `json:"workspace_id"`
	Tags        []string   `json:"tags"`
	Billable    bool       `json:"billable"`
	Start       time.Time  `json:"start"`
	Stop        *time.Time `json:"stop"`
}

func (r rawTimeEntry) toDomain() domain.TimeEntry {
	var stopPtr *time.Time
	if r.Stop != nil {
		stop := *r.Stop
		stopPtr = &stop
	}
	var projectPtr *int64
	if r.ProjectID != nil {
		p := *r.ProjectID
		projectPtr = &p
	}
	var wsPtr *int64
	if r.WorkspaceID != nil {
		w := *r.WorkspaceID
		wsPtr = &w
	}
	return domain.TimeEntry{
		ID:          r.ID,
		Description: r.Description,
		ProjectID:   projectPtr,
		WorkspaceID: wsPtr,
		Tags:        r.Tags,
		Billable:    r.Billable,
		Start:       r.Start,
		Stop:        stopPtr,
	}
}

type rawProject struct {
	ID          int64     `json:"id"`
	WorkspaceID int64     `json:"workspace_id"`
	Name        string    `json:"name"`
	Active      bool      `json:"active"`
	Color       string    `json:"color"`
	ClientID    *int64    `json:"client_id"`
	At          time.Time `json:"at"`
}

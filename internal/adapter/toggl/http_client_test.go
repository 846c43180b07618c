package toggl

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toggl-tidy/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func basicAuth(token string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(token+":api_token"))
}

func TestListTimeEntries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v9/me/time_entries", r.URL.Path)
		assert.Equal(t, basicAuth("secret"), r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.URL.Query().Get("start_date"))
		assert.NotEmpty(t, r.URL.Query().Get("end_date"))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[
			{"id": 1, "description": "write report", "tags": ["work"], "billable": true,
			 "start": "2023-01-15T09:00:00Z", "stop": "2023-01-15T10:30:00Z", "project_id": 7, "workspace_id": 42},
			{"id": 2, "description": "ongoing", "start": "2023-01-15T11:00:00Z", "stop": null}
		]`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", 42, testLogger())
	entries, err := c.ListTimeEntries(context.Background(), time.Now().Add(-time.Hour), time.Now())
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, int64(1), entries[0].ID)
	assert.Equal(t, "write report", entries[0].Description)
	assert.Equal(t, []string{"work"}, entries[0].Tags)
	assert.True(t, entries[0].Billable)
	require.NotNil(t, entries[0].ProjectID)
	assert.Equal(t, int64(7), *entries[0].ProjectID)
	assert.Equal(t, int64(5400), entries[0].DurationSec())
	assert.True(t, entries[1].Running())
}

func TestListProjects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v9/workspaces/42/projects", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[
			{"id": 7, "workspace_id": 42, "name": "Internal", "active": true, "color": "#abc", "client_id": 3, "at": "2023-01-01T00:00:00Z"},
			{"id": 8, "workspace_id": 42, "name": "Archived", "active": false, "at": "2022-06-01T00:00:00Z"}
		]`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", 42, testLogger())
	projects, err := c.ListProjects(context.Background())
	require.NoError(t, err)

	require.Len(t, projects, 2)
	assert.Equal(t, "Internal", projects[0].Name)
	assert.True(t, projects[0].Active)
	require.NotNil(t, projects[0].ClientID)
	assert.Equal(t, int64(3), *projects[0].ClientID)
	assert.Nil(t, projects[1].ClientID)
}

func TestListProjects_DefaultWorkspaceScope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v9/me/projects", r.URL.Path)
		io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", 0, testLogger())
	projects, err := c.ListProjects(context.Background())
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestListTimeEntries_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", 42, testLogger())
	_, err := c.ListTimeEntries(context.Background(), time.Now().Add(-time.Hour), time.Now())
	assert.ErrorContains(t, err, "unexpected status 500")
}

func TestCreateTimeEntry(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v9/workspaces/42/time_entries", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		io.WriteString(w, `{"id": 999, "description": "night shift", "start": "2023-01-15T22:00:00Z", "stop": "2023-01-15T23:59:59Z"}`)
	}))
	defer srv.Close()

	start := time.Date(2023, 1, 15, 22, 0, 0, 0, time.UTC)
	stop := time.Date(2023, 1, 15, 23, 59, 59, 0, time.UTC)
	project := int64(7)
	entry := domain.TimeEntry{
		Description: "night shift",
		Tags:        []string{"work"},
		ProjectID:   &project,
		Start:       start,
		Stop:        &stop,
	}

	c := NewClient(srv.URL, "secret", 42, testLogger())
	created, err := c.CreateTimeEntry(context.Background(), entry)
	require.NoError(t, err)

	assert.Equal(t, int64(999), created.ID)
	assert.Equal(t, "toggl-tidy", got["created_with"])
	assert.Equal(t, "2023-01-15T22:00:00Z", got["start"])
	assert.Equal(t, "2023-01-15T23:59:59Z", got["stop"])
	assert.Equal(t, float64(7199), got["duration"])
	assert.Equal(t, float64(7), got["project_id"])
	assert.Equal(t, []any{"work"}, got["tags"])
}

func TestCreateTimeEntry_RefusesRunning(t *testing.T) {
	c := NewClient("http://unused", "secret", 42, testLogger())
	_, err := c.CreateTimeEntry(context.Background(), domain.TimeEntry{Start: time.Now()})
	assert.ErrorContains(t, err, "without stop time")
}

func TestCreateTimeEntry_RemoteWriteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "payload rejected", http.StatusBadRequest)
	}))
	defer srv.Close()

	stop := time.Now()
	c := NewClient(srv.URL, "secret", 42, testLogger())
	_, err := c.CreateTimeEntry(context.Background(), domain.TimeEntry{Start: stop.Add(-time.Hour), Stop: &stop})

	var rwe *domain.RemoteWriteError
	require.ErrorAs(t, err, &rwe)
	assert.Equal(t, "create time entry", rwe.Op)
	assert.Equal(t, http.StatusBadRequest, rwe.Status)
	assert.Contains(t, rwe.Body, "payload rejected")
}

func TestDeleteTimeEntry(t *testing.T) {
	deleted := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v9/workspaces/42/time_entries/123", r.URL.Path)
		deleted = true
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", 42, testLogger())
	require.NoError(t, c.DeleteTimeEntry(context.Background(), 123))
	assert.True(t, deleted)
}

func TestUpdateEntryTags(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v9/workspaces/42/time_entries/123", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", 42, testLogger())
	require.NoError(t, c.UpdateEntryTags(context.Background(), 123, []string{"meeting"}))
	assert.Equal(t, []any{"meeting"}, got["tags"])
	assert.Equal(t, "add", got["tag_action"])
}

func TestWorkspaceIDResolvedOnce(t *testing.T) {
	meCalls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v9/me":
			meCalls++
			io.WriteString(w, `{"default_workspace_id": 42}`)
		case "/api/v9/workspaces/42/tags":
			io.WriteString(w, `[{"name": "meeting"}, {"name": ""}]`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", 0, testLogger())
	tags, err := c.ListTags(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"meeting"}, tags)

	_, err = c.ListTags(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, meCalls)
}

func TestMissingToken(t *testing.T) {
	c := NewClient("http://unused", "", 42, testLogger())
	_, err := c.ListTimeEntries(context.Background(), time.Now().Add(-time.Hour), time.Now())
	assert.ErrorContains(t, err, "missing api token")
}

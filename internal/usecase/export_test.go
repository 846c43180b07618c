package usecase

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toggl-tidy/internal/domain"
)

func TestExportRun_ArchivesEntriesAndProjects(t *testing.T) {
	start := time.Date(2023, 1, 15, 9, 0, 0, 0, time.UTC)
	fake := newFakeToggl(
		completed(1, "write report", start, time.Hour),
		completed(2, "daily standup", start.Add(2*time.Hour), 30*time.Minute),
	)
	fake.projects = []domain.Project{
		{ID: 7, WorkspaceID: 42, Name: "Internal", Active: true},
	}
	sink := &fakeSink{}
	uc := &ExportUseCase{Log: discardLogger(), Toggl: fake, Sink: sink}

	opts := ExportOptions{OutputFile: filepath.Join(t.TempDir(), "export.json")}
	n, err := uc.Run(context.Background(), start.Add(-time.Hour), start.Add(4*time.Hour), opts)
	require.NoError(t, err)

	assert.Equal(t, 2, n)
	assert.Len(t, sink.entries, 2)
	require.Len(t, sink.projects, 1)
	assert.Equal(t, "Internal", sink.projects[0].Name)
}

func TestExportRun_NoSink(t *testing.T) {
	start := time.Date(2023, 1, 15, 9, 0, 0, 0, time.UTC)
	fake := newFakeToggl(completed(1, "write report", start, time.Hour))
	uc := &ExportUseCase{Log: discardLogger(), Toggl: fake}

	opts := ExportOptions{OutputFile: filepath.Join(t.TempDir(), "export.json")}
	n, err := uc.Run(context.Background(), start.Add(-time.Hour), start.Add(4*time.Hour), opts)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

package usecase

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toggl-tidy/internal/domain"
	"toggl-tidy/internal/tagging"
)

var testMappings = tagging.Mappings{
	"meeting": {"standup", "sync"},
	"food":    {"lunch", "dinner"},
}

func TestAutoTagRun_TagsMatchingEntries(t *testing.T) {
	start := time.Date(2023, 1, 15, 9, 0, 0, 0, time.UTC)
	fake := newFakeToggl(
		completed(1, "daily standup", start, 30*time.Minute),
		completed(2, "write report", start.Add(time.Hour), time.Hour),
		completed(3, "lunch with team", start.Add(3*time.Hour), time.Hour),
	)
	uc := &AutoTagUseCase{Log: discardLogger(), Toggl: fake}

	stats, err := uc.Run(context.Background(), start, start.Add(8*time.Hour), testMappings, 0, false, false)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Processed)
	assert.Equal(t, 2, stats.Tagged)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, []string{"meeting"}, fake.tagged[1])
	assert.Equal(t, []string{"food"}, fake.tagged[3])
	assert.Equal(t, map[string]int{"meeting": 1, "food": 1}, stats.TagsApplied)
}

func TestAutoTagRun_SkipsAlreadyTagged(t *testing.T) {
	start := time.Date(2023, 1, 15, 9, 0, 0, 0, time.UTC)
	fake := newFakeToggl(completed(1, "daily standup", start, 30*time.Minute, "meeting"))
	uc := &AutoTagUseCase{Log: discardLogger(), Toggl: fake}

	stats, err := uc.Run(context.Background(), start, start.Add(time.Hour), testMappings, 0, false, false)
	require.NoError(t, err)

	assert.Zero(t, stats.Tagged)
	assert.Equal(t, 1, stats.Skipped)
	assert.Empty(t, fake.tagged)
}

func TestAutoTagRun_AllEntriesRetagsTagged(t *testing.T) {
	start := time.Date(2023, 1, 15, 9, 0, 0, 0, time.UTC)
	fake := newFakeToggl(completed(1, "daily standup", start, 30*time.Minute, "old"))
	uc := &AutoTagUseCase{Log: discardLogger(), Toggl: fake}

	stats, err := uc.Run(context.Background(), start, start.Add(time.Hour), testMappings, 0, true, false)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Tagged)
	assert.Equal(t, []string{"meeting"}, fake.tagged[1])
}

func TestAutoTagRun_DryRunWritesNothing(t *testing.T) {
	start := time.Date(2023, 1, 15, 9, 0, 0, 0, time.UTC)
	fake := newFakeToggl(completed(1, "daily standup", start, 30*time.Minute))
	uc := &AutoTagUseCase{Log: discardLogger(), Toggl: fake}

	stats, err := uc.Run(context.Background(), start, start.Add(time.Hour), testMappings, 0, false, true)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Tagged)
	assert.Empty(t, fake.tagged)
}

func TestAutoTagRun_SkipsRunningEntries(t *testing.T) {
	start := time.Date(2023, 1, 15, 9, 0, 0, 0, time.UTC)
	running := domain.TimeEntry{ID: 1, Description: "daily standup", Start: start}
	fake := newFakeToggl(running)
	uc := &AutoTagUseCase{Log: discardLogger(), Toggl: fake}

	stats, err := uc.Run(context.Background(), start, start.Add(time.Hour), testMappings, 0, false, false)
	require.NoError(t, err)

	assert.Zero(t, stats.Tagged)
	assert.Equal(t, 1, stats.Skipped)
	assert.Empty(t, fake.tagged)
}

func TestAutoTagRun_MinDurationFilters(t *testing.T) {
	start := time.Date(2023, 1, 15, 9, 0, 0, 0, time.UTC)
	fake := newFakeToggl(completed(1, "daily standup", start, 2*time.Minute))
	uc := &AutoTagUseCase{Log: discardLogger(), Toggl: fake}

	stats, err := uc.Run(context.Background(), start, start.Add(time.Hour), testMappings, 300, false, false)
	require.NoError(t, err)

	assert.Zero(t, stats.Tagged)
	assert.Equal(t, 1, stats.Skipped)
}

func TestAutoTagRun_ConfirmRewritesAndSkips(t *testing.T) {
	start := time.Date(2023, 1, 15, 9, 0, 0, 0, time.UTC)
	fake := newFakeToggl(
		completed(1, "daily standup", start, 30*time.Minute),
		completed(2, "lunch", start.Add(time.Hour), time.Hour),
	)
	uc := &AutoTagUseCase{
		Log:   discardLogger(),
		Toggl: fake,
		ConfirmTags: func(e domain.TimeEntry, tags []string) []string {
			if e.ID == 2 {
				return nil
			}
			return []string{"edited"}
		},
	}

	stats, err := uc.Run(context.Background(), start, start.Add(3*time.Hour), testMappings, 0, false, false)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Tagged)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, []string{"edited"}, fake.tagged[1])
}

func TestAutoTagRun_UpdateErrorCounted(t *testing.T) {
	start := time.Date(2023, 1, 15, 9, 0, 0, 0, time.UTC)
	fake := newFakeToggl(completed(1, "daily standup", start, 30*time.Minute))
	fake.updateErr = errors.New("backend unavailable")
	uc := &AutoTagUseCase{Log: discardLogger(), Toggl: fake}

	stats, err := uc.Run(context.Background(), start, start.Add(time.Hour), testMappings, 0, false, false)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Errors)
	assert.Zero(t, stats.Tagged)
}

func TestCreateMappingTemplate(t *testing.T) {
	fake := newFakeToggl()
	fake.tags = []string{"meeting", "food"}
	uc := &AutoTagUseCase{Log: discardLogger(), Toggl: fake}

	path := filepath.Join(t.TempDir(), "mappings.json")
	require.NoError(t, uc.CreateMappingTemplate(context.Background(), path))

	m, err := tagging.LoadMappings(path)
	require.NoError(t, err)
	assert.Len(t, m, 2)
	assert.Contains(t, m, "meeting")
}

func TestCreateMappingTemplate_NoTags(t *testing.T) {
	fake := newFakeToggl()
	uc := &AutoTagUseCase{Log: discardLogger(), Toggl: fake}

	err := uc.CreateMappingTemplate(context.Background(), filepath.Join(t.TempDir(), "m.json"))
	assert.Error(t, err)
}

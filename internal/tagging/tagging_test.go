package tagging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch_WholeWordOnly(t *testing.T) {
	mappings := Mappings{"Food": {"eat"}}

	tests := []struct {
		name        string
		description string
		want        []string
	}{
		{"whole word matches", "Let's eat lunch", []string{"Food"}},
		{"substring does not match", "eating lunch", nil},
		{"case insensitive", "EAT something", []string{"Food"}},
		{"word at end", "time to eat", []string{"Food"}},
		{"empty description", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(tt.description, mappings))
		})
	}
}

func TestMatch_TagReportedOnce(t *testing.T) {
	mappings := Mappings{"Work": {"meeting", "standup"}}
	got := Match("standup meeting with team", mappings)
	assert.Equal(t, []string{"Work"}, got)
}

func TestMatch_MultipleTagsSorted(t *testing.T) {
	mappings := Mappings{
		"Work":     {"meeting"},
		"Planning": {"roadmap"},
	}
	got := Match("roadmap meeting", mappings)
	assert.Equal(t, []string{"Planning", "Work"}, got)
}

func TestMatch_RegexPattern(t *testing.T) {
	mappings := Mappings{"Dev": {`fix(ing|ed)?`}}
	assert.Equal(t, []string{"Dev"}, Match("fixed the build", mappings))
	assert.Equal(t, []string{"Dev"}, Match("fixing tests", mappings))
	assert.Empty(t, Match("update docs", mappings))
}

func TestMatch_InvalidRegexSkipped(t *testing.T) {
	mappings := Mappings{"Broken": {`([`}, "Good": {"lunch"}}
	assert.Equal(t, []string{"Good"}, Match("lunch break", mappings))
}

func TestLoadMappings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tag_mappings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"Work": ["meeting", "coding"], "Personal": ["gym"]}`), 0o644))

	m, err := LoadMappings(path)
	require.NoError(t, err)
	assert.Equal(t, Mappings{"Work": {"meeting", "coding"}, "Personal": {"gym"}}, m)
}

func TestLoadMappings_Errors(t *testing.T) {
	_, err := LoadMappings(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))
	_, err = LoadMappings(path)
	assert.Error(t, err)
}

func TestWriteTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "template.json")
	require.NoError(t, WriteTemplate(path, []string{"Work", "Personal"}))

	m, err := LoadMappings(path)
	require.NoError(t, err)
	assert.Equal(t, Mappings{"Work": {}, "Personal": {}}, m)
}

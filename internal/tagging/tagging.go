// Package tagging assigns tags to entries by matching description text
// against a user-maintained mapping file of tag → patterns.
package tagging

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
)

// Mappings maps a tag name to the description patterns that should
// receive it. Patterns are matched case-insensitively as whole words; a
// pattern containing regex metacharacters is additionally tried as a raw
// regular expression.
type Mappings map[string][]string

// LoadMappings reads a JSON mapping file.
func LoadMappings(path string) (Mappings, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading mapping file: %w", err)
	}
	var m Mappings
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("parsing mapping file %s: %w", path, err)
	}
	return m, nil
}

// WriteTemplate writes a mapping file skeleton with an empty pattern list
// per tag, for the user to fill in.
func WriteTemplate(path string, tags []string) error {
	m := make(Mappings, len(tags))
	for _, t := range tags {
		m[t] = []string{}
	}
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}

// Match returns the tags whose patterns match the description, each tag
// at most once, sorted by name for deterministic output.
func Match(description string, mappings Mappings) []string {
	if description == "" {
		return nil
	}
	desc := strings.ToLower(description)

	tags := make([]string, 0, len(mappings))
	for tag := range mappings {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	var matched []string
	for _, tag := range tags {
		for _, pattern := range mappings[tag] {
			if matchesPattern(desc, strings.ToLower(pattern)) {
				matched = append(matched, tag)
				break
			}
		}
	}
	return matched
}

func matchesPattern(desc, pattern string) bool {
	if pattern == "" {
		return false
	}
	word, err := regexp.Compile(`\b` + regexp.QuoteMeta(pattern) + `\b`)
	if err == nil && word.MatchString(desc) {
		return true
	}
	// Patterns with metacharacters also get a shot as raw regexes;
	// invalid ones are skipped.
	if strings.ContainsAny(pattern, `.*+?^$()[]{}|\`) {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return false
		}
		return re.MatchString(desc)
	}
	return false
}

// Package filematch classifies changed file paths against glob patterns.
package filematch

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	errUtils "github.com/cloudposse/pathfilter/errors"
	log "github.com/cloudposse/pathfilter/pkg/logger"
	"github.com/cloudposse/pathfilter/pkg/schema"
)

// Matcher filters file paths against a fixed set of glob patterns.
// Patterns follow shell glob rules with doublestar extensions: `*` stops at
// path separators, `**` crosses them, `?` matches a single non-separator
// character and `[...]` character classes behave as in POSIX globs. Matching
// is case-sensitive and anchored to the whole path.
type Matcher struct {
	patterns []string
	exclude  bool
}

// NewMatcher validates the patterns and returns a Matcher.
// Patterns are trimmed and entries that are empty after trimming are skipped.
// The first malformed pattern aborts construction with a PatternError.
func NewMatcher(patterns []string, exclude bool) (*Matcher, error) {
	valid := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		if !doublestar.ValidatePattern(pattern) {
			return nil, errUtils.PatternError{Pattern: pattern}
		}
		valid = append(valid, pattern)
	}

	return &Matcher{
		patterns: valid,
		exclude:  exclude,
	}, nil
}

// Filter classifies the given paths and returns the matched subset, keeping
// the input order and dropping duplicate paths. In exclude mode the selection
// inverts: the result contains the paths that match no pattern.
func (m *Matcher) Filter(paths []string) schema.MatchResult {
	matched := make([]string, 0, len(paths))
	seen := make(map[string]struct{}, len(paths))

	for _, path := range paths {
		if path == "" {
			continue
		}
		path = filepath.ToSlash(path)
		if _, ok := seen[path]; ok {
			continue
		}
		seen[path] = struct{}{}

		if m.selected(path) != m.exclude {
			matched = append(matched, path)
		}
	}

	result := schema.NewMatchResult(matched)
	log.Debug("Filtered changed files",
		"paths", len(paths),
		"patterns", len(m.patterns),
		"exclude", m.exclude,
		"matched", result.Count)

	return result
}

// selected reports whether the path matches at least one pattern.
func (m *Matcher) selected(path string) bool {
	for _, pattern := range m.patterns {
		matched, err := doublestar.Match(pattern, path)
		if err == nil && matched {
			return true
		}
	}
	return false
}

// FilterPaths validates the patterns and filters the paths in one call.
func FilterPaths(paths, patterns []string, exclude bool) (schema.MatchResult, error) {
	matcher, err := NewMatcher(patterns, exclude)
	if err != nil {
		return schema.MatchResult{}, err
	}
	return matcher.Filter(paths), nil
}

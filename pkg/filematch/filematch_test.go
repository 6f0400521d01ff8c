package filematch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errUtils "github.com/cloudposse/pathfilter/errors"
)

func TestNewMatcher(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		exclude  bool
		wantErr  bool
	}{
		{
			name:     "valid patterns",
			patterns: []string{"src/**", "*.md", "docs/?.txt", "lib/[abc].go"},
		},
		{
			name:     "empty pattern list",
			patterns: []string{},
		},
		{
			name:     "blank entries are skipped",
			patterns: []string{"", "   ", "\t", "src/**"},
		},
		{
			name:     "duplicates are permitted",
			patterns: []string{"src/**", "src/**"},
		},
		{
			name:     "unterminated character class",
			patterns: []string{"["},
			wantErr:  true,
		},
		{
			name:     "bad pattern among good ones",
			patterns: []string{"src/**", "a[b"},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matcher, err := NewMatcher(tt.patterns, tt.exclude)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, errUtils.ErrInvalidGlob)
				assert.Nil(t, matcher)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, matcher)
		})
	}
}

func TestNewMatcherReportsOffendingPattern(t *testing.T) {
	_, err := NewMatcher([]string{"src/**", "a[b"}, false)
	require.Error(t, err)

	var patternErr errUtils.PatternError
	require.ErrorAs(t, err, &patternErr)
	assert.Equal(t, "a[b", patternErr.Pattern)
}

func TestFilter(t *testing.T) {
	changed := []string{"src/a.py", "src/sub/b.py", "docs/readme.md"}

	tests := []struct {
		name     string
		paths    []string
		patterns []string
		exclude  bool
		want     []string
	}{
		{
			name:     "recursive wildcard selects whole subtree",
			paths:    changed,
			patterns: []string{"src/**"},
			want:     []string{"src/a.py", "src/sub/b.py"},
		},
		{
			name:     "exclude inverts the selection",
			paths:    changed,
			patterns: []string{"docs/**"},
			exclude:  true,
			want:     []string{"src/a.py", "src/sub/b.py"},
		},
		{
			name:     "single star stops at path separators",
			paths:    changed,
			patterns: []string{"src/*"},
			want:     []string{"src/a.py"},
		},
		{
			name:     "star does not match across segments from the root",
			paths:    changed,
			patterns: []string{"*.py"},
			want:     []string{},
		},
		{
			name:     "question mark matches one character",
			paths:    []string{"src/a.py", "src/ab.py"},
			patterns: []string{"src/?.py"},
			want:     []string{"src/a.py"},
		},
		{
			name:     "character class",
			paths:    []string{"src/a.py", "src/b.py", "src/c.py"},
			patterns: []string{"src/[ab].py"},
			want:     []string{"src/a.py", "src/b.py"},
		},
		{
			name:     "matching is case-sensitive",
			paths:    []string{"README.md", "readme.md"},
			patterns: []string{"readme.md"},
			want:     []string{"readme.md"},
		},
		{
			name:     "patterns are anchored, not substrings",
			paths:    []string{"src/a.py"},
			patterns: []string{"a.py"},
			want:     []string{},
		},
		{
			name:     "multiple patterns are ORed",
			paths:    changed,
			patterns: []string{"docs/**", "src/*.py"},
			want:     []string{"src/a.py", "docs/readme.md"},
		},
		{
			name:     "input order is preserved",
			paths:    []string{"z.txt", "a.txt", "m.txt"},
			patterns: []string{"*.txt"},
			want:     []string{"z.txt", "a.txt", "m.txt"},
		},
		{
			name:     "duplicate paths are dropped",
			paths:    []string{"src/a.py", "src/a.py", "src/sub/b.py"},
			patterns: []string{"src/**"},
			want:     []string{"src/a.py", "src/sub/b.py"},
		},
		{
			name:     "empty paths yield empty result",
			paths:    []string{},
			patterns: []string{"src/**"},
			want:     []string{},
		},
		{
			name:     "empty paths yield empty result in exclude mode",
			paths:    []string{},
			patterns: []string{"src/**"},
			exclude:  true,
			want:     []string{},
		},
		{
			name:     "empty patterns select nothing",
			paths:    changed,
			patterns: []string{},
			want:     []string{},
		},
		{
			name:     "empty patterns in exclude mode keep every path",
			paths:    changed,
			patterns: []string{},
			exclude:  true,
			want:     changed,
		},
		{
			name:     "blank pattern entries are ignored",
			paths:    changed,
			patterns: []string{"", "src/**", "  "},
			want:     []string{"src/a.py", "src/sub/b.py"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matcher, err := NewMatcher(tt.patterns, tt.exclude)
			require.NoError(t, err)

			result := matcher.Filter(tt.paths)

			assert.Equal(t, tt.want, result.MatchedPaths)
			assert.Equal(t, len(tt.want), result.Count)
			assert.Equal(t, len(tt.want) > 0, result.AnyMatched)
		})
	}
}

func TestFilterComplement(t *testing.T) {
	// Include and exclude modes must partition the deduplicated input for any
	// fixed pattern set.
	paths := []string{"src/a.py", "src/sub/b.py", "docs/readme.md", "Makefile", "pkg/x/y.go"}
	patterns := []string{"src/**", "*.md"}

	include, err := FilterPaths(paths, patterns, false)
	require.NoError(t, err)
	exclude, err := FilterPaths(paths, patterns, true)
	require.NoError(t, err)

	assert.Equal(t, len(paths), include.Count+exclude.Count)
	for _, path := range include.MatchedPaths {
		assert.NotContains(t, exclude.MatchedPaths, path)
	}
}

func TestFilterIdempotence(t *testing.T) {
	paths := []string{"src/a.py", "src/sub/b.py", "docs/readme.md"}

	matcher, err := NewMatcher([]string{"src/**"}, false)
	require.NoError(t, err)

	once := matcher.Filter(paths)
	twice := matcher.Filter(once.MatchedPaths)

	assert.Equal(t, once, twice)
}

func TestFilterPaths(t *testing.T) {
	t.Run("filters in one call", func(t *testing.T) {
		result, err := FilterPaths([]string{"src/a.py", "docs/readme.md"}, []string{"src/**"}, false)
		require.NoError(t, err)
		assert.Equal(t, []string{"src/a.py"}, result.MatchedPaths)
		assert.Equal(t, 1, result.Count)
		assert.True(t, result.AnyMatched)
	})

	t.Run("propagates pattern errors", func(t *testing.T) {
		_, err := FilterPaths([]string{"src/a.py"}, []string{"["}, false)
		assert.ErrorIs(t, err, errUtils.ErrInvalidGlob)
	})
}

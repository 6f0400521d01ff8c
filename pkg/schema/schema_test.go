package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMatchResult(t *testing.T) {
	tests := []struct {
		name       string
		paths      []string
		count      int
		anyMatched bool
	}{
		{
			name:       "nil paths",
			paths:      nil,
			count:      0,
			anyMatched: false,
		},
		{
			name:       "empty paths",
			paths:      []string{},
			count:      0,
			anyMatched: false,
		},
		{
			name:       "matched paths",
			paths:      []string{"src/main.go", "src/util.go"},
			count:      2,
			anyMatched: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewMatchResult(tt.paths)

			assert.Equal(t, tt.count, result.Count)
			assert.Equal(t, tt.anyMatched, result.AnyMatched)
			assert.NotNil(t, result.MatchedPaths, "MatchedPaths should never be nil")
			assert.Len(t, result.MatchedPaths, tt.count)
		})
	}
}

func TestPaths(t *testing.T) {
	changes := []FileChange{
		{Path: "src/a.go"},
		{Path: "docs/readme.md"},
	}

	assert.Equal(t, []string{"src/a.go", "docs/readme.md"}, Paths(changes))
	assert.Empty(t, Paths(nil))
}

// Package schema defines the value objects exchanged between the change-set
// resolver, the pattern matcher, and the CLI driver.
package schema

// FileChange is a single changed file between two Git references.
// Paths are repository-relative and forward-slash separated.
type FileChange struct {
	Path string `yaml:"path" json:"path"`
}

// MatchResult is the outcome of filtering a change set against glob patterns.
// MatchedPaths preserves the relative order of the input paths and contains
// no duplicates.
type MatchResult struct {
	MatchedPaths []string `yaml:"matched_paths" json:"matched_paths"`
	Count        int      `yaml:"count" json:"count"`
	AnyMatched   bool     `yaml:"any_matched" json:"any_matched"`
}

// NewMatchResult builds a MatchResult from the matched paths and computes the
// derived fields.
func NewMatchResult(matchedPaths []string) MatchResult {
	if matchedPaths == nil {
		matchedPaths = []string{}
	}
	return MatchResult{
		MatchedPaths: matchedPaths,
		Count:        len(matchedPaths),
		AnyMatched:   len(matchedPaths) > 0,
	}
}

// Paths returns the path strings of the given file changes, preserving order.
func Paths(changes []FileChange) []string {
	paths := make([]string, 0, len(changes))
	for _, change := range changes {
		paths = append(paths, change.Path)
	}
	return paths
}

// Package changeset resolves the set of files changed between two git
// references, either through the GitHub API or from a local clone.
package changeset

import (
	"context"

	"github.com/cloudposse/pathfilter/pkg/schema"
)

// Resolver produces the list of files changed between two references.
// Implementations return paths in diff order with duplicates removed.
type Resolver interface {
	Resolve(ctx context.Context, baseRef, headRef string) ([]schema.FileChange, error)
}

// dedupeChanges drops empty and repeated paths, keeping the first occurrence
// of each path in order.
func dedupeChanges(paths []string) []schema.FileChange {
	seen := make(map[string]struct{}, len(paths))
	changes := make([]schema.FileChange, 0, len(paths))

	for _, path := range paths {
		if path == "" {
			continue
		}
		if _, ok := seen[path]; ok {
			continue
		}
		seen[path] = struct{}{}
		changes = append(changes, schema.FileChange{Path: path})
	}

	return changes
}

package changeset

import (
	"context"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	errUtils "github.com/cloudposse/pathfilter/errors"
	log "github.com/cloudposse/pathfilter/pkg/logger"
	"github.com/cloudposse/pathfilter/pkg/schema"
)

// GitResolver resolves change sets from a local clone without touching the
// network. Revisions are anything `git rev-parse` accepts: branch names,
// tags, hashes, HEAD~2.
type GitResolver struct {
	repoPath string
}

// NewGitResolver creates a resolver reading the repository that contains
// repoPath. The path may point anywhere inside the working tree.
func NewGitResolver(repoPath string) *GitResolver {
	return &GitResolver{repoPath: repoPath}
}

// Resolve diffs the trees of baseRef and headRef and returns the changed
// files. Renames report the new path only, matching the GitHub compare API.
func (r *GitResolver) Resolve(ctx context.Context, baseRef, headRef string) ([]schema.FileChange, error) {
	repo, err := git.PlainOpenWithOptions(r.repoPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf(errUtils.ErrWrapFormat, errUtils.ErrTransportFailure, err)
	}

	baseTree, err := treeForRevision(repo, baseRef)
	if err != nil {
		return nil, err
	}

	headTree, err := treeForRevision(repo, headRef)
	if err != nil {
		return nil, err
	}

	log.Debug("Finding difference between the base and head trees", "base", baseRef, "head", headRef)

	treeChanges, err := object.DiffTreeWithOptions(ctx, baseTree, headTree, object.DefaultDiffTreeOptions)
	if err != nil {
		return nil, fmt.Errorf(errUtils.ErrWrapFormat, errUtils.ErrTransportFailure, err)
	}

	var paths []string

	for _, change := range treeChanges {
		switch {
		case change.To.Name != "":
			paths = append(paths, change.To.Name)
		case change.From.Name != "":
			paths = append(paths, change.From.Name)
		}
	}

	changes := dedupeChanges(paths)
	log.Debug("Resolved change set from local repository", "base", baseRef, "head", headRef, "files", len(changes))

	return changes, nil
}

// treeForRevision resolves a revision to its commit tree.
func treeForRevision(repo *git.Repository, revision string) (*object.Tree, error) {
	log.Debug("Resolving revision", "revision", revision)

	hash, err := repo.ResolveRevision(plumbing.Revision(revision))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errUtils.ErrRefNotFound, revision)
	}

	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errUtils.ErrRefNotFound, revision)
	}

	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf(errUtils.ErrWrapFormat, errUtils.ErrTransportFailure, err)
	}

	return tree, nil
}

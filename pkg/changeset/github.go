package changeset

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/go-github/v59/github"

	errUtils "github.com/cloudposse/pathfilter/errors"
	gh "github.com/cloudposse/pathfilter/pkg/github"
	log "github.com/cloudposse/pathfilter/pkg/logger"
	"github.com/cloudposse/pathfilter/pkg/schema"
)

const (
	// GitHub API pagination size.
	perPage = 100

	// maxPages caps pagination as a guard against runaway loops.
	maxPages = 1000

	// HTTP statuses the compare API returns for unresolvable refs.
	statusNotFound      = 404
	statusUnprocessable = 422

	logFieldOwner = "owner"
	logFieldRepo  = "repo"
)

// RepositoriesService is the slice of the GitHub API used to compare two refs.
// This allows for mocking in tests.
type RepositoriesService interface {
	CompareCommits(ctx context.Context, owner, repo, base, head string, opts *github.ListOptions) (*github.CommitsComparison, *github.Response, error)
}

// PullRequestsService is the slice of the GitHub API used to list the files
// changed by a pull request.
type PullRequestsService interface {
	ListFiles(ctx context.Context, owner, repo string, number int, opts *github.ListOptions) ([]*github.CommitFile, *github.Response, error)
}

// GitHubResolver resolves change sets through the GitHub REST API.
type GitHubResolver struct {
	repositories RepositoriesService
	pullRequests PullRequestsService
	owner        string
	repo         string
}

// NewGitHubResolver creates a resolver for owner/repo, authenticated with the
// given token. An empty token yields anonymous API access.
func NewGitHubResolver(ctx context.Context, token, owner, repo string) *GitHubResolver {
	client := gh.NewClientWithToken(ctx, token)
	return &GitHubResolver{
		repositories: client.Repositories,
		pullRequests: client.PullRequests,
		owner:        owner,
		repo:         repo,
	}
}

// NewGitHubResolverWithServices creates a resolver with custom services.
// This is primarily used for testing with mock services.
func NewGitHubResolverWithServices(repositories RepositoriesService, pullRequests PullRequestsService, owner, repo string) *GitHubResolver {
	return &GitHubResolver{
		repositories: repositories,
		pullRequests: pullRequests,
		owner:        owner,
		repo:         repo,
	}
}

// Resolve compares base...head and returns the changed files in diff order.
func (r *GitHubResolver) Resolve(ctx context.Context, baseRef, headRef string) ([]schema.FileChange, error) {
	log.Debug("Comparing refs through the GitHub API",
		logFieldOwner, r.owner,
		logFieldRepo, r.repo,
		"base", baseRef,
		"head", headRef,
	)

	var paths []string
	page := 1

	for {
		opts := &github.ListOptions{Page: page, PerPage: perPage}

		comparison, resp, err := r.repositories.CompareCommits(ctx, r.owner, r.repo, baseRef, headRef, opts)
		if err != nil {
			return nil, normalizeAPIError(err, fmt.Sprintf("%s...%s", baseRef, headRef))
		}

		for _, file := range comparison.Files {
			paths = append(paths, file.GetFilename())
		}

		if resp.NextPage == 0 {
			break
		}
		page = resp.NextPage

		// Safety check to avoid infinite loops
		if page > maxPages {
			log.Warn("Reached maximum page limit while comparing refs", "page", page)
			break
		}
	}

	changes := dedupeChanges(paths)
	log.Debug("Resolved change set", "base", baseRef, "head", headRef, "files", len(changes))

	return changes, nil
}

// ResolvePullRequest returns the files changed by a pull request, in the
// order the API reports them.
func (r *GitHubResolver) ResolvePullRequest(ctx context.Context, number int) ([]schema.FileChange, error) {
	log.Debug("Listing pull request files", logFieldOwner, r.owner, logFieldRepo, r.repo, "pr", number)

	var paths []string
	page := 1

	for {
		opts := &github.ListOptions{Page: page, PerPage: perPage}

		files, resp, err := r.pullRequests.ListFiles(ctx, r.owner, r.repo, number, opts)
		if err != nil {
			return nil, normalizeAPIError(err, fmt.Sprintf("pull request #%d", number))
		}

		for _, file := range files {
			paths = append(paths, file.GetFilename())
		}

		if resp.NextPage == 0 {
			break
		}
		page = resp.NextPage

		// Safety check to avoid infinite loops
		if page > maxPages {
			log.Warn("Reached maximum page limit while listing pull request files", "page", page)
			break
		}
	}

	changes := dedupeChanges(paths)
	log.Debug("Resolved pull request change set", "pr", number, "files", len(changes))

	return changes, nil
}

// normalizeAPIError maps GitHub API failures onto the resolution error
// taxonomy: unresolvable refs surface as ErrRefNotFound, everything else as
// ErrTransportFailure.
func normalizeAPIError(err error, subject string) error {
	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil {
		statusCode := errResp.Response.StatusCode
		if statusCode == statusNotFound || statusCode == statusUnprocessable {
			return fmt.Errorf("%w: %s", errUtils.ErrRefNotFound, subject)
		}
	}

	return fmt.Errorf(errUtils.ErrWrapFormat, errUtils.ErrTransportFailure, err)
}

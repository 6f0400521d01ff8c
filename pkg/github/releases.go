package github

import (
	"context"

	"github.com/google/go-github/v59/github"

	log "github.com/cloudposse/pathfilter/pkg/logger"
)

// RepositoriesService is the slice of the GitHub API used to read releases.
// This allows for mocking in tests.
type RepositoriesService interface {
	GetLatestRelease(ctx context.Context, owner, repo string) (*github.RepositoryRelease, *github.Response, error)
}

// GetLatestRelease returns the latest release tag for a GitHub repository.
// An empty tag with a nil error means the repository has no releases.
func GetLatestRelease(owner string, repo string) (string, error) {
	ctx := context.Background()
	return getLatestRelease(ctx, NewClient(ctx).Repositories, owner, repo)
}

func getLatestRelease(ctx context.Context, repos RepositoriesService, owner, repo string) (string, error) {
	log.Debug("Fetching latest release from GitHub API", logFieldOwner, owner, logFieldRepo, repo)

	release, resp, err := repos.GetLatestRelease(ctx, owner, repo)
	if err != nil {
		return "", handleGitHubAPIError(err, resp)
	}

	if release == nil || release.TagName == nil {
		return "", nil
	}

	return *release.TagName, nil
}

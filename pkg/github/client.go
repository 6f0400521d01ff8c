package github

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/go-github/v59/github"
	"golang.org/x/oauth2"

	errUtils "github.com/cloudposse/pathfilter/errors"
	log "github.com/cloudposse/pathfilter/pkg/logger"
)

const (
	logFieldOwner = "owner"
	logFieldRepo  = "repo"
)

// NewClient returns a GitHub API client, authenticated when a token is
// available in the environment and anonymous otherwise.
// PATHFILTER_GITHUB_TOKEN takes precedence over GITHUB_TOKEN.
func NewClient(ctx context.Context) *github.Client {
	token, source := getGitHubToken()
	if token == "" {
		log.Debug("No GitHub token found, using unauthenticated client")
		return github.NewClient(nil)
	}

	log.Debug("Authenticating GitHub client", "source", source)
	return NewClientWithToken(ctx, token)
}

// NewClientWithToken returns a GitHub API client authenticated with the given
// token. An empty token yields an anonymous client.
func NewClientWithToken(ctx context.Context, token string) *github.Client {
	if token == "" {
		return github.NewClient(nil)
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return github.NewClient(oauth2.NewClient(ctx, ts))
}

// getGitHubToken selects the GitHub token from the environment and reports
// which variable supplied it.
func getGitHubToken() (string, string) {
	if token := os.Getenv("PATHFILTER_GITHUB_TOKEN"); token != "" {
		return token, "PATHFILTER_GITHUB_TOKEN"
	}

	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return token, "GITHUB_TOKEN"
	}

	return "", ""
}

// handleGitHubAPIError normalizes go-github errors, keeping rate-limit
// failures distinguishable from other API failures.
func handleGitHubAPIError(err error, resp *github.Response) error {
	var rateLimitErr *github.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return fmt.Errorf("%w: resets at %s. Consider setting PATHFILTER_GITHUB_TOKEN or GITHUB_TOKEN for higher limits",
			errUtils.ErrGitHubRateLimitExceeded,
			rateLimitErr.Rate.Reset.Time.Format(time.RFC3339),
		)
	}

	if resp != nil {
		return fmt.Errorf("%w: %w (HTTP %d)", errUtils.ErrGitHubAPIRequest, err, resp.StatusCode)
	}

	return fmt.Errorf(errUtils.ErrWrapFormat, errUtils.ErrGitHubAPIRequest, err)
}

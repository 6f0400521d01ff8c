// Package ci detects the GitHub Actions environment and writes workflow
// outputs ($GITHUB_OUTPUT, $GITHUB_STEP_SUMMARY).
package ci

import (
	"os"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

const (
	// ProviderName is the name of the GitHub Actions provider.
	ProviderName = "github-actions"
)

// Context carries CI metadata read from GitHub Actions environment variables.
type Context struct {
	CI         bool
	Provider   string
	Repository string
	RepoOwner  string
	RepoName   string
	EventName  string
	Ref        string
	SHA        string
	BaseRef    string
	HeadRef    string
	PRNumber   int
	RunID      string
	Actor      string
}

// Detect returns true if running in GitHub Actions.
func Detect() bool {
	return os.Getenv("GITHUB_ACTIONS") == "true"
}

// NewContextFromEnv returns CI metadata from GitHub Actions environment
// variables. Outside of CI the fields are simply empty.
func NewContextFromEnv() *Context {
	ctx := &Context{
		CI:         Detect(),
		Provider:   ProviderName,
		Repository: os.Getenv("GITHUB_REPOSITORY"),
		EventName:  os.Getenv("GITHUB_EVENT_NAME"),
		Ref:        os.Getenv("GITHUB_REF"),
		SHA:        os.Getenv("GITHUB_SHA"),
		BaseRef:    os.Getenv("GITHUB_BASE_REF"),
		HeadRef:    os.Getenv("GITHUB_HEAD_REF"),
		RunID:      os.Getenv("GITHUB_RUN_ID"),
		Actor:      os.Getenv("GITHUB_ACTOR"),
	}

	// Parse owner and repo from GITHUB_REPOSITORY.
	if repo := ctx.Repository; repo != "" {
		parts := strings.SplitN(repo, "/", 2)
		if len(parts) == 2 {
			ctx.RepoOwner = parts[0]
			ctx.RepoName = parts[1]
		}
	}

	if ctx.EventName == "pull_request" || ctx.EventName == "pull_request_target" {
		ctx.PRNumber = parsePRNumber()
	}

	return ctx
}

// IsPullRequest reports whether the workflow runs for a pull request with a
// known number.
func (c *Context) IsPullRequest() bool {
	return c.PRNumber > 0
}

// parsePRNumber extracts the pull request number from the environment.
// It checks GITHUB_REF (refs/pull/<number>/merge), then GITHUB_REF_NAME
// ("123/merge"), then the event payload.
func parsePRNumber() int {
	ref := os.Getenv("GITHUB_REF")
	if strings.HasPrefix(ref, "refs/pull/") {
		parts := strings.Split(ref, "/")
		if len(parts) >= 3 {
			if number, err := strconv.Atoi(parts[2]); err == nil && number > 0 {
				return number
			}
		}
	}

	refName := os.Getenv("GITHUB_REF_NAME")
	if strings.HasSuffix(refName, "/merge") {
		numStr := strings.TrimSuffix(refName, "/merge")
		if number, err := strconv.Atoi(numStr); err == nil && number > 0 {
			return number
		}
	}

	return prNumberFromEvent(os.Getenv("GITHUB_EVENT_PATH"))
}

// prNumberFromEvent reads pull_request.number from the event payload file.
// Any read or parse failure yields 0.
func prNumberFromEvent(path string) int {
	if path == "" {
		return 0
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}

	var json = jsoniter.ConfigDefault
	var event struct {
		PullRequest struct {
			Number int `json:"number"`
		} `json:"pull_request"`
	}
	if err := json.Unmarshal(data, &event); err != nil {
		return 0
	}

	return event.PullRequest.Number
}

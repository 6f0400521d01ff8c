package errors

import (
	"errors"
	"fmt"
)

// ErrWrapFormat is the standard format for wrapping a sentinel around a cause.
const ErrWrapFormat = "%w: %w"

// Change-set resolution errors.
var (
	// ErrRefNotFound is returned when a base or head reference cannot be resolved.
	ErrRefNotFound = errors.New("reference not found")
	// ErrTransportFailure is returned when the comparison request itself fails.
	ErrTransportFailure = errors.New("comparison request failed")
)

// Pattern matching errors.
var (
	ErrInvalidGlob = errors.New("invalid glob pattern")
)

// Driver input errors.
var (
	ErrMissingPatterns   = errors.New("no file patterns provided")
	ErrMissingToken      = errors.New("no GitHub token provided")
	ErrMissingRepository = errors.New("no repository provided")
	ErrInvalidRepository = errors.New("repository must be in 'owner/name' format")
	ErrInvalidExclude    = errors.New("invalid exclude value, must be 'true' or 'false'")
	ErrInvalidFormat     = errors.New("invalid format")
)

// GitHub API errors.
var (
	ErrGitHubAPIRequest        = errors.New("GitHub API request failed")
	ErrGitHubRateLimitExceeded = errors.New("GitHub API rate limit exceeded")
)

// PatternError reports a glob pattern that failed validation.
// It unwraps to ErrInvalidGlob so callers can use errors.Is.
type PatternError struct {
	Pattern string
}

func (e PatternError) Error() string {
	return fmt.Sprintf("invalid glob pattern %q", e.Pattern)
}

func (e PatternError) Unwrap() error {
	return ErrInvalidGlob
}

// ExitCodeError carries an explicit process exit code through the error chain.
type ExitCodeError struct {
	Code int
}

func (e ExitCodeError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

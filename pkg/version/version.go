// Package version holds the version injected at build time.
package version

// Version is the semantic version of the binary.
// Overridden at build time with -ldflags "-X github.com/cloudposse/pathfilter/pkg/version.Version=...".
var Version = "dev"

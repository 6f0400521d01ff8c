package exec

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	errUtils "github.com/cloudposse/pathfilter/errors"
	"github.com/cloudposse/pathfilter/pkg/changeset"
	"github.com/cloudposse/pathfilter/pkg/ci"
	"github.com/cloudposse/pathfilter/pkg/data"
	"github.com/cloudposse/pathfilter/pkg/filematch"
	log "github.com/cloudposse/pathfilter/pkg/logger"
	"github.com/cloudposse/pathfilter/pkg/schema"
	u "github.com/cloudposse/pathfilter/pkg/utils"
)

// FilterCmdArgs holds the parsed inputs of the root `pathfilter` command.
type FilterCmdArgs struct {
	Patterns     []string
	Exclude      bool
	BaseRef      string
	HeadRef      string
	RefsExplicit bool
	Token        string
	Repo         string
	RepoPath     string
	PRNumber     int
	Format       string
	OutputFile   string
	Summary      bool
}

// githubChangeResolver resolves change sets through the GitHub API, either by
// comparing two references or by listing the files of a pull request.
// This allows for mocking in tests.
type githubChangeResolver interface {
	Resolve(ctx context.Context, baseRef, headRef string) ([]schema.FileChange, error)
	ResolvePullRequest(ctx context.Context, number int) ([]schema.FileChange, error)
}

// FilterExec executes the root `pathfilter` command.
type FilterExec interface {
	Execute(ctx context.Context, args *FilterCmdArgs) error
}

type filterExec struct {
	newGitHubResolver func(ctx context.Context, token, owner, repo string) githubChangeResolver
	newGitResolver    func(repoPath string) changeset.Resolver
	outputWriter      ci.OutputWriter
}

// NewFilterExec creates a new filter executor wired to the real resolvers and
// the CI output destination detected from the environment.
func NewFilterExec() FilterExec {
	return &filterExec{
		newGitHubResolver: func(ctx context.Context, token, owner, repo string) githubChangeResolver {
			return changeset.NewGitHubResolver(ctx, token, owner, repo)
		},
		newGitResolver: func(repoPath string) changeset.Resolver {
			return changeset.NewGitResolver(repoPath)
		},
		outputWriter: ci.NewOutputWriterFromEnv(),
	}
}

// Execute resolves the change set, filters it against the configured patterns
// and emits the workflow outputs.
func (f *filterExec) Execute(ctx context.Context, args *FilterCmdArgs) error {
	// Validate the patterns before any resolution work so a malformed glob
	// fails without a network round trip.
	matcher, err := filematch.NewMatcher(args.Patterns, args.Exclude)
	if err != nil {
		return err
	}

	changes, err := f.resolveChanges(ctx, args)
	if err != nil {
		return err
	}

	result := matcher.Filter(schema.Paths(changes))

	log.Debug("Filtered change set",
		"changed", len(changes),
		"matched", result.Count,
		"exclude", args.Exclude)

	writer := f.outputWriterFor(args)
	if err := writeOutputs(writer, &result); err != nil {
		return err
	}

	if args.Summary {
		if err := writeSummary(writer, args, &result); err != nil {
			return err
		}
	}

	return viewMatchResult(args.Format, &result)
}

// resolveChanges picks the resolver for the configured inputs. A local
// repository path wins over the API; inside a pull request event the PR file
// listing wins over a ref comparison unless the refs were set explicitly.
func (f *filterExec) resolveChanges(ctx context.Context, args *FilterCmdArgs) ([]schema.FileChange, error) {
	if args.RepoPath != "" {
		log.Debug("Resolving changes from local repository",
			"repo-path", args.RepoPath,
			"base", args.BaseRef,
			"head", args.HeadRef)
		return f.newGitResolver(args.RepoPath).Resolve(ctx, args.BaseRef, args.HeadRef)
	}

	owner, repo, err := splitRepository(args.Repo)
	if err != nil {
		return nil, err
	}

	resolver := f.newGitHubResolver(ctx, args.Token, owner, repo)

	if args.PRNumber > 0 && !args.RefsExplicit {
		log.Debug("Resolving changes from pull request",
			"repo", args.Repo,
			"pr", args.PRNumber)
		return resolver.ResolvePullRequest(ctx, args.PRNumber)
	}

	if args.HeadRef == "" {
		log.Warn("Could not determine the head reference, treating the change set as empty")
		return []schema.FileChange{}, nil
	}

	log.Debug("Comparing references",
		"repo", args.Repo,
		"base", args.BaseRef,
		"head", args.HeadRef)
	return resolver.Resolve(ctx, args.BaseRef, args.HeadRef)
}

// outputWriterFor returns the configured output destination, honoring an
// explicit `--output-file` override.
func (f *filterExec) outputWriterFor(args *FilterCmdArgs) ci.OutputWriter {
	if args.OutputFile != "" {
		return ci.NewFileOutputWriter(args.OutputFile, viper.GetString("github.step_summary"))
	}
	return f.outputWriter
}

// writeOutputs emits the `matches`, `count` and `files` workflow outputs.
func writeOutputs(writer ci.OutputWriter, result *schema.MatchResult) error {
	files, err := u.ConvertToJSON(result.MatchedPaths)
	if err != nil {
		return err
	}

	if err := writer.WriteOutput("matches", strconv.FormatBool(result.AnyMatched)); err != nil {
		return err
	}
	if err := writer.WriteOutput("count", strconv.Itoa(result.Count)); err != nil {
		return err
	}
	return writer.WriteOutput("files", files)
}

// writeSummary appends a markdown section to the workflow step summary.
func writeSummary(writer ci.OutputWriter, args *FilterCmdArgs, result *schema.MatchResult) error {
	var sb strings.Builder

	mode := "matching"
	if args.Exclude {
		mode = "not matching"
	}
	fmt.Fprintf(&sb, "### File filter\n\n%d changed file(s) %s the patterns.\n", result.Count, mode)
	if result.Count > 0 {
		sb.WriteString("\n")
		for _, path := range result.MatchedPaths {
			fmt.Fprintf(&sb, "- `%s`\n", path)
		}
	}

	return writer.WriteSummary(sb.String())
}

// viewMatchResult prints the result to stdout in the requested format.
func viewMatchResult(format string, result *schema.MatchResult) error {
	if format == FormatJSON {
		return data.WriteJSON(result)
	}

	if !result.AnyMatched {
		return data.Writeln("No files matched")
	}
	if err := data.Writef("%d file(s) matched:\n", result.Count); err != nil {
		return err
	}
	for _, path := range result.MatchedPaths {
		if err := data.Writeln("  " + path); err != nil {
			return err
		}
	}
	return nil
}

// splitRepository splits an `owner/name` slug into its parts.
func splitRepository(repository string) (string, string, error) {
	if repository == "" {
		return "", "", errUtils.ErrMissingRepository
	}
	parts := strings.SplitN(repository, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: %q", errUtils.ErrInvalidRepository, repository)
	}
	return parts[0], parts[1], nil
}

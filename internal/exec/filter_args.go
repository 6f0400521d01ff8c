package exec

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	errUtils "github.com/cloudposse/pathfilter/errors"
	"github.com/cloudposse/pathfilter/pkg/ci"
	"github.com/cloudposse/pathfilter/pkg/git"
	log "github.com/cloudposse/pathfilter/pkg/logger"
)

// Output formats for the filter result.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// defaultBaseRef is the comparison base when neither the flag nor the
// environment provides one.
const defaultBaseRef = "main"

// BindFilterEnv binds the action input variables and the ambient GitHub
// variables to their configuration keys. Called once during root command
// setup, before any flag parsing.
func BindFilterEnv() {
	_ = viper.BindEnv("input.patterns", "INPUT_PATTERNS")
	_ = viper.BindEnv("input.token", "INPUT_TOKEN")
	_ = viper.BindEnv("input.base_ref", "INPUT_BASE_REF")
	_ = viper.BindEnv("input.head_ref", "INPUT_HEAD_REF")
	_ = viper.BindEnv("input.exclude", "INPUT_EXCLUDE")
	_ = viper.BindEnv("github.token", "GITHUB_TOKEN")
	_ = viper.BindEnv("github.repository", "GITHUB_REPOSITORY")
	_ = viper.BindEnv("github.base_ref", "GITHUB_BASE_REF")
	_ = viper.BindEnv("github.head_ref", "GITHUB_HEAD_REF")
	_ = viper.BindEnv("github.sha", "GITHUB_SHA")
	_ = viper.BindEnv("github.step_summary", "GITHUB_STEP_SUMMARY")
}

// ParseFilterCliArgs parses the command-line arguments and bound environment
// variables of the root `pathfilter` command. Flags win over `INPUT_*`
// variables, which win over the ambient `GITHUB_*` variables.
func ParseFilterCliArgs(cmd *cobra.Command) (*FilterCmdArgs, error) {
	flags := cmd.Flags()

	args := &FilterCmdArgs{}
	var err error

	if args.Patterns, err = parsePatterns(flags); err != nil {
		return nil, err
	}
	if args.Exclude, err = parseExclude(flags); err != nil {
		return nil, err
	}
	if args.RepoPath, err = flags.GetString("repo-path"); err != nil {
		return nil, err
	}
	if args.Format, err = flags.GetString("format"); err != nil {
		return nil, err
	}
	if args.OutputFile, err = flags.GetString("output-file"); err != nil {
		return nil, err
	}
	if args.Summary, err = flags.GetBool("summary"); err != nil {
		return nil, err
	}

	if args.Format != FormatText && args.Format != FormatJSON {
		return nil, fmt.Errorf("%w: %q, valid formats are '%s' and '%s'",
			errUtils.ErrInvalidFormat, args.Format, FormatText, FormatJSON)
	}

	args.BaseRef, args.HeadRef, args.RefsExplicit = parseRefs(flags)
	args.Token = stringInput(flags, "token", "input.token", "github.token")
	args.Repo = stringInput(flags, "repo", "github.repository")
	args.PRNumber = ci.NewContextFromEnv().PRNumber

	if args.RepoPath != "" {
		// Local resolution needs no token and no repository slug.
		if args.HeadRef == "" {
			args.HeadRef = "HEAD"
		}
		return args, nil
	}

	if args.Token == "" {
		return nil, errUtils.ErrMissingToken
	}
	if args.Repo == "" {
		args.Repo = repoFromLocalClone()
	}
	if args.Repo == "" {
		return nil, errUtils.ErrMissingRepository
	}

	return args, nil
}

// parsePatterns splits the raw whitespace-separated pattern block.
func parsePatterns(flags *pflag.FlagSet) ([]string, error) {
	raw, err := flags.GetString("patterns")
	if err != nil {
		return nil, err
	}
	if !flags.Changed("patterns") {
		raw = viper.GetString("input.patterns")
	}

	patterns := strings.Fields(raw)
	if len(patterns) == 0 {
		return nil, errUtils.ErrMissingPatterns
	}
	return patterns, nil
}

// parseExclude reads the exclude flag, falling back to INPUT_EXCLUDE. The
// environment form must spell "true" or "false"; anything else is rejected.
func parseExclude(flags *pflag.FlagSet) (bool, error) {
	if flags.Changed("exclude") {
		return flags.GetBool("exclude")
	}

	raw := viper.GetString("input.exclude")
	if raw == "" {
		return false, nil
	}
	switch strings.ToLower(raw) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q", errUtils.ErrInvalidExclude, raw)
	}
}

// parseRefs resolves the base and head references. The returned explicit flag
// reports whether either ref came from a flag or an INPUT_* variable rather
// than from the ambient event context.
func parseRefs(flags *pflag.FlagSet) (string, string, bool) {
	baseRef := defaultBaseRef
	headRef := ""
	explicit := false

	switch {
	case flags.Changed("base-ref"):
		baseRef, _ = flags.GetString("base-ref")
		explicit = true
	case viper.GetString("input.base_ref") != "":
		baseRef = viper.GetString("input.base_ref")
		explicit = true
	case viper.GetString("github.base_ref") != "":
		baseRef = viper.GetString("github.base_ref")
	}

	switch {
	case flags.Changed("head-ref"):
		headRef, _ = flags.GetString("head-ref")
		explicit = true
	case viper.GetString("input.head_ref") != "":
		headRef = viper.GetString("input.head_ref")
		explicit = true
	case viper.GetString("github.head_ref") != "":
		headRef = viper.GetString("github.head_ref")
	default:
		headRef = viper.GetString("github.sha")
	}

	return baseRef, headRef, explicit
}

// stringInput returns the flag value when set, otherwise the first non-empty
// bound configuration key.
func stringInput(flags *pflag.FlagSet, name string, keys ...string) string {
	if flags.Changed(name) {
		value, _ := flags.GetString(name)
		return value
	}
	for _, key := range keys {
		if value := viper.GetString(key); value != "" {
			return value
		}
	}
	return ""
}

// repoFromLocalClone derives the owner/name slug from the remote of the
// enclosing repository, when there is one.
func repoFromLocalClone() string {
	localRepo, err := git.GetLocalRepo(".")
	if err != nil {
		log.Debug("No local repository detected", "error", err)
		return ""
	}

	info, err := git.GetRepoInfo(localRepo)
	if err != nil || info.RepoOwner == "" || info.RepoName == "" {
		log.Debug("Could not derive the repository from the local clone", "error", err)
		return ""
	}

	log.Debug("Derived repository from the local clone",
		"owner", info.RepoOwner,
		"repo", info.RepoName)
	return info.RepoOwner + "/" + info.RepoName
}

package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	e "github.com/cloudposse/pathfilter/internal/exec"
	"github.com/cloudposse/pathfilter/pkg/ci"
	log "github.com/cloudposse/pathfilter/pkg/logger"
)

// RootCmd runs the file filter. The tool is the action: invoking the binary
// resolves the change set, filters it against the patterns and writes the
// workflow outputs.
var RootCmd = &cobra.Command{
	Use:   "pathfilter",
	Short: "Gate CI steps on which files changed",
	Long: `Pathfilter determines whether the files changed between two Git references
match a set of glob patterns, and reports which files matched.

Inside GitHub Actions it reads the action inputs from the environment,
resolves the change set for the pull request or ref pair and appends the
'matches', 'count' and 'files' outputs to $GITHUB_OUTPUT, so subsequent
steps can be gated on them.`,
	Example: `  # Did anything under src/ change on this pull request?
  pathfilter --patterns 'src/**'

  # Compare two arbitrary refs
  pathfilter --patterns '**/*.go' --base-ref v1.0.0 --head-ref main

  # Everything except documentation, resolved from a local clone
  pathfilter --patterns 'docs/**' --exclude --repo-path .`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true, // Don't show usage on error.
	SilenceErrors: true, // Don't show errors twice.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogger(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		filterArgs, err := e.ParseFilterCliArgs(cmd)
		if err != nil {
			return err
		}
		return e.NewFilterExec().Execute(cmd.Context(), filterArgs)
	},
}

// Execute runs the root command with fang's styled help and error output.
func Execute() error {
	initConfig()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return fang.Execute(ctx, RootCmd)
}

// initConfig binds the environment variables the commands read.
func initConfig() {
	viper.SetEnvPrefix("PATHFILTER")
	viper.AutomaticEnv()

	_ = viper.BindEnv("logs.level", "PATHFILTER_LOGS_LEVEL", "LOG_LEVEL")
	e.BindFilterEnv()
}

// setupLogger configures the global logger from the logs-level flag and the
// detected color profile.
func setupLogger(cmd *cobra.Command) error {
	if flag := cmd.Root().PersistentFlags().Lookup("logs-level"); flag != nil {
		_ = viper.BindPFlag("logs.level", flag)
	}
	if flag := cmd.Root().PersistentFlags().Lookup("no-color"); flag != nil {
		_ = viper.BindPFlag("settings.no_color", flag)
	}

	logLevel, err := log.ParseLogLevel(viper.GetString("logs.level"))
	if err != nil {
		return err
	}

	profile := detectColorProfile()
	lipgloss.SetColorProfile(profile)

	logger := log.NewLogger(log.GetCharmLogger())
	logger.SetLevel(logLevel.Level())
	logger.SetColorProfile(profile)
	log.SetDefault(logger)

	log.Debug("Logger initialized", "level", logLevel, "color-profile", profile)
	return nil
}

// detectColorProfile picks the color profile for log and spinner output.
// GitHub Actions renders ANSI colors in the job log even without a TTY.
func detectColorProfile() termenv.Profile {
	if viper.GetBool("settings.no_color") || os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	if ci.Detect() {
		return termenv.ANSI
	}
	if !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return termenv.Ascii
	}
	return lipgloss.ColorProfile()
}

func init() {
	RootCmd.PersistentFlags().String("logs-level", "Info", "Logs level. Supported log levels are Trace, Debug, Info, Warning, Error, Off")
	RootCmd.PersistentFlags().Bool("no-color", false, "Disable color output")

	RootCmd.Flags().StringP("patterns", "p", "", "Whitespace-separated glob patterns to match changed files against")
	RootCmd.Flags().Bool("exclude", false, "Invert the match: report the changed files matching no pattern")
	RootCmd.Flags().String("base-ref", "", "Base reference for the comparison (default: GITHUB_BASE_REF, then 'main')")
	RootCmd.Flags().String("head-ref", "", "Head reference for the comparison (default: GITHUB_HEAD_REF, then GITHUB_SHA)")
	RootCmd.Flags().String("token", "", "GitHub token (default: INPUT_TOKEN, then GITHUB_TOKEN)")
	RootCmd.Flags().String("repo", "", "Repository in 'owner/name' form (default: GITHUB_REPOSITORY, then the local clone's remote)")
	RootCmd.Flags().String("repo-path", "", "Resolve changes from a local repository instead of the GitHub API")
	RootCmd.Flags().String("format", "text", "Output format: text or json")
	RootCmd.Flags().String("output-file", "", "File to append the workflow outputs to (default: GITHUB_OUTPUT)")
	RootCmd.Flags().Bool("summary", false, "Write a markdown section to the workflow step summary")
}

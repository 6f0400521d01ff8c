package exec

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errUtils "github.com/cloudposse/pathfilter/errors"
)

// newFilterTestCmd builds a command carrying the same flags the root command
// registers.
func newFilterTestCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "pathfilter"}
	cmd.Flags().StringP("patterns", "p", "", "")
	cmd.Flags().Bool("exclude", false, "")
	cmd.Flags().String("base-ref", "", "")
	cmd.Flags().String("head-ref", "", "")
	cmd.Flags().String("token", "", "")
	cmd.Flags().String("repo", "", "")
	cmd.Flags().String("repo-path", "", "")
	cmd.Flags().String("format", FormatText, "")
	cmd.Flags().String("output-file", "", "")
	cmd.Flags().Bool("summary", false, "")
	return cmd
}

// resetFilterEnv rebinds the configuration keys against a clean viper
// instance and blanks every variable the parser reads.
func resetFilterEnv(t *testing.T) {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)
	BindFilterEnv()

	envs := []string{
		"INPUT_PATTERNS", "INPUT_TOKEN", "INPUT_BASE_REF", "INPUT_HEAD_REF", "INPUT_EXCLUDE",
		"GITHUB_TOKEN", "GITHUB_REPOSITORY", "GITHUB_BASE_REF", "GITHUB_HEAD_REF", "GITHUB_SHA",
		"GITHUB_STEP_SUMMARY", "GITHUB_OUTPUT", "GITHUB_ACTIONS", "GITHUB_EVENT_NAME",
		"GITHUB_REF", "GITHUB_REF_NAME", "GITHUB_EVENT_PATH",
	}
	for _, env := range envs {
		t.Setenv(env, "")
	}
}

func TestParseFilterCliArgsFromActionEnv(t *testing.T) {
	resetFilterEnv(t)
	t.Setenv("INPUT_PATTERNS", "src/** docs/*.md")
	t.Setenv("GITHUB_TOKEN", "env-token")
	t.Setenv("GITHUB_REPOSITORY", "cloudposse/demo")
	t.Setenv("GITHUB_SHA", "abc123")

	args, err := ParseFilterCliArgs(newFilterTestCmd())

	require.NoError(t, err)
	assert.Equal(t, []string{"src/**", "docs/*.md"}, args.Patterns)
	assert.False(t, args.Exclude)
	assert.Equal(t, "main", args.BaseRef)
	assert.Equal(t, "abc123", args.HeadRef)
	assert.False(t, args.RefsExplicit)
	assert.Equal(t, "env-token", args.Token)
	assert.Equal(t, "cloudposse/demo", args.Repo)
	assert.Zero(t, args.PRNumber)
	assert.Equal(t, FormatText, args.Format)
}

func TestParseFilterCliArgsFlagsWinOverEnv(t *testing.T) {
	resetFilterEnv(t)
	t.Setenv("INPUT_PATTERNS", "docs/**")
	t.Setenv("INPUT_BASE_REF", "develop")
	t.Setenv("INPUT_TOKEN", "env-token")
	t.Setenv("GITHUB_REPOSITORY", "cloudposse/demo")

	cmd := newFilterTestCmd()
	require.NoError(t, cmd.Flags().Set("patterns", "src/**"))
	require.NoError(t, cmd.Flags().Set("base-ref", "release/1.0"))
	require.NoError(t, cmd.Flags().Set("token", "flag-token"))
	require.NoError(t, cmd.Flags().Set("repo", "cloudposse/other"))

	args, err := ParseFilterCliArgs(cmd)

	require.NoError(t, err)
	assert.Equal(t, []string{"src/**"}, args.Patterns)
	assert.Equal(t, "release/1.0", args.BaseRef)
	assert.True(t, args.RefsExplicit)
	assert.Equal(t, "flag-token", args.Token)
	assert.Equal(t, "cloudposse/other", args.Repo)
}

func TestParseFilterCliArgsRefFallbacks(t *testing.T) {
	tests := []struct {
		name         string
		envs         map[string]string
		baseRef      string
		headRef      string
		refsExplicit bool
	}{
		{
			name:         "input refs are explicit",
			envs:         map[string]string{"INPUT_BASE_REF": "develop", "INPUT_HEAD_REF": "topic"},
			baseRef:      "develop",
			headRef:      "topic",
			refsExplicit: true,
		},
		{
			name:    "event refs are ambient",
			envs:    map[string]string{"GITHUB_BASE_REF": "main", "GITHUB_HEAD_REF": "feature"},
			baseRef: "main",
			headRef: "feature",
		},
		{
			name:    "sha is the last head fallback",
			envs:    map[string]string{"GITHUB_SHA": "abc123"},
			baseRef: "main",
			headRef: "abc123",
		},
		{
			name:    "no head available",
			envs:    map[string]string{},
			baseRef: "main",
			headRef: "",
		},
		{
			name:         "input ref wins over event ref",
			envs:         map[string]string{"INPUT_HEAD_REF": "topic", "GITHUB_HEAD_REF": "feature", "GITHUB_SHA": "abc123"},
			baseRef:      "main",
			headRef:      "topic",
			refsExplicit: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFilterEnv(t)
			t.Setenv("INPUT_PATTERNS", "src/**")
			t.Setenv("GITHUB_TOKEN", "token")
			t.Setenv("GITHUB_REPOSITORY", "cloudposse/demo")
			for env, value := range tt.envs {
				t.Setenv(env, value)
			}

			args, err := ParseFilterCliArgs(newFilterTestCmd())

			require.NoError(t, err)
			assert.Equal(t, tt.baseRef, args.BaseRef)
			assert.Equal(t, tt.headRef, args.HeadRef)
			assert.Equal(t, tt.refsExplicit, args.RefsExplicit)
		})
	}
}

func TestParseFilterCliArgsExclude(t *testing.T) {
	tests := []struct {
		name     string
		env      string
		flag     string
		expected bool
		wantErr  bool
	}{
		{name: "unset", expected: false},
		{name: "env true", env: "true", expected: true},
		{name: "env false", env: "false", expected: false},
		{name: "env mixed case", env: "True", expected: true},
		{name: "env invalid", env: "yes", wantErr: true},
		{name: "flag wins over env", env: "yes", flag: "true", expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFilterEnv(t)
			t.Setenv("INPUT_PATTERNS", "src/**")
			t.Setenv("GITHUB_TOKEN", "token")
			t.Setenv("GITHUB_REPOSITORY", "cloudposse/demo")
			if tt.env != "" {
				t.Setenv("INPUT_EXCLUDE", tt.env)
			}

			cmd := newFilterTestCmd()
			if tt.flag != "" {
				require.NoError(t, cmd.Flags().Set("exclude", tt.flag))
			}

			args, err := ParseFilterCliArgs(cmd)

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, errUtils.ErrInvalidExclude)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, args.Exclude)
		})
	}
}

func TestParseFilterCliArgsMissingPatterns(t *testing.T) {
	tests := []struct {
		name     string
		patterns string
	}{
		{name: "unset", patterns: ""},
		{name: "whitespace only", patterns: "   \n\t "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFilterEnv(t)
			if tt.patterns != "" {
				t.Setenv("INPUT_PATTERNS", tt.patterns)
			}

			_, err := ParseFilterCliArgs(newFilterTestCmd())

			require.Error(t, err)
			assert.ErrorIs(t, err, errUtils.ErrMissingPatterns)
		})
	}
}

func TestParseFilterCliArgsMissingToken(t *testing.T) {
	resetFilterEnv(t)
	t.Setenv("INPUT_PATTERNS", "src/**")
	t.Setenv("GITHUB_REPOSITORY", "cloudposse/demo")

	_, err := ParseFilterCliArgs(newFilterTestCmd())

	require.Error(t, err)
	assert.ErrorIs(t, err, errUtils.ErrMissingToken)
}

func TestParseFilterCliArgsMissingRepository(t *testing.T) {
	resetFilterEnv(t)
	// Run outside of any repository so the local clone fallback finds nothing.
	t.Chdir(t.TempDir())
	t.Setenv("INPUT_PATTERNS", "src/**")
	t.Setenv("GITHUB_TOKEN", "token")

	_, err := ParseFilterCliArgs(newFilterTestCmd())

	require.Error(t, err)
	assert.ErrorIs(t, err, errUtils.ErrMissingRepository)
}

func TestParseFilterCliArgsInvalidFormat(t *testing.T) {
	resetFilterEnv(t)
	t.Setenv("INPUT_PATTERNS", "src/**")
	t.Setenv("GITHUB_TOKEN", "token")
	t.Setenv("GITHUB_REPOSITORY", "cloudposse/demo")

	cmd := newFilterTestCmd()
	require.NoError(t, cmd.Flags().Set("format", "yaml"))

	_, err := ParseFilterCliArgs(cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errUtils.ErrInvalidFormat)
}

func TestParseFilterCliArgsRepoPath(t *testing.T) {
	resetFilterEnv(t)
	t.Setenv("INPUT_PATTERNS", "src/**")

	cmd := newFilterTestCmd()
	require.NoError(t, cmd.Flags().Set("repo-path", "/tmp/repo"))

	args, err := ParseFilterCliArgs(cmd)

	// Local resolution needs neither a token nor a repository slug.
	require.NoError(t, err)
	assert.Equal(t, "/tmp/repo", args.RepoPath)
	assert.Empty(t, args.Token)
	assert.Equal(t, "HEAD", args.HeadRef)
	assert.Equal(t, "main", args.BaseRef)
}

func TestParseFilterCliArgsPullRequestNumber(t *testing.T) {
	resetFilterEnv(t)
	t.Setenv("INPUT_PATTERNS", "src/**")
	t.Setenv("GITHUB_TOKEN", "token")
	t.Setenv("GITHUB_REPOSITORY", "cloudposse/demo")
	t.Setenv("GITHUB_EVENT_NAME", "pull_request")
	t.Setenv("GITHUB_REF", "refs/pull/7/merge")

	args, err := ParseFilterCliArgs(newFilterTestCmd())

	require.NoError(t, err)
	assert.Equal(t, 7, args.PRNumber)
}

func TestParseFilterCliArgsTokenPrecedence(t *testing.T) {
	resetFilterEnv(t)
	t.Setenv("INPUT_PATTERNS", "src/**")
	t.Setenv("INPUT_TOKEN", "input-token")
	t.Setenv("GITHUB_TOKEN", "ambient-token")
	t.Setenv("GITHUB_REPOSITORY", "cloudposse/demo")

	args, err := ParseFilterCliArgs(newFilterTestCmd())

	require.NoError(t, err)
	assert.Equal(t, "input-token", args.Token)
}

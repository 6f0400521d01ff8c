package exec

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	goversion "github.com/hashicorp/go-version"
	"github.com/mattn/go-isatty"

	errUtils "github.com/cloudposse/pathfilter/errors"
	"github.com/cloudposse/pathfilter/pkg/data"
	gh "github.com/cloudposse/pathfilter/pkg/github"
	log "github.com/cloudposse/pathfilter/pkg/logger"
	"github.com/cloudposse/pathfilter/pkg/version"
)

// Release coordinates for the update check.
const (
	releaseOwner = "cloudposse"
	releaseRepo  = "pathfilter"
)

// versionInfo is the payload of `pathfilter version --format json`.
type versionInfo struct {
	Version string `json:"version"`
	OS      string `json:"os"`
	Arch    string `json:"arch"`
	Latest  string `json:"latest,omitempty"`
}

// VersionExec executes the `pathfilter version` command.
type VersionExec struct {
	getLatestRelease func(owner, repo string) (string, error)
	isTTY            func() bool
}

// NewVersionExec creates a new version executor backed by the GitHub API.
func NewVersionExec() *VersionExec {
	return &VersionExec{
		getLatestRelease: gh.GetLatestRelease,
		isTTY: func() bool {
			return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
		},
	}
}

// Execute prints the running version and, when check is set, looks up the
// latest GitHub release. A failed release lookup never fails the command.
func (v *VersionExec) Execute(check bool, format string) error {
	info := versionInfo{
		Version: version.Version,
		OS:      runtime.GOOS,
		Arch:    runtime.GOARCH,
	}

	if check {
		info.Latest = v.latestRelease()
	}

	switch format {
	case FormatJSON:
		return data.WriteJSON(info)
	case FormatText, "":
		if err := data.Writef("pathfilter %s on %s/%s\n", info.Version, info.OS, info.Arch); err != nil {
			return err
		}
		if newerRelease(info.Version, info.Latest) {
			return data.Writef("\nUpdate available: %s\nhttps://github.com/%s/%s/releases/tag/%s\n",
				info.Latest, releaseOwner, releaseRepo, info.Latest)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q, valid formats are '%s' and '%s'",
			errUtils.ErrInvalidFormat, format, FormatText, FormatJSON)
	}
}

// latestRelease returns the latest release tag, or an empty string when the
// lookup fails.
func (v *VersionExec) latestRelease() string {
	tag, err := v.fetchLatestRelease()
	if err != nil {
		log.Debug("Could not check the latest release", "error", err)
		return ""
	}

	log.Debug("Fetched the latest release", "tag", tag)
	return tag
}

// fetchLatestRelease fetches the latest release tag, showing a spinner while
// the request is in flight when stdout is a terminal.
func (v *VersionExec) fetchLatestRelease() (string, error) {
	if !v.isTTY() {
		return v.getLatestRelease(releaseOwner, releaseRepo)
	}

	s := spinner.New()
	s.Spinner = spinner.Dot

	m := &releaseCheckModel{spinner: s}
	p := tea.NewProgram(m)

	// Fetch the release in the background while the spinner runs.
	go func() {
		tag, err := v.getLatestRelease(releaseOwner, releaseRepo)
		if err != nil {
			p.Send(err)
			return
		}
		p.Send(releaseTagMsg(tag))
	}()

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	final := finalModel.(*releaseCheckModel)
	if final.err != nil {
		return "", final.err
	}
	return final.tag, nil
}

// newerRelease reports whether latest is a release newer than current.
func newerRelease(current, latest string) bool {
	if latest == "" {
		return false
	}

	currentVersion, err := goversion.NewVersion(strings.TrimPrefix(current, "v"))
	if err != nil {
		return false
	}
	latestVersion, err := goversion.NewVersion(strings.TrimPrefix(latest, "v"))
	if err != nil {
		return false
	}

	return latestVersion.GreaterThan(currentVersion)
}

type releaseTagMsg string

type releaseCheckModel struct {
	spinner spinner.Model
	tag     string
	err     error
	done    bool
}

func (m *releaseCheckModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *releaseCheckModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case releaseTagMsg:
		m.tag = string(msg)
		m.done = true
		return m, tea.Quit
	case error:
		m.err = msg
		m.done = true
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m *releaseCheckModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " Checking for the latest release..."
}

package cmd

import (
	"github.com/spf13/cobra"

	e "github.com/cloudposse/pathfilter/internal/exec"
)

var (
	checkFlag     bool
	versionFormat string
)

// versionCmd prints the version number of pathfilter.
var versionCmd = &cobra.Command{
	Use:     "version",
	Short:   "Display the version of pathfilter",
	Long:    `Display the version of pathfilter, and optionally check whether a newer release is available.`,
	Example: "pathfilter version",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return e.NewVersionExec().Execute(checkFlag, versionFormat)
	},
}

func init() {
	versionCmd.Flags().BoolVarP(&checkFlag, "check", "c", false, "Check for the latest release")
	versionCmd.Flags().StringVar(&versionFormat, "format", "", "Output format: text or json")
	RootCmd.AddCommand(versionCmd)
}

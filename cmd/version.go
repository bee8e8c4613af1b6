package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is the build version, overridden at link time.
var version = "dev"

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:          "version",
		Short:        "Print the mdc version",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if jsonOutput || GetJSON() {
				writeJSON(cmd.OutOrStdout(), map[string]string{"version": version})
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "mdc %s\n", version)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")

	return cmd
}

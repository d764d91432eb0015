package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version of the binary itself, not of any project it bumps.
// Overridden at build time via -ldflags.
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the bumpversion binary version",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

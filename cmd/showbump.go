package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var showBumpCmd = &cobra.Command{
	Use:   "show-bump <component>",
	Short: "Print the version a bump would produce, without changing anything",
	Args:  cobra.ExactArgs(1),
	RunE:  showBumpRunE,
}

func init() {
	rootCmd.AddCommand(showBumpCmd)
}

func showBumpRunE(cmd *cobra.Command, args []string) error {
	mgr, err := newManager(nil)
	if err != nil {
		return err
	}

	current, next, err := mgr.PlannedBump(args[0])
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "old_version=%s\n", current)
	fmt.Fprintf(w, "new_version=%s\n", next)
	return nil
}

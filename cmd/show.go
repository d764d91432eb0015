package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"go-bumpversion/internal/output"
)

var flagShowFormat string

var showCmd = &cobra.Command{
	Use:   "show [variable...]",
	Short: "Print configuration and repository variables",
	Long: "show prints the variables available to templates (current_version,\n" +
		"commit_sha, branch_name, ...). With arguments, only the named variables\n" +
		"are printed; a single name prints the bare value.",
	RunE: showRunE,
}

func init() {
	showCmd.Flags().StringVarP(&flagShowFormat, "format", "f", "", "output format: json, yaml, or empty for plain text")
	rootCmd.AddCommand(showCmd)
}

func showRunE(_ *cobra.Command, args []string) error {
	mgr, err := newManager(nil)
	if err != nil {
		return err
	}
	vars := mgr.Variables()

	w := os.Stdout
	if len(args) > 0 {
		return output.WriteVariables(w, vars, args)
	}

	switch flagShowFormat {
	case "json":
		return output.WriteJSON(w, vars)
	case "yaml":
		return output.WriteYAML(w, vars)
	case "":
		return output.WriteAll(w, vars)
	default:
		return fmt.Errorf("unknown output format %q", flagShowFormat)
	}
}

package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Global flags shared across commands.
var (
	flagPath       string
	flagConfig     string
	flagDryRun     bool
	flagAllowDirty bool
	flagVerbosity  string
)

// rootCmd is the top-level command for bumpversion.
var rootCmd = &cobra.Command{
	Use:   "bumpversion <component> [file...]",
	Short: "Bump version strings across project files",
	Long: "bumpversion parses the current version from configuration, increments the\n" +
		"requested component, and rewrites every configured file, optionally\n" +
		"committing and tagging the result.",
	Args:              cobra.ArbitraryArgs,
	PersistentPreRunE: setupLogging,
	SilenceUsage:      true,
	SilenceErrors:     true,
	// Default action is bump.
	RunE: bumpRunE,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagPath, "path", "p", ".", "path to the project directory")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file (default: auto-detect)")
	rootCmd.PersistentFlags().BoolVarP(&flagDryRun, "dry-run", "n", false, "report changes without writing anything")
	rootCmd.PersistentFlags().BoolVar(&flagAllowDirty, "allow-dirty", false, "run even when the working tree has uncommitted changes")
	rootCmd.PersistentFlags().StringVarP(&flagVerbosity, "verbosity", "v", "info", "log verbosity: quiet, info, debug")
}

// setupLogging configures the global logger from the verbosity flag.
func setupLogging(_ *cobra.Command, _ []string) error {
	log.SetOutput(os.Stderr)
	switch flagVerbosity {
	case "quiet":
		log.SetLevel(log.ErrorLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	case "debug":
		log.SetLevel(log.DebugLevel)
	default:
		return fmt.Errorf("unknown verbosity %q", flagVerbosity)
	}
	return nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

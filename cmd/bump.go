package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"go-bumpversion/pkg/bumpversion"
)

var (
	flagNewVersion        string
	flagNoCommit          bool
	flagNoTag             bool
	flagNoConfiguredFiles bool
)

var bumpCmd = &cobra.Command{
	Use:   "bump <component> [file...]",
	Short: "Increment a version component and rewrite the configured files",
	Long: "bump increments the named version component (for example major, minor, or\n" +
		"patch), rewrites every configured file plus any files given as arguments,\n" +
		"and updates the current_version entry in the configuration file.",
	Args: cobra.ArbitraryArgs,
	RunE: bumpRunE,
}

func init() {
	// Persistent so the flags work both on the root invocation and on the
	// explicit bump subcommand.
	rootCmd.PersistentFlags().StringVar(&flagNewVersion, "new-version", "", "set this exact version instead of incrementing")
	rootCmd.PersistentFlags().BoolVar(&flagNoCommit, "no-commit", false, "do not commit, even when configured to")
	rootCmd.PersistentFlags().BoolVar(&flagNoTag, "no-tag", false, "do not tag, even when configured to")
	rootCmd.PersistentFlags().BoolVar(&flagNoConfiguredFiles, "no-configured-files", false, "only process files given as arguments")
	rootCmd.AddCommand(bumpCmd)
}

func bumpRunE(_ *cobra.Command, args []string) error {
	var component string
	var extraFiles []string
	if len(args) > 0 {
		component = args[0]
		extraFiles = args[1:]
	}
	if component == "" && flagNewVersion == "" {
		return fmt.Errorf("a component to bump (or --new-version) is required")
	}

	mgr, err := newManager(extraFiles)
	if err != nil {
		return err
	}

	var result *bumpversion.Result
	if flagNewVersion != "" {
		result, err = mgr.BumpToVersion(flagNewVersion)
	} else {
		result, err = mgr.Bump(component)
	}
	if err != nil {
		return err
	}

	fmt.Printf("%s => %s\n", result.CurrentVersion, result.NewVersion)
	return nil
}

// newManager builds a Manager from the global flags and extra file arguments.
func newManager(extraFiles []string) (*bumpversion.Manager, error) {
	opts := bumpversion.Options{
		Path:              flagPath,
		ConfigPath:        flagConfig,
		DryRun:            flagDryRun,
		NoConfiguredFiles: flagNoConfiguredFiles,
		IncludedPaths:     extraFiles,
	}
	if flagAllowDirty {
		allow := true
		opts.AllowDirty = &allow
	}
	if flagNoCommit {
		commit := false
		opts.Commit = &commit
	}
	if flagNoTag {
		tag := false
		opts.Tag = &tag
	}
	return bumpversion.New(opts)
}

package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ocgen/internal/config"
	"github.com/thoreinstein/ocgen/internal/errors"
	"github.com/thoreinstein/ocgen/internal/paths"
	"github.com/thoreinstein/ocgen/pkg/fileutil"
)

var (
	initForce  bool
	initGlobal bool
)

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite existing configuration")
	initCmd.Flags().BoolVarP(&initGlobal, "global", "g", false, "Write to the user config directory instead of the project")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default ocgen.yaml",
	Long: `Write the built-in configuration to ocgen.yaml in the project root, or
with --global to $XDG_CONFIG_HOME/ocgen/ocgen.yaml, so it can be edited.`,
	Example: `  ocgen init
  ocgen init --global
  ocgen init --force

  See Also: ocgen check`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(c *cobra.Command, _ []string) error {
	dir := paths.ConfigDir()
	if !initGlobal {
		root, err := projectRoot()
		if err != nil {
			return err
		}
		dir = root
	}
	path := filepath.Join(dir, config.FileName+".yaml")

	if fileutil.Exists(path) && !initForce {
		fmt.Fprintf(c.OutOrStdout(), "Configuration already exists at %s\n", path)
		fmt.Fprintln(c.OutOrStdout(), "Use --force to overwrite")
		return nil
	}

	if err := fileutil.AtomicWriteYAML(path, config.Default()); err != nil {
		return errors.NewSystemError(errors.Wrap(err, "writing config file"), "check that "+dir+" is writable")
	}

	fmt.Fprintf(c.OutOrStdout(), "Created %s\n", path)
	return nil
}

package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ocgen/internal/backup"
	"github.com/thoreinstein/ocgen/internal/errors"
	"github.com/thoreinstein/ocgen/internal/logging"
	"github.com/thoreinstein/ocgen/internal/paths"
)

var restoreYes bool

func init() {
	restoreCmd.Flags().BoolVarP(&restoreYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(restoreCmd)
}

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Copy .opencode.backup back over .opencode",
	Long: `Restore the files saved by the last forced generate. The backup is
verified against its manifest first. Files created since the backup are left
in place.`,
	Args: cobra.NoArgs,
	RunE: runRestore,
}

func runRestore(c *cobra.Command, _ []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}
	dir := paths.OpenCodeDir(root)

	mgr := backup.NewManager()
	manifest, err := mgr.Load(dir)
	if errors.Is(err, backup.ErrNoBackup) {
		return errors.NewUserError(err, "backups are made by 'ocgen generate --force'")
	}
	if err != nil {
		return errors.NewSystemError(err, "")
	}

	out := c.OutOrStdout()
	fmt.Fprintf(out, "Backup of %d files from %s\n", len(manifest.Files), manifest.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	if !restoreYes && !confirm(c.InOrStdin(), out, "Restore it over "+dir+"?") {
		fmt.Fprintln(out, "Aborted")
		return nil
	}

	if err := mgr.Restore(manifest); err != nil {
		if errors.Is(err, backup.ErrBackupCorrupted) {
			return errors.NewUserError(err, "the backup was modified after it was taken; run 'ocgen check' for details")
		}
		return errors.NewSystemError(err, "")
	}

	logging.FromContext(c.Context()).Info("restored backup", "files", len(manifest.Files), "to", dir)
	fmt.Fprintf(out, "Restored %d files to %s\n", len(manifest.Files), dir)
	return nil
}

// confirm asks a yes/no question and defaults to no.
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N] ", prompt)

	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && response == "" {
		return false
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}

package commands

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ocgen/cmd"
	"github.com/thoreinstein/ocgen/internal/backup"
	"github.com/thoreinstein/ocgen/internal/errors"
	"github.com/thoreinstein/ocgen/internal/generator"
	"github.com/thoreinstein/ocgen/internal/logging"
	"github.com/thoreinstein/ocgen/internal/watch"
)

var (
	generateForce  bool
	generateDryRun bool
	generateDiff   bool
	generateWatch  bool
	generateJSON   bool
)

func init() {
	generateCmd.Flags().BoolVarP(&generateForce, "force", "f", false,
		"overwrite existing files, backing up .opencode first")
	generateCmd.Flags().BoolVarP(&generateDryRun, "dry-run", "n", false,
		"show what would be written without writing anything")
	generateCmd.Flags().BoolVar(&generateDiff, "diff", false,
		"with --dry-run, show a diff for each file that would change")
	generateCmd.Flags().BoolVarP(&generateWatch, "watch", "w", false,
		"regenerate whenever .claude changes (implies --force after the first run)")
	generateCmd.Flags().BoolVar(&generateJSON, "json", false,
		"print the run report as JSON")
	rootCmd.AddCommand(generateCmd)
}

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "Convert .claude into .opencode and AGENTS.md",
	Long: `Convert the project's Claude Code configuration to OpenCode.

Agents and commands get their frontmatter rewritten, nested commands are
flattened (git/cm.md becomes git-cm.md), and every ".claude/" path reference
is rewritten to ".opencode/". Skills, workflows, scripts, and hook libraries
are copied. AGENTS.md is generated from README.md and CLAUDE.md.

Files that already exist are skipped unless --force is given.`,
	Example: `  ocgen generate
  ocgen generate --force
  ocgen generate --dry-run --diff --force
  ocgen generate --watch`,
	Args:    cobra.NoArgs,
	PreRunE: validateGenerateFlags,
	RunE:    runGenerate,
}

func validateGenerateFlags(_ *cobra.Command, _ []string) error {
	if generateDiff && !generateDryRun {
		return errors.NewUserError(errors.New("--diff requires --dry-run"), "add --dry-run")
	}
	if generateWatch && generateDryRun {
		return errors.NewUserError(errors.New("--watch cannot be combined with --dry-run"), "drop one of the flags")
	}
	if generateWatch && generateJSON {
		return errors.NewUserError(errors.New("--watch cannot be combined with --json"), "drop one of the flags")
	}
	return nil
}

func runGenerate(c *cobra.Command, _ []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}

	opts := generator.Options{Force: generateForce, DryRun: generateDryRun, Diff: generateDiff}
	session := backup.NewSession(backup.NewManager(backup.WithVersion(cmd.Version)))
	g := generator.New(root, loadedConfig, opts, generator.WithBackupSession(session))

	ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := g.Run(ctx)
	if err != nil {
		if errors.Is(err, errors.ErrNoClaudeDir) {
			return errors.NewUserError(err, "run ocgen from a Claude Code project, or pass --dir")
		}
		return errors.NewSystemError(err, "")
	}

	if generateJSON {
		enc := json.NewEncoder(c.OutOrStdout())
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(report), "encoding report")
	}
	if !quiet {
		printReport(c.OutOrStdout(), report, !generateWatch)
	}

	if !generateWatch {
		return nil
	}
	return watchAndRegenerate(ctx, c, g)
}

// watchAndRegenerate reruns g with Force on every settled change under
// .claude until ctx is cancelled. The backup session is shared, so only the
// first forced run snapshots .opencode.
func watchAndRegenerate(ctx context.Context, c *cobra.Command, g *generator.Generator) error {
	forced := g.WithOptions(generator.Options{Force: true})
	logger := logging.FromContext(ctx)

	return watch.Run(ctx, watch.Config{Root: g.ClaudeDir(), Logger: logger}, func(ctx context.Context) error {
		report, err := forced.Run(ctx)
		if err != nil {
			return err
		}
		if !quiet {
			printReport(c.OutOrStdout(), report, false)
		}
		return nil
	})
}

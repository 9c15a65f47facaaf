// Package commands implements the CLI commands for ocgen.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/ocgen/cmd"
	"github.com/thoreinstein/ocgen/internal/config"
	"github.com/thoreinstein/ocgen/internal/errors"
	"github.com/thoreinstein/ocgen/internal/logging"
	"github.com/thoreinstein/ocgen/internal/paths"
)

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configFile holds an explicit --config path.
var configFile string

// projectDir holds the value of the -C/--dir flag.
var projectDir string

// loadedConfig is the configuration for this invocation. It is the default
// configuration when loading failed; configLoadErr then says why.
var (
	loadedConfig  = config.Default()
	configLoadErr error
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv, -vvv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"also write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default: ./ocgen.yaml, then $XDG_CONFIG_HOME/ocgen/ocgen.yaml)")
	rootCmd.PersistentFlags().StringVarP(&projectDir, "dir", "C", ".",
		"project directory; the nearest ancestor with .git or CLAUDE.md is used")

	rootCmd.Version = cmd.VersionString()
	rootCmd.SetVersionTemplate("ocgen version {{.Version}}\n")

	// Errors are printed by main with their suggestion.
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	cfg, err := config.Load(configFile)
	if err != nil {
		loadedConfig, configLoadErr = config.Default(), err
		return
	}
	loadedConfig, configLoadErr = cfg, nil
}

var rootCmd = &cobra.Command{
	Use:   "ocgen",
	Short: "Generate OpenCode configuration from a Claude Code project",
	Long: `ocgen converts a project's .claude directory into the layout OpenCode
expects: .opencode/agents, .opencode/commands, skills, workflows, scripts,
hook plugins, and an AGENTS.md at the project root.

Existing files are never overwritten unless --force is given, and a forced
run copies .opencode to .opencode.backup first.`,
	Example: `  # Convert the current project
  ocgen generate

  # Preview what a forced regeneration would change
  ocgen generate --force --dry-run --diff

  # Regenerate on every change under .claude
  ocgen generate --force --watch

  # Check the generated output
  ocgen check

  See Also: ocgen init, ocgen inspect`,
	PersistentPreRunE: func(c *cobra.Command, _ []string) error {
		if err := setupLogging(c); err != nil {
			return err
		}
		return requireConfig(c)
	},
	Run: func(c *cobra.Command, _ []string) {
		_ = c.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(c *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"), "pick one of -q and -v")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv("OCGEN_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2
				case "2":
					v = 3
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	opts := &slog.HandlerOptions{Level: level}

	var primary slog.Handler
	switch logging.Format(logFormat) {
	case logging.FormatJSON:
		primary = slog.NewJSONHandler(c.ErrOrStderr(), opts)
	case logging.FormatText, "":
		primary = logging.NewHandler(c.ErrOrStderr(), opts)
	default:
		return errors.NewUserError(errors.Newf("unknown log format %q", logFormat), "use --log-format text or json")
	}

	handler := primary
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(errors.Wrap(err, "opening log file"), "check the --log-file path")
		}
		handler = logging.NewMultiHandler(primary, slog.NewJSONHandler(f, opts))
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := c.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	c.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// configOptional lists commands that run without a valid config file.
var configOptional = map[string]bool{
	"help":    true,
	"version": true,
	"init":    true,
	"check":   true,
	"gen-doc": true,
}

// requireConfig fails commands that depend on the config when it did not
// load.
func requireConfig(c *cobra.Command) error {
	if configLoadErr == nil || configOptional[c.Name()] {
		return nil
	}
	if errors.Is(configLoadErr, errors.ErrNotFound) {
		return errors.NewUserError(configLoadErr, "check the --config path")
	}
	return errors.NewConfigError(configLoadErr)
}

// projectRoot resolves the project the command operates on.
func projectRoot() (string, error) {
	root, err := paths.FindProjectRoot(projectDir)
	if err != nil {
		return "", errors.NewUserError(err, "pass an existing directory with --dir")
	}
	return root, nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// PrintError writes err and any suggestion to w.
func PrintError(w io.Writer, err error) {
	red := color.New(color.FgRed, color.Bold)
	red.Fprint(w, "Error: ")
	fmt.Fprintln(w, err)

	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) && exitErr.Suggestion != "" {
		fmt.Fprintf(w, "  %s\n", exitErr.Suggestion)
	}
}

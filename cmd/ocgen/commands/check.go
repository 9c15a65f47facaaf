package commands

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ocgen/internal/config"
	"github.com/thoreinstein/ocgen/internal/doctor"
	"github.com/thoreinstein/ocgen/internal/errors"
)

var (
	checkJSON bool
	checkAll  bool
)

func init() {
	checkCmd.Flags().BoolVar(&checkJSON, "json", false,
		"output results as JSON")
	checkCmd.Flags().BoolVarP(&checkAll, "all", "a", false,
		"show passing checks too")
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:     "check",
	Aliases: []string{"doctor"},
	Short:   "Validate the generated OpenCode configuration",
	Long: `Run checks on the project and its generated output.

Confirms .claude exists, the config file loads, AGENTS.md is present, every
generated agent and command has well-formed YAML frontmatter with a
description, and the .opencode backup still matches its manifest.

Exit codes:
  0 - No errors or warnings
  1 - Warnings present, no errors
  2 - Errors present`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

// errCheckWarnings exits with code 1.
var errCheckWarnings = errors.NewExitError(errors.New("warnings found"), errors.ExitUser)

// errCheckErrors exits with code 2.
var errCheckErrors = errors.NewExitError(errors.New("errors found"), errors.ExitSystem)

func runCheck(c *cobra.Command, _ []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}

	runner := doctor.NewRunner()
	for _, check := range doctor.Standard(root, config.Used(), configLoadErr) {
		runner.AddCheck(check)
	}
	report := runner.Run(c.Context())

	switch {
	case checkJSON:
		enc := json.NewEncoder(c.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return errors.Wrap(err, "encoding JSON")
		}
	case !quiet:
		printCheckReport(c.OutOrStdout(), report, checkAll)
	}

	if report.HasErrors() {
		return errCheckErrors
	}
	if report.HasWarnings() {
		return errCheckWarnings
	}
	return nil
}

package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/thoreinstein/ocgen/internal/doctor"
	"github.com/thoreinstein/ocgen/internal/generator"
)

var (
	bold   = color.New(color.Bold)
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed)
	cyan   = color.New(color.FgCyan)
	gray   = color.New(color.FgHiBlack)
)

// printReport writes a human summary of one generator run.
func printReport(w io.Writer, r *generator.Report, nextSteps bool) {
	if r.DryRun {
		yellow.Fprintln(w, "Dry run: nothing was written.")
	}
	if r.Backup != nil {
		fmt.Fprintf(w, "Backed up %d files to %s\n", len(r.Backup.Files), r.Backup.Dir)
	}

	if r.DryRun {
		for _, a := range r.Actions {
			if a.Outcome != generator.OutcomePlanned {
				continue
			}
			fmt.Fprintf(w, "  %s %s\n", cyan.Sprint("would write"), a.Path)
			if a.Diff != "" {
				printDiff(w, a.Diff)
			}
		}
	}

	summaries := r.Summaries()
	if len(summaries) > 0 {
		fmt.Fprintln(w)
		bold.Fprintln(w, "Summary")
	}
	for _, s := range summaries {
		fmt.Fprintf(w, "  %-12s %s\n", s.Kind, summaryLine(s))
	}

	if failures := r.Failures(); len(failures) > 0 {
		fmt.Fprintln(w)
		red.Fprintf(w, "%d files could not be converted:\n", len(failures))
		for _, a := range failures {
			src := a.Source
			if src == "" {
				src = a.Path
			}
			fmt.Fprintf(w, "  %s: %s\n", src, a.Detail)
		}
	}

	if nextSteps && !r.DryRun {
		fmt.Fprintln(w)
		bold.Fprintln(w, "Next steps")
		fmt.Fprintln(w, "  1. Review AGENTS.md and .opencode/")
		fmt.Fprintln(w, "  2. Install plugin dependencies if .opencode/package.json exists: cd .opencode && npm install")
		fmt.Fprintln(w, "  3. Start OpenCode in this directory")
	}
}

func summaryLine(s generator.Summary) string {
	var parts []string
	add := func(n int, label string, c *color.Color) {
		if n > 0 {
			parts = append(parts, c.Sprintf("%d %s", n, label))
		}
	}
	add(s.Written, "written", green)
	add(s.Planned, "planned", cyan)
	add(s.Unchanged, "unchanged", gray)
	add(s.Skipped, "skipped", yellow)
	add(s.Failed, "failed", red)
	if len(parts) == 0 {
		return "nothing to do"
	}
	return strings.Join(parts, ", ")
}

func printDiff(w io.Writer, diff string) {
	for _, line := range strings.Split(strings.TrimSuffix(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+"):
			green.Fprintln(w, "    "+line)
		case strings.HasPrefix(line, "-"):
			red.Fprintln(w, "    "+line)
		default:
			gray.Fprintln(w, "    "+line)
		}
	}
}

// printCheckReport writes check results. Passing results are shown only
// when all is set.
func printCheckReport(w io.Writer, r *doctor.Report, all bool) {
	for _, res := range r.Results {
		if !all && res.Status != doctor.SeverityError && res.Status != doctor.SeverityWarning {
			continue
		}
		fmt.Fprintf(w, "%s [%s] %s: %s\n", statusIcon(res.Status), res.Category, res.Name, res.Message)
		for _, p := range res.Problems {
			fmt.Fprintf(w, "    %s: %s\n", p.Path, p.Issue)
		}
		if res.FixHint != "" && (res.Status == doctor.SeverityError || res.Status == doctor.SeverityWarning) {
			fmt.Fprintf(w, "  hint: %s\n", res.FixHint)
		}
	}

	fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		r.Summary.Passed, r.Summary.Info, r.Summary.Warnings, r.Summary.Errors)
}

func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return green.Sprint("✓")
	case doctor.SeverityInfo:
		return cyan.Sprint("ℹ")
	case doctor.SeverityWarning:
		return yellow.Sprint("⚠")
	case doctor.SeverityError:
		return red.Sprint("✗")
	default:
		return "?"
	}
}

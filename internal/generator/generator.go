// Package generator converts a project's .claude tree into an OpenCode
// .opencode tree plus AGENTS.md.
//
// A run walks the source tree in a fixed order (backup, directories,
// AGENTS.md, agents, commands, skills, workflows, scripts, .env.example,
// plugins) and records one [Action] per output path in a [Report].
// Existing outputs are left alone unless Force is set. Problems with a single
// source file are recorded as failed actions and the run continues; only
// setup failures such as an unwritable output directory or a failed backup
// abort it.
package generator

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/thoreinstein/ocgen/internal/backup"
	"github.com/thoreinstein/ocgen/internal/config"
	"github.com/thoreinstein/ocgen/internal/convert"
	"github.com/thoreinstein/ocgen/internal/errors"
	"github.com/thoreinstein/ocgen/internal/logging"
	"github.com/thoreinstein/ocgen/internal/paths"
)

// Output subdirectories under .opencode, created on every run.
var outputDirs = []string{"agents", "commands", "skills"}

// Options controls how a run treats existing files.
type Options struct {
	// Force overwrites existing outputs and snapshots .opencode first.
	Force bool

	// DryRun writes nothing and records planned actions instead.
	DryRun bool

	// Diff attaches a line diff to each planned file action. Only used
	// with DryRun.
	Diff bool
}

// Generator converts one project.
type Generator struct {
	root        string
	claudeDir   string
	opencodeDir string

	opts    Options
	cfg     *config.Config
	logger  *slog.Logger
	now     func() time.Time
	backups *backup.Session
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger. The default comes from the run context.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = l
	}
}

// WithClock overrides the date stamped into AGENTS.md.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// WithBackupSession shares a backup session across runs, as watch mode does.
func WithBackupSession(s *backup.Session) Option {
	return func(g *Generator) {
		g.backups = s
	}
}

// New returns a Generator for the project at root. A nil cfg means
// config.Default().
func New(root string, cfg *config.Config, opts Options, options ...Option) *Generator {
	if cfg == nil {
		cfg = config.Default()
	}
	g := &Generator{
		root:        root,
		claudeDir:   paths.ClaudeDir(root),
		opencodeDir: paths.OpenCodeDir(root),
		opts:        opts,
		cfg:         cfg,
		now:         time.Now,
	}
	for _, o := range options {
		o(g)
	}
	if g.backups == nil {
		g.backups = backup.NewSession(backup.NewManager())
	}
	return g
}

// Root returns the project root.
func (g *Generator) Root() string {
	return g.root
}

// ClaudeDir returns the source tree this generator reads.
func (g *Generator) ClaudeDir() string {
	return g.claudeDir
}

// WithOptions returns a copy of g that runs with opts and shares g's backup
// session.
func (g *Generator) WithOptions(opts Options) *Generator {
	c := *g
	c.opts = opts
	return &c
}

type step struct {
	name string
	run  func(context.Context, *Report) error
}

// Run performs one conversion. The returned report is non-nil even when an
// error aborts the run part way.
func (g *Generator) Run(ctx context.Context) (*Report, error) {
	if g.logger == nil {
		g.logger = logging.FromContext(ctx)
	}
	report := &Report{Root: g.root, DryRun: g.opts.DryRun}

	info, err := os.Stat(g.claudeDir)
	if err != nil || !info.IsDir() {
		return report, errors.Wrapf(errors.ErrNoClaudeDir, "%s", g.claudeDir)
	}

	steps := []step{
		{"backup", g.backupStep},
		{"directories", g.directoriesStep},
		{"agents-md", g.agentsMDStep},
		{"agents", g.agentsStep},
		{"commands", g.commandsStep},
		{"skills", g.skillsStep},
		{"workflows", g.workflowsStep},
		{"scripts", g.scriptsStep},
		{"env", g.envStep},
		{"plugins", g.pluginsStep},
	}

	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		g.logger.Log(ctx, logging.LevelTrace, "running step", "step", s.name)
		if err := s.run(ctx, report); err != nil {
			return report, errors.Wrapf(err, "%s", s.name)
		}
	}

	g.logger.Info("generation complete",
		"root", g.root,
		"actions", len(report.Actions),
		"failed", len(report.Failures()),
		"dry_run", g.opts.DryRun,
	)
	return report, nil
}

func (g *Generator) backupStep(ctx context.Context, r *Report) error {
	if !g.opts.Force || g.opts.DryRun || !g.cfg.Backup {
		return nil
	}
	manifest, taken, err := g.backups.Ensure(g.opencodeDir)
	if err != nil {
		return err
	}
	if taken {
		r.Backup = manifest
		g.logger.InfoContext(ctx, "backed up", "from", g.rel(g.opencodeDir), "to", g.rel(manifest.Dir), "files", len(manifest.Files))
	}
	return nil
}

func (g *Generator) directoriesStep(ctx context.Context, r *Report) error {
	dirs := []string{g.opencodeDir}
	for _, d := range outputDirs {
		dirs = append(dirs, filepath.Join(g.opencodeDir, d))
	}

	for _, dir := range dirs {
		if _, err := os.Stat(dir); err == nil {
			continue
		}
		a := Action{Kind: KindDirectory, Path: g.rel(dir), Outcome: OutcomePlanned}
		if !g.opts.DryRun {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return errors.Wrapf(err, "creating %s", dir)
			}
			a.Outcome = OutcomeCreated
		}
		g.record(ctx, r, a)
	}
	return nil
}

func (g *Generator) rel(path string) string {
	rel, err := filepath.Rel(g.root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

func (g *Generator) record(ctx context.Context, r *Report, a Action) {
	r.add(a)
	attrs := []any{"kind", a.Kind, "path", a.Path}
	switch a.Outcome {
	case OutcomeFailed:
		g.logger.WarnContext(ctx, "skipping "+string(a.Kind), append(attrs, "error", a.Detail)...)
	case OutcomeSkipped, OutcomeUnchanged:
		g.logger.DebugContext(ctx, a.Outcome.String(), append(attrs, "detail", a.Detail)...)
	default:
		g.logger.InfoContext(ctx, a.Outcome.String(), attrs...)
	}
}

func (g *Generator) agentOptions() convert.AgentOptions {
	return convert.AgentOptions{
		PrimaryAgents: g.cfg.PrimaryAgents,
		Tools:         g.cfg.AgentTools,
	}
}

package generator

import (
	"bytes"
	"context"
	"os"
	"unicode/utf8"

	"github.com/thoreinstein/ocgen/internal/errors"
	"github.com/thoreinstein/ocgen/internal/logging"
	"github.com/thoreinstein/ocgen/pkg/fileutil"
)

// ErrNotText marks a source file that is not valid UTF-8.
var ErrNotText = errors.New("not valid UTF-8 text")

// output is one file the generator wants to produce.
type output struct {
	kind   Kind
	target string
	source string
	data   []byte
	perm   os.FileMode
}

// emit writes out.data to out.target, honouring Force, DryRun, and Diff.
func (g *Generator) emit(ctx context.Context, r *Report, out output) {
	a := Action{Kind: out.kind, Path: g.rel(out.target)}
	if out.source != "" {
		a.Source = g.rel(out.source)
	}
	if out.perm == 0 {
		out.perm = fileutil.DefaultPerm
	}

	existing, err := os.ReadFile(out.target)
	exists := err == nil

	switch {
	case exists && !g.opts.Force:
		a.Outcome = OutcomeSkipped
		a.Detail = "exists"
	case g.opts.DryRun:
		a.Outcome = OutcomePlanned
		if g.opts.Diff {
			a.Diff = lineDiff(string(existing), string(out.data))
		}
	case exists && bytes.Equal(existing, out.data):
		a.Outcome = OutcomeUnchanged
	default:
		if err := fileutil.WriteFile(out.target, out.data, out.perm); err != nil {
			a.Outcome = OutcomeFailed
			a.Err = err
			a.Detail = err.Error()
			break
		}
		a.Outcome = OutcomeCreated
		if exists {
			a.Outcome = OutcomeUpdated
		}
	}
	g.record(ctx, r, a)
}

// fail records a failed action for a source that could not be processed.
func (g *Generator) fail(ctx context.Context, r *Report, kind Kind, source, target string, err error) {
	a := Action{Kind: kind, Source: g.rel(source), Outcome: OutcomeFailed, Err: err, Detail: err.Error()}
	if target != "" {
		a.Path = g.rel(target)
	}
	g.record(ctx, r, a)
}

// readText reads a source file that must be UTF-8 text within the size limit.
func readText(path string) (string, error) {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", errors.Wrapf(ErrNotText, "%s", path)
	}
	return string(data), nil
}

// copyTree replaces target with a copy of source. It is all or nothing at
// directory level: an existing target is skipped without Force, and dry runs
// record a single planned action.
func (g *Generator) copyTree(ctx context.Context, r *Report, kind Kind, source, target string, fn fileutil.Transform) {
	a := Action{Kind: kind, Path: g.rel(target), Source: g.rel(source)}

	_, err := os.Stat(target)
	exists := err == nil

	switch {
	case exists && !g.opts.Force:
		a.Outcome = OutcomeSkipped
		a.Detail = "exists"
	case g.opts.DryRun:
		a.Outcome = OutcomePlanned
	default:
		if err := os.RemoveAll(target); err != nil {
			a.Outcome = OutcomeFailed
			a.Err = err
			a.Detail = err.Error()
			break
		}
		files, err := fileutil.CopyDir(source, target, fn)
		if err != nil {
			a.Outcome = OutcomeFailed
			a.Err = err
			a.Detail = err.Error()
			break
		}
		a.Outcome = OutcomeCreated
		if exists {
			a.Outcome = OutcomeUpdated
		}
		g.logger.Log(ctx, logging.LevelTrace, "copied tree", "path", a.Path, "files", len(files))
	}
	g.record(ctx, r, a)
}

package commands

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/thoreinstein/ocgen/internal/config"
	"github.com/thoreinstein/ocgen/internal/errors"
	"github.com/thoreinstein/ocgen/internal/paths"
)

// sourceFile is one agent or command offered by --pick.
type sourceFile struct {
	Kind string
	Rel  string
	Path string
}

// listSources returns every agent and command under root's .claude tree,
// agents first, each group sorted by path.
func listSources(root string) ([]sourceFile, error) {
	claude := paths.ClaudeDir(root)

	agents, err := filepath.Glob(filepath.Join(claude, "agents", "*.md"))
	if err != nil {
		return nil, err
	}
	sort.Strings(agents)

	var out []sourceFile
	for _, p := range agents {
		out = append(out, sourceFile{Kind: kindAgent, Rel: relTo(root, p), Path: p})
	}

	commands := filepath.Join(claude, "commands")
	err = filepath.WalkDir(commands, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == commands {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".md") {
			out = append(out, sourceFile{Kind: kindCommand, Rel: relTo(root, p), Path: p})
		}
		return nil
	})
	return out, err
}

func relTo(root, p string) string {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return p
	}
	return filepath.ToSlash(rel)
}

// pickSource lets the user choose a source file. The preview shows the file
// as ocgen would convert it. ok is false when the user aborts.
func pickSource(root string, cfg *config.Config) (string, bool, error) {
	sources, err := listSources(root)
	if err != nil {
		return "", false, errors.Wrap(err, "listing sources")
	}
	if len(sources) == 0 {
		return "", false, errors.NewUserError(errors.Wrapf(errors.ErrNotFound, "agents or commands under %s", paths.ClaudeDir(root)), "run from a Claude Code project")
	}

	idx, err := fuzzyfinder.Find(
		sources,
		func(i int) string {
			return fmt.Sprintf("%s: %s", sources[i].Kind, sources[i].Rel)
		},
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			return previewSource(sources[i], cfg)
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", false, nil
		}
		return "", false, errors.Wrap(err, "interactive pick failed")
	}
	return sources[idx].Path, true, nil
}

func previewSource(s sourceFile, cfg *config.Config) string {
	name := strings.TrimSuffix(filepath.Base(s.Path), filepath.Ext(s.Path))
	if s.Kind == kindCommand {
		if n, ok := commandNameFor(s.Path); ok {
			name = n
		}
	}
	out, err := convertFile(s.Kind, s.Path, name, cfg)
	if err != nil {
		return "cannot convert: " + err.Error()
	}
	return out
}

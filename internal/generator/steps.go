package generator

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/thoreinstein/ocgen/internal/agentsmd"
	"github.com/thoreinstein/ocgen/internal/convert"
	"github.com/thoreinstein/ocgen/internal/errors"
	"github.com/thoreinstein/ocgen/internal/paths"
	"github.com/thoreinstein/ocgen/internal/plugin"
	"github.com/thoreinstein/ocgen/pkg/fileutil"
	"github.com/thoreinstein/ocgen/pkg/frontmatter"
)

// skillMarker identifies a skill directory.
const skillMarker = "SKILL.md"

// Extensions whose .claude/ references are rewritten inside copied trees.
var treeRewriteExts = []string{".md", ".py"}

func (g *Generator) agentsMDStep(ctx context.Context, r *Report) error {
	target := paths.AgentsFile(g.root)
	if fileutil.Exists(target) && !g.opts.Force {
		g.record(ctx, r, Action{Kind: KindAgentsMD, Path: g.rel(target), Outcome: OutcomeSkipped, Detail: "exists"})
		return nil
	}

	content, err := agentsmd.Generate(g.root, g.now())
	if err != nil {
		g.fail(ctx, r, KindAgentsMD, g.root, target, err)
		return nil
	}
	g.emit(ctx, r, output{kind: KindAgentsMD, target: target, data: []byte(content)})
	return nil
}

func (g *Generator) agentsStep(ctx context.Context, r *Report) error {
	sources, err := filepath.Glob(filepath.Join(g.claudeDir, "agents", "*.md"))
	if err != nil {
		return err
	}
	sort.Strings(sources)

	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return err
		}
		name := strings.TrimSuffix(filepath.Base(src), ".md")
		target := filepath.Join(g.opencodeDir, "agents", name+".md")

		// Skip before reading so an unreadable source does not fail a no-op.
		if fileutil.Exists(target) && !g.opts.Force {
			g.record(ctx, r, Action{Kind: KindAgent, Path: g.rel(target), Source: g.rel(src), Outcome: OutcomeSkipped, Detail: "exists"})
			continue
		}

		content, err := readText(src)
		if err != nil {
			g.fail(ctx, r, KindAgent, src, target, err)
			continue
		}
		meta, body := frontmatter.Parse(content)
		outMeta, outBody := convert.Agent(meta, body, name, g.agentOptions())
		g.emit(ctx, r, output{
			kind:   KindAgent,
			target: target,
			source: src,
			data:   []byte(frontmatter.Compose(outMeta, outBody)),
		})
	}
	return nil
}

func (g *Generator) commandsStep(ctx context.Context, r *Report) error {
	root := filepath.Join(g.claudeDir, "commands")
	if !fileutil.IsDir(root) {
		return nil
	}

	var sources []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			g.fail(ctx, r, KindCommand, path, "", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".md") {
			sources = append(sources, path)
		}
		return nil
	})
	if err != nil {
		return err
	}

	claimed := make(map[string]string)
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, err := filepath.Rel(root, src)
		if err != nil {
			g.fail(ctx, r, KindCommand, src, "", err)
			continue
		}
		rel = filepath.ToSlash(rel)
		name := convert.CommandName(rel)
		target := filepath.Join(g.opencodeDir, "commands", name+".md")

		if first, ok := claimed[name]; ok {
			g.record(ctx, r, Action{
				Kind:    KindCommand,
				Path:    g.rel(target),
				Source:  g.rel(src),
				Outcome: OutcomeSkipped,
				Detail:  "name already produced by " + first,
			})
			continue
		}
		claimed[name] = g.rel(src)

		if fileutil.Exists(target) && !g.opts.Force {
			g.record(ctx, r, Action{Kind: KindCommand, Path: g.rel(target), Source: g.rel(src), Outcome: OutcomeSkipped, Detail: "exists"})
			continue
		}

		content, err := readText(src)
		if err != nil {
			g.fail(ctx, r, KindCommand, src, target, err)
			continue
		}
		meta, body := frontmatter.Parse(content)
		outMeta, outBody := convert.Command(meta, body, name)
		g.emit(ctx, r, output{
			kind:   KindCommand,
			target: target,
			source: src,
			data:   []byte(frontmatter.Compose(outMeta, outBody)),
		})
	}
	return nil
}

func (g *Generator) skillsStep(ctx context.Context, r *Report) error {
	root := filepath.Join(g.claudeDir, "skills")
	entries, err := os.ReadDir(root)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		g.fail(ctx, r, KindSkill, root, "", err)
		return nil
	}

	transform := convert.RewriteTransform(treeRewriteExts...)
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		src := filepath.Join(root, e.Name())
		if !fileutil.IsDir(src) || !fileutil.Exists(filepath.Join(src, skillMarker)) {
			continue
		}
		g.copyTree(ctx, r, KindSkill, src, filepath.Join(g.opencodeDir, "skills", e.Name()), transform)
	}
	return nil
}

func (g *Generator) workflowsStep(ctx context.Context, r *Report) error {
	sources, err := filepath.Glob(filepath.Join(g.claudeDir, "workflows", "*.md"))
	if err != nil {
		return err
	}
	sort.Strings(sources)

	rewrite := convert.RewriteTransform()
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return err
		}
		target := filepath.Join(g.opencodeDir, "workflows", filepath.Base(src))
		g.copyFile(ctx, r, KindWorkflow, src, target, rewrite)
	}
	return nil
}

func (g *Generator) scriptsStep(ctx context.Context, r *Report) error {
	src := filepath.Join(g.claudeDir, "scripts")
	if !fileutil.IsDir(src) {
		return nil
	}
	g.copyTree(ctx, r, KindScripts, src, filepath.Join(g.opencodeDir, "scripts"), convert.RewriteTransform(treeRewriteExts...))
	return nil
}

func (g *Generator) envStep(ctx context.Context, r *Report) error {
	src := filepath.Join(g.claudeDir, ".env.example")
	if !fileutil.Exists(src) {
		return nil
	}
	g.copyFile(ctx, r, KindEnv, src, filepath.Join(g.opencodeDir, ".env.example"), nil)
	return nil
}

// pluginsStep replaces Claude hooks with OpenCode plugins. It only runs
// when .claude/hooks/lib exists.
func (g *Generator) pluginsStep(ctx context.Context, r *Report) error {
	hooks := filepath.Join(g.claudeDir, "hooks")
	libSrc := filepath.Join(hooks, plugin.LibDir)
	if !fileutil.IsDir(libSrc) {
		g.logger.DebugContext(ctx, "no hook library, skipping plugins", "path", g.rel(libSrc))
		return nil
	}

	pluginDir := filepath.Join(g.opencodeDir, plugin.Dir)
	rewrite := convert.RewriteTransform()
	for _, lib := range g.cfg.PluginLibs {
		src := filepath.Join(libSrc, lib)
		if !fileutil.Exists(src) {
			continue
		}
		g.copyFile(ctx, r, KindLib, src, filepath.Join(pluginDir, plugin.LibDir, lib), rewrite)
	}

	if scout := filepath.Join(hooks, plugin.ScoutDir); fileutil.IsDir(scout) {
		g.copyTree(ctx, r, KindScout, scout, filepath.Join(pluginDir, plugin.ScoutDir), convert.RewriteTransform(treeRewriteExts...))
	}

	if ignore := filepath.Join(g.claudeDir, plugin.IgnoreFile); fileutil.Exists(ignore) {
		g.copyFile(ctx, r, KindIgnore, ignore, filepath.Join(g.opencodeDir, plugin.IgnoreFile), nil)
	}

	for _, t := range plugin.Templates() {
		g.emit(ctx, r, output{kind: KindPlugin, target: filepath.Join(pluginDir, t.Name), data: t.Content})
	}

	pkg, err := fileutil.MarshalJSON(plugin.PackageJSON())
	if err != nil {
		return err
	}
	g.emit(ctx, r, output{kind: KindPackage, target: filepath.Join(g.opencodeDir, plugin.PackageFile), data: pkg})
	return nil
}

// copyFile emits src to target through fn, keeping the source mode. Unlike
// converted sources, copied files have no size limit.
func (g *Generator) copyFile(ctx context.Context, r *Report, kind Kind, src, target string, fn fileutil.Transform) {
	info, err := os.Stat(src)
	if err != nil {
		g.fail(ctx, r, kind, src, target, err)
		return
	}
	data, err := os.ReadFile(src)
	if err != nil {
		g.fail(ctx, r, kind, src, target, errors.Wrap(err, "reading file"))
		return
	}
	if fn != nil {
		data = fn(filepath.Base(src), data)
	}
	g.emit(ctx, r, output{kind: kind, target: target, source: src, data: data, perm: info.Mode().Perm()})
}

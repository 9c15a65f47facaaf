// Package agentsmd renders the AGENTS.md instructions file OpenCode reads at
// the project root.
package agentsmd

import (
	_ "embed"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/ocgen/internal/paths"
	"github.com/thoreinstein/ocgen/pkg/fileutil"
)

//go:embed AGENTS.md.tmpl
var rawTemplate string

var tmpl = template.Must(template.New("AGENTS.md").Parse(rawTemplate))

// Project types, checked in this order.
const (
	TypeNode    = "Node.js/TypeScript"
	TypePython  = "Python"
	TypeGo      = "Go"
	TypeRust    = "Rust"
	TypeGeneric = "Generic"
)

var typeMarkers = []struct {
	files []string
	kind  string
}{
	{[]string{"package.json"}, TypeNode},
	{[]string{"requirements.txt", "pyproject.toml"}, TypePython},
	{[]string{"go.mod"}, TypeGo},
	{[]string{"Cargo.toml"}, TypeRust},
}

// workflowsHeading starts the CLAUDE.md section carried into AGENTS.md.
const workflowsHeading = "## Workflows"

// descriptionWindow is how many lines after the README title are searched.
const descriptionWindow = 9

// Project is the data AGENTS.md is rendered from.
type Project struct {
	Name        string
	Type        string
	Description string
	Workflows   string
	Date        string
}

// Inspect collects project facts from root. Missing README.md or CLAUDE.md
// leave the matching fields empty.
func Inspect(root string, now time.Time) (Project, error) {
	p := Project{
		Name: filepath.Base(root),
		Type: DetectType(root),
		Date: now.Format(time.DateOnly),
	}

	readme, err := readOptional(filepath.Join(root, "README.md"))
	if err != nil {
		return p, err
	}
	p.Description = ReadmeDescription(readme)

	claude, err := readOptional(filepath.Join(root, paths.ClaudeFileName))
	if err != nil {
		return p, err
	}
	p.Workflows = WorkflowsSection(claude)

	return p, nil
}

// Generate inspects root and renders AGENTS.md.
func Generate(root string, now time.Time) (string, error) {
	p, err := Inspect(root, now)
	if err != nil {
		return "", err
	}
	return Render(p)
}

// Render executes the AGENTS.md template for p.
func Render(p Project) (string, error) {
	var b strings.Builder
	if err := tmpl.Execute(&b, p); err != nil {
		return "", errors.Wrap(err, "rendering AGENTS.md")
	}
	return b.String(), nil
}

// DetectType names the project's ecosystem from marker files in root.
func DetectType(root string) string {
	for _, m := range typeMarkers {
		for _, f := range m.files {
			if fileutil.Exists(filepath.Join(root, f)) {
				return m.kind
			}
		}
	}
	return TypeGeneric
}

// ReadmeDescription returns the first non-blank line that is not a heading
// within the nine lines following the first "# " title.
func ReadmeDescription(readme string) string {
	lines := strings.Split(readme, "\n")
	for i, line := range lines {
		if !strings.HasPrefix(line, "# ") {
			continue
		}
		end := min(i+1+descriptionWindow, len(lines))
		for _, next := range lines[i+1 : end] {
			if strings.TrimSpace(next) != "" && !strings.HasPrefix(next, "#") {
				return strings.TrimSpace(next)
			}
		}
		return ""
	}
	return ""
}

// WorkflowsSection returns the "## Workflows" section of a CLAUDE.md, up to
// the next level-two heading, trimmed.
func WorkflowsSection(claudeMD string) string {
	start := strings.Index(claudeMD, workflowsHeading)
	if start < 0 {
		return ""
	}
	section := claudeMD[start:]
	if end := strings.Index(section[1:], "\n## "); end >= 0 {
		section = section[:end+1]
	}
	return strings.TrimSpace(section)
}

func readOptional(path string) (string, error) {
	if !fileutil.Exists(path) {
		return "", nil
	}
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return "", errors.Wrapf(err, "reading %s", filepath.Base(path))
	}
	return string(data), nil
}

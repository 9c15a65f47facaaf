package agentsmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func write(t *testing.T, root, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(content), 0o644))
}

func TestDetectType(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		want  string
	}{
		{"empty", nil, TypeGeneric},
		{"node", []string{"package.json"}, TypeNode},
		{"python requirements", []string{"requirements.txt"}, TypePython},
		{"python pyproject", []string{"pyproject.toml"}, TypePython},
		{"go", []string{"go.mod"}, TypeGo},
		{"rust", []string{"Cargo.toml"}, TypeRust},
		{"node wins over go", []string{"go.mod", "package.json"}, TypeNode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			for _, f := range tt.files {
				write(t, root, f, "")
			}
			assert.Equal(t, tt.want, DetectType(root))
		})
	}
}

func TestReadmeDescription(t *testing.T) {
	tests := []struct {
		name   string
		readme string
		want   string
	}{
		{"first paragraph", "# Title\n\nA tool that converts things.\n\nMore.", "A tool that converts things."},
		{"skips subheadings", "# Title\n## Badges\n\n  Indented text  \n", "Indented text"},
		{"no title", "Just text\n", ""},
		{"title beyond window", "# Title\n" + strings.Repeat("\n", 9) + "too far", ""},
		{"last line of window", "# Title\n" + strings.Repeat("\n", 8) + "just in", "just in"},
		{"headings in window skipped", "# One\n\n\n# Two\nsecond", "second"},
		{"hash without space is not a title", "#tag\ntext", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReadmeDescription(tt.readme))
		})
	}
}

func TestWorkflowsSection(t *testing.T) {
	tests := []struct {
		name   string
		claude string
		want   string
	}{
		{"absent", "# CLAUDE.md\n\n## Rules\n- x\n", ""},
		{
			"up to next heading",
			"# CLAUDE.md\n\n## Workflows\n\n- Plan first\n- Then cook\n\n## Rules\n- x\n",
			"## Workflows\n\n- Plan first\n- Then cook",
		},
		{
			"to end of file",
			"## Workflows\n- only\n",
			"## Workflows\n- only",
		},
		{
			"level three heading stays inside",
			"## Workflows\n### Primary\n- a\n## Next\n",
			"## Workflows\n### Primary\n- a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WorkflowsSection(tt.claude))
		})
	}
}

func TestGenerate_Defaults(t *testing.T) {
	root := filepath.Join(t.TempDir(), "my-project")
	require.NoError(t, os.Mkdir(root, 0o755))

	got, err := Generate(root, fixedNow)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got, "# AGENTS.md\n\n"))
	assert.Contains(t, got, "**Name:** my-project\n**Type:** Generic\n\n\n## Role & Responsibilities")
	assert.Contains(t, got, "## Workflows\n\n- Follow project-specific development guidelines")
	assert.Contains(t, got, "{\n  \"instructions\": [\"docs/*.md\", \".opencode/agents/*.md\"]\n}")
	assert.True(t, strings.HasSuffix(got, "*Generated by ClaudeKit OpenCode Generator*\n*Date: 2026-03-14*\n"))
}

func TestGenerate_FromProjectFiles(t *testing.T) {
	root := t.TempDir()
	write(t, root, "go.mod", "module example.com/x\n")
	write(t, root, "README.md", "# X\n\nConverts configs.\n")
	write(t, root, "CLAUDE.md", "# CLAUDE.md\n\n## Workflows\n\n- Custom flow\n\n## Other\n")

	got, err := Generate(root, fixedNow)
	require.NoError(t, err)

	assert.Contains(t, got, "**Type:** Go\n**Description:** Converts configs.\n\n## Role")
	assert.Contains(t, got, "## Workflows\n\n- Custom flow\n\n## Development Principles")
	assert.NotContains(t, got, "Follow project-specific development guidelines")
	assert.NotContains(t, got, "## Other")
}

func TestRender_Principles(t *testing.T) {
	got, err := Render(Project{Name: "n", Type: TypeRust, Date: "2026-01-01"})
	require.NoError(t, err)

	for _, want := range []string{"**YAGNI**", "**KISS**", "**DRY**", "└── system-architecture.md"} {
		assert.Contains(t, got, want)
	}
}

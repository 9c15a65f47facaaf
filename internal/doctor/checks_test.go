package doctor

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/ocgen/internal/backup"
	"github.com/thoreinstein/ocgen/internal/errors"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestSourceCheck(t *testing.T) {
	root := t.TempDir()
	c := &SourceCheck{Root: root}

	assert.Equal(t, SeverityError, c.Run(context.Background()).Status)

	write(t, filepath.Join(root, ".claude", "agents", "a.md"), "x")
	got := c.Run(context.Background())
	assert.Equal(t, SeverityPass, got.Status)
	assert.Contains(t, got.Message, "1 agents")
}

func TestConfigCheck(t *testing.T) {
	tests := []struct {
		name  string
		check ConfigCheck
		want  Severity
	}{
		{"defaults", ConfigCheck{}, SeverityInfo},
		{"loaded", ConfigCheck{Path: "ocgen.yaml"}, SeverityPass},
		{"broken", ConfigCheck{Path: "ocgen.yaml", Err: errors.New("bad key")}, SeverityError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.check.Run(context.Background()).Status)
		})
	}
}

func TestFrontmatterCheck(t *testing.T) {
	tests := []struct {
		name     string
		files    map[string]string
		want     Severity
		problems int
	}{
		{name: "empty dir", want: SeverityInfo},
		{
			name:  "valid",
			files: map[string]string{"a.md": "---\ndescription: \"A\"\nmode: subagent\n---\n\nbody"},
			want:  SeverityPass,
		},
		{
			name:     "missing description warns",
			files:    map[string]string{"a.md": "---\nmode: subagent\n---\n\nbody"},
			want:     SeverityWarning,
			problems: 1,
		},
		{
			name: "broken yaml is an error",
			files: map[string]string{
				"a.md": "---\ndescription: \"A\"\n---\n\nbody",
				"b.md": "---\ndescription: [unclosed\n---\n\nbody",
				"c.md": "no frontmatter",
			},
			want:     SeverityError,
			problems: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, content := range tt.files {
				write(t, filepath.Join(dir, name), content)
			}

			got := (&FrontmatterCheck{Dir: dir, Label: "agents"}).Run(context.Background())
			assert.Equal(t, tt.want, got.Status, got.Message)
			assert.Len(t, got.Problems, tt.problems)
		})
	}
}

func TestAgentsMDCheck(t *testing.T) {
	root := t.TempDir()
	c := &AgentsMDCheck{Root: root}
	assert.Equal(t, SeverityWarning, c.Run(context.Background()).Status)

	write(t, filepath.Join(root, "AGENTS.md"), "# AGENTS.md")
	assert.Equal(t, SeverityPass, c.Run(context.Background()).Status)
}

func TestBackupCheck(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, ".opencode")
	c := &BackupCheck{Dir: dir}

	assert.Equal(t, SeverityInfo, c.Run(context.Background()).Status, "no backup yet")

	write(t, filepath.Join(dir, "agents", "a.md"), "a")
	manifest, err := backup.NewManager().Snapshot(dir)
	require.NoError(t, err)
	assert.Equal(t, SeverityPass, c.Run(context.Background()).Status)

	write(t, filepath.Join(manifest.Dir, "agents", "a.md"), "tampered")
	got := c.Run(context.Background())
	assert.Equal(t, SeverityError, got.Status)
	assert.NotEmpty(t, got.FixHint)
}

func TestStandard(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, ".claude", "agents", "a.md"), "x")
	write(t, filepath.Join(root, "AGENTS.md"), "x")
	write(t, filepath.Join(root, ".opencode", "agents", "a.md"), "---\ndescription: \"A\"\n---\n\nx")

	r := NewRunner()
	for _, c := range Standard(root, "", nil) {
		r.AddCheck(c)
	}
	report := r.Run(context.Background())

	assert.Len(t, report.Results, 6)
	assert.False(t, report.HasErrors())
	assert.False(t, report.HasWarnings())
}

package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/ocgen/internal/errors"
)

func makeTree(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), ".opencode")
	files := map[string]string{
		"agents/planner.md": "---\ndescription: \"Plan\"\n---\n\nbody",
		"commands/fix.md":   "fix",
		"plugin/lib/ck.cjs": "module.exports = {}",
		"scripts/run.sh":    "#!/bin/sh\n",
		".env.example":      "KEY=",
	}
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	require.NoError(t, os.Chmod(filepath.Join(dir, "scripts", "run.sh"), 0o755))
	return dir
}

func TestSnapshot(t *testing.T) {
	dir := makeTree(t)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	mgr := NewManager(WithVersion("1.2.3"), WithClock(func() time.Time { return fixed }))

	manifest, err := mgr.Snapshot(dir)
	require.NoError(t, err)
	require.NotNil(t, manifest)

	assert.Equal(t, dir+".backup", manifest.Dir)
	assert.Equal(t, "1.2.3", manifest.ToolVersion)
	assert.Equal(t, fixed, manifest.CreatedAt)
	assert.Len(t, manifest.Files, 5)

	got, err := os.ReadFile(filepath.Join(manifest.Dir, "agents", "planner.md"))
	require.NoError(t, err)
	assert.Contains(t, string(got), "description")

	info, err := os.Stat(filepath.Join(manifest.Dir, "scripts", "run.sh"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())

	assert.NoError(t, mgr.Verify(manifest))
}

func TestSnapshot_MissingDir(t *testing.T) {
	manifest, err := NewManager().Snapshot(filepath.Join(t.TempDir(), ".opencode"))
	assert.NoError(t, err)
	assert.Nil(t, manifest)
}

func TestSnapshot_ReplacesPreviousBackup(t *testing.T) {
	dir := makeTree(t)
	stale := filepath.Join(dir+".backup", "stale.md")
	require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0o755))
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o644))

	_, err := NewManager().Snapshot(dir)
	require.NoError(t, err)

	_, err = os.Stat(stale)
	assert.True(t, os.IsNotExist(err), "previous backup contents should be removed")
}

func TestLoad(t *testing.T) {
	dir := makeTree(t)
	mgr := NewManager()

	_, err := mgr.Load(dir)
	assert.True(t, errors.Is(err, ErrNoBackup))

	taken, err := mgr.Snapshot(dir)
	require.NoError(t, err)

	loaded, err := mgr.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, taken.Dir, loaded.Dir)
	assert.Equal(t, taken.Files, loaded.Files)
	assert.NoError(t, mgr.Verify(loaded))
}

func TestVerify_DetectsTampering(t *testing.T) {
	tests := []struct {
		name   string
		tamper func(t *testing.T, backupDir string)
	}{
		{"modified file", func(t *testing.T, d string) {
			require.NoError(t, os.WriteFile(filepath.Join(d, "commands", "fix.md"), []byte("changed"), 0o644))
		}},
		{"removed file", func(t *testing.T, d string) {
			require.NoError(t, os.Remove(filepath.Join(d, ".env.example")))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mgr := NewManager()
			manifest, err := mgr.Snapshot(makeTree(t))
			require.NoError(t, err)

			tt.tamper(t, manifest.Dir)

			assert.True(t, errors.Is(mgr.Verify(manifest), ErrBackupCorrupted))
		})
	}
}

func TestVerify_Nil(t *testing.T) {
	assert.True(t, errors.Is(NewManager().Verify(nil), ErrNoBackup))
}

func TestRestore(t *testing.T) {
	dir := makeTree(t)
	mgr := NewManager()
	manifest, err := mgr.Snapshot(dir)
	require.NoError(t, err)

	planner := filepath.Join(dir, "agents", "planner.md")
	require.NoError(t, os.WriteFile(planner, []byte("overwritten"), 0o600))
	require.NoError(t, os.RemoveAll(filepath.Join(dir, "scripts")))

	require.NoError(t, mgr.Restore(manifest))

	got, err := os.ReadFile(planner)
	require.NoError(t, err)
	assert.Contains(t, string(got), "description")

	info, err := os.Stat(planner)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	info, err = os.Stat(filepath.Join(dir, "scripts", "run.sh"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

func TestRestore_RefusesCorruptedBackup(t *testing.T) {
	dir := makeTree(t)
	mgr := NewManager()
	manifest, err := mgr.Snapshot(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(manifest.Dir, "commands", "fix.md"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "commands", "fix.md"), []byte("current"), 0o644))

	assert.Error(t, mgr.Restore(manifest))

	got, _ := os.ReadFile(filepath.Join(dir, "commands", "fix.md"))
	assert.Equal(t, "current", string(got))
}

// Package backup copies a generated tree aside before it is overwritten.
//
// A snapshot of <dir> lives in the sibling <dir>.backup and carries a JSON
// manifest with a SHA-256 hash and mode for every file, so the copy can be
// verified or restored later. Only the latest snapshot is kept.
package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/ocgen/internal/paths"
	"github.com/thoreinstein/ocgen/pkg/fileutil"
)

// Manager creates, loads, verifies, and restores snapshots.
type Manager struct {
	version string
	now     func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithVersion records v as the tool version in manifests.
func WithVersion(v string) Option {
	return func(m *Manager) {
		m.version = v
	}
}

// WithClock overrides the manifest timestamp source.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// NewManager returns a Manager with the given options applied.
func NewManager(opts ...Option) *Manager {
	m := &Manager{version: "dev", now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Snapshot replaces <dir>.backup with a copy of dir and writes its manifest.
// It returns nil, nil when dir does not exist.
func (m *Manager) Snapshot(dir string) (*Manifest, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "stat %s", dir)
	}
	if !info.IsDir() {
		return nil, errors.Newf("%s is not a directory", dir)
	}

	dst := paths.BackupDir(dir)
	if err := os.RemoveAll(dst); err != nil {
		return nil, errors.Wrap(err, "removing previous backup")
	}
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating backup directory")
	}

	var files []File
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		hash, mode, err := copyFile(path, filepath.Join(dst, rel))
		if err != nil {
			return errors.Wrapf(err, "backing up %s", rel)
		}
		files = append(files, File{RelPath: filepath.ToSlash(rel), SHA256Hash: hash, Mode: mode})
		return nil
	})
	if err != nil {
		return nil, err
	}

	manifest := &Manifest{
		Version:     ManifestVersion,
		CreatedAt:   m.now().UTC(),
		Source:      dir,
		Files:       files,
		ToolVersion: m.version,
		Dir:         dst,
	}
	if err := fileutil.AtomicWriteJSON(filepath.Join(dst, ManifestName), manifest); err != nil {
		return nil, errors.Wrap(err, "writing manifest")
	}
	return manifest, nil
}

// Load reads the manifest of the backup belonging to dir.
func (m *Manager) Load(dir string) (*Manifest, error) {
	backupDir := paths.BackupDir(dir)
	data, err := os.ReadFile(filepath.Join(backupDir, ManifestName))
	if os.IsNotExist(err) {
		return nil, errors.Wrapf(ErrNoBackup, "%s", backupDir)
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading manifest")
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, errors.Wrap(err, "parsing manifest")
	}
	manifest.Dir = backupDir
	return &manifest, nil
}

// Verify re-hashes every file listed in manifest.
func (m *Manager) Verify(manifest *Manifest) error {
	if manifest == nil {
		return ErrNoBackup
	}
	for _, f := range manifest.Files {
		hash, err := hashFile(filepath.Join(manifest.Dir, filepath.FromSlash(f.RelPath)))
		if err != nil {
			return errors.Wrapf(ErrBackupCorrupted, "%s: %v", f.RelPath, err)
		}
		if hash != f.SHA256Hash {
			return errors.Wrapf(ErrBackupCorrupted, "%s: hash mismatch", f.RelPath)
		}
	}
	return nil
}

// Restore verifies manifest and copies every file back under its Source,
// restoring recorded permissions. Files created since the snapshot are left
// in place.
func (m *Manager) Restore(manifest *Manifest) error {
	if err := m.Verify(manifest); err != nil {
		return err
	}
	for _, f := range manifest.Files {
		rel := filepath.FromSlash(f.RelPath)
		target := filepath.Join(manifest.Source, rel)
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return errors.Wrapf(err, "creating directory for %s", f.RelPath)
		}
		if _, _, err := copyFile(filepath.Join(manifest.Dir, rel), target); err != nil {
			return errors.Wrapf(err, "restoring %s", f.RelPath)
		}
		if err := os.Chmod(target, f.Mode.Perm()); err != nil {
			return errors.Wrapf(err, "setting permissions for %s", f.RelPath)
		}
	}
	return nil
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// copyFile copies src to dst, hashing while it copies, and returns the hash
// and the source permission bits. Parent directories are created.
func copyFile(src, dst string) (string, fs.FileMode, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", 0, errors.Wrap(err, "opening source file")
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return "", 0, errors.Wrap(err, "stat source file")
	}
	mode := info.Mode().Perm()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", 0, errors.Wrap(err, "creating parent directory")
	}
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return "", 0, errors.Wrap(err, "creating destination file")
	}

	h := sha256.New()
	if _, err := io.Copy(io.MultiWriter(out, h), in); err != nil {
		out.Close()
		return "", 0, errors.Wrap(err, "copying file")
	}
	if err := out.Close(); err != nil {
		return "", 0, errors.Wrap(err, "closing destination file")
	}
	if err := os.Chmod(dst, mode); err != nil {
		return "", 0, errors.Wrap(err, "setting permissions")
	}
	return hex.EncodeToString(h.Sum(nil)), mode, nil
}

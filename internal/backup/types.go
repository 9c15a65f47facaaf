package backup

import (
	"io/fs"
	"time"

	"github.com/cockroachdb/errors"
)

// ManifestVersion is the manifest format version.
const ManifestVersion = 1

// ManifestName is the manifest file written at the root of a backup.
const ManifestName = ".ocgen-backup.json"

var (
	// ErrNoBackup indicates there is no backup directory or manifest.
	ErrNoBackup = errors.New("no backup found")

	// ErrBackupCorrupted indicates a backed-up file no longer matches its
	// recorded hash, or is missing.
	ErrBackupCorrupted = errors.New("backup corrupted")
)

// Manifest describes one snapshot.
type Manifest struct {
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`

	// Source is the directory that was copied.
	Source string `json:"source"`

	Files []File `json:"files"`

	// ToolVersion is the ocgen version that wrote the backup.
	ToolVersion string `json:"tool_version"`

	// Dir is where the backup lives. Filled in on load, not stored.
	Dir string `json:"-"`
}

// File records one backed-up file.
type File struct {
	// RelPath is slash-separated and relative to both Source and Dir.
	RelPath    string      `json:"rel_path"`
	SHA256Hash string      `json:"sha256_hash"`
	Mode       fs.FileMode `json:"mode"`
}

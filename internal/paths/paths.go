// Package paths resolves the project layout ocgen reads from and writes to.
//
//	<root>/.claude/      source tree
//	<root>/.opencode/    generated tree
//	<root>/AGENTS.md     generated instructions
//
// The project root is the nearest ancestor holding a .claude directory, a
// .git entry, or a CLAUDE.md file. User configuration lives under the XDG config home.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Well-known names inside a project root.
const (
	ClaudeDirName   = ".claude"
	OpenCodeDirName = ".opencode"
	AgentsFileName  = "AGENTS.md"
	ClaudeFileName  = "CLAUDE.md"
	AppName         = "ocgen"
)

// rootMarkers identify a project root.
var rootMarkers = []string{ClaudeDirName, ".git", ClaudeFileName}

// FindProjectRoot walks up from start and returns the first directory that
// contains a root marker. When none is found the absolute start is returned.
func FindProjectRoot(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for dir := abs; ; {
		for _, marker := range rootMarkers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return abs, nil
		}
		dir = parent
	}
}

// ClaudeDir returns <root>/.claude.
func ClaudeDir(root string) string {
	return filepath.Join(root, ClaudeDirName)
}

// OpenCodeDir returns <root>/.opencode.
func OpenCodeDir(root string) string {
	return filepath.Join(root, OpenCodeDirName)
}

// AgentsFile returns <root>/AGENTS.md.
func AgentsFile(root string) string {
	return filepath.Join(root, AgentsFileName)
}

// BackupDir returns the sibling directory a tree is copied to before it is
// overwritten, e.g. .opencode -> .opencode.backup.
func BackupDir(dir string) string {
	return filepath.Clean(dir) + ".backup"
}

// ConfigHome returns the XDG config home.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
func ConfigHome() string {
	return xdg.ConfigHome
}

// ConfigDir returns the user-level ocgen config directory.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

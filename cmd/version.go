// Package cmd holds build metadata for the ocgen binary, set with
// -ldflags "-X github.com/thoreinstein/ocgen/cmd.Version=...".
package cmd

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// VersionString renders the build metadata on one line.
func VersionString() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, Date)
}

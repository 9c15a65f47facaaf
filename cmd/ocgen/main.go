// Package main is the entry point for the ocgen CLI.
package main

import (
	"os"

	"github.com/thoreinstein/ocgen/cmd/ocgen/commands"
	"github.com/thoreinstein/ocgen/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		commands.PrintError(os.Stderr, err)
		os.Exit(errors.ExitCode(err))
	}
}

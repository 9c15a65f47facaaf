// Package errors provides error handling conventions for the ocgen CLI.
//
// Wrapping helpers are re-exported from github.com/cockroachdb/errors so
// callers need a single import for both wrapping and the CLI exit types.
//
// # Exit Codes
//
//   - ExitSuccess (0): the run completed
//   - ExitUser (1): bad input, flags, or configuration
//   - ExitSystem (2): I/O or permission failures
//
// # ExitError
//
// [ExitError] carries an exit code and an optional suggestion:
//
//	err := ocgenerrors.NewUserError(ocgenerrors.ErrNoClaudeDir, "Run ocgen from a Claude Code project")
//	var exitErr *ocgenerrors.ExitError
//	if errors.As(err, &exitErr) {
//	    os.Exit(exitErr.Code)
//	}
package errors

// Package logging provides structured logging for the ocgen CLI using slog.
//
// Text output goes through [Handler], which colorizes levels and keys when
// writing to a terminal. JSON output uses the standard library handler.
// [MultiHandler] fans records out to several handlers, which is how the
// --log-file flag mirrors console output into a JSON file.
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//		Level:  logging.LevelFromVerbosity(1),
//		Format: logging.FormatText,
//	})
//	ctx = logging.NewContext(ctx, logger)
//	logging.FromContext(ctx).Info("converted agent", "name", "planner")
//
// # Testing
//
// [ForTest] routes log output through t.Log so it only shows up for failing
// tests or with -v.
package logging

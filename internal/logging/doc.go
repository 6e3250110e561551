// Package logging assembles structured slog loggers and formatting helpers used
// across shorts commands.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so command code can tag log
// lines with the run identifier and manifest path. The package also provides a
// no-op logger for tests and library code that is handed no logger.
//
// Loggers write to stderr by default so stdout stays reserved for command
// output such as render-plan JSON.
package logging

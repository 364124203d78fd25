// Package logging assembles structured slog loggers and formatting helpers used
// across trimline.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context helpers so command code can tag log lines with
// the track being edited. The package also provides a no-op logger for tests
// and for library code whose caller did not supply one.
package logging

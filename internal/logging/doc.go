// Package logging assembles the structured slog loggers fq uses for
// diagnostics.
//
// It owns the console and JSON handlers and the level plumbing. Diagnostics
// are written to stderr, or appended to the configured log file, and never to
// stdout, which carries job output. The package also provides a no-op logger for tests and wiring code that cannot
// fail.
package logging

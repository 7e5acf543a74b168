// Package logging assembles the slog loggers used by the companyscout CLI.
//
// A run logs to the console (human or JSON, coloured only on terminals) and,
// when a log directory is configured, to a per-run JSON file. Context helpers
// tag lines with the run ID, stage, and category so a lookup or scrape can be
// followed across both outputs. NewNop serves tests and wiring code that
// cannot fail.
package logging

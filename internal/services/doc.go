// Package services defines shared utilities consumed by the pipeline stages
// and their external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, stage names, category slugs, and
//     correlation identifiers for logging.
//   - Structured error markers plus the Wrap helper so callers can tell
//     retryable upstream failures from bad input or configuration.
package services

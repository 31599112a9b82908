// Package services defines shared helpers consumed by the transcript pipeline
// and the command line.
//
// Key responsibilities:
//   - Context helpers that stamp video IDs, stage names, and per-lookup
//     correlation identifiers for logging.
//   - Structured error markers plus the Wrap helper that translate failures
//     into consistent exit codes.
package services

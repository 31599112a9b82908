// Package logging assembles structured slog loggers used across ytcaptions.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so pipeline code can tag log
// lines with video IDs, stage names, and lookup IDs. The package also provides
// a no-op logger for tests and library callers that do not want output.
package logging

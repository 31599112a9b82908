// Package main hosts the ytcaptions CLI entrypoint and command graph.
//
// The Cobra-based command tree turns terminal invocations into transcript
// lookups: listing the caption tracks of a video, fetching and formatting a
// transcript, and scaffolding configuration. Configuration resolution,
// logging setup and client construction live in the command context so
// subcommands only map flags onto queries.
package main

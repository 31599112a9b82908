package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"ytcaptions/internal/config"
)

// Options describes logger construction parameters.
type Options struct {
	Level  string
	Format string
	// OutputPaths lists "stderr", "stdout" or file paths. Empty means stderr.
	OutputPaths []string
	Development bool
}

// New builds a slog logger for opts.
func New(opts Options) (*slog.Logger, error) {
	level := new(slog.LevelVar)
	level.Set(parseLevel(opts.Level))
	addSource := opts.Development || level.Level() <= slog.LevelDebug

	var build func(io.Writer, *slog.LevelVar, bool) slog.Handler
	switch format := strings.ToLower(strings.TrimSpace(opts.Format)); format {
	case "", "console":
		build = newConsoleHandler
	case "json":
		build = newJSONHandler
	default:
		return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}

	out, err := openOutputs(opts.OutputPaths)
	if err != nil {
		return nil, err
	}
	return slog.New(build(out, level, addSource)), nil
}

// NewFromConfig builds the CLI logger. Logs always go to stderr so
// transcripts on stdout stay clean; Logging.Dir adds a log file.
func NewFromConfig(cfg *config.Config) (*slog.Logger, error) {
	if cfg == nil {
		return New(Options{})
	}
	outputs := []string{"stderr"}
	if path := cfg.LogFilePath(); path != "" {
		outputs = append(outputs, path)
	}
	return New(Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: outputs,
	})
}

func parseLevel(level string) slog.Level {
	var parsed slog.Level
	switch l := strings.ToLower(strings.TrimSpace(level)); l {
	case "warning":
		return slog.LevelWarn
	case "debug", "info", "warn", "error":
		if err := parsed.UnmarshalText([]byte(l)); err == nil {
			return parsed
		}
	}
	return slog.LevelInfo
}

func openOutputs(paths []string) (io.Writer, error) {
	targets := make([]string, 0, len(paths))
	for _, p := range paths {
		if p = strings.TrimSpace(p); p != "" && !slices.Contains(targets, p) {
			targets = append(targets, p)
		}
	}
	if len(targets) == 0 {
		return os.Stderr, nil
	}

	writers := make([]io.Writer, 0, len(targets))
	for _, target := range targets {
		w, err := openOutput(target)
		if err != nil {
			return nil, err
		}
		writers = append(writers, w)
	}
	if len(writers) == 1 {
		return writers[0], nil
	}
	return io.MultiWriter(writers...), nil
}

func openOutput(target string) (io.Writer, error) {
	switch target {
	case "stderr":
		return os.Stderr, nil
	case "stdout":
		return os.Stdout, nil
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	file, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", target, err)
	}
	return file, nil
}

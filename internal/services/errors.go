package services

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Markers classify failures for the command line. Wrap attaches one.
var (
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrNotFound      = errors.New("not found")
	ErrTransient     = errors.New("transient failure")
)

// Exit codes reported by the command line.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitUsage    = 2
	ExitNotFound = 3
)

var exitCodes = []struct {
	marker error
	code   int
}{
	{ErrValidation, ExitUsage},
	{ErrConfiguration, ExitUsage},
	{ErrNotFound, ExitNotFound},
}

// Wrap tags err with marker, ErrTransient when nil, and prefixes it with the
// non-empty parts of stage, operation and message.
func Wrap(marker error, stage, operation, message string, err error) error {
	if marker == nil {
		marker = ErrTransient
	}
	parts := []string{strings.TrimSpace(stage), strings.TrimSpace(operation), strings.TrimSpace(message)}
	detail := strings.Join(slices.DeleteFunc(parts, func(s string) bool { return s == "" }), ": ")
	if detail == "" {
		detail = "lookup failure"
	}
	if err == nil {
		return fmt.Errorf("%w: %s", marker, detail)
	}
	return fmt.Errorf("%w: %s: %w", marker, detail, err)
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	for _, m := range exitCodes {
		if errors.Is(err, m.marker) {
			return m.code
		}
	}
	return ExitFailure
}

package formatter

import (
	"fmt"
	"io"
	"strings"

	"ytcaptions/internal/transcript"
)

// Formatter writes transcripts to w.
type Formatter interface {
	Format(w io.Writer, results []transcript.Result) error
}

// Names lists the registered formats.
var Names = []string{"text", "json", "srt", "webvtt", "pretty"}

// New returns the formatter registered under name.
func New(name string) (Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "text":
		return TextFormatter{}, nil
	case "json":
		return JSONFormatter{Indent: "  "}, nil
	case "srt":
		return SRTFormatter{}, nil
	case "webvtt", "vtt":
		return WebVTTFormatter{}, nil
	case "pretty":
		return PrettyFormatter{}, nil
	default:
		return nil, fmt.Errorf("formatter: unknown format %q (want one of %s)", name, strings.Join(Names, ", "))
	}
}

// Extension returns the file extension conventionally used for format name.
func Extension(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return "json"
	case "srt":
		return "srt"
	case "webvtt", "vtt":
		return "vtt"
	default:
		return "txt"
	}
}

// transcriptSeparator goes between consecutive transcripts in the text based
// formats.
const transcriptSeparator = "\n\n\n"

func writeJoined(w io.Writer, results []transcript.Result, render func(lines []transcript.Line) string) error {
	parts := make([]string, 0, len(results))
	for _, r := range results {
		parts = append(parts, render(r.Lines))
	}
	out := strings.Join(parts, transcriptSeparator)
	if out == "" {
		return nil
	}
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	_, err := io.WriteString(w, out)
	return err
}

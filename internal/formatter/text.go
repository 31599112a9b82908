package formatter

import (
	"io"
	"strings"

	"ytcaptions/internal/transcript"
)

// TextFormatter writes the text of each cue on its own line.
type TextFormatter struct{}

func (TextFormatter) Format(w io.Writer, results []transcript.Result) error {
	return writeJoined(w, results, textBody)
}

func textBody(lines []transcript.Line) string {
	texts := make([]string, 0, len(lines))
	for _, l := range lines {
		texts = append(texts, l.Text)
	}
	return strings.Join(texts, "\n")
}

package formatter

import (
	"encoding/json"
	"io"

	"ytcaptions/internal/transcript"
)

// JSONFormatter writes the cues as a JSON array of {text,start,duration}
// objects. Several transcripts become an array of such arrays.
type JSONFormatter struct {
	Indent string
}

func (f JSONFormatter) Format(w io.Writer, results []transcript.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", f.Indent)
	if len(results) == 1 {
		return enc.Encode(nonNil(results[0].Lines))
	}
	all := make([][]transcript.Line, 0, len(results))
	for _, r := range results {
		all = append(all, nonNil(r.Lines))
	}
	return enc.Encode(all)
}

func nonNil(lines []transcript.Line) []transcript.Line {
	if lines == nil {
		return []transcript.Line{}
	}
	return lines
}

package formatter

import (
	"fmt"
	"io"
	"strings"

	"ytcaptions/internal/transcript"
)

// SRTFormatter writes SubRip cues.
type SRTFormatter struct{}

func (SRTFormatter) Format(w io.Writer, results []transcript.Result) error {
	return writeJoined(w, results, func(lines []transcript.Line) string {
		return timedBody(lines, ',', func(i int, timing, text string) string {
			return fmt.Sprintf("%d\n%s\n%s", i+1, timing, text)
		})
	})
}

// WebVTTFormatter writes a WebVTT document.
type WebVTTFormatter struct{}

func (WebVTTFormatter) Format(w io.Writer, results []transcript.Result) error {
	return writeJoined(w, results, func(lines []transcript.Line) string {
		return "WEBVTT\n\n" + timedBody(lines, '.', func(_ int, timing, text string) string {
			return timing + "\n" + text
		})
	})
}

func timedBody(lines []transcript.Line, sep byte, block func(i int, timing, text string) string) string {
	blocks := make([]string, 0, len(lines))
	for i, l := range lines {
		end := cueEnd(lines, i)
		timing := formatTimestamp(l.Start, sep) + " --> " + formatTimestamp(end, sep)
		blocks = append(blocks, block(i, timing, l.Text))
	}
	return strings.Join(blocks, "\n\n")
}

// cueEnd clips a cue at the start of the following one so cues never
// overlap.
func cueEnd(lines []transcript.Line, i int) float64 {
	end := lines[i].End()
	if i+1 < len(lines) && lines[i+1].Start < end {
		end = lines[i+1].Start
	}
	return end
}

func formatTimestamp(seconds float64, sep byte) string {
	if seconds < 0 {
		seconds = 0
	}
	msTotal := int(seconds*1000 + 0.5)
	hours := msTotal / 3_600_000
	msTotal %= 3_600_000
	minutes := msTotal / 60_000
	msTotal %= 60_000
	secs := msTotal / 1_000
	millis := msTotal % 1_000
	return fmt.Sprintf("%02d:%02d:%02d%c%03d", hours, minutes, secs, sep, millis)
}

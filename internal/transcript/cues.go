package transcript

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Line is one timed caption cue. Times are in seconds.
type Line struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// End returns Start+Duration.
func (l Line) End() float64 { return l.Start + l.Duration }

// formattingTags survive tag stripping when formatting is preserved.
var formattingTags = map[string]struct{}{
	"strong": {}, "em": {}, "b": {}, "i": {}, "mark": {},
	"small": {}, "del": {}, "ins": {}, "sub": {}, "sup": {},
}

var (
	anyTagRegex  = regexp.MustCompile(`</?[A-Za-z][A-Za-z0-9]*\b[^>]*>`)
	namedTagExpr = regexp.MustCompile(`<(/?)([A-Za-z][A-Za-z0-9]*)\b[^>]*>`)
)

// FetchCues downloads and decodes the timed text behind h. A failed request
// is retried once with an English locale header.
func FetchCues(ctx context.Context, session *Session, h Handle, preserveFormatting bool) ([]Line, error) {
	resp, err := session.Do(ctx, Request{URL: h.url})
	if err != nil {
		return nil, requestFailed(h.videoID, err)
	}
	if !resp.OK() {
		resp, err = session.Do(ctx, Request{URL: h.url, Header: englishHeader()})
		if err != nil {
			return nil, requestFailed(h.videoID, err)
		}
		if !resp.OK() {
			return nil, statusFailed(h.videoID, resp.Status, resp.Text)
		}
	}

	lines, err := DecodeCues(resp.Text, preserveFormatting)
	if err != nil {
		var terr *Error
		if errors.As(err, &terr) && terr.VideoID == "" {
			terr.VideoID = h.videoID
		}
		return nil, err
	}
	return lines, nil
}

// DecodeCues parses a timedtext document into lines in document order.
// <text> elements without content are skipped. Markup inside a cue is
// removed, except for basic formatting tags when preserveFormatting is set.
func DecodeCues(body string, preserveFormatting bool) ([]Line, error) {
	dec := xml.NewDecoder(strings.NewReader(body))
	dec.Strict = false
	dec.AutoClose = xml.HTMLAutoClose
	dec.Entity = xml.HTMLEntity

	lines := []Line{}
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, cueDecodeFailed(err)
		}
		el, ok := tok.(xml.StartElement)
		if !ok || el.Name.Local != "text" {
			continue
		}

		start, dur, err := cueTiming(el)
		if err != nil {
			return nil, cueDecodeFailed(err)
		}
		raw, err := elementContent(dec)
		if err != nil {
			return nil, cueDecodeFailed(err)
		}
		if raw == "" {
			continue
		}
		lines = append(lines, Line{
			Text:     stripTags(html.UnescapeString(raw), preserveFormatting),
			Start:    start,
			Duration: dur,
		})
	}
	return lines, nil
}

func cueDecodeFailed(err error) *Error {
	return &Error{Kind: KindRequestFailed, Reason: fmt.Sprintf("decode timedtext: %v", err), Err: err}
}

func cueTiming(el xml.StartElement) (float64, float64, error) {
	var (
		start, dur float64
		haveStart  bool
		err        error
	)
	for _, attr := range el.Attr {
		switch attr.Name.Local {
		case "start":
			start, err = strconv.ParseFloat(strings.TrimSpace(attr.Value), 64)
			if err != nil {
				return 0, 0, fmt.Errorf("invalid start %q", attr.Value)
			}
			haveStart = true
		case "dur":
			dur, err = strconv.ParseFloat(strings.TrimSpace(attr.Value), 64)
			if err != nil {
				return 0, 0, fmt.Errorf("invalid dur %q", attr.Value)
			}
		}
	}
	if !haveStart {
		return 0, 0, errors.New("text element without start")
	}
	return start, dur, nil
}

// elementContent consumes tokens up to the end of the current element and
// returns its character data with nested tags written back out.
func elementContent(dec *xml.Decoder) (string, error) {
	var b strings.Builder
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return b.String(), nil
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			b.Write(t)
		case xml.StartElement:
			depth++
			b.WriteString("<" + t.Name.Local)
			for _, attr := range t.Attr {
				b.WriteString(" " + attr.Name.Local + `="` + html.EscapeString(attr.Value) + `"`)
			}
			b.WriteString(">")
		case xml.EndElement:
			depth--
			if depth > 0 {
				b.WriteString("</" + t.Name.Local + ">")
			}
		}
	}
	return b.String(), nil
}

func stripTags(text string, preserveFormatting bool) string {
	if !preserveFormatting {
		return anyTagRegex.ReplaceAllString(text, "")
	}
	return namedTagExpr.ReplaceAllStringFunc(text, func(tag string) string {
		m := namedTagExpr.FindStringSubmatch(tag)
		if _, ok := formattingTags[strings.ToLower(m[2])]; ok {
			return tag
		}
		return ""
	})
}

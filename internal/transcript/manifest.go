package transcript

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	captionsMarker     = `"captions":`
	videoDetailsMarker = `,"videoDetails`
	recaptchaMarker    = `class="g-recaptcha"`
	playabilityMarker  = `"playabilityStatus":`
)

// Manifest is the caption metadata embedded in a watch page.
type Manifest struct {
	CaptionTracks        []CaptionTrack
	TranslationLanguages []TranslationLanguage
}

// CaptionTrack describes one published caption track.
type CaptionTrack struct {
	BaseURL        string
	Name           string
	LanguageCode   string
	Kind           string
	IsTranslatable bool
}

// TranslationLanguage is a target the platform can machine-translate into.
type TranslationLanguage struct {
	Language     string `json:"language"`
	LanguageCode string `json:"language_code"`
}

type rawText struct {
	SimpleText string `json:"simpleText"`
	Runs       []struct {
		Text string `json:"text"`
	} `json:"runs"`
}

func (t rawText) String() string {
	if t.SimpleText != "" {
		return t.SimpleText
	}
	var b strings.Builder
	for _, run := range t.Runs {
		b.WriteString(run.Text)
	}
	return b.String()
}

type rawCaptions struct {
	Renderer *struct {
		CaptionTracks []struct {
			BaseURL        string  `json:"baseUrl"`
			Name           rawText `json:"name"`
			LanguageCode   string  `json:"languageCode"`
			Kind           string  `json:"kind"`
			IsTranslatable bool    `json:"isTranslatable"`
		} `json:"captionTracks"`
		TranslationLanguages []struct {
			LanguageCode string  `json:"languageCode"`
			LanguageName rawText `json:"languageName"`
		} `json:"translationLanguages"`
	} `json:"playerCaptionsTracklistRenderer"`
}

// signal maps an observable property of a page without captions to the
// failure it indicates. Signals are evaluated in order; the first match wins.
type signal struct {
	kind  Kind
	match func(html, videoID string) bool
}

var missingCaptionSignals = []signal{
	{kind: KindInvalidVideoID, match: func(_, videoID string) bool { return LooksLikeURL(videoID) }},
	{kind: KindTooManyRequests, match: func(html, _ string) bool { return strings.Contains(html, recaptchaMarker) }},
	{kind: KindVideoUnavailable, match: func(html, _ string) bool { return !strings.Contains(html, playabilityMarker) }},
}

func classifyMissingCaptions(html, videoID string) Kind {
	for _, s := range missingCaptionSignals {
		if s.match(html, videoID) {
			return s.kind
		}
	}
	return KindTranscriptsDisabled
}

// ExtractManifest carves the caption manifest out of a watch page.
func ExtractManifest(html, videoID string) (*Manifest, error) {
	_, rest, found := strings.Cut(html, captionsMarker)
	if !found {
		return nil, newError(classifyMissingCaptions(html, videoID), videoID, "")
	}
	if idx := strings.Index(rest, videoDetailsMarker); idx >= 0 {
		rest = rest[:idx]
	}

	var raw rawCaptions
	if err := json.NewDecoder(strings.NewReader(rest)).Decode(&raw); err != nil {
		return nil, &Error{
			Kind:    KindTranscriptsDisabled,
			VideoID: videoID,
			Reason:  fmt.Sprintf("decode captions json: %v", err),
			Err:     err,
		}
	}
	if raw.Renderer == nil {
		return nil, newError(KindTranscriptsDisabled, videoID, "")
	}
	if len(raw.Renderer.CaptionTracks) == 0 {
		return nil, newError(KindNoTranscriptAvailable, videoID, "")
	}

	manifest := &Manifest{
		CaptionTracks:        make([]CaptionTrack, 0, len(raw.Renderer.CaptionTracks)),
		TranslationLanguages: make([]TranslationLanguage, 0, len(raw.Renderer.TranslationLanguages)),
	}
	for _, track := range raw.Renderer.CaptionTracks {
		manifest.CaptionTracks = append(manifest.CaptionTracks, CaptionTrack{
			BaseURL:        track.BaseURL,
			Name:           track.Name.String(),
			LanguageCode:   track.LanguageCode,
			Kind:           track.Kind,
			IsTranslatable: track.IsTranslatable,
		})
	}
	for _, lang := range raw.Renderer.TranslationLanguages {
		manifest.TranslationLanguages = append(manifest.TranslationLanguages, TranslationLanguage{
			Language:     lang.LanguageName.String(),
			LanguageCode: lang.LanguageCode,
		})
	}
	return manifest, nil
}

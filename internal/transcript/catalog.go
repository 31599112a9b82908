package transcript

import (
	"encoding/json"
	"slices"
	"strings"
)

// Handle identifies one selectable caption track. Handles are values; Translate
// returns a new Handle and leaves the receiver untouched.
type Handle struct {
	videoID              string
	url                  string
	language             string
	languageCode         string
	generated            bool
	translationLanguages []TranslationLanguage
}

func (h Handle) VideoID() string      { return h.videoID }
func (h Handle) URL() string          { return h.url }
func (h Handle) Language() string     { return h.language }
func (h Handle) LanguageCode() string { return h.languageCode }
func (h Handle) IsGenerated() bool    { return h.generated }

// TranslationLanguages returns a copy of the targets this track can be
// translated into.
func (h Handle) TranslationLanguages() []TranslationLanguage {
	return slices.Clone(h.translationLanguages)
}

// IsTranslatable reports whether any translation target exists.
func (h Handle) IsTranslatable() bool { return len(h.translationLanguages) > 0 }

func (h Handle) String() string {
	return h.languageCode + " (\"" + h.language + "\")" + translatableSuffix(h)
}

func translatableSuffix(h Handle) string {
	if h.IsTranslatable() {
		return "[TRANSLATABLE]"
	}
	return ""
}

// MarshalJSON renders the public view of a handle.
func (h Handle) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		VideoID        string `json:"video_id"`
		Language       string `json:"language"`
		LanguageCode   string `json:"language_code"`
		IsGenerated    bool   `json:"is_generated"`
		IsTranslatable bool   `json:"is_translatable"`
	}{h.videoID, h.language, h.languageCode, h.generated, h.IsTranslatable()})
}

// handleSet is an insertion-ordered map from language code to handle.
type handleSet struct {
	order  []string
	byCode map[string]Handle
}

func newHandleSet() *handleSet {
	return &handleSet{byCode: make(map[string]Handle)}
}

func (s *handleSet) put(h Handle) {
	if _, ok := s.byCode[h.languageCode]; !ok {
		s.order = append(s.order, h.languageCode)
	}
	s.byCode[h.languageCode] = h
}

func (s *handleSet) remove(code string) {
	if _, ok := s.byCode[code]; !ok {
		return
	}
	delete(s.byCode, code)
	s.order = slices.DeleteFunc(s.order, func(c string) bool { return c == code })
}

func (s *handleSet) get(code string) (Handle, bool) {
	h, ok := s.byCode[code]
	return h, ok
}

func (s *handleSet) list() []Handle {
	out := make([]Handle, 0, len(s.order))
	for _, code := range s.order {
		out = append(out, s.byCode[code])
	}
	return out
}

// Catalog indexes every caption track of a video by language, split into
// manually created and generated tracks. A code lives in at most one of the
// two groups.
type Catalog struct {
	videoID              string
	manual               *handleSet
	generated            *handleSet
	translationLanguages []TranslationLanguage
}

// BuildCatalog turns a manifest into a Catalog. Tracks of kind "asr" are
// generated; everything else counts as manually created. When a code repeats,
// the later track wins.
func BuildCatalog(videoID string, manifest *Manifest) *Catalog {
	c := &Catalog{
		videoID:   videoID,
		manual:    newHandleSet(),
		generated: newHandleSet(),
	}
	if manifest == nil {
		return c
	}
	c.translationLanguages = slices.Clone(manifest.TranslationLanguages)

	for _, track := range manifest.CaptionTracks {
		h := Handle{
			videoID:      videoID,
			url:          track.BaseURL,
			language:     track.Name,
			languageCode: track.LanguageCode,
			generated:    track.Kind == "asr",
		}
		if track.IsTranslatable {
			h.translationLanguages = slices.Clone(manifest.TranslationLanguages)
		}
		if h.generated {
			c.manual.remove(h.languageCode)
			c.generated.put(h)
		} else {
			c.generated.remove(h.languageCode)
			c.manual.put(h)
		}
	}
	return c
}

func (c *Catalog) VideoID() string { return c.videoID }

// Manual returns the manually created handles in manifest order.
func (c *Catalog) Manual() []Handle { return c.manual.list() }

// Generated returns the generated handles in manifest order.
func (c *Catalog) Generated() []Handle { return c.generated.list() }

// Handles returns manual handles followed by generated ones, each group
// sorted by language code.
func (c *Catalog) Handles() []Handle {
	byCode := func(a, b Handle) int { return strings.Compare(a.languageCode, b.languageCode) }
	manual := c.Manual()
	slices.SortStableFunc(manual, byCode)
	generated := c.Generated()
	slices.SortStableFunc(generated, byCode)
	return append(manual, generated...)
}

// TranslationLanguages returns a copy of the video's translation targets.
func (c *Catalog) TranslationLanguages() []TranslationLanguage {
	return slices.Clone(c.translationLanguages)
}

// Len is the number of distinct tracks.
func (c *Catalog) Len() int { return len(c.manual.order) + len(c.generated.order) }

// String renders the human-readable listing of the catalog.
func (c *Catalog) String() string {
	var b strings.Builder
	b.WriteString("For this video (")
	b.WriteString(c.videoID)
	b.WriteString(") transcripts are available in the following languages:\n\n")

	b.WriteString("(MANUALLY CREATED)\n")
	writeHandleLines(&b, c.Manual())
	b.WriteString("\n(GENERATED)\n")
	writeHandleLines(&b, c.Generated())
	b.WriteString("\n(TRANSLATION LANGUAGES)\n")
	if len(c.translationLanguages) == 0 {
		b.WriteString("None")
	}
	for i, lang := range c.translationLanguages {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(" - " + lang.Language + " (" + lang.LanguageCode + ")")
	}
	return b.String()
}

func writeHandleLines(b *strings.Builder, handles []Handle) {
	if len(handles) == 0 {
		b.WriteString("None\n")
		return
	}
	for _, h := range handles {
		b.WriteString(" - " + h.language + " (" + h.languageCode + ")" + translatableSuffix(h) + "\n")
	}
}

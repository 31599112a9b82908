package transcript

import (
	"net/url"
	"slices"
	"strings"
)

// Translate derives a handle whose track is machine-translated into code.
// The result is always flagged generated and cannot be translated further.
func (h Handle) Translate(code string) (Handle, error) {
	if !h.IsTranslatable() {
		return Handle{}, newError(KindNotTranslatable, h.videoID, "")
	}
	idx := slices.IndexFunc(h.translationLanguages, func(l TranslationLanguage) bool {
		return l.LanguageCode == code
	})
	if idx < 0 {
		return Handle{}, newError(KindTranslationLanguageNotAvailable, h.videoID, "")
	}

	return Handle{
		videoID:      h.videoID,
		url:          appendQuery(h.url, "tlang", code),
		language:     h.translationLanguages[idx].Language,
		languageCode: code,
		generated:    true,
	}, nil
}

func appendQuery(rawURL, key, value string) string {
	sep := "&"
	if !strings.Contains(rawURL, "?") {
		sep = "?"
	}
	return rawURL + sep + url.QueryEscape(key) + "=" + url.QueryEscape(value)
}

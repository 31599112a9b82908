package transcript

import (
	"net/url"
	"regexp"
	"strings"
)

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

var urlPrefixes = []string{"http://", "https://", "www.", "youtube.com", "youtu.be"}

// LooksLikeURL reports whether value resembles a URL rather than a bare id.
func LooksLikeURL(value string) bool {
	lower := strings.ToLower(strings.TrimSpace(value))
	for _, prefix := range urlPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

// ExtractVideoID pulls the video id out of a watch, short-link, embed, shorts
// or live URL. Input that does not look like a URL is returned trimmed with
// ok=true. A URL without a recognizable id is returned unchanged with ok=false
// so the lookup can still report it as an invalid id.
func ExtractVideoID(input string) (string, bool) {
	trimmed := strings.TrimSpace(input)
	if !LooksLikeURL(trimmed) {
		return trimmed, trimmed != ""
	}
	raw := trimmed
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return trimmed, false
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")
	segments := strings.FieldsFunc(u.Path, func(r rune) bool { return r == '/' })

	var candidate string
	switch host {
	case "youtu.be":
		if len(segments) > 0 {
			candidate = segments[0]
		}
	case "youtube.com", "music.youtube.com", "youtube-nocookie.com":
		if v := u.Query().Get("v"); v != "" {
			candidate = v
		} else if len(segments) >= 2 {
			switch segments[0] {
			case "embed", "shorts", "live", "v":
				candidate = segments[1]
			}
		}
	}
	if videoIDPattern.MatchString(candidate) {
		return candidate, true
	}
	return trimmed, false
}

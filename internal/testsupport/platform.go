package testsupport

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
)

// ConsentToken is the token the fake consent interstitial carries.
const ConsentToken = "cb.20210328-17-p0.de+FX+123"

// Track is one caption track served by the fake platform.
type Track struct {
	LanguageCode string
	Name         string
	// Kind is "asr" for generated tracks.
	Kind         string
	Translatable bool
	// Body is the timedtext document served for the track.
	Body string
	// Translations maps a tlang code to the document served for it.
	Translations map[string]string
	// FailFirst makes the first n timedtext requests for the track fail
	// with 500.
	FailFirst int
}

// TranslationLanguage is a translation target advertised in the manifest.
type TranslationLanguage struct {
	Code string
	Name string
}

// Video describes a watch page served by the fake platform.
type Video struct {
	ID                   string
	Tracks               []Track
	TranslationLanguages []TranslationLanguage
	// Page replaces the generated watch page verbatim.
	Page string
	// Consent serves the consent interstitial until a CONSENT cookie arrives.
	Consent bool
	// ConsentAlways keeps serving the interstitial even after consent.
	ConsentAlways bool
	// Status, when non-zero, is returned instead of the watch page.
	Status int
}

// Request is a request observed by the fake platform.
type Request struct {
	Method         string
	Path           string
	Query          url.Values
	AcceptLanguage string
	Cookies        []*http.Cookie
	Form           url.Values
}

// Platform is an httptest server that mimics the watch page, consent and
// timedtext endpoints of the video platform.
type Platform struct {
	server *httptest.Server

	mu       sync.Mutex
	videos   map[string]*Video
	failures map[string]int
	requests []Request
}

// NewPlatform starts a fake platform serving videos. It is closed on test
// cleanup.
func NewPlatform(t testing.TB, videos ...Video) *Platform {
	t.Helper()

	p := &Platform{
		videos:   make(map[string]*Video, len(videos)),
		failures: make(map[string]int),
	}
	for i := range videos {
		v := videos[i]
		p.videos[v.ID] = &v
		for _, track := range v.Tracks {
			if track.FailFirst > 0 {
				p.failures[v.ID+"/"+track.LanguageCode] = track.FailFirst
			}
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/watch", p.handleWatch)
	mux.HandleFunc("/api/timedtext", p.handleTimedText)
	mux.HandleFunc("/", p.handleConsent)
	p.server = httptest.NewServer(mux)
	t.Cleanup(p.server.Close)
	return p
}

// URL returns the server origin.
func (p *Platform) URL() string { return p.server.URL }

// Client returns an HTTP client for the server.
func (p *Platform) Client() *http.Client { return p.server.Client() }

// Requests returns the requests observed so far whose path equals path, or
// all of them when path is empty.
func (p *Platform) Requests(path string) []Request {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Request, 0, len(p.requests))
	for _, r := range p.requests {
		if path == "" || r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

func (p *Platform) record(r *http.Request) {
	_ = r.ParseForm()
	req := Request{
		Method:         r.Method,
		Path:           r.URL.Path,
		Query:          r.URL.Query(),
		AcceptLanguage: r.Header.Get("Accept-Language"),
		Cookies:        r.Cookies(),
		Form:           r.PostForm,
	}
	p.mu.Lock()
	p.requests = append(p.requests, req)
	p.mu.Unlock()
}

func (p *Platform) video(id string) (*Video, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	v, ok := p.videos[id]
	return v, ok
}

func (p *Platform) handleWatch(w http.ResponseWriter, r *http.Request) {
	p.record(r)
	id := r.URL.Query().Get("v")
	v, ok := p.video(id)
	if !ok {
		fmt.Fprint(w, `<html><body><div class="unavailable">This video is unavailable</div></body></html>`)
		return
	}
	if v.Status != 0 {
		http.Error(w, http.StatusText(v.Status), v.Status)
		return
	}
	_, consentErr := r.Cookie("CONSENT")
	if v.ConsentAlways || (v.Consent && consentErr != nil) {
		fmt.Fprint(w, ConsentPage(ConsentToken))
		return
	}
	if v.Page != "" {
		fmt.Fprint(w, v.Page)
		return
	}
	fmt.Fprint(w, WatchPage(id, p.captionsJSON(v)))
}

func (p *Platform) handleConsent(w http.ResponseWriter, r *http.Request) {
	p.record(r)
	if r.Method != http.MethodPost || r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (p *Platform) handleTimedText(w http.ResponseWriter, r *http.Request) {
	p.record(r)
	query := r.URL.Query()
	id, lang, tlang := query.Get("v"), query.Get("lang"), query.Get("tlang")

	p.mu.Lock()
	key := id + "/" + lang
	if p.failures[key] > 0 {
		p.failures[key]--
		p.mu.Unlock()
		http.Error(w, "try again", http.StatusInternalServerError)
		return
	}
	p.mu.Unlock()

	v, ok := p.video(id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	for _, track := range v.Tracks {
		if track.LanguageCode != lang {
			continue
		}
		body := track.Body
		if tlang != "" {
			translated, ok := track.Translations[tlang]
			if !ok {
				http.NotFound(w, r)
				return
			}
			body = translated
		}
		w.Header().Set("Content-Type", "text/xml; charset=UTF-8")
		fmt.Fprint(w, body)
		return
	}
	http.NotFound(w, r)
}

type simpleText struct {
	SimpleText string `json:"simpleText"`
}

func (p *Platform) captionsJSON(v *Video) string {
	type captionTrack struct {
		BaseURL        string     `json:"baseUrl"`
		Name           simpleText `json:"name"`
		VSSID          string     `json:"vssId"`
		LanguageCode   string     `json:"languageCode"`
		Kind           string     `json:"kind,omitempty"`
		IsTranslatable bool       `json:"isTranslatable"`
	}
	type translationLanguage struct {
		LanguageCode string     `json:"languageCode"`
		LanguageName simpleText `json:"languageName"`
	}
	renderer := struct {
		CaptionTracks        []captionTrack        `json:"captionTracks,omitempty"`
		TranslationLanguages []translationLanguage `json:"translationLanguages"`
	}{}
	for _, track := range v.Tracks {
		renderer.CaptionTracks = append(renderer.CaptionTracks, captionTrack{
			BaseURL:        p.URL() + "/api/timedtext?v=" + url.QueryEscape(v.ID) + "&lang=" + url.QueryEscape(track.LanguageCode),
			Name:           simpleText{track.Name},
			VSSID:          "." + track.LanguageCode,
			LanguageCode:   track.LanguageCode,
			Kind:           track.Kind,
			IsTranslatable: track.Translatable,
		})
	}
	for _, lang := range v.TranslationLanguages {
		renderer.TranslationLanguages = append(renderer.TranslationLanguages, translationLanguage{
			LanguageCode: lang.Code,
			LanguageName: simpleText{lang.Name},
		})
	}
	data, err := json.Marshal(map[string]any{"playerCaptionsTracklistRenderer": renderer})
	if err != nil {
		panic(err)
	}
	return string(data)
}

// WatchPage renders a minimal watch page embedding captionsJSON. An empty
// captionsJSON produces a playable page without captions.
func WatchPage(videoID, captionsJSON string) string {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html><head><title>Video</title></head><body><script>var ytInitialPlayerResponse = {"responseContext":{},"playabilityStatus":{"status":"OK"},`)
	if captionsJSON != "" {
		b.WriteString(`"captions":`)
		b.WriteString(captionsJSON)
		b.WriteString(",")
	}
	b.WriteString(`"videoDetails":{"videoId":"`)
	b.WriteString(videoID)
	b.WriteString(`","title":"Test &amp; video"}};</script></body></html>`)
	return b.String()
}

// ConsentPage renders the cookie-consent interstitial carrying token.
func ConsentPage(token string) string {
	return `<!DOCTYPE html><html><body><form action="https://consent.youtube.com/s" method="POST">` +
		`<input type="hidden" name="gl" value="DE">` +
		`<input type="hidden" name="v" value="` + token + `">` +
		`<button>Accept all</button></form></body></html>`
}

// TimedText renders a timedtext document from start/dur/text triples.
func TimedText(cues ...[3]string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="utf-8" ?><transcript>`)
	for _, cue := range cues {
		b.WriteString(`<text start="` + cue[0] + `"`)
		if cue[1] != "" {
			b.WriteString(` dur="` + cue[1] + `"`)
		}
		b.WriteString(">" + cue[2] + "</text>")
	}
	b.WriteString("</transcript>")
	return b.String()
}

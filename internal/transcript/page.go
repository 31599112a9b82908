package transcript

import (
	"context"
	"html"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const consentFormAction = "https://consent.youtube.com/s"

var (
	consentMarker     = `action="` + consentFormAction + `"`
	consentTokenRegex = regexp.MustCompile(`name="v" value="(.*?)"`)
)

// FetchVideoPage downloads the watch page for videoID and returns its
// entity-unescaped HTML. When the platform answers with a cookie-consent
// interstitial the consent is given once and the page is requested again.
func FetchVideoPage(ctx context.Context, session *Session, videoID string) (string, error) {
	body, err := fetchWatchPage(ctx, session, videoID)
	if err != nil {
		return "", err
	}
	if strings.Contains(body, consentMarker) {
		if err := giveConsent(ctx, session, videoID, body); err != nil {
			return "", err
		}
		body, err = fetchWatchPage(ctx, session, videoID)
		if err != nil {
			return "", err
		}
		if strings.Contains(body, consentMarker) {
			return "", newError(KindFailedToCreateConsentCookie, videoID, "consent page returned after accepting")
		}
	}
	return html.UnescapeString(body), nil
}

func fetchWatchPage(ctx context.Context, session *Session, videoID string) (string, error) {
	resp, err := session.Do(ctx, Request{URL: session.WatchURL(videoID), Header: englishHeader()})
	if err != nil {
		return "", requestFailed(videoID, err)
	}
	if !resp.OK() {
		return "", statusFailed(videoID, resp.Status, http.StatusText(resp.Status))
	}
	return resp.Text, nil
}

func giveConsent(ctx context.Context, session *Session, videoID, body string) error {
	token, ok := consentToken(body)
	if !ok {
		return newError(KindFailedToCreateConsentCookie, videoID, "consent form carries no token")
	}
	value := "YES+" + token

	if _, err := session.Do(ctx, Request{
		Method: http.MethodPost,
		URL:    session.BaseURL().String(),
		Form:   url.Values{"CONSENT": {value}},
	}); err != nil {
		return requestFailed(videoID, err)
	}
	session.SetCookies([]*http.Cookie{{
		Name:   "CONSENT",
		Value:  value,
		Domain: cookieDomain(session.base.Hostname()),
		Path:   "/",
	}})
	return nil
}

// consentToken pulls the value of the consent form's "v" input.
func consentToken(body string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err == nil {
		selector := `form[action="` + consentFormAction + `"] input[name="v"]`
		if value, ok := doc.Find(selector).First().Attr("value"); ok && value != "" {
			return value, true
		}
		if value, ok := doc.Find(`input[name="v"]`).First().Attr("value"); ok && value != "" {
			return value, true
		}
	}
	match := consentTokenRegex.FindStringSubmatch(body)
	if len(match) < 2 || match[1] == "" {
		return "", false
	}
	return match[1], true
}

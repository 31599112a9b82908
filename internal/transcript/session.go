package transcript

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"
)

const (
	// DefaultBaseURL is the origin serving watch pages and timed text.
	DefaultBaseURL = "https://www.youtube.com"

	defaultUserAgent   = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/127.0.0.0 Safari/537.36"
	defaultHTTPTimeout = 30 * time.Second
	maxResponseBytes   = 16 << 20
)

// SessionOptions configures a Session.
type SessionOptions struct {
	BaseURL        string
	UserAgent      string
	AcceptLanguage string
	ProxyURL       string
	Timeout        time.Duration
	// HTTPClient overrides the transport. Its Jar is replaced by the
	// session's own cookie store.
	HTTPClient *http.Client
}

// Session is an HTTP client bound to a private cookie store. Cookies set by
// responses are replayed on later requests to the same origin. A Session is
// not meant to be shared between concurrent lookups.
type Session struct {
	base           *url.URL
	userAgent      string
	acceptLanguage string
	jar            http.CookieJar
	http           *http.Client
}

// Request describes one round trip through a Session.
type Request struct {
	Method string
	URL    string
	Header http.Header
	// Form is sent url-encoded as the request body when non-nil.
	Form url.Values
}

// Response carries the status and the decoded body of a round trip.
type Response struct {
	Status int
	Text   string
	Header http.Header
}

// OK reports whether the status is in the 2xx range.
func (r *Response) OK() bool {
	return r != nil && r.Status >= 200 && r.Status < 300
}

// NewSession builds a Session from opts.
func NewSession(opts SessionOptions) (*Session, error) {
	base := strings.TrimSpace(opts.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("transcript: parse base url: %w", err)
	}
	if baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, fmt.Errorf("transcript: base url %q must be absolute", base)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("transcript: create cookie jar: %w", err)
	}

	client, err := buildHTTPClient(opts)
	if err != nil {
		return nil, err
	}
	client.Jar = jar

	userAgent := strings.TrimSpace(opts.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Session{
		base:           baseURL,
		userAgent:      userAgent,
		acceptLanguage: strings.TrimSpace(opts.AcceptLanguage),
		jar:            jar,
		http:           client,
	}, nil
}

func buildHTTPClient(opts SessionOptions) (*http.Client, error) {
	if opts.HTTPClient != nil {
		clone := *opts.HTTPClient
		return &clone, nil
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	client := &http.Client{Timeout: timeout}
	if proxy := strings.TrimSpace(opts.ProxyURL); proxy != "" {
		proxyURL, err := url.Parse(proxy)
		if err != nil {
			return nil, fmt.Errorf("transcript: invalid proxy url: %w", err)
		}
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.Proxy = http.ProxyURL(proxyURL)
		client.Transport = transport
	}
	return client, nil
}

// BaseURL returns the origin the session talks to.
func (s *Session) BaseURL() *url.URL {
	clone := *s.base
	return &clone
}

// WatchURL returns the watch page address for videoID.
func (s *Session) WatchURL(videoID string) string {
	return watchURL(s.base.String(), videoID)
}

func watchURL(base, videoID string) string {
	return strings.TrimRight(base, "/") + "/watch?v=" + url.QueryEscape(videoID)
}

// Cookies returns the cookies the session would send to its origin.
func (s *Session) Cookies() []*http.Cookie {
	return s.jar.Cookies(s.base)
}

// SetCookies installs cookies for the session origin.
func (s *Session) SetCookies(cookies []*http.Cookie) {
	if len(cookies) == 0 {
		return
	}
	s.jar.SetCookies(s.base, cookies)
}

// Do performs a single round trip. Transport failures are returned as-is;
// callers classify them with the video they belong to. No retries happen here.
func (s *Session) Do(ctx context.Context, req Request) (*Response, error) {
	if s == nil {
		return nil, errors.New("transcript: session is nil")
	}
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if req.Form != nil {
		body = strings.NewReader(req.Form.Encode())
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("transcript: build request: %w", err)
	}
	httpReq.Header.Set("User-Agent", s.userAgent)
	if s.acceptLanguage != "" {
		httpReq.Header.Set("Accept-Language", s.acceptLanguage)
	}
	if req.Form != nil {
		httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for key, values := range req.Header {
		httpReq.Header.Del(key)
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}

	resp, err := s.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("transcript: read response body: %w", err)
	}
	return &Response{
		Status: resp.StatusCode,
		Text:   string(data),
		Header: resp.Header,
	}, nil
}

func englishHeader() http.Header {
	return http.Header{"Accept-Language": []string{"en-US"}}
}

// cookieDomain returns the registrable domain cookies should be scoped to,
// falling back to host itself for IPs and single-label hosts.
func cookieDomain(host string) string {
	if net.ParseIP(host) != nil {
		return host
	}
	if domain, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return domain
	}
	return host
}

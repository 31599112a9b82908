package transcript

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"ytcaptions/internal/logging"
	"ytcaptions/internal/services"
)

const (
	stagePage      = "page"
	stageManifest  = "manifest"
	stageCatalog   = "catalog"
	stageResolve   = "resolve"
	stageTranslate = "translate"
	stageCues      = "cues"
)

// ClientConfig configures a Client.
type ClientConfig struct {
	BaseURL        string
	UserAgent      string
	AcceptLanguage string
	ProxyURL       string
	Timeout        time.Duration

	// CookiePath and FirefoxCookieDB are read once by NewClient and replayed
	// into every lookup's session.
	CookiePath      string
	FirefoxCookieDB string

	// DefaultLanguages is used when a Query names no languages.
	DefaultLanguages []string

	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Query selects the transcript Get returns.
type Query struct {
	// Languages in descending priority. Empty falls back to the client
	// defaults, then to English.
	Languages          []string
	Origin             Origin
	TranslateTo        string
	PreserveFormatting bool
}

// Result is a fetched transcript.
type Result struct {
	VideoID string `json:"video_id"`
	Handle  Handle `json:"transcript"`
	Lines   []Line `json:"lines"`
}

// Client runs transcript lookups. Each lookup gets its own Session, so a
// Client is safe for concurrent use.
type Client struct {
	sessionOpts      SessionOptions
	cookies          []*http.Cookie
	defaultLanguages []string
	logger           *slog.Logger
}

// NewClient validates cfg and loads its cookie sources.
func NewClient(ctx context.Context, cfg ClientConfig) (*Client, error) {
	opts := SessionOptions{
		BaseURL:        cfg.BaseURL,
		UserAgent:      cfg.UserAgent,
		AcceptLanguage: cfg.AcceptLanguage,
		ProxyURL:       cfg.ProxyURL,
		Timeout:        cfg.Timeout,
		HTTPClient:     cfg.HTTPClient,
	}
	probe, err := NewSession(opts)
	if err != nil {
		return nil, err
	}

	client := &Client{
		sessionOpts:      opts,
		defaultLanguages: slices.Clone(cfg.DefaultLanguages),
		logger:           logging.NewComponentLogger(cfg.Logger, "transcript"),
	}

	if path := strings.TrimSpace(cfg.CookiePath); path != "" {
		cookies, err := ReadCookieFile(path)
		if err != nil {
			return nil, err
		}
		client.cookies = append(client.cookies, cookies...)
		client.logger.Debug("cookie file loaded", logging.String("path", path), logging.Int("cookies", len(cookies)))
	}
	if db := strings.TrimSpace(cfg.FirefoxCookieDB); db != "" {
		cookies, err := ReadFirefoxCookies(ctx, db, cookieDomain(probe.base.Hostname()))
		if err != nil {
			return nil, err
		}
		client.cookies = append(client.cookies, cookies...)
		client.logger.Debug("firefox cookies imported", logging.String("path", db), logging.Int("cookies", len(cookies)))
	}
	return client, nil
}

// List returns the catalog of every caption track published for videoID.
func (c *Client) List(ctx context.Context, videoID string) (*Catalog, error) {
	ctx, session, err := c.begin(ctx, videoID)
	if err != nil {
		return nil, err
	}
	return c.catalog(ctx, session, videoID)
}

// Get resolves q against the catalog of videoID, optionally translates the
// chosen track, and downloads its cues.
func (c *Client) Get(ctx context.Context, videoID string, q Query) (Result, error) {
	ctx, session, err := c.begin(ctx, videoID)
	if err != nil {
		return Result{}, err
	}
	catalog, err := c.catalog(ctx, session, videoID)
	if err != nil {
		return Result{}, err
	}

	_, logger := c.stage(ctx, stageResolve)
	languages := c.languages(q.Languages)
	handle, err := catalog.Find(languages, q.Origin)
	if err != nil {
		logger.Debug("no transcript matched", logging.String("languages", strings.Join(languages, ",")), logging.String("origin", q.Origin.String()))
		return Result{}, err
	}
	logger.Debug("transcript resolved", logging.String("language_code", handle.LanguageCode()), logging.Bool("generated", handle.IsGenerated()))

	if code := strings.TrimSpace(q.TranslateTo); code != "" {
		_, logger = c.stage(ctx, stageTranslate)
		handle, err = handle.Translate(code)
		if err != nil {
			return Result{}, err
		}
		logger.Debug("translation derived", logging.String("language_code", code))
	}

	stageCtx, logger := c.stage(ctx, stageCues)
	lines, err := FetchCues(stageCtx, session, handle, q.PreserveFormatting)
	if err != nil {
		return Result{}, err
	}
	logger.Debug("cues decoded", logging.Int("lines", len(lines)))

	return Result{VideoID: videoID, Handle: handle, Lines: lines}, nil
}

func (c *Client) begin(ctx context.Context, videoID string) (context.Context, *Session, error) {
	if err := ctx.Err(); err != nil {
		return ctx, nil, err
	}
	ctx = services.WithVideoID(ctx, videoID)
	ctx = services.WithLookupID(ctx, uuid.NewString())

	session, err := NewSession(c.sessionOpts)
	if err != nil {
		return ctx, nil, fmt.Errorf("transcript: new session: %w", err)
	}
	session.SetCookies(c.cookies)
	return ctx, session, nil
}

func (c *Client) catalog(ctx context.Context, session *Session, videoID string) (*Catalog, error) {
	stageCtx, logger := c.stage(ctx, stagePage)
	logger.Debug("fetching watch page")
	html, err := FetchVideoPage(stageCtx, session, videoID)
	if err != nil {
		return nil, err
	}

	_, logger = c.stage(ctx, stageManifest)
	manifest, err := ExtractManifest(html, videoID)
	if err != nil {
		logger.Debug("no caption manifest", logging.String(logging.FieldErrorKind, KindOf(err).String()))
		return nil, err
	}

	_, logger = c.stage(ctx, stageCatalog)
	catalog := BuildCatalog(videoID, manifest)
	logger.Debug("catalog built",
		logging.Int("manual", len(catalog.Manual())),
		logging.Int("generated", len(catalog.Generated())),
		logging.Int("translation_languages", len(catalog.TranslationLanguages())),
	)
	return catalog, nil
}

func (c *Client) stage(ctx context.Context, name string) (context.Context, *slog.Logger) {
	ctx = services.WithStage(ctx, name)
	return ctx, logging.WithContext(ctx, c.logger)
}

func (c *Client) languages(requested []string) []string {
	if len(requested) > 0 {
		return requested
	}
	if len(c.defaultLanguages) > 0 {
		return c.defaultLanguages
	}
	return []string{"en"}
}

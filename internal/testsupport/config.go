package testsupport

import (
	"path/filepath"
	"testing"

	"ytcaptions/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a validated default config whose log directory lives in
// a per-test temp dir. It applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Logging.Dir = filepath.Join(base, "logs")
	cfgVal.Logging.Level = "debug"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return builder.cfg
}

// WithPlatform points the config at a fake platform server.
func WithPlatform(p *Platform) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.HTTP.BaseURL = p.URL()
	}
}

// WithLanguages overrides the preferred languages.
func WithLanguages(codes ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Transcripts.Languages = codes
	}
}

// WithCookieFile writes the given Set-Cookie lines to a file and points the
// config at it.
func WithCookieFile(lines ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Cookies.Path = WriteCookieFile(b.t, lines...)
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Logging.Dir)
}

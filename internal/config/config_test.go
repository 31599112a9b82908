package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"ytcaptions/internal/config"
)

func clearProxyEnv(t *testing.T) {
	t.Helper()
	t.Setenv("YTCAPTIONS_PROXY", "")
	t.Setenv("HTTPS_PROXY", "")
}

func TestLoadDefaultConfig(t *testing.T) {
	clearProxyEnv(t)
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if want := filepath.Join(tempHome, ".config", "ytcaptions", "config.toml"); resolved != want {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, want)
	}
	if cfg.HTTP.BaseURL != "https://www.youtube.com" {
		t.Fatalf("unexpected base url: %q", cfg.HTTP.BaseURL)
	}
	if cfg.HTTP.ProxyURL != "" {
		t.Fatalf("expected no proxy, got %q", cfg.HTTP.ProxyURL)
	}
	if cfg.Timeout().Seconds() != 30 {
		t.Fatalf("unexpected timeout: %v", cfg.Timeout())
	}
	if len(cfg.Transcripts.Languages) != 1 || cfg.Transcripts.Languages[0] != "en" {
		t.Fatalf("unexpected default languages: %v", cfg.Transcripts.Languages)
	}
	if cfg.Transcripts.Format != "text" {
		t.Fatalf("unexpected default format: %q", cfg.Transcripts.Format)
	}
	if cfg.LogFilePath() != "" {
		t.Fatalf("expected file logging off by default, got %q", cfg.LogFilePath())
	}
}

func TestLoadCustomPath(t *testing.T) {
	clearProxyEnv(t)
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	configPath := filepath.Join(t.TempDir(), "ytcaptions.toml")

	type payload struct {
		HTTP struct {
			BaseURL        string `toml:"base_url"`
			TimeoutSeconds int    `toml:"timeout_seconds"`
		} `toml:"http"`
		Cookies struct {
			Path string `toml:"path"`
		} `toml:"cookies"`
		Transcripts struct {
			Languages []string `toml:"languages"`
			Format    string   `toml:"format"`
		} `toml:"transcripts"`
		Logging struct {
			Dir string `toml:"dir"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.HTTP.BaseURL = "http://127.0.0.1:9000/"
	custom.HTTP.TimeoutSeconds = 5
	custom.Cookies.Path = "~/cookies.txt"
	custom.Transcripts.Languages = []string{"German", "en-gb", "deu"}
	custom.Transcripts.Format = "SRT"
	custom.Logging.Dir = "~/logs"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.HTTP.BaseURL != "http://127.0.0.1:9000" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.HTTP.BaseURL)
	}
	if cfg.HTTP.TimeoutSeconds != 5 {
		t.Fatalf("expected timeout 5, got %d", cfg.HTTP.TimeoutSeconds)
	}
	if cfg.Cookies.Path != filepath.Join(tempHome, "cookies.txt") {
		t.Fatalf("expected cookie path expanded, got %q", cfg.Cookies.Path)
	}
	want := []string{"de", "en-GB"}
	if strings.Join(cfg.Transcripts.Languages, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected languages: got %v want %v", cfg.Transcripts.Languages, want)
	}
	if cfg.Transcripts.Format != "srt" {
		t.Fatalf("expected format lowercased, got %q", cfg.Transcripts.Format)
	}
	if cfg.LogFilePath() != filepath.Join(tempHome, "logs", "ytcaptions.log") {
		t.Fatalf("unexpected log file path: %q", cfg.LogFilePath())
	}
}

func TestProxyEnvironmentFallback(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("HTTPS_PROXY", "http://fallback:3128")
	t.Setenv("YTCAPTIONS_PROXY", "")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.HTTP.ProxyURL != "http://fallback:3128" {
		t.Fatalf("expected HTTPS_PROXY fallback, got %q", cfg.HTTP.ProxyURL)
	}

	t.Setenv("YTCAPTIONS_PROXY", "http://primary:8080")
	cfg, _, _, err = config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.HTTP.ProxyURL != "http://primary:8080" {
		t.Fatalf("expected YTCAPTIONS_PROXY to win, got %q", cfg.HTTP.ProxyURL)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	clearProxyEnv(t)
	t.Setenv("HOME", t.TempDir())
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[transcripts]\nlanguage = [\"de\"]\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, _, _, err := config.Load(configPath)
	if err == nil || !strings.Contains(err.Error(), "language") {
		t.Fatalf("expected unknown key error naming the key, got %v", err)
	}
}

func TestLoadMissingExplicitPath(t *testing.T) {
	clearProxyEnv(t)
	t.Setenv("HOME", t.TempDir())
	configPath := filepath.Join(t.TempDir(), "absent.toml")

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists || resolved != configPath || cfg.Transcripts.Format != "text" {
		t.Fatalf("expected defaults for missing file, got exists=%v resolved=%q format=%q", exists, resolved, cfg.Transcripts.Format)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if cfg.HTTP.BaseURL != "https://www.youtube.com" {
		t.Fatalf("unexpected sample base url: %q", cfg.HTTP.BaseURL)
	}
	if cfg.Transcripts.Format != "text" {
		t.Fatalf("unexpected sample format: %q", cfg.Transcripts.Format)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"negative timeout", func(c *config.Config) { c.HTTP.TimeoutSeconds = -1 }},
		{"relative base url", func(c *config.Config) { c.HTTP.BaseURL = "youtube.com" }},
		{"bad proxy", func(c *config.Config) { c.HTTP.ProxyURL = "not a url" }},
		{"both exclusions", func(c *config.Config) {
			c.Transcripts.ExcludeGenerated = true
			c.Transcripts.ExcludeManuallyCreated = true
		}},
		{"unknown format", func(c *config.Config) { c.Transcripts.Format = "docx" }},
		{"unknown log format", func(c *config.Config) { c.Logging.Format = "xml" }},
		{"unknown log level", func(c *config.Config) { c.Logging.Level = "verbose" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}

	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

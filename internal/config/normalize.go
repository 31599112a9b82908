package config

import (
	"fmt"
	"os"
	"strings"

	"ytcaptions/internal/language"
)

func (c *Config) normalize() error {
	c.normalizeHTTP()
	if err := c.normalizeCookies(); err != nil {
		return err
	}
	c.normalizeTranscripts()
	return c.normalizeLogging()
}

func (c *Config) normalizeHTTP() {
	c.HTTP.UserAgent = strings.TrimSpace(c.HTTP.UserAgent)
	c.HTTP.AcceptLanguage = strings.TrimSpace(c.HTTP.AcceptLanguage)
	c.HTTP.BaseURL = strings.TrimRight(strings.TrimSpace(c.HTTP.BaseURL), "/")
	if c.HTTP.BaseURL == "" {
		c.HTTP.BaseURL = defaultBaseURL
	}
	if c.HTTP.TimeoutSeconds == 0 {
		c.HTTP.TimeoutSeconds = defaultTimeoutSeconds
	}
	c.HTTP.ProxyURL = strings.TrimSpace(c.HTTP.ProxyURL)
	if c.HTTP.ProxyURL == "" {
		for _, key := range []string{proxyEnv, fallbackProxyEnv} {
			if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
				c.HTTP.ProxyURL = strings.TrimSpace(value)
				break
			}
		}
	}
}

func (c *Config) normalizeCookies() error {
	var err error
	if c.Cookies.Path, err = expandPath(strings.TrimSpace(c.Cookies.Path)); err != nil {
		return fmt.Errorf("cookies.path: %w", err)
	}
	if c.Cookies.FirefoxDB, err = expandPath(strings.TrimSpace(c.Cookies.FirefoxDB)); err != nil {
		return fmt.Errorf("cookies.firefox_db: %w", err)
	}
	return nil
}

func (c *Config) normalizeTranscripts() {
	c.Transcripts.Languages = language.NormalizeList(c.Transcripts.Languages)
	if len(c.Transcripts.Languages) == 0 {
		c.Transcripts.Languages = []string{"en"}
	}
	c.Transcripts.Format = strings.ToLower(strings.TrimSpace(c.Transcripts.Format))
	if c.Transcripts.Format == "" {
		c.Transcripts.Format = defaultFormat
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	dir, err := expandPath(strings.TrimSpace(c.Logging.Dir))
	if err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	c.Logging.Dir = dir
	return nil
}

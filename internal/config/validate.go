package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
)

// Formats lists the transcript output formats the CLI can render.
var Formats = []string{"text", "json", "srt", "webvtt", "pretty"}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateHTTP(); err != nil {
		return err
	}
	if err := c.validateTranscripts(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateHTTP() error {
	if c.HTTP.TimeoutSeconds < 0 {
		return errors.New("http.timeout_seconds must be positive")
	}
	base, err := url.Parse(c.HTTP.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return fmt.Errorf("http.base_url %q must be an absolute URL", c.HTTP.BaseURL)
	}
	if c.HTTP.ProxyURL != "" {
		proxy, err := url.Parse(c.HTTP.ProxyURL)
		if err != nil || proxy.Scheme == "" || proxy.Host == "" {
			return fmt.Errorf("http.proxy_url %q must be an absolute URL such as http://host:port", c.HTTP.ProxyURL)
		}
	}
	return nil
}

func (c *Config) validateTranscripts() error {
	if c.Transcripts.ExcludeGenerated && c.Transcripts.ExcludeManuallyCreated {
		return errors.New("transcripts.exclude_generated and transcripts.exclude_manually_created cannot both be true")
	}
	if !slices.Contains(Formats, c.Transcripts.Format) {
		return fmt.Errorf("transcripts.format %q is not one of %v", c.Transcripts.Format, Formats)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format %q must be console or json", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q must be debug, info, warn or error", c.Logging.Level)
	}
	return nil
}

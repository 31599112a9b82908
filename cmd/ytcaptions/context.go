package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"ytcaptions/internal/config"
	"ytcaptions/internal/logging"
	"ytcaptions/internal/services"
	"ytcaptions/internal/transcript"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, _, err := config.Load(path)
		if err != nil {
			c.configErr = services.Wrap(services.ErrConfiguration, "config", "load", "", err)
			return
		}
		if c.logLevelFlag != nil {
			if level := strings.TrimSpace(*c.logLevelFlag); level != "" {
				cfg.Logging.Level = strings.ToLower(level)
				if err := cfg.Validate(); err != nil {
					c.configErr = services.Wrap(services.ErrValidation, "config", "log level", "", err)
					return
				}
			}
		}
		c.config = cfg
		c.configPath = resolved
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.loggerErr = services.Wrap(services.ErrConfiguration, "logging", "init", "", err)
			return
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

// sessionFlags are the per-invocation overrides of the [http] and [cookies]
// sections shared by list and fetch.
type sessionFlags struct {
	cookies        string
	firefoxCookies string
	proxy          string
}

func (f *sessionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.cookies, "cookies", "", "Cookie file with one Set-Cookie value per line")
	cmd.Flags().StringVar(&f.firefoxCookies, "firefox-cookies", "", "Firefox cookies.sqlite to import cookies from")
	cmd.Flags().StringVar(&f.proxy, "proxy", "", "HTTP(S) proxy URL")
}

func (c *commandContext) newClient(ctx context.Context, flags sessionFlags) (*transcript.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}

	clientCfg := transcript.ClientConfig{
		BaseURL:          cfg.HTTP.BaseURL,
		UserAgent:        cfg.HTTP.UserAgent,
		AcceptLanguage:   cfg.HTTP.AcceptLanguage,
		ProxyURL:         cfg.HTTP.ProxyURL,
		Timeout:          cfg.Timeout(),
		CookiePath:       cfg.Cookies.Path,
		FirefoxCookieDB:  cfg.Cookies.FirefoxDB,
		DefaultLanguages: cfg.Transcripts.Languages,
		Logger:           logger,
	}
	if value := strings.TrimSpace(flags.proxy); value != "" {
		clientCfg.ProxyURL = value
	}
	if value := strings.TrimSpace(flags.cookies); value != "" {
		path, err := config.ExpandPath(value)
		if err != nil {
			return nil, services.Wrap(services.ErrValidation, "cookies", "resolve path", "", err)
		}
		clientCfg.CookiePath = path
	}
	if value := strings.TrimSpace(flags.firefoxCookies); value != "" {
		path, err := config.ExpandPath(value)
		if err != nil {
			return nil, services.Wrap(services.ErrValidation, "cookies", "resolve firefox db", "", err)
		}
		clientCfg.FirefoxCookieDB = path
	}

	client, err := transcript.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, classifyLookupError("", err)
	}
	return client, nil
}

// classifyLookupError tags a pipeline failure with the marker that decides
// the exit status.
func classifyLookupError(videoID string, err error) error {
	var marker error
	switch transcript.KindOf(err) {
	case transcript.KindInvalidVideoID:
		marker = services.ErrValidation
	case transcript.KindCookiePathInvalid, transcript.KindCookiesInvalid:
		marker = services.ErrConfiguration
	case transcript.KindVideoUnavailable, transcript.KindTranscriptsDisabled,
		transcript.KindNoTranscriptAvailable, transcript.KindNoTranscriptFound,
		transcript.KindNotTranslatable, transcript.KindTranslationLanguageNotAvailable:
		marker = services.ErrNotFound
	case transcript.KindUnknown:
		if videoID == "" {
			marker = services.ErrConfiguration
		} else {
			marker = services.ErrTransient
		}
	default:
		marker = services.ErrTransient
	}
	return services.Wrap(marker, "", videoID, "", err)
}

// videoIDs accepts bare ids as well as watch, short-link, embed, shorts and
// live URLs. Unrecognized input is passed through so the lookup reports it.
func videoIDs(args []string) []string {
	ids := make([]string, 0, len(args))
	for _, arg := range args {
		id, _ := transcript.ExtractVideoID(arg)
		if id == "" {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func requireVideos(args []string) error {
	if len(videoIDs(args)) == 0 {
		return services.Wrap(services.ErrValidation, "", "", "at least one video id is required", nil)
	}
	return nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

func describeFailure(err error) string {
	if kind := transcript.KindOf(err); kind != transcript.KindUnknown {
		return kind.String()
	}
	return fmt.Sprint(err)
}

package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"ytcaptions/internal/fileutil"
)

//go:embed sample_config.toml
var sampleConfig string

const (
	defaultConfigPath  = "~/.config/ytcaptions/config.toml"
	projectConfigName  = "ytcaptions.toml"
	proxyEnv           = "YTCAPTIONS_PROXY"
	fallbackProxyEnv   = "HTTPS_PROXY"
	defaultLogFileName = "ytcaptions.log"
)

// HTTP contains settings for talking to the video platform.
type HTTP struct {
	UserAgent      string `toml:"user_agent"`
	AcceptLanguage string `toml:"accept_language"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	ProxyURL       string `toml:"proxy_url"`
	BaseURL        string `toml:"base_url"`
}

// Cookies points at cookie sources replayed on every lookup.
type Cookies struct {
	// Path is a file of Set-Cookie lines.
	Path string `toml:"path"`
	// FirefoxDB is a Firefox profile cookies.sqlite.
	FirefoxDB string `toml:"firefox_db"`
}

// Transcripts contains lookup defaults. Command-line flags override them.
type Transcripts struct {
	Languages              []string `toml:"languages"`
	PreserveFormatting     bool     `toml:"preserve_formatting"`
	ExcludeGenerated       bool     `toml:"exclude_generated"`
	ExcludeManuallyCreated bool     `toml:"exclude_manually_created"`
	ContinueAfterError     bool     `toml:"continue_after_error"`
	Format                 string   `toml:"format"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	// Dir additionally writes logs to <dir>/ytcaptions.log when set.
	Dir string `toml:"dir"`
}

// Config encapsulates all configuration values for ytcaptions.
//
// Configuration sections by subsystem:
//   - HTTP: platform origin, headers, timeout and proxy
//   - Cookies: cookie file and Firefox profile import
//   - Transcripts: language preferences, origin filters and output format
//   - Logging: log format, level and optional log directory
type Config struct {
	HTTP        HTTP        `toml:"http"`
	Cookies     Cookies     `toml:"cookies"`
	Transcripts Transcripts `toml:"transcripts"`
	Logging     Logging     `toml:"logging"`
}

// DefaultConfigPath returns the absolute path of the per-user config file.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load reads the config file at path, or the first existing default location
// when path is empty, then normalizes and validates it. It returns the
// resolved path and whether a file was found there. Unknown keys are errors.
func Load(path string) (*Config, string, bool, error) {
	resolved, exists, err := locate(path)
	if err != nil {
		return nil, "", false, err
	}

	cfg := Default()
	if exists {
		if err := decodeFile(resolved, &cfg); err != nil {
			return nil, "", false, err
		}
	}
	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolved, exists, nil
}

func decodeFile(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	dec := toml.NewDecoder(file)
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("parse config: unknown keys:\n%s", strict.String())
		}
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

// locate resolves an explicit path as given. Without one it tries the
// per-user file, then ytcaptions.toml in the working directory, and falls
// back to the per-user path.
func locate(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		info, err := os.Stat(expanded)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return expanded, false, nil
		case err != nil:
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, !info.IsDir(), nil
	}

	userPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}
	for _, candidate := range []string{userPath, projectPath} {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true, nil
		}
	}
	return userPath, false, nil
}

// Timeout returns the per-request HTTP timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}

// LogFilePath returns the log file path, or "" when file logging is off.
func (c *Config) LogFilePath() string {
	if strings.TrimSpace(c.Logging.Dir) == "" {
		return ""
	}
	return filepath.Join(c.Logging.Dir, defaultLogFileName)
}

// ExpandPath resolves a leading "~" to the home directory and makes the path
// absolute. Empty input stays empty.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path == "~" || strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimLeft(path[1:], `/\`))
	}
	absolute, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", path, err)
	}
	return absolute, nil
}

// CreateSample writes the commented sample configuration to path, creating
// parent directories as needed.
func CreateSample(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := fileutil.WriteFileAtomic(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

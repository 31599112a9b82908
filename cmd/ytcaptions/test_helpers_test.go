package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"ytcaptions/internal/config"
	"ytcaptions/internal/testsupport"
)

const testVideoID = "abc12345678"

type cliTestEnv struct {
	platform   *testsupport.Platform
	cfg        *config.Config
	configPath string
}

func setupCLITestEnv(t *testing.T, mutate ...func(*config.Config)) *cliTestEnv {
	t.Helper()

	homeDir := filepath.Join(t.TempDir(), "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("YTCAPTIONS_PROXY", "")
	t.Setenv("HTTPS_PROXY", "")

	platform := testsupport.NewPlatform(t, englishVideo(testVideoID))
	cfg := testsupport.NewConfig(t, testsupport.WithPlatform(platform))
	cfg.Logging.Level = "error"
	for _, m := range mutate {
		m(cfg)
	}

	configPath := filepath.Join(testsupport.BaseDir(cfg), "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{platform: platform, cfg: cfg, configPath: configPath}
}

func englishVideo(id string) testsupport.Video {
	return testsupport.Video{
		ID: id,
		Tracks: []testsupport.Track{
			{
				LanguageCode: "en",
				Name:         "English",
				Translatable: true,
				Body:         testsupport.TimedText([3]string{"1.0", "2.5", "Hello"}, [3]string{"3.5", "1", "&lt;b&gt;world&lt;/b&gt;"}),
				Translations: map[string]string{
					"de": testsupport.TimedText([3]string{"1.0", "2.5", "Hallo"}),
				},
			},
			{
				LanguageCode: "es",
				Name:         "Spanish (auto-generated)",
				Kind:         "asr",
				Body:         testsupport.TimedText([3]string{"0", "1", "Hola"}),
			},
		},
		TranslationLanguages: []testsupport.TranslationLanguage{{Code: "de", Name: "German"}},
	}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	testsupport.WriteFile(t, path, string(data))
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

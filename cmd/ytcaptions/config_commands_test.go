package main

import (
	"os"
	"path/filepath"
	"testing"

	"ytcaptions/internal/config"
	"ytcaptions/internal/services"
	"ytcaptions/internal/testsupport"
)

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration:")
	requireContains(t, out, "[OK] valid")
	requireContains(t, out, env.configPath)

	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected init to refuse overwriting without --overwrite")
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, ""); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}

	out, _, err = runCLI(t, []string{"config", "validate"}, target)
	if err != nil {
		t.Fatalf("sample config should validate: %v", err)
	}
	requireContains(t, out, "[OK] valid")
}

func TestConfigValidateRejectsInvalidConfig(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteFile(t, env.configPath, "[transcripts]\nformat = \"yaml\"\n")

	_, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if services.ExitCode(err) != services.ExitUsage {
		t.Fatalf("expected usage exit, got %v", err)
	}
}

func TestConfigShow(t *testing.T) {
	env := setupCLITestEnv(t, func(cfg *config.Config) {
		cfg.Transcripts.Languages = []string{"de", "en"}
	})
	out, _, err := runCLI(t, []string{"config", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "transcripts.languages")
	requireContains(t, out, "en (English)")
	requireContains(t, out, "de, en")
	requireContains(t, out, env.platform.URL())
}

func TestLogLevelFlagValidated(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"--log-level", "chatty", "config", "show"}, env.configPath)
	if services.ExitCode(err) != services.ExitUsage {
		t.Fatalf("expected usage exit for bad log level, got %v", err)
	}
}

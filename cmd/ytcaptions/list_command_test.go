package main

import (
	"encoding/json"
	"testing"

	"ytcaptions/internal/services"
)

func TestListCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"list", testVideoID}, env.configPath)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := "For this video (abc12345678) transcripts are available in the following languages:\n\n" +
		"(MANUALLY CREATED)\n" +
		" - English (en)[TRANSLATABLE]\n" +
		"\n(GENERATED)\n" +
		" - Spanish (auto-generated) (es)\n" +
		"\n(TRANSLATION LANGUAGES)\n" +
		" - German (de)\n"
	if out != want {
		t.Fatalf("listing mismatch:\n%q\nwant\n%q", out, want)
	}
}

func TestListCommandTableAndJSON(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"list", testVideoID, "--table"}, env.configPath)
	if err != nil {
		t.Fatalf("list --table: %v", err)
	}
	requireContains(t, out, "Spanish (auto-generated)")
	requireContains(t, out, "generated")

	out, _, err = runCLI(t, []string{"list", testVideoID, "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("list --json: %v", err)
	}
	var listings []struct {
		VideoID     string `json:"video_id"`
		Transcripts []struct {
			LanguageCode   string `json:"language_code"`
			IsGenerated    bool   `json:"is_generated"`
			IsTranslatable bool   `json:"is_translatable"`
		} `json:"transcripts"`
		TranslationLanguages []struct {
			LanguageCode string `json:"language_code"`
		} `json:"translation_languages"`
	}
	if err := json.Unmarshal([]byte(out), &listings); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(listings) != 1 || listings[0].VideoID != testVideoID || len(listings[0].Transcripts) != 2 {
		t.Fatalf("unexpected listings: %+v", listings)
	}
	first := listings[0].Transcripts[0]
	if first.LanguageCode != "en" || first.IsGenerated || !first.IsTranslatable {
		t.Fatalf("unexpected first transcript: %+v", first)
	}
	if len(listings[0].TranslationLanguages) != 1 || listings[0].TranslationLanguages[0].LanguageCode != "de" {
		t.Fatalf("unexpected translation languages: %+v", listings[0].TranslationLanguages)
	}

	if _, _, err := runCLI(t, []string{"list", testVideoID, "--json", "--table"}, env.configPath); err == nil {
		t.Fatal("expected --json and --table to be mutually exclusive")
	}
}

func TestListCommandUnavailableVideo(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"list", "missing0001"}, env.configPath)
	if services.ExitCode(err) != services.ExitNotFound {
		t.Fatalf("expected not-found exit, got %v", err)
	}
}

package transcript

import (
	"errors"
	"testing"
)

func TestHandleTranslate(t *testing.T) {
	c := BuildCatalog("abc12345678", testManifest())
	en, err := c.FindGenerated([]string{"en"})
	if err != nil {
		t.Fatalf("FindGenerated: %v", err)
	}

	fr, err := en.Translate("fr")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if fr.URL() != "https://example.test/tt?lang=en&kind=asr&tlang=fr" {
		t.Fatalf("translated url = %s", fr.URL())
	}
	if fr.LanguageCode() != "fr" || fr.Language() != "French" || !fr.IsGenerated() || fr.IsTranslatable() {
		t.Fatalf("unexpected translated handle: %+v", fr)
	}
	if fr.VideoID() != "abc12345678" {
		t.Fatalf("video id not carried over")
	}
	if en.URL() != "https://example.test/tt?lang=en&kind=asr" {
		t.Fatal("source handle was modified")
	}
	if _, err := fr.Translate("ja"); !errors.Is(err, KindNotTranslatable) {
		t.Fatalf("translated handle should not translate again, got %v", err)
	}
}

func TestHandleTranslateFailures(t *testing.T) {
	c := BuildCatalog("abc12345678", testManifest())
	es, _ := c.FindManual([]string{"es"})
	if _, err := es.Translate("fr"); !errors.Is(err, KindNotTranslatable) {
		t.Fatalf("expected NotTranslatable, got %v", err)
	}
	en, _ := c.FindGenerated([]string{"en"})
	if _, err := en.Translate("xx"); !errors.Is(err, KindTranslationLanguageNotAvailable) {
		t.Fatalf("expected TranslationLanguageNotAvailable, got %v", err)
	}
}

func TestAppendQuery(t *testing.T) {
	if got := appendQuery("https://h/p", "tlang", "zh-Hans"); got != "https://h/p?tlang=zh-Hans" {
		t.Fatalf("appendQuery without query = %s", got)
	}
	if got := appendQuery("https://h/p?a=1", "tlang", "de"); got != "https://h/p?a=1&tlang=de" {
		t.Fatalf("appendQuery with query = %s", got)
	}
}

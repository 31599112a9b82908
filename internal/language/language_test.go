package language

import (
	"slices"
	"testing"
)

func TestCanonical(t *testing.T) {
	cases := map[string]string{
		"en":         "en",
		" EN ":       "en",
		"English":    "en",
		"GERMAN":     "de",
		"eng":        "en",
		"spa":        "es",
		"fre":        "fr",
		"ger":        "de",
		"chi":        "zh",
		"dut":        "nl",
		"heb":        "iw",
		"iw":         "iw",
		"he":         "iw",
		"Hebrew":     "iw",
		"en-gb":      "en-GB",
		"EN_us":      "en-US",
		"zh-hans":    "zh-Hans",
		"pt-br":      "pt-BR",
		"es-419":     "es-419",
		"not a tag!": "not a tag!",
		"":           "",
		"   ":        "",
	}
	for input, want := range cases {
		if got := Canonical(input); got != want {
			t.Errorf("Canonical(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	cases := map[string]string{
		"en":         "English",
		"eng":        "English",
		"fre":        "French",
		"de":         "German",
		"zh":         "Chinese",
		"iw":         "Hebrew",
		"he":         "Hebrew",
		"english":    "English",
		"sw":         "Swahili",
		"":           "Unknown",
		"not a tag!": "NOT A TAG!",
	}
	for input, want := range cases {
		if got := DisplayName(input); got != want {
			t.Errorf("DisplayName(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestNormalizeList(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{"nil", nil, nil},
		{"empty", []string{}, nil},
		{"dedup", []string{"en", "en"}, []string{"en"}},
		{"iso 639-2", []string{"eng", "spa"}, []string{"en", "es"}},
		{"keeps priority", []string{"de", "en", "English"}, []string{"de", "en"}},
		{"comma separated", []string{"de,en", "zh-hans"}, []string{"de", "en", "zh-Hans"}},
		{"unknown passes through", []string{"en", "xx"}, []string{"en", "xx"}},
		{"hebrew variants", []string{"he", "iw", "heb"}, []string{"iw"}},
		{"blank entries", []string{" en ", " ", "de,,"}, []string{"en", "de"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeList(tt.input); !slices.Equal(got, tt.want) {
				t.Fatalf("NormalizeList(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

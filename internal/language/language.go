package language

import (
	"slices"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// captionCodes lists the codes folded into each caption code, mostly
// ISO 639-2.
// Their English names are recognized as well.
var captionCodes = map[string][]string{
	"en": {"eng"},
	"es": {"spa"},
	"fr": {"fra", "fre"},
	"de": {"deu", "ger"},
	"it": {"ita"},
	"pt": {"por"},
	"ja": {"jpn"},
	"ko": {"kor"},
	"zh": {"zho", "chi"},
	"ru": {"rus"},
	"ar": {"ara"},
	"hi": {"hin"},
	"nl": {"nld", "dut"},
	"pl": {"pol"},
	"sv": {"swe"},
	"da": {"dan"},
	"fi": {"fin"},
	"tr": {"tur"},
	"uk": {"ukr"},
	// Hebrew captions are still published under the withdrawn "iw".
	"iw": {"heb", "he"},
}

// aliases maps lower-case names and ISO 639-2 codes to caption codes.
var aliases = buildAliases()

func buildAliases() map[string]string {
	names := display.English.Languages()
	out := make(map[string]string, len(captionCodes)*3)
	for code, iso3 := range captionCodes {
		for _, alt := range iso3 {
			out[alt] = code
		}
		if name := names.Name(language.Make(code)); name != "" {
			out[strings.ToLower(name)] = code
		}
	}
	return out
}

// Canonical rewrites a user-supplied language preference into the form the
// platform publishes caption codes in: "English" and "eng" become "en",
// "zh_hans" becomes "zh-Hans", "PT-br" becomes "pt-BR". Deprecated codes such
// as "iw" are kept, and "he" becomes "iw". Input that is not a well-formed BCP 47 tag is returned
// trimmed.
func Canonical(code string) string {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return ""
	}
	if alias, ok := aliases[strings.ToLower(trimmed)]; ok {
		return alias
	}
	tag, err := language.Raw.Parse(strings.ReplaceAll(trimmed, "_", "-"))
	if err != nil {
		return trimmed
	}
	return tag.String()
}

// DisplayName returns the English name of a language code, "Unknown" for
// empty input, or the upper-cased input when it is not a language.
func DisplayName(code string) string {
	canonical := Canonical(code)
	if canonical == "" {
		return "Unknown"
	}
	if tag, err := language.Parse(canonical); err == nil {
		if name := display.English.Tags().Name(tag); name != "" {
			return name
		}
	}
	return strings.ToUpper(canonical)
}

// NormalizeList canonicalizes language preferences, splitting comma-separated
// entries and dropping repeats while keeping priority order.
func NormalizeList(languages []string) []string {
	var out []string
	for _, raw := range languages {
		for _, lang := range strings.Split(raw, ",") {
			if code := Canonical(lang); code != "" && !slices.Contains(out, code) {
				out = append(out, code)
			}
		}
	}
	return out
}

package textutil

import "strings"

// fileNameReplacer replaces filesystem-unsafe characters with safe alternatives.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
	"\x00", "",
)

// SanitizeFileName replaces filesystem-unsafe characters in a filename.
// Slashes, backslashes, colons, and asterisks become dashes; other unsafe
// characters are removed. Case is kept since video ids are case-sensitive.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	name = strings.TrimSpace(fileNameReplacer.Replace(name))
	return strings.TrimLeft(name, ".")
}

// TranscriptFileName names the file a transcript is written to:
// <video>.<language>.<ext>. Empty components fall back to "unknown".
func TranscriptFileName(videoID, languageCode, ext string) string {
	parts := []string{videoID, languageCode}
	for i, part := range parts {
		if part = SanitizeFileName(part); part == "" {
			part = "unknown"
		}
		parts[i] = part
	}
	if ext = SanitizeFileName(strings.TrimPrefix(ext, ".")); ext != "" {
		parts = append(parts, ext)
	}
	return strings.Join(parts, ".")
}

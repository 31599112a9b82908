// Package language normalizes user-supplied language preferences into the
// caption codes the platform publishes, and renders display names for them.
//
// Common languages are also recognized by English name and ISO 639-2 code.
// Everything else goes through golang.org/x/text BCP 47 parsing.
package language

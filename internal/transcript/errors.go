package transcript

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCouldNotRetrieveTranscript is the root of every classified failure. Use
// errors.Is against it to tell pipeline failures apart from programming or
// configuration errors.
var ErrCouldNotRetrieveTranscript = errors.New("could not retrieve transcript")

// Kind enumerates the classified failure conditions. A Kind is itself an
// error so callers can match with errors.Is(err, transcript.KindTooManyRequests).
type Kind uint8

const (
	KindUnknown Kind = iota
	KindRequestFailed
	KindInvalidVideoID
	KindTooManyRequests
	KindVideoUnavailable
	KindTranscriptsDisabled
	KindNoTranscriptAvailable
	KindNotTranslatable
	KindTranslationLanguageNotAvailable
	KindCookiePathInvalid
	KindCookiesInvalid
	KindFailedToCreateConsentCookie
	KindNoTranscriptFound
)

var kindNames = map[Kind]string{
	KindUnknown:                         "Unknown",
	KindRequestFailed:                   "YouTubeRequestFailed",
	KindInvalidVideoID:                  "InvalidVideoId",
	KindTooManyRequests:                 "TooManyRequests",
	KindVideoUnavailable:                "VideoUnavailable",
	KindTranscriptsDisabled:             "TranscriptsDisabled",
	KindNoTranscriptAvailable:           "NoTranscriptAvailable",
	KindNotTranslatable:                 "NotTranslatable",
	KindTranslationLanguageNotAvailable: "TranslationLanguageNotAvailable",
	KindCookiePathInvalid:               "CookiePathInvalid",
	KindCookiesInvalid:                  "CookiesInvalid",
	KindFailedToCreateConsentCookie:     "FailedToCreateConsentCookie",
	KindNoTranscriptFound:               "NoTranscriptFound",
}

// String returns the stable name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

func (k Kind) Error() string { return k.String() }

// cause is the human-readable explanation shown to users for each kind.
func (k Kind) cause() string {
	switch k {
	case KindRequestFailed:
		return "Request to YouTube failed"
	case KindInvalidVideoID:
		return "You provided an invalid video id. Make sure you pass the bare video id and NOT the url!\n\n" +
			"Do NOT run: `ytcaptions fetch https://www.youtube.com/watch?v=1234`\n" +
			"Instead run: `ytcaptions fetch 1234`"
	case KindTooManyRequests:
		return "YouTube is receiving too many requests from this IP and now requires solving a captcha to continue. " +
			"Solve the captcha in a browser and export its cookies, then pass them with --cookies, " +
			"or wait until the IP ban is lifted."
	case KindVideoUnavailable:
		return "The video is no longer available"
	case KindTranscriptsDisabled:
		return "Subtitles are disabled for this video"
	case KindNoTranscriptAvailable:
		return "No transcripts are available for this video"
	case KindNotTranslatable:
		return "The requested language is not translatable"
	case KindTranslationLanguageNotAvailable:
		return "The requested translation language is not available"
	case KindCookiePathInvalid:
		return "The provided cookie file was unable to be loaded"
	case KindCookiesInvalid:
		return "The cookies provided are not valid (may have expired)"
	case KindFailedToCreateConsentCookie:
		return "Failed to automatically give consent to saving cookies"
	case KindNoTranscriptFound:
		return "No transcripts were found for any of the requested language codes"
	default:
		return "Unknown failure"
	}
}

// Error is the tagged failure produced by every pipeline component. Kind is
// the stable classification; Reason carries free-text diagnostics and must
// never be used for control flow.
type Error struct {
	Kind    Kind
	VideoID string
	Reason  string
	// Languages holds the requested codes for KindNoTranscriptFound.
	Languages []string
	Err       error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("Could not retrieve a transcript")
	if e.VideoID != "" {
		b.WriteString(" for the video ")
		b.WriteString(watchURL(DefaultBaseURL, e.VideoID))
	}
	b.WriteString("! This is most likely caused by:\n\n")
	b.WriteString(e.Cause())
	return b.String()
}

// Cause renders the kind-specific explanation including any diagnostics.
func (e *Error) Cause() string {
	cause := e.Kind.cause()
	switch e.Kind {
	case KindRequestFailed:
		if e.Reason != "" {
			cause += ": " + e.Reason
		}
		return cause
	case KindNoTranscriptFound:
		cause += ": " + formatCodes(e.Languages)
	}
	if e.Reason != "" {
		cause += "\n\n" + e.Reason
	}
	return cause
}

// Unwrap exposes the kind, the root sentinel, and the underlying error.
func (e *Error) Unwrap() []error {
	errs := []error{e.Kind, ErrCouldNotRetrieveTranscript}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// KindOf reports the classification of err, or KindUnknown when err is not a
// pipeline failure.
func KindOf(err error) Kind {
	var terr *Error
	if errors.As(err, &terr) {
		return terr.Kind
	}
	return KindUnknown
}

func newError(kind Kind, videoID, reason string) *Error {
	return &Error{Kind: kind, VideoID: videoID, Reason: reason}
}

func requestFailed(videoID string, err error) *Error {
	return &Error{Kind: KindRequestFailed, VideoID: videoID, Reason: err.Error(), Err: err}
}

func statusFailed(videoID string, status int, text string) *Error {
	return newError(KindRequestFailed, videoID, fmt.Sprintf("unexpected status %d %s", status, text))
}

func formatCodes(codes []string) string {
	quoted := make([]string, 0, len(codes))
	for _, code := range codes {
		quoted = append(quoted, fmt.Sprintf("%q", code))
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// Package transcript retrieves caption tracks for a video and decodes them
// into timed lines.
//
// A lookup runs strictly in sequence: FetchVideoPage downloads the watch page
// (negotiating the cookie-consent interstitial once when needed),
// ExtractManifest carves the caption manifest out of it, BuildCatalog indexes
// the tracks by language, Catalog.Find resolves a language preference list,
// Handle.Translate optionally derives a machine translation, and FetchCues
// downloads and decodes the timed text. Client wires the stages together with
// a private Session per lookup.
//
// Every failure is an *Error carrying a Kind from a closed set. Match on the
// kind with errors.Is(err, KindTooManyRequests) or KindOf(err); all of them
// also match ErrCouldNotRetrieveTranscript.
package transcript

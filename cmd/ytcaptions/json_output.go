package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"ytcaptions/internal/transcript"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type listingJSON struct {
	VideoID              string                           `json:"video_id"`
	Transcripts          []transcript.Handle              `json:"transcripts"`
	TranslationLanguages []transcript.TranslationLanguage `json:"translation_languages"`
}

func newListingJSON(c *transcript.Catalog) listingJSON {
	langs := c.TranslationLanguages()
	if langs == nil {
		langs = []transcript.TranslationLanguage{}
	}
	return listingJSON{
		VideoID:              c.VideoID(),
		Transcripts:          c.Handles(),
		TranslationLanguages: langs,
	}
}

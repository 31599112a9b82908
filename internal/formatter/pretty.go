package formatter

import (
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"ytcaptions/internal/transcript"
)

// PrettyFormatter renders one table per transcript.
type PrettyFormatter struct{}

func (PrettyFormatter) Format(w io.Writer, results []transcript.Result) error {
	for i, r := range results {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		tw := newTableWriter()
		tw.SetTitle(r.VideoID + " - " + r.Handle.Language() + " (" + r.Handle.LanguageCode() + ")")
		tw.AppendHeader(table.Row{"#", "Start", "End", "Text"})
		for n, l := range r.Lines {
			tw.AppendRow(table.Row{
				strconv.Itoa(n + 1),
				formatTimestamp(l.Start, '.'),
				formatTimestamp(cueEnd(r.Lines, n), '.'),
				l.Text,
			})
		}
		tw.SetColumnConfigs([]table.ColumnConfig{
			{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
			{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
			{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
			{Number: 4, WidthMax: 80},
		})
		if _, err := io.WriteString(w, tw.Render()+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// CatalogTable renders a catalog as a table with one row per track.
func CatalogTable(c *transcript.Catalog) string {
	tw := newTableWriter()
	tw.SetTitle(c.VideoID())
	tw.AppendHeader(table.Row{"Code", "Language", "Origin", "Translatable"})
	for _, h := range c.Handles() {
		origin := "manual"
		if h.IsGenerated() {
			origin = "generated"
		}
		tw.AppendRow(table.Row{h.LanguageCode(), h.Language(), origin, yesNo(h.IsTranslatable())})
	}
	if langs := c.TranslationLanguages(); len(langs) > 0 {
		tw.AppendFooter(table.Row{"", strconv.Itoa(len(langs)) + " translation languages", "", ""})
	}
	return tw.Render()
}

func newTableWriter() table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	return tw
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ytcaptions/internal/formatter"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var flags sessionFlags
	var asTable bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list <video>...",
		Short: "List the caption tracks available for videos",
		Args: func(cmd *cobra.Command, args []string) error {
			return requireVideos(args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.newClient(cmd.Context(), flags)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			var listings []listingJSON
			for i, id := range videoIDs(args) {
				catalog, err := client.List(cmd.Context(), id)
				if err != nil {
					return classifyLookupError(id, err)
				}
				switch {
				case asJSON:
					listings = append(listings, newListingJSON(catalog))
				case asTable:
					fmt.Fprintln(out, formatter.CatalogTable(catalog))
				default:
					if i > 0 {
						fmt.Fprintln(out)
					}
					fmt.Fprintln(out, catalog.String())
				}
			}
			if asJSON {
				return writeJSON(cmd, listings)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asTable, "table", false, "Render each listing as a table")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit listings as JSON")
	cmd.MarkFlagsMutuallyExclusive("table", "json")
	return cmd
}

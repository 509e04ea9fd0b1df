package main

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"muse/internal/archive"
	"muse/internal/render"
)

func newSearchCmd(flags *rootFlags) *cobra.Command {
	var (
		limit    int
		explicit bool
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the archive and print matches",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := flags.client()
			if err != nil {
				return err
			}
			page, err := client.Search(cmd.Context(), archive.SearchQuery{
				Q:               strings.Join(args, " "),
				Limit:           limit,
				IncludeExplicit: explicit,
			})
			if err != nil {
				return err
			}

			t := newTable(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"id", "title", "type", "words", "date"})
			for _, w := range page.Items {
				title := render.Sanitize(w.Title)
				if w.ExplicitContent {
					title += " [18+]"
				}
				t.AppendRow(table.Row{
					w.ID,
					title,
					w.ContentType,
					w.WordCount,
					render.FormatDate(w.ParsedTimestamp()),
				})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of results")
	cmd.Flags().BoolVar(&explicit, "explicit", false, "include explicit writings")
	return cmd
}

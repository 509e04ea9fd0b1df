package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"muse/internal/archive"
	"muse/internal/render"
)

func newListCmd(flags *rootFlags) *cobra.Command {
	var (
		contentType string
		status      string
		tag         string
		limit       int
		explicit    bool
		today       bool
		chapters    bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List writings with optional filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scopes := 0
			for _, set := range []bool{contentType != "", status != "", tag != "", today, chapters} {
				if set {
					scopes++
				}
			}
			if scopes > 1 {
				return fmt.Errorf("choose at most one of --type, --status, --tag, --today, --chapters")
			}

			client, err := flags.client()
			if err != nil {
				return err
			}
			query := archive.ListQuery{Limit: limit, Explicit: explicit}

			var page archive.WritingPage
			ctx := cmd.Context()
			switch {
			case contentType != "":
				page, err = client.WritingsByType(ctx, contentType, query)
			case status != "":
				page, err = client.WritingsByStatus(ctx, status, query)
			case tag != "":
				page, err = client.WritingsByTag(ctx, tag, query)
			case today:
				page, err = client.TodaysWritings(ctx, query)
			case chapters:
				page, err = client.Chapters(ctx, query)
			default:
				page, err = client.ListWritings(ctx, query)
			}
			if err != nil {
				return err
			}

			t := newTable(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"id", "title", "type", "status", "words", "date"})
			for _, w := range page.Items {
				title := render.Sanitize(w.Title)
				if w.ExplicitContent {
					title += " [18+]"
				}
				t.AppendRow(table.Row{
					w.ID,
					title,
					w.ContentType,
					w.PublicationStatus,
					w.WordCount,
					render.FormatDate(w.ParsedTimestamp()),
				})
			}
			t.Render()
			if page.Total > len(page.Items) {
				fmt.Fprintf(cmd.OutOrStdout(), "%d of %d writings shown\n",
					len(page.Items), page.Total)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&contentType, "type", "", "only this content type")
	cmd.Flags().StringVar(&status, "status", "", "only this publication status")
	cmd.Flags().StringVar(&tag, "tag", "", "only writings with this tag")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of writings")
	cmd.Flags().BoolVar(&explicit, "explicit", false, "include explicit writings")
	cmd.Flags().BoolVar(&today, "today", false, "only writings from today")
	cmd.Flags().BoolVar(&chapters, "chapters", false, "only chapter-length pieces")
	return cmd
}

package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"muse/internal/render"
)

func newTagsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List archive tags with usage counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := flags.client()
			if err != nil {
				return err
			}
			tags, err := client.Tags(cmd.Context())
			if err != nil {
				return err
			}

			t := newTable(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"tag", "type", "uses"})
			for _, tag := range tags {
				t.AppendRow(table.Row{render.Sanitize(tag.Name), tag.TagType, tag.UsageCount})
			}
			t.Render()
			return nil
		},
	}
}

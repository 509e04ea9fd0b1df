package main

import (
	"fmt"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"muse/internal/render"
)

func newStatsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print archive statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := flags.client()
			if err != nil {
				return err
			}
			stats, err := client.Stats(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d writings, %d words (%.0f words on average)\n\n",
				stats.TotalWritings, stats.TotalWords, stats.AverageWords)

			if len(stats.ContentTypeDistribution) > 0 {
				types := make([]string, 0, len(stats.ContentTypeDistribution))
				for name := range stats.ContentTypeDistribution {
					types = append(types, name)
				}
				sort.Strings(types)

				t := newTable(out)
				t.AppendHeader(table.Row{"type", "count", "explicit"})
				for _, name := range types {
					tc := stats.ContentTypeDistribution[name]
					t.AppendRow(table.Row{render.TitleCase(name), tc.Count, tc.Explicit})
				}
				t.Render()
			}

			if len(stats.TopTags) > 0 {
				fmt.Fprintln(out)
				t := newTable(out)
				t.AppendHeader(table.Row{"tag", "uses"})
				for _, tag := range stats.TopTags {
					t.AppendRow(table.Row{tag.Name, tag.Count})
				}
				t.Render()
			}
			return nil
		},
	}
}

package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newHealthCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check archive API liveness",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := flags.client()
			if err != nil {
				return err
			}
			health, err := client.Health(cmd.Context())
			if err != nil {
				return fmt.Errorf("archive unreachable: %w", err)
			}

			t := newTable(cmd.OutOrStdout())
			t.AppendRow(table.Row{"status", health.Status})
			t.AppendRow(table.Row{"database", health.Database})
			t.AppendRow(table.Row{"writings", health.TotalWritings})
			if health.Error != "" {
				t.AppendRow(table.Row{"error", health.Error})
			}
			t.Render()

			if !health.Healthy() {
				return fmt.Errorf("archive reports %q", health.Status)
			}
			return nil
		},
	}
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"muse/internal/app"
	"muse/internal/archive"
	"muse/internal/config"
	"muse/internal/ui"
)

type rootFlags struct {
	configPath string
	apiURL     string
	theme      string
	probeEvery int
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "muse",
		Short: "Terminal reading room for a personal writing archive",
		Long: `muse browses a personal creative-writing archive served by its HTTP API.

Run without arguments to open the interactive interface. The subcommands
print one-shot results for scripting.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), app.Options{
				ConfigPath: flags.configPath,
				APIURL:     flags.apiURL,
				ProbeEvery: flags.probeEvery,
				ThemeName:  flags.theme,
			})
		},
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "",
		"path to the config file (default ~/.config/muse/config.toml)")
	cmd.PersistentFlags().StringVar(&flags.apiURL, "api", "",
		"archive API address (host:port or URL)")
	cmd.Flags().StringVar(&flags.theme, "theme", "",
		"color theme ("+strings.Join(ui.ThemeNames(), ", ")+")")
	cmd.Flags().IntVar(&flags.probeEvery, "probe", 0,
		"health probe interval in seconds")

	cmd.AddCommand(
		newHealthCmd(flags),
		newStatsCmd(flags),
		newListCmd(flags),
		newSearchCmd(flags),
		newTagsCmd(flags),
	)
	return cmd
}

// client builds the one-shot API client used by the subcommands. Their
// diagnostics go nowhere; errors surface on the command itself.
func (f *rootFlags) client() (*archive.Client, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if f.apiURL != "" {
		cfg.APIURL = f.apiURL
	}
	return archive.NewClient(cfg.APIURL, nil)
}

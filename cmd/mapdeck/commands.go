package main

import (
	"github.com/spf13/cobra"

	"github.com/five82/mapdeck/internal/app"
)

// newRootCommand builds the CLI. The root command runs the map TUI.
func newRootCommand() *cobra.Command {
	opts := &app.Options{}

	cmd := &cobra.Command{
		Use:           "mapdeck",
		Short:         "Terminal map with location focus",
		Long:          "mapdeck draws a slippy map in the terminal and recenters it on the device location.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), *opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.config/mapdeck/config.toml)")
	cmd.PersistentFlags().StringVar(&opts.PrefsPath, "prefs", "", "preferences file (default ~/.config/mapdeck/prefs.toml)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(newCheckCommand(opts))
	cmd.AddCommand(newLocateCommand(opts))
	cmd.AddCommand(newLogsCommand(opts))
	return cmd
}

func newCheckCommand(opts *app.Options) *cobra.Command {
	var resetConsent bool
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check the tile server and gpsd and show location consent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.ConfigureStderr(opts.Verbose)
			return app.Check(cmd.Context(), *opts, cmd.OutOrStdout(), resetConsent)
		},
	}
	cmd.Flags().BoolVar(&resetConsent, "reset-consent", false, "forget the stored location consent")
	return cmd
}

func newLocateCommand(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "locate",
		Short: "Print one fix from the configured location source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.ConfigureStderr(opts.Verbose)
			return app.Locate(cmd.Context(), *opts, cmd.OutOrStdout())
		},
	}
}

func newLogsCommand(opts *app.Options) *cobra.Command {
	var (
		lines int
		level string
	)
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the tail of the session log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Logs(*opts, cmd.OutOrStdout(), lines, level)
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 200, "number of lines to read, 0 for all")
	cmd.Flags().StringVar(&level, "level", "debug", "minimum level (debug, info, warn, error)")
	return cmd
}

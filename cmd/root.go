package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	app, err := wireApp()
	return buildRootCmd(app, err)
}

func buildRootCmd(app *app, wireErr error) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "snp",
		Short:         "slack-now-playing (snp): mirror your Spotify track to your Slack status",
		Long:          "snp polls Spotify for the track you are listening to and mirrors it onto your Slack profile as a status line with a progress bar, swapping your profile photo for the album art whenever the track changes.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	if wireErr != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return wireErr
		}
		return rootCmd
	}

	rootCmd.PersistentFlags().StringVar(&app.configPath, "config", "", "Settings file (default $SNP_CONFIG or ~/.config/slack-now-playing/config.toml)")
	rootCmd.PersistentFlags().StringVar(&app.logLevel, "log-level", "", "Override log.level (debug|info|warn|error)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(app),
		newAuthCmd(app),
		newCredentialsCmd(app),
		newConfigCmd(app),
	)

	return rootCmd
}

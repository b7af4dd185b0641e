package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAuthCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Spotify authorization helpers",
	}

	cmd.AddCommand(newAuthURLCmd(app))

	return cmd
}

func newAuthURLCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "url",
		Short: "Print the Spotify authorization link",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := app.settings()
			if err != nil {
				return err
			}

			music, err := app.musicClient(settings, newHTTPClient(settings), false)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), music.AuthorizationURL())
			return err
		},
	}
}

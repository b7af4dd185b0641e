package cmd

import (
	"fmt"

	"github.com/bnema/slack-now-playing/internal/application"
	"github.com/spf13/cobra"
)

func newCredentialsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credentials",
		Short: "Manage remembered Slack credentials",
	}

	cmd.AddCommand(newCredentialsForgetCmd(app))

	return cmd
}

func newCredentialsForgetCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "forget",
		Short: "Delete remembered Slack credentials from the secret store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := app.settings()
			if err != nil {
				return err
			}

			store, err := app.newSecretStore(settings.Credentials.SecretsDir)
			if err != nil {
				return err
			}

			if err := application.NewCredentialResolver(store, nil, false, nil).Forget(cmd.Context()); err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), "Forgot remembered Slack credentials.")
			return err
		},
	}
}

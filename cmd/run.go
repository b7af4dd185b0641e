package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bnema/slack-now-playing/internal/adapters/artwork"
	"github.com/bnema/slack-now-playing/internal/adapters/render/nowplaying"
	"github.com/bnema/slack-now-playing/internal/adapters/slack"
	"github.com/bnema/slack-now-playing/internal/adapters/spotify"
	"github.com/bnema/slack-now-playing/internal/application"
	"github.com/bnema/slack-now-playing/internal/config"
	"github.com/bnema/slack-now-playing/internal/domain"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func newRunCmd(app *app) *cobra.Command {
	var noOpen bool
	var saveCredentials bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Log in to Spotify and keep your Slack status in sync",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := app.settings()
			if err != nil {
				return err
			}
			if saveCredentials {
				settings.Credentials.Remember = true
			}

			log, err := app.logger(settings, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runLoop(ctx, cmd, app, settings, log, !noOpen)
		},
	}

	cmd.Flags().BoolVar(&noOpen, "no-open", false, "Print the authorization link without opening a browser")
	cmd.Flags().BoolVar(&saveCredentials, "save-credentials", false, "Remember prompted Slack credentials in the secret store")

	return cmd
}

func runLoop(ctx context.Context, cmd *cobra.Command, app *app, settings config.Settings, log *zap.Logger, openBrowser bool) error {
	httpClient := newHTTPClient(settings)

	music, err := app.musicClient(settings, httpClient, openBrowser)
	if err != nil {
		return err
	}

	store, err := app.newSecretStore(settings.Credentials.SecretsDir)
	if err != nil {
		return err
	}
	resolver := application.NewCredentialResolver(store, app.newPrompter(app.stdin, cmd.ErrOrStderr()), settings.Credentials.Remember, log)
	chatCreds, err := resolver.Resolve(ctx, settings.ChatCredentials())
	if err != nil {
		return err
	}

	chat := slack.NewClient(chatCreds, httpClient)
	if err := chat.ValidateCredentials(); err != nil {
		return err
	}

	events := &application.Events{}
	server, err := spotify.StartCallbackServer(settings.Spotify.ListenAddr, music, &events.Authenticated, log)
	if err != nil {
		return err
	}
	defer func() { _ = server.Close() }()
	if err := checkRedirectTarget(music.RedirectURI(), server.RedirectURI()); err != nil {
		return err
	}

	orchestrator, err := application.NewOrchestrator(application.OrchestratorConfig{
		Music:            music,
		Chat:             chat,
		Images:           artwork.Fetcher{HTTPClient: httpClient},
		Reporter:         nowplaying.NewReporter(cmd.OutOrStdout(), app.now),
		Listener:         server,
		Events:           events,
		Logger:           log,
		Emoji:            settings.Status.Emoji,
		PlaceholderImage: settings.Status.PlaceholderImage,
		PollInterval:     settings.Status.PollInterval,
		RefreshInterval:  settings.Status.RefreshInterval,
	})
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(cmd.ErrOrStderr(), "Open this link to log in to Spotify:\n%s\n", music.AuthorizationURL()); err != nil {
		return err
	}
	if _, err := music.OpenAuthorization(); err != nil {
		log.Warn("could not open a browser", zap.Error(err))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		select {
		case err := <-server.Err():
			return fmt.Errorf("callback server: %w", err)
		case <-gctx.Done():
			return nil
		}
	})
	g.Go(func() error {
		return orchestrator.Run(gctx)
	})
	if isTerminal(cmd.ErrOrStderr()) {
		g.Go(func() error {
			return runLoginSpinner(gctx, cmd.ErrOrStderr(), func() bool {
				return orchestrator.State() == domain.StatePolling
			})
		})
	}

	return g.Wait()
}

// checkRedirectTarget fails when the browser would be sent to a port the
// callback listener is not bound to, which would leave login waiting forever.
func checkRedirectTarget(registered, listening string) error {
	want, err := config.RedirectPort(registered)
	if err != nil {
		return err
	}
	got, err := config.RedirectPort(listening)
	if err != nil {
		return err
	}
	if want != got {
		return fmt.Errorf("callback listener is on port %s but %s sends the browser to port %s", got, config.KeySpotifyRedirectURI, want)
	}
	return nil
}

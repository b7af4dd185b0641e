package cmd

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/bnema/slack-now-playing/internal/adapters/prompt"
	tomlrepo "github.com/bnema/slack-now-playing/internal/adapters/repo/toml"
	chainstore "github.com/bnema/slack-now-playing/internal/adapters/secrets/chain"
	"github.com/bnema/slack-now-playing/internal/adapters/spotify"
	"github.com/bnema/slack-now-playing/internal/config"
	"github.com/bnema/slack-now-playing/internal/logger"
	"github.com/bnema/slack-now-playing/internal/ports"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type app struct {
	configPath string
	logLevel   string

	stdin          *os.File
	openURL        func(string) error
	newSecretStore func(dir string) (ports.SecretStore, error)
	newPrompter    func(in *os.File, out io.Writer) ports.CredentialPrompter
	now            func() time.Time
}

func wireApp() (*app, error) {
	if _, err := config.Dir(); err != nil {
		return nil, fmt.Errorf("wire settings location: %w", err)
	}

	return &app{
		stdin:   os.Stdin,
		openURL: spotify.OpenBrowser,
		newSecretStore: func(dir string) (ports.SecretStore, error) {
			store, err := chainstore.NewPassFirstWithFileFallback(dir)
			if err != nil {
				return nil, fmt.Errorf("wire secret store chain: %w", err)
			}
			return store, nil
		},
		newPrompter: prompt.New,
		now:         time.Now,
	}, nil
}

func (a *app) settings() (config.Settings, error) {
	settings, err := config.Load(config.LoadOptions{ConfigPath: a.configPath})
	if err != nil {
		return config.Settings{}, err
	}
	if a.logLevel != "" {
		settings.Log.Level = a.logLevel
	}
	return settings, nil
}

func (a *app) settingsRepository() (*tomlrepo.Repository, error) {
	v := viper.New()
	if a.configPath != "" {
		v.Set("settings.path", a.configPath)
	}

	repo, err := tomlrepo.NewRepository(v)
	if err != nil {
		return nil, fmt.Errorf("wire settings repository: %w", err)
	}
	return repo, nil
}

func (a *app) logger(settings config.Settings, console io.Writer) (*zap.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:   settings.Log.Level,
		Dir:     settings.Log.Dir,
		Console: console,
	})
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}
	return log, nil
}

func (a *app) musicClient(settings config.Settings, httpClient *http.Client, openBrowser bool) (*spotify.Client, error) {
	var openURL func(string) error
	if openBrowser {
		openURL = a.openURL
	}

	return spotify.NewClient(spotify.Config{
		Credentials: settings.MusicCredentials(),
		AccountsURL: settings.Spotify.AccountsURL,
		APIURL:      settings.Spotify.APIURL,
		RedirectURI: settings.Spotify.RedirectURI,
		Market:      settings.Spotify.Market,
		HTTPClient:  httpClient,
		OpenURL:     openURL,
	})
}

func newHTTPClient(settings config.Settings) *http.Client {
	return &http.Client{Timeout: settings.HTTP.Timeout}
}

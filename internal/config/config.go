// Package config resolves the effective settings from .env, the settings
// file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvPrefix     = "SNP"
	EnvConfigPath = "SNP_CONFIG"
	AppDirName    = "slack-now-playing"
	ConfigFile    = "config.toml"
	DotEnvFile    = ".env"
)

// legacyEnv maps settings to the variable names read by earlier releases.
var legacyEnv = map[string]string{
	KeySpotifyClientID:     "SPOTIFY_CLIENT_ID",
	KeySpotifyClientSecret: "SPOTIFY_CLIENT_SECRET",
	KeySlackBaseURL:        "SLACK_BASE_URL",
	KeySlackToken:          "SLACK_TOKEN",
	KeySlackDCookie:        "SLACK_D_COOKIE",
}

type LoadOptions struct {
	// ConfigPath overrides SNP_CONFIG and the default location.
	ConfigPath string
	// DotEnvPath defaults to .env in the working directory.
	DotEnvPath string
	// SkipDotEnv disables .env loading.
	SkipDotEnv bool
}

// Dir returns ~/.config/slack-now-playing.
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", AppDirName), nil
}

// Path returns the settings file location, honoring SNP_CONFIG.
func Path() (string, error) {
	if override := strings.TrimSpace(os.Getenv(EnvConfigPath)); override != "" {
		return expandHome(override)
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFile), nil
}

func Load(opts LoadOptions) (Settings, error) {
	if !opts.SkipDotEnv {
		if err := loadDotEnv(firstNonEmpty(opts.DotEnvPath, DotEnvFile)); err != nil {
			return Settings{}, err
		}
	}

	path := opts.ConfigPath
	if path == "" {
		var err error
		if path, err = Path(); err != nil {
			return Settings{}, err
		}
	}

	v := viper.New()
	setDefaults(v, Defaults())

	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
		return Settings{}, fmt.Errorf("read config file: %w", err)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, legacy := range legacyEnv {
		if err := v.BindEnv(key, EnvPrefix+"_"+envSuffix(key), legacy); err != nil {
			return Settings{}, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}

	if err := settings.resolvePaths(); err != nil {
		return Settings{}, err
	}
	if err := settings.Validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid settings: %w", err)
	}

	return settings, nil
}

func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load %s: %w", path, err)
}

func setDefaults(v *viper.Viper, d Settings) {
	v.SetDefault(KeySpotifyClientID, d.Spotify.ClientID)
	v.SetDefault(KeySpotifyClientSecret, d.Spotify.ClientSecret)
	v.SetDefault(KeySpotifyAccountsURL, d.Spotify.AccountsURL)
	v.SetDefault(KeySpotifyAPIURL, d.Spotify.APIURL)
	v.SetDefault(KeySpotifyRedirectURI, d.Spotify.RedirectURI)
	v.SetDefault(KeySpotifyListenAddr, d.Spotify.ListenAddr)
	v.SetDefault(KeySpotifyMarket, d.Spotify.Market)
	v.SetDefault(KeySlackBaseURL, d.Slack.BaseURL)
	v.SetDefault(KeySlackToken, d.Slack.Token)
	v.SetDefault(KeySlackDCookie, d.Slack.DCookie)
	v.SetDefault(KeyStatusEmoji, d.Status.Emoji)
	v.SetDefault(KeyStatusPlaceholder, d.Status.PlaceholderImage)
	v.SetDefault(KeyStatusPollInterval, d.Status.PollInterval)
	v.SetDefault(KeyStatusRefresh, d.Status.RefreshInterval)
	v.SetDefault(KeyHTTPTimeout, d.HTTP.Timeout)
	v.SetDefault(KeyLogLevel, d.Log.Level)
	v.SetDefault(KeyLogDir, d.Log.Dir)
	v.SetDefault(KeyCredentialsRemember, d.Credentials.Remember)
	v.SetDefault(KeyCredentialsDir, d.Credentials.SecretsDir)
}

func (s *Settings) resolvePaths() error {
	if s.Credentials.SecretsDir == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		s.Credentials.SecretsDir = filepath.Join(dir, "secrets")
	}

	var err error
	if s.Credentials.SecretsDir, err = expandHome(s.Credentials.SecretsDir); err != nil {
		return err
	}
	if s.Log.Dir != "" {
		if s.Log.Dir, err = expandHome(s.Log.Dir); err != nil {
			return err
		}
	}
	return nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~")), nil
}

func envSuffix(key string) string {
	return strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

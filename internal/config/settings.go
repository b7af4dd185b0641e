package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/slack-now-playing/internal/domain"
)

type Settings struct {
	Spotify     SpotifySettings     `mapstructure:"spotify"`
	Slack       SlackSettings       `mapstructure:"slack"`
	Status      StatusSettings      `mapstructure:"status"`
	HTTP        HTTPSettings        `mapstructure:"http"`
	Log         LogSettings         `mapstructure:"log"`
	Credentials CredentialsSettings `mapstructure:"credentials"`
}

type SpotifySettings struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	AccountsURL  string `mapstructure:"accounts_url"`
	APIURL       string `mapstructure:"api_url"`
	RedirectURI  string `mapstructure:"redirect_uri"`
	ListenAddr   string `mapstructure:"listen_addr"`
	Market       string `mapstructure:"market"`
}

type SlackSettings struct {
	BaseURL string `mapstructure:"base_url"`
	Token   string `mapstructure:"token"`
	DCookie string `mapstructure:"d_cookie"`
}

type StatusSettings struct {
	Emoji            string        `mapstructure:"emoji"`
	PlaceholderImage string        `mapstructure:"placeholder_image"`
	PollInterval     time.Duration `mapstructure:"poll_interval"`
	RefreshInterval  time.Duration `mapstructure:"refresh_interval"`
}

type HTTPSettings struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

type LogSettings struct {
	Level string `mapstructure:"level"`
	Dir   string `mapstructure:"dir"`
}

type CredentialsSettings struct {
	Remember   bool   `mapstructure:"remember"`
	SecretsDir string `mapstructure:"secrets_dir"`
}

const (
	KeySpotifyClientID     = "spotify.client_id"
	KeySpotifyClientSecret = "spotify.client_secret"
	KeySpotifyAccountsURL  = "spotify.accounts_url"
	KeySpotifyAPIURL       = "spotify.api_url"
	KeySpotifyRedirectURI  = "spotify.redirect_uri"
	KeySpotifyListenAddr   = "spotify.listen_addr"
	KeySpotifyMarket       = "spotify.market"
	KeySlackBaseURL        = "slack.base_url"
	KeySlackToken          = "slack.token"
	KeySlackDCookie        = "slack.d_cookie"
	KeyStatusEmoji         = "status.emoji"
	KeyStatusPlaceholder   = "status.placeholder_image"
	KeyStatusPollInterval  = "status.poll_interval"
	KeyStatusRefresh       = "status.refresh_interval"
	KeyHTTPTimeout         = "http.timeout"
	KeyLogLevel            = "log.level"
	KeyLogDir              = "log.dir"
	KeyCredentialsRemember = "credentials.remember"
	KeyCredentialsDir      = "credentials.secrets_dir"
)

const SecretMask = "********"

func Defaults() Settings {
	return Settings{
		Spotify: SpotifySettings{
			AccountsURL: "https://accounts.spotify.com",
			APIURL:      "https://api.spotify.com/v1",
			RedirectURI: "http://localhost:5000",
			ListenAddr:  "localhost:5000",
			Market:      "ID",
		},
		Status: StatusSettings{
			Emoji:            domain.DefaultStatusEmoji,
			PlaceholderImage: domain.DefaultPlaceholderImage,
			PollInterval:     10 * time.Second,
			RefreshInterval:  30 * time.Minute,
		},
		HTTP: HTTPSettings{Timeout: 30 * time.Second},
		Log:  LogSettings{Level: "info"},
	}
}

// Keys lists every setting in file order.
func Keys() []string {
	return []string{
		KeySpotifyClientID, KeySpotifyClientSecret, KeySpotifyAccountsURL, KeySpotifyAPIURL,
		KeySpotifyRedirectURI, KeySpotifyListenAddr, KeySpotifyMarket,
		KeySlackBaseURL, KeySlackToken, KeySlackDCookie,
		KeyStatusEmoji, KeyStatusPlaceholder, KeyStatusPollInterval, KeyStatusRefresh,
		KeyHTTPTimeout,
		KeyLogLevel, KeyLogDir,
		KeyCredentialsRemember, KeyCredentialsDir,
	}
}

func IsKnownKey(key string) bool {
	for _, known := range Keys() {
		if known == key {
			return true
		}
	}
	return false
}

func IsSecretKey(key string) bool {
	switch key {
	case KeySpotifyClientSecret, KeySlackToken, KeySlackDCookie:
		return true
	default:
		return false
	}
}

func (s Settings) MusicCredentials() domain.MusicCredentials {
	return domain.MusicCredentials{
		ClientID:     strings.TrimSpace(s.Spotify.ClientID),
		ClientSecret: strings.TrimSpace(s.Spotify.ClientSecret),
	}
}

func (s Settings) ChatCredentials() domain.ChatCredentials {
	return domain.ChatCredentials{
		BaseURL: strings.TrimSpace(s.Slack.BaseURL),
		Token:   strings.TrimSpace(s.Slack.Token),
		DCookie: strings.TrimSpace(s.Slack.DCookie),
	}
}

func (s Settings) Validate() error {
	var errs []error
	if s.Status.PollInterval <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive", KeyStatusPollInterval))
	}
	if s.Status.RefreshInterval <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive", KeyStatusRefresh))
	}
	if s.HTTP.Timeout < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative", KeyHTTPTimeout))
	}
	if err := s.Spotify.validateRedirect(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// validateRedirect requires the listener to sit on the port the registered
// redirect uri points the browser at.
func (s SpotifySettings) validateRedirect() error {
	if strings.TrimSpace(s.ListenAddr) == "" {
		return fmt.Errorf("%s is required", KeySpotifyListenAddr)
	}
	_, listenPort, err := net.SplitHostPort(strings.TrimSpace(s.ListenAddr))
	if err != nil {
		return fmt.Errorf("%s %q: %w", KeySpotifyListenAddr, s.ListenAddr, err)
	}
	redirectPort, err := RedirectPort(s.RedirectURI)
	if err != nil {
		return err
	}
	if listenPort != redirectPort {
		return fmt.Errorf("%s port %s does not match %s port %s", KeySpotifyListenAddr, listenPort, KeySpotifyRedirectURI, redirectPort)
	}
	return nil
}

// RedirectPort returns the port a redirect uri lands on, falling back to the
// scheme's well-known port.
func RedirectPort(redirectURI string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(redirectURI))
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("%s %q is not an absolute url", KeySpotifyRedirectURI, redirectURI)
	}
	if port := u.Port(); port != "" {
		return port, nil
	}
	if u.Scheme == "https" {
		return "443", nil
	}
	return "80", nil
}

// Masked replaces every non-empty secret with SecretMask.
func (s Settings) Masked() Settings {
	mask := func(v string) string {
		if v == "" {
			return ""
		}
		return SecretMask
	}
	s.Spotify.ClientSecret = mask(s.Spotify.ClientSecret)
	s.Slack.Token = mask(s.Slack.Token)
	s.Slack.DCookie = mask(s.Slack.DCookie)
	return s
}

package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version     int               `toml:"version"`
	Spotify     spotifySchema     `toml:"spotify"`
	Slack       slackSchema       `toml:"slack"`
	Status      statusSchema      `toml:"status"`
	HTTP        httpSchema        `toml:"http"`
	Log         logSchema         `toml:"log"`
	Credentials credentialsSchema `toml:"credentials"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported settings schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type spotifySchema struct {
	ClientID     string `toml:"client_id,omitempty"`
	ClientSecret string `toml:"client_secret,omitempty"`
	AccountsURL  string `toml:"accounts_url,omitempty"`
	APIURL       string `toml:"api_url,omitempty"`
	RedirectURI  string `toml:"redirect_uri,omitempty"`
	ListenAddr   string `toml:"listen_addr,omitempty"`
	Market       string `toml:"market,omitempty"`
}

type slackSchema struct {
	BaseURL string `toml:"base_url,omitempty"`
	Token   string `toml:"token,omitempty"`
	DCookie string `toml:"d_cookie,omitempty"`
}

type statusSchema struct {
	Emoji            string `toml:"emoji,omitempty"`
	PlaceholderImage string `toml:"placeholder_image,omitempty"`
	PollInterval     string `toml:"poll_interval,omitempty"`
	RefreshInterval  string `toml:"refresh_interval,omitempty"`
}

type httpSchema struct {
	Timeout string `toml:"timeout,omitempty"`
}

type logSchema struct {
	Level string `toml:"level,omitempty"`
	Dir   string `toml:"dir,omitempty"`
}

type credentialsSchema struct {
	Remember   bool   `toml:"remember"`
	SecretsDir string `toml:"secrets_dir,omitempty"`
}

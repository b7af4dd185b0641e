package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/slack-now-playing/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateEnv points HOME at a temp dir and clears every variable Load reads.
func isolateEnv(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvConfigPath, "")
	for _, key := range Keys() {
		t.Setenv(EnvPrefix+"_"+envSuffix(key), "")
	}
	for _, legacy := range legacyEnv {
		t.Setenv(legacy, "")
	}
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoadReturnsDefaultsWithoutFile(t *testing.T) {
	home := isolateEnv(t)

	settings, err := Load(LoadOptions{SkipDotEnv: true})
	require.NoError(t, err)

	assert.Equal(t, "https://accounts.spotify.com", settings.Spotify.AccountsURL)
	assert.Equal(t, "https://api.spotify.com/v1", settings.Spotify.APIURL)
	assert.Equal(t, "http://localhost:5000", settings.Spotify.RedirectURI)
	assert.Equal(t, "localhost:5000", settings.Spotify.ListenAddr)
	assert.Equal(t, "ID", settings.Spotify.Market)
	assert.Equal(t, domain.DefaultStatusEmoji, settings.Status.Emoji)
	assert.Equal(t, domain.DefaultPlaceholderImage, settings.Status.PlaceholderImage)
	assert.Equal(t, 10*time.Second, settings.Status.PollInterval)
	assert.Equal(t, 30*time.Minute, settings.Status.RefreshInterval)
	assert.Equal(t, 30*time.Second, settings.HTTP.Timeout)
	assert.Equal(t, "info", settings.Log.Level)
	assert.False(t, settings.Credentials.Remember)
	assert.Equal(t, filepath.Join(home, ".config", "slack-now-playing", "secrets"), settings.Credentials.SecretsDir)
}

func TestLoadReadsSettingsFile(t *testing.T) {
	home := isolateEnv(t)
	path := filepath.Join(home, ".config", "slack-now-playing", "config.toml")
	writeFile(t, path, `
version = 1

[spotify]
client_id = "file-client"
market = "US"

[status]
poll_interval = "5s"
emoji = ":headphones:"

[credentials]
remember = true
secrets_dir = "~/vault"
`)

	settings, err := Load(LoadOptions{SkipDotEnv: true})
	require.NoError(t, err)

	assert.Equal(t, "file-client", settings.Spotify.ClientID)
	assert.Equal(t, "US", settings.Spotify.Market)
	assert.Equal(t, 5*time.Second, settings.Status.PollInterval)
	assert.Equal(t, ":headphones:", settings.Status.Emoji)
	assert.True(t, settings.Credentials.Remember)
	assert.Equal(t, filepath.Join(home, "vault"), settings.Credentials.SecretsDir)
}

func TestLoadPrefersEnvironmentOverFile(t *testing.T) {
	home := isolateEnv(t)
	path := filepath.Join(home, "custom.toml")
	writeFile(t, path, "[spotify]\nmarket = \"US\"\n[status]\npoll_interval = \"5s\"\n")

	t.Setenv(EnvConfigPath, path)
	t.Setenv("SNP_SPOTIFY_MARKET", "GB")
	t.Setenv("SNP_STATUS_POLL_INTERVAL", "3s")
	t.Setenv("SNP_CREDENTIALS_REMEMBER", "true")

	settings, err := Load(LoadOptions{SkipDotEnv: true})
	require.NoError(t, err)

	assert.Equal(t, "GB", settings.Spotify.Market)
	assert.Equal(t, 3*time.Second, settings.Status.PollInterval)
	assert.True(t, settings.Credentials.Remember)
}

func TestLoadReadsLegacyEnvironmentNames(t *testing.T) {
	isolateEnv(t)
	t.Setenv("SPOTIFY_CLIENT_ID", "legacy-id")
	t.Setenv("SPOTIFY_CLIENT_SECRET", "legacy-secret")
	t.Setenv("SLACK_BASE_URL", "https://team.slack.com")
	t.Setenv("SLACK_TOKEN", "xoxc-legacy")
	t.Setenv("SLACK_D_COOKIE", "xoxd-legacy")

	settings, err := Load(LoadOptions{SkipDotEnv: true})
	require.NoError(t, err)

	assert.Equal(t, domain.MusicCredentials{ClientID: "legacy-id", ClientSecret: "legacy-secret"}, settings.MusicCredentials())
	assert.Equal(t, domain.ChatCredentials{BaseURL: "https://team.slack.com", Token: "xoxc-legacy", DCookie: "xoxd-legacy"}, settings.ChatCredentials())
}

func TestLoadPrefixedEnvironmentWinsOverLegacy(t *testing.T) {
	isolateEnv(t)
	t.Setenv("SPOTIFY_CLIENT_ID", "legacy-id")
	t.Setenv("SNP_SPOTIFY_CLIENT_ID", "prefixed-id")

	settings, err := Load(LoadOptions{SkipDotEnv: true})
	require.NoError(t, err)
	assert.Equal(t, "prefixed-id", settings.Spotify.ClientID)
}

func TestLoadReadsDotEnv(t *testing.T) {
	home := isolateEnv(t)
	require.NoError(t, os.Unsetenv("SLACK_D_COOKIE"))

	dotenv := filepath.Join(home, ".env")
	writeFile(t, dotenv, "SLACK_D_COOKIE=xoxd-from-dotenv\n")

	settings, err := Load(LoadOptions{DotEnvPath: dotenv})
	require.NoError(t, err)
	assert.Equal(t, "xoxd-from-dotenv", settings.Slack.DCookie)
}

func TestLoadIgnoresMissingDotEnv(t *testing.T) {
	home := isolateEnv(t)

	_, err := Load(LoadOptions{DotEnvPath: filepath.Join(home, "missing.env")})
	require.NoError(t, err)
}

func TestLoadRejectsNonPositiveIntervals(t *testing.T) {
	isolateEnv(t)
	t.Setenv("SNP_STATUS_POLL_INTERVAL", "0s")

	_, err := Load(LoadOptions{SkipDotEnv: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status.poll_interval")
}

func TestLoadRejectsListenPortOutsideRedirectURI(t *testing.T) {
	isolateEnv(t)
	t.Setenv("SNP_SPOTIFY_LISTEN_ADDR", "localhost:5001")

	_, err := Load(LoadOptions{SkipDotEnv: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "spotify.listen_addr port 5001 does not match spotify.redirect_uri port 5000")
}

func TestLoadAcceptsListenAddrMovedWithRedirectURI(t *testing.T) {
	isolateEnv(t)
	t.Setenv("SNP_SPOTIFY_LISTEN_ADDR", "127.0.0.1:8888")
	t.Setenv("SNP_SPOTIFY_REDIRECT_URI", "http://127.0.0.1:8888/callback")

	settings, err := Load(LoadOptions{SkipDotEnv: true})
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8888", settings.Spotify.ListenAddr)
}

func TestRedirectPort(t *testing.T) {
	t.Parallel()

	for uri, want := range map[string]string{
		"http://localhost:5000":   "5000",
		"http://localhost/cb":     "80",
		"https://snp.example.com": "443",
	} {
		got, err := RedirectPort(uri)
		require.NoError(t, err, uri)
		assert.Equal(t, want, got, uri)
	}

	_, err := RedirectPort("localhost:5000")
	require.Error(t, err)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	home := isolateEnv(t)
	path := filepath.Join(home, "broken.toml")
	writeFile(t, path, "[spotify\n")

	_, err := Load(LoadOptions{SkipDotEnv: true, ConfigPath: path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestPathHonorsOverride(t *testing.T) {
	home := isolateEnv(t)

	path, err := Path()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "slack-now-playing", "config.toml"), path)

	t.Setenv(EnvConfigPath, "~/elsewhere/snp.toml")
	path, err = Path()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "elsewhere", "snp.toml"), path)
}

func TestSettingsMaskedHidesSecretsOnly(t *testing.T) {
	t.Parallel()

	settings := Defaults()
	settings.Spotify.ClientID = "client"
	settings.Spotify.ClientSecret = "secret"
	settings.Slack.Token = "xoxc"

	masked := settings.Masked()
	assert.Equal(t, "client", masked.Spotify.ClientID)
	assert.Equal(t, SecretMask, masked.Spotify.ClientSecret)
	assert.Equal(t, SecretMask, masked.Slack.Token)
	assert.Empty(t, masked.Slack.DCookie)
	assert.Equal(t, "secret", settings.Spotify.ClientSecret)
}

func TestKeyClassification(t *testing.T) {
	t.Parallel()

	assert.True(t, IsKnownKey(KeyStatusPollInterval))
	assert.False(t, IsKnownKey("status.unknown"))
	assert.True(t, IsSecretKey(KeySlackDCookie))
	assert.False(t, IsSecretKey(KeySpotifyClientID))
}

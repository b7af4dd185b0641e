package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	filestore "github.com/bnema/slack-now-playing/internal/adapters/secrets/file"
	"github.com/bnema/slack-now-playing/internal/application"
	"github.com/bnema/slack-now-playing/internal/domain"
	"github.com/bnema/slack-now-playing/internal/ports"
	"github.com/bnema/slack-now-playing/internal/version"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionPrintsBuildVersion(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "snp "+version.Version+" (go"), stdout)

	stdout, _, err = executeCLI(t, t.TempDir(), "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, version.Version+"\n", stdout)
}

func TestUnknownCommandIsRejected(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "scrobble")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command \"scrobble\"")
}

func TestConfigInitWritesDefaultsOnce(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "config", "init")
	require.NoError(t, err)

	path := filepath.Join(home, ".config", "slack-now-playing", "config.toml")
	assert.Contains(t, stdout, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "version = 1")
	assert.Contains(t, string(data), "poll_interval")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	_, _, err = executeCLI(t, home, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "settings file already exists")

	_, _, err = executeCLI(t, home, "config", "init", "--force")
	require.NoError(t, err)
}

func TestConfigSetThenShow(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "config", "set", "status.poll_interval", "15s")
	require.NoError(t, err)
	_, _, err = executeCLI(t, home, "config", "set", "spotify.market", "FR")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "15s")
	assert.Contains(t, stdout, "FR")
	assert.Contains(t, stdout, "30m0s")
}

func TestConfigSetRejectsSecretsAndUnknownKeys(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "config", "set", "slack.token", "xoxc-123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "slack.token is a secret")

	_, _, err = executeCLI(t, home, "config", "set", "status.colour", "blue")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown setting")

	_, _, err = executeCLI(t, home, "config", "set", "status.poll_interval", "soon")
	require.Error(t, err)

	_, err = os.Stat(filepath.Join(home, ".config", "slack-now-playing", "config.toml"))
	assert.True(t, os.IsNotExist(err))
}

func TestConfigShowMasksSecretsFromEnvironment(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLIWith(context.Background(), t, home, func(_ *app) {
		t.Setenv("SLACK_TOKEN", "xoxc-very-secret")
		t.Setenv("SNP_SLACK_BASE_URL", "https://team.slack.com")
	}, "config", "show")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "xoxc-very-secret")
	assert.Contains(t, stdout, "********")
	assert.Contains(t, stdout, "https://team.slack.com")
}

func TestAuthURLPrintsAuthorizationLink(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLIWith(context.Background(), t, home, func(_ *app) {
		t.Setenv("SPOTIFY_CLIENT_ID", "client-abc")
		t.Setenv("SPOTIFY_CLIENT_SECRET", "shh")
	}, "auth", "url")
	require.NoError(t, err)

	link := strings.TrimSpace(stdout)
	assert.True(t, strings.HasPrefix(link, "https://accounts.spotify.com/authorize?"), link)
	assert.Contains(t, link, "client_id=client-abc")
	assert.Contains(t, link, "response_type=code")
	assert.Contains(t, link, "scope=user-read-currently-playing")
	assert.Contains(t, link, "redirect_uri=http%3A%2F%2Flocalhost%3A5000")
}

func TestAuthURLRequiresClientCredentials(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "auth", "url")
	require.Error(t, err)
	assert.True(t, domain.IsConfigError(err))
	assert.Contains(t, err.Error(), "spotify.client_id")
}

func TestCredentialsForgetDeletesRememberedValues(t *testing.T) {
	home := t.TempDir()
	secrets := filepath.Join(home, "secrets")
	store := filestore.NewStore(secrets)
	for _, field := range domain.ChatCredentialFields() {
		require.NoError(t, store.Put(context.Background(), application.SecretKey(field), "remembered"))
	}

	stdout, _, err := executeCLIWith(context.Background(), t, home, func(a *app) {
		a.newSecretStore = func(string) (ports.SecretStore, error) { return store, nil }
	}, "credentials", "forget")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Forgot remembered Slack credentials.")

	for _, field := range domain.ChatCredentialFields() {
		_, err := store.Get(context.Background(), application.SecretKey(field))
		assert.ErrorIs(t, err, domain.ErrSecretNotFound)
	}
}

func TestRunFailsFastWithoutSpotifyCredentials(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "run", "--no-open")
	require.Error(t, err)
	assert.True(t, domain.IsConfigError(err))
}

func TestRunLogsInAndPushesStatus(t *testing.T) {
	accounts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/token", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		assert.Equal(t, "code-123", r.PostForm.Get("code"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "access-1",
			"refresh_token": "refresh-1",
			"token_type":    "Bearer",
			"scope":         "user-read-currently-playing",
			"expires_in":    3600,
		})
	}))
	defer accounts.Close()

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/me/player/currently-playing", r.URL.Path)
		assert.Equal(t, "Bearer access-1", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer api.Close()

	statuses := make(chan string, 4)
	chat := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users.profile.set", r.URL.Path)
		assert.Equal(t, "d=cookie-1", r.Header.Get("Cookie"))
		assert.NoError(t, r.ParseForm())
		var profile map[string]string
		assert.NoError(t, json.Unmarshal([]byte(r.PostForm.Get("profile")), &profile))
		statuses <- profile["status_text"]
		_, _ = io.WriteString(w, `{"ok":true}`)
	}))
	defer chat.Close()

	listenAddr := freeLocalAddr(t)
	root, stdout, stderr := prepareCLI(t, t.TempDir(), func(a *app) {
		t.Setenv("SPOTIFY_CLIENT_ID", "client-abc")
		t.Setenv("SPOTIFY_CLIENT_SECRET", "shh")
		t.Setenv("SNP_SPOTIFY_ACCOUNTS_URL", accounts.URL)
		t.Setenv("SNP_SPOTIFY_API_URL", api.URL)
		t.Setenv("SNP_SPOTIFY_LISTEN_ADDR", listenAddr)
		t.Setenv("SNP_SPOTIFY_REDIRECT_URI", "http://"+listenAddr)
		t.Setenv("SLACK_BASE_URL", chat.URL)
		t.Setenv("SLACK_TOKEN", "xoxc-1")
		t.Setenv("SLACK_D_COOKIE", "cookie-1")
		a.openURL = func(string) error {
			go func() {
				resp, err := http.Get("http://" + listenAddr + "/?code=code-123")
				if err == nil {
					_ = resp.Body.Close()
				}
			}()
			return nil
		}
	}, "run")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- root.ExecuteContext(ctx) }()

	// the console line is written once the status push has been answered
	require.Eventually(t, func() bool {
		return strings.Contains(stdout.String(), domain.NothingPlayingText)
	}, 5*time.Second, 20*time.Millisecond, "stdout: %s\nstderr: %s", stdout, stderr)
	assert.Equal(t, domain.NothingPlayingText, <-statuses)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not stop after cancel")
	}

	assert.Contains(t, stderr.String(), "Open this link to log in to Spotify")
	assert.Contains(t, stderr.String(), "Play something dude!")
}

func TestCheckRedirectTarget(t *testing.T) {
	t.Parallel()

	require.NoError(t, checkRedirectTarget("http://localhost:5000", "http://localhost:5000"))

	err := checkRedirectTarget("http://localhost:5000", "http://localhost:5001")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "callback listener is on port 5001")
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	return executeCLIWith(context.Background(), t, home, nil, args...)
}

// executeCLIWith isolates HOME and the environment, then lets customize
// adjust env vars and app wiring before the command runs.
func executeCLIWith(ctx context.Context, t *testing.T, home string, customize func(*app), args ...string) (string, string, error) {
	t.Helper()

	root, stdout, stderr := prepareCLI(t, home, customize, args...)
	err := root.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}

func prepareCLI(t *testing.T, home string, customize func(*app), args ...string) (*cobra.Command, *syncBuffer, *syncBuffer) {
	t.Helper()
	isolateEnv(t, home)

	app, err := wireApp()
	require.NoError(t, err)
	app.stdin = nil
	app.openURL = func(string) error { return nil }
	if customize != nil {
		customize(app)
	}

	root := buildRootCmd(app, nil)
	stdout := &syncBuffer{}
	stderr := &syncBuffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetIn(strings.NewReader(""))
	root.SetArgs(args)
	return root, stdout, stderr
}

// syncBuffer lets a test read command output while run is still writing it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func isolateEnv(t *testing.T, home string) {
	t.Helper()

	t.Setenv("HOME", home)
	for _, key := range []string{
		"SNP_CONFIG",
		"SPOTIFY_CLIENT_ID", "SPOTIFY_CLIENT_SECRET",
		"SLACK_BASE_URL", "SLACK_TOKEN", "SLACK_D_COOKIE",
		"SNP_SPOTIFY_CLIENT_ID", "SNP_SPOTIFY_CLIENT_SECRET",
		"SNP_SLACK_BASE_URL", "SNP_SLACK_TOKEN", "SNP_SLACK_D_COOKIE",
		"SNP_SPOTIFY_LISTEN_ADDR", "SNP_SPOTIFY_REDIRECT_URI",
		"SNP_LOG_DIR", "SNP_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func freeLocalAddr(t *testing.T) string {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())
	return addr
}

package toml

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bnema/slack-now-playing/internal/config"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	settingsPathKey  = "settings.path"
	settingsFileMode = 0o600
	settingsDirMode  = 0o700
	tempFilePattern  = ".config-*.toml.tmp"
)

var (
	ErrSettingsExist = errors.New("settings file already exists")
	ErrUnknownKey    = errors.New("unknown setting")
)

// Repository reads and writes the versioned settings file.
type Repository struct {
	path string
	mu   *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	path := cfg.GetString(settingsPathKey)
	if path == "" {
		var err error
		if path, err = config.Path(); err != nil {
			return nil, err
		}
	}

	path, err := normalizePath(path)
	if err != nil {
		return nil, err
	}

	return &Repository{path: path, mu: lockForPath(path)}, nil
}

func (r *Repository) Path() string {
	return r.path
}

// Load returns the stored settings layered over the defaults.
func (r *Repository) Load(ctx context.Context) (config.Settings, error) {
	if err := ctx.Err(); err != nil {
		return config.Settings{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return config.Settings{}, err
	}

	return fromSchema(file)
}

func (r *Repository) Save(ctx context.Context, settings config.Settings) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.writeSchema(toSchema(settings))
}

// Init writes the default settings. An existing file is kept unless force is
// set.
func (r *Repository) Init(ctx context.Context, force bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := os.Stat(r.path); err == nil && !force {
		return fmt.Errorf("%w: %s", ErrSettingsExist, r.path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat settings file: %w", err)
	}

	return r.writeSchema(toSchema(config.Defaults()))
}

// Set stores one setting, validating the value against its type.
func (r *Repository) Set(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	setter, ok := setters[key]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownKey, key)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	previous := file.Spotify
	if err := setter(&file, strings.TrimSpace(value)); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	if key == config.KeySpotifyRedirectURI {
		file.Spotify.ListenAddr = followRedirect(previous.ListenAddr, previous.RedirectURI, file.Spotify.RedirectURI)
	}

	settings, err := fromSchema(file)
	if err != nil {
		return err
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

// followRedirect moves a listen address that sat on the old redirect port
// onto the new one, keeping its host. Any other address is left alone.
func followRedirect(listenAddr, oldRedirect, newRedirect string) string {
	host, port, err := net.SplitHostPort(listenAddr)
	if err != nil {
		return listenAddr
	}
	oldPort, err := config.RedirectPort(oldRedirect)
	if err != nil || oldPort != port {
		return listenAddr
	}
	newPort, err := config.RedirectPort(newRedirect)
	if err != nil {
		return listenAddr
	}
	return net.JoinHostPort(host, newPort)
}

// Encode renders settings in the settings file format.
func Encode(settings config.Settings) ([]byte, error) {
	file := toSchema(settings)
	file.applyDefaults()

	data, err := toml.Marshal(file)
	if err != nil {
		return nil, fmt.Errorf("encode settings: %w", err)
	}
	return data, nil
}

// readSchema layers the file over the defaults; a missing file yields the
// defaults alone.
func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return toSchema(config.Defaults()), nil
		}
		return fileSchema{}, fmt.Errorf("read settings file: %w", err)
	}

	file := toSchema(config.Defaults())
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode settings file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.path), settingsDirMode); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode settings file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp settings file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp settings file: %w", err)
	}

	if err := tempFile.Chmod(settingsFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp settings file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp settings file: %w", err)
	}

	if err := os.Rename(tempName, r.path); err != nil {
		return fmt.Errorf("replace settings file: %w", err)
	}

	cleanup = false

	if err := os.Chmod(r.path, settingsFileMode); err != nil {
		return fmt.Errorf("chmod settings file: %w", err)
	}

	return nil
}

func normalizePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve settings path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

var setters = map[string]func(*fileSchema, string) error{
	config.KeySpotifyClientID:     setString(func(f *fileSchema) *string { return &f.Spotify.ClientID }),
	config.KeySpotifyClientSecret: setString(func(f *fileSchema) *string { return &f.Spotify.ClientSecret }),
	config.KeySpotifyAccountsURL:  setString(func(f *fileSchema) *string { return &f.Spotify.AccountsURL }),
	config.KeySpotifyAPIURL:       setString(func(f *fileSchema) *string { return &f.Spotify.APIURL }),
	config.KeySpotifyRedirectURI:  setString(func(f *fileSchema) *string { return &f.Spotify.RedirectURI }),
	config.KeySpotifyListenAddr:   setString(func(f *fileSchema) *string { return &f.Spotify.ListenAddr }),
	config.KeySpotifyMarket:       setString(func(f *fileSchema) *string { return &f.Spotify.Market }),
	config.KeySlackBaseURL:        setString(func(f *fileSchema) *string { return &f.Slack.BaseURL }),
	config.KeySlackToken:          setString(func(f *fileSchema) *string { return &f.Slack.Token }),
	config.KeySlackDCookie:        setString(func(f *fileSchema) *string { return &f.Slack.DCookie }),
	config.KeyStatusEmoji:         setString(func(f *fileSchema) *string { return &f.Status.Emoji }),
	config.KeyStatusPlaceholder:   setString(func(f *fileSchema) *string { return &f.Status.PlaceholderImage }),
	config.KeyStatusPollInterval:  setDuration(func(f *fileSchema) *string { return &f.Status.PollInterval }),
	config.KeyStatusRefresh:       setDuration(func(f *fileSchema) *string { return &f.Status.RefreshInterval }),
	config.KeyHTTPTimeout:         setDuration(func(f *fileSchema) *string { return &f.HTTP.Timeout }),
	config.KeyLogLevel:            setString(func(f *fileSchema) *string { return &f.Log.Level }),
	config.KeyLogDir:              setString(func(f *fileSchema) *string { return &f.Log.Dir }),
	config.KeyCredentialsDir:      setString(func(f *fileSchema) *string { return &f.Credentials.SecretsDir }),
	config.KeyCredentialsRemember: func(f *fileSchema, value string) error {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("expected true or false, got %q", value)
		}
		f.Credentials.Remember = parsed
		return nil
	},
}

func setString(field func(*fileSchema) *string) func(*fileSchema, string) error {
	return func(f *fileSchema, value string) error {
		*field(f) = value
		return nil
	}
}

func setDuration(field func(*fileSchema) *string) func(*fileSchema, string) error {
	return func(f *fileSchema, value string) error {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("expected a duration like 10s or 30m, got %q", value)
		}
		*field(f) = parsed.String()
		return nil
	}
}

func toSchema(s config.Settings) fileSchema {
	return fileSchema{
		Version: currentSchemaVersion,
		Spotify: spotifySchema{
			ClientID:     s.Spotify.ClientID,
			ClientSecret: s.Spotify.ClientSecret,
			AccountsURL:  s.Spotify.AccountsURL,
			APIURL:       s.Spotify.APIURL,
			RedirectURI:  s.Spotify.RedirectURI,
			ListenAddr:   s.Spotify.ListenAddr,
			Market:       s.Spotify.Market,
		},
		Slack: slackSchema{
			BaseURL: s.Slack.BaseURL,
			Token:   s.Slack.Token,
			DCookie: s.Slack.DCookie,
		},
		Status: statusSchema{
			Emoji:            s.Status.Emoji,
			PlaceholderImage: s.Status.PlaceholderImage,
			PollInterval:     formatDuration(s.Status.PollInterval),
			RefreshInterval:  formatDuration(s.Status.RefreshInterval),
		},
		HTTP: httpSchema{Timeout: formatDuration(s.HTTP.Timeout)},
		Log:  logSchema{Level: s.Log.Level, Dir: s.Log.Dir},
		Credentials: credentialsSchema{
			Remember:   s.Credentials.Remember,
			SecretsDir: s.Credentials.SecretsDir,
		},
	}
}

func fromSchema(f fileSchema) (config.Settings, error) {
	poll, err := parseDuration(config.KeyStatusPollInterval, f.Status.PollInterval)
	if err != nil {
		return config.Settings{}, err
	}
	refresh, err := parseDuration(config.KeyStatusRefresh, f.Status.RefreshInterval)
	if err != nil {
		return config.Settings{}, err
	}
	timeout, err := parseDuration(config.KeyHTTPTimeout, f.HTTP.Timeout)
	if err != nil {
		return config.Settings{}, err
	}

	return config.Settings{
		Spotify: config.SpotifySettings{
			ClientID:     f.Spotify.ClientID,
			ClientSecret: f.Spotify.ClientSecret,
			AccountsURL:  f.Spotify.AccountsURL,
			APIURL:       f.Spotify.APIURL,
			RedirectURI:  f.Spotify.RedirectURI,
			ListenAddr:   f.Spotify.ListenAddr,
			Market:       f.Spotify.Market,
		},
		Slack: config.SlackSettings{
			BaseURL: f.Slack.BaseURL,
			Token:   f.Slack.Token,
			DCookie: f.Slack.DCookie,
		},
		Status: config.StatusSettings{
			Emoji:            f.Status.Emoji,
			PlaceholderImage: f.Status.PlaceholderImage,
			PollInterval:     poll,
			RefreshInterval:  refresh,
		},
		HTTP: config.HTTPSettings{Timeout: timeout},
		Log:  config.LogSettings{Level: f.Log.Level, Dir: f.Log.Dir},
		Credentials: config.CredentialsSettings{
			Remember:   f.Credentials.Remember,
			SecretsDir: f.Credentials.SecretsDir,
		},
	}, nil
}

func parseDuration(key, raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("decode %s: %w", key, err)
	}
	return parsed, nil
}

func formatDuration(d time.Duration) string {
	if d == 0 {
		return ""
	}
	return d.String()
}

package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bnema/slack-now-playing/internal/domain"
	"github.com/bnema/slack-now-playing/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	FileName = "credentials.toml"

	documentVersion = 1
	dirMode         = 0o700
	fileMode        = 0o600
)

var errEmptyKey = errors.New("credential key is empty")

type document struct {
	Version     int               `toml:"version"`
	Credentials map[string]string `toml:"credentials"`
}

// Store remembers chat credentials in a single owner-only TOML file. It is
// the fallback when pass is not installed.
type Store struct {
	path string
	mu   sync.Mutex
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore(dir string) *Store {
	return &Store{path: filepath.Join(filepath.Clean(dir), FileName)}
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := validateKey(key); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return "", err
	}

	value, ok := doc.Credentials[key]
	if !ok {
		return "", fmt.Errorf("credential %q: %w", key, domain.ErrSecretNotFound)
	}

	return value, nil
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	doc.Credentials[key] = strings.TrimRight(value, "\r\n")

	return s.save(doc)
}

// Delete succeeds when the credential was never remembered. The file goes
// away with its last entry.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := doc.Credentials[key]; !ok {
		return nil
	}
	delete(doc.Credentials, key)

	if len(doc.Credentials) == 0 {
		if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove credentials file: %w", err)
		}
		return nil
	}

	return s.save(doc)
}

func (s *Store) load() (document, error) {
	doc := document{Version: documentVersion, Credentials: map[string]string{}}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return doc, nil
		}
		return doc, fmt.Errorf("read credentials file: %w", err)
	}

	if err := toml.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("decode credentials file %s: %w", s.path, err)
	}
	if doc.Version != documentVersion {
		return doc, fmt.Errorf("credentials file %s: unsupported version %d", s.path, doc.Version)
	}
	if doc.Credentials == nil {
		doc.Credentials = map[string]string{}
	}

	return doc, nil
}

func (s *Store) save(doc document) error {
	doc.Version = documentVersion

	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode credentials file: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return fmt.Errorf("create credentials directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".credentials-*")
	if err != nil {
		return fmt.Errorf("create temp credentials file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if err := tmp.Chmod(fileMode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod temp credentials file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp credentials file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp credentials file: %w", err)
	}

	return os.Rename(tmpPath, s.path)
}

func validateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errEmptyKey
	}
	if strings.ContainsAny(key, "\r\n") {
		return fmt.Errorf("invalid credential key %q", key)
	}
	return nil
}

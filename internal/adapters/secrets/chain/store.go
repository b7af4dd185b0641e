package chain

import (
	"context"
	"errors"
	"fmt"

	filestore "github.com/bnema/slack-now-playing/internal/adapters/secrets/file"
	passstore "github.com/bnema/slack-now-playing/internal/adapters/secrets/pass"
	"github.com/bnema/slack-now-playing/internal/domain"
	"github.com/bnema/slack-now-playing/internal/ports"
)

var errNoBackends = errors.New("secret store chain has no backends")

// Store tries its backends in order. Reads return the first hit, writes land
// in the first backend that accepts them, and deletes reach every backend so
// a forgotten credential cannot resurface from a later one.
type Store struct {
	backends []ports.SecretStore
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore(backends ...ports.SecretStore) (*Store, error) {
	kept := make([]ports.SecretStore, 0, len(backends))
	for _, backend := range backends {
		if backend != nil {
			kept = append(kept, backend)
		}
	}
	if len(kept) == 0 {
		return nil, errNoBackends
	}

	return &Store{backends: kept}, nil
}

// NewPassFirstWithFileFallback prefers pass and falls back to a credentials
// file under dir.
func NewPassFirstWithFileFallback(dir string) (*Store, error) {
	return NewStore(passstore.NewStore(), filestore.NewStore(dir))
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var failures []error
	for i, backend := range s.backends {
		value, err := backend.Get(ctx, key)
		if err == nil {
			return value, nil
		}
		if isContextErr(err) {
			return "", err
		}
		if !errors.Is(err, domain.ErrSecretNotFound) {
			failures = append(failures, fmt.Errorf("backend %d: %w", i, err))
		}
	}

	if len(failures) == 0 {
		return "", fmt.Errorf("secret %q: %w", key, domain.ErrSecretNotFound)
	}
	return "", fmt.Errorf("get secret %q: %w", key, errors.Join(failures...))
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	var failures []error
	for i, backend := range s.backends {
		err := backend.Put(ctx, key, value)
		if err == nil {
			return nil
		}
		if isContextErr(err) {
			return err
		}
		failures = append(failures, fmt.Errorf("backend %d: %w", i, err))
	}

	return fmt.Errorf("put secret %q: %w", key, errors.Join(failures...))
}

func (s *Store) Delete(ctx context.Context, key string) error {
	var failures []error
	for i, backend := range s.backends {
		err := backend.Delete(ctx, key)
		if err == nil || errors.Is(err, passstore.ErrUnavailable) {
			continue
		}
		if isContextErr(err) {
			return err
		}
		failures = append(failures, fmt.Errorf("backend %d: %w", i, err))
	}

	if len(failures) == 0 {
		return nil
	}
	return fmt.Errorf("delete secret %q: %w", key, errors.Join(failures...))
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

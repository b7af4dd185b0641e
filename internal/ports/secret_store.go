package ports

import "context"

// SecretStore remembers prompted chat credentials between runs. Get wraps
// domain.ErrSecretNotFound for keys that were never stored, and Delete of an
// absent key is not an error.
type SecretStore interface {
	Get(ctx context.Context, key string) (value string, err error)
	Put(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}

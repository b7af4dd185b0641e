package ports

import (
	"context"

	"github.com/bnema/slack-now-playing/internal/domain"
)

type CredentialQuestion struct {
	Field  domain.CredentialField
	Label  string
	Hints  []string
	Secret bool
}

// CredentialPrompter blocks until the operator answers or ctx is done.
type CredentialPrompter interface {
	Prompt(ctx context.Context, question CredentialQuestion) (string, error)
}

package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/slack-now-playing/internal/domain"
	"github.com/bnema/slack-now-playing/internal/ports"
	"go.uber.org/zap"
)

const secretKeyPrefix = "slack-now-playing/slack/"

// SecretKey names the secret store entry remembering one chat credential.
func SecretKey(field domain.CredentialField) string {
	return secretKeyPrefix + string(field)
}

// CredentialResolver fills the chat credentials missing from configuration,
// first from the secret store and then by asking the operator.
type CredentialResolver struct {
	store    ports.SecretStore
	prompter ports.CredentialPrompter
	remember bool
	logger   *zap.Logger
}

func NewCredentialResolver(store ports.SecretStore, prompter ports.CredentialPrompter, remember bool, logger *zap.Logger) *CredentialResolver {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &CredentialResolver{
		store:    store,
		prompter: prompter,
		remember: remember,
		logger:   logger,
	}
}

func (r *CredentialResolver) Resolve(ctx context.Context, configured domain.ChatCredentials) (domain.ChatCredentials, error) {
	creds := configured
	if len(creds.Missing()) == 0 {
		return creds, nil
	}

	if r.store != nil {
		for _, field := range creds.Missing() {
			value, err := r.store.Get(ctx, SecretKey(field))
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return creds, ctxErr
				}
				if !errors.Is(err, domain.ErrSecretNotFound) {
					r.logger.Debug("remembered credential unavailable", zap.String("field", string(field)), zap.Error(err))
				}
				continue
			}
			creds.Set(field, value)
		}
	}

	missing := creds.Missing()
	if len(missing) == 0 {
		return creds, nil
	}
	if r.prompter == nil {
		return creds, &domain.ConfigError{Field: "slack." + string(missing[0])}
	}

	hinted := false
	for _, field := range missing {
		question := questionFor(field)
		if !hinted && field != domain.CredentialDCookie {
			question.Hints = consoleHints()
			hinted = true
		}

		for strings.TrimSpace(creds.Get(field)) == "" {
			value, err := r.prompter.Prompt(ctx, question)
			if err != nil {
				return creds, fmt.Errorf("prompt %s: %w", field, err)
			}
			creds.Set(field, value)
		}

		if r.remember && r.store != nil {
			if err := r.store.Put(ctx, SecretKey(field), creds.Get(field)); err != nil {
				r.logger.Warn("failed to remember credential", zap.String("field", string(field)), zap.Error(err))
			}
		}
	}

	return creds, nil
}

// Forget deletes every remembered chat credential.
func (r *CredentialResolver) Forget(ctx context.Context) error {
	if r.store == nil {
		return nil
	}

	var errs []error
	for _, field := range domain.ChatCredentialFields() {
		if err := r.store.Delete(ctx, SecretKey(field)); err != nil {
			errs = append(errs, fmt.Errorf("forget %s: %w", field, err))
		}
	}

	return errors.Join(errs...)
}

func questionFor(field domain.CredentialField) ports.CredentialQuestion {
	switch field {
	case domain.CredentialBaseURL:
		return ports.CredentialQuestion{Field: field, Label: "Please enter the base url"}
	case domain.CredentialToken:
		return ports.CredentialQuestion{Field: field, Label: "Please enter the printed token", Secret: true}
	default:
		return ports.CredentialQuestion{Field: field, Label: "Please enter your d cookie", Secret: true}
	}
}

func consoleHints() []string {
	return []string{
		"Run these in the browser console of your Slack workspace:",
		domain.ConsoleOneLiner("url"),
		domain.ConsoleOneLiner("token"),
	}
}

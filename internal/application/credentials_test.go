package application

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/slack-now-playing/internal/domain"
	"github.com/bnema/slack-now-playing/internal/ports"
	"github.com/bnema/slack-now-playing/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCredentialResolverConfiguredSkipsStoreAndPrompt(t *testing.T) {
	store := mocks.NewMockSecretStore(t)
	prompter := mocks.NewMockCredentialPrompter(t)
	resolver := NewCredentialResolver(store, prompter, true, nil)

	configured := domain.ChatCredentials{BaseURL: "https://team.slack.com", Token: "xoxc", DCookie: "cookie"}
	creds, err := resolver.Resolve(context.Background(), configured)
	require.NoError(t, err)
	assert.Equal(t, configured, creds)
}

func TestCredentialResolverUsesRememberedValues(t *testing.T) {
	store := mocks.NewMockSecretStore(t)
	resolver := NewCredentialResolver(store, nil, false, nil)

	store.EXPECT().Get(mockAnyContext(), "slack-now-playing/slack/token").Return("xoxc-remembered", nil).Once()
	store.EXPECT().Get(mockAnyContext(), "slack-now-playing/slack/d_cookie").Return("cookie-remembered", nil).Once()

	creds, err := resolver.Resolve(context.Background(), domain.ChatCredentials{BaseURL: "https://team.slack.com"})
	require.NoError(t, err)
	assert.Equal(t, domain.ChatCredentials{
		BaseURL: "https://team.slack.com",
		Token:   "xoxc-remembered",
		DCookie: "cookie-remembered",
	}, creds)
}

func TestCredentialResolverWithoutPrompterReportsConfigError(t *testing.T) {
	store := mocks.NewMockSecretStore(t)
	resolver := NewCredentialResolver(store, nil, false, nil)

	store.EXPECT().Get(mockAnyContext(), "slack-now-playing/slack/base_url").Return("", domain.ErrSecretNotFound).Once()
	store.EXPECT().Get(mockAnyContext(), "slack-now-playing/slack/token").Return("", errors.New("pass: gpg agent locked")).Once()
	store.EXPECT().Get(mockAnyContext(), "slack-now-playing/slack/d_cookie").Return("", domain.ErrSecretNotFound).Once()

	_, err := resolver.Resolve(context.Background(), domain.ChatCredentials{})
	require.Error(t, err)

	var cfgErr *domain.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "slack.base_url", cfgErr.Field)
	assert.ErrorIs(t, err, domain.ErrMissingCredentials)
}

func TestCredentialResolverPromptsUntilValueAndRemembers(t *testing.T) {
	store := mocks.NewMockSecretStore(t)
	prompter := mocks.NewMockCredentialPrompter(t)
	resolver := NewCredentialResolver(store, prompter, true, nil)

	store.EXPECT().Get(mockAnyContext(), "slack-now-playing/slack/token").Return("", domain.ErrSecretNotFound).Once()
	store.EXPECT().Get(mockAnyContext(), "slack-now-playing/slack/d_cookie").Return("", domain.ErrSecretNotFound).Once()

	var questions []ports.CredentialQuestion
	prompter.EXPECT().Prompt(mockAnyContext(), mockAnyQuestion(domain.CredentialToken)).
		Run(func(_ context.Context, question ports.CredentialQuestion) { questions = append(questions, question) }).
		Return("  ", nil).Once()
	prompter.EXPECT().Prompt(mockAnyContext(), mockAnyQuestion(domain.CredentialToken)).
		Return("xoxc-typed", nil).Once()
	prompter.EXPECT().Prompt(mockAnyContext(), mockAnyQuestion(domain.CredentialDCookie)).
		Run(func(_ context.Context, question ports.CredentialQuestion) { questions = append(questions, question) }).
		Return("cookie-typed", nil).Once()

	store.EXPECT().Put(mockAnyContext(), "slack-now-playing/slack/token", "xoxc-typed").Return(nil).Once()
	store.EXPECT().Put(mockAnyContext(), "slack-now-playing/slack/d_cookie", "cookie-typed").Return(errors.New("read-only")).Once()

	creds, err := resolver.Resolve(context.Background(), domain.ChatCredentials{BaseURL: "https://team.slack.com"})
	require.NoError(t, err)
	assert.Equal(t, "xoxc-typed", creds.Token)
	assert.Equal(t, "cookie-typed", creds.DCookie)

	require.Len(t, questions, 2)
	assert.True(t, questions[0].Secret)
	require.Len(t, questions[0].Hints, 3)
	assert.Contains(t, questions[0].Hints[2], `getItem("localConfig_v2")`)
	assert.Contains(t, questions[0].Hints[2], ".token")
	assert.Empty(t, questions[1].Hints)
	assert.Equal(t, "Please enter your d cookie", questions[1].Label)
}

func TestCredentialResolverPromptErrorStops(t *testing.T) {
	prompter := mocks.NewMockCredentialPrompter(t)
	resolver := NewCredentialResolver(nil, prompter, false, nil)

	canceled := errors.New("prompt canceled")
	prompter.EXPECT().Prompt(mockAnyContext(), mockAnyQuestion(domain.CredentialBaseURL)).Return("", canceled).Once()

	_, err := resolver.Resolve(context.Background(), domain.ChatCredentials{})
	require.ErrorIs(t, err, canceled)
	assert.Contains(t, err.Error(), "prompt base_url")
}

func TestCredentialResolverForgetDeletesEveryField(t *testing.T) {
	store := mocks.NewMockSecretStore(t)
	resolver := NewCredentialResolver(store, nil, false, nil)

	store.EXPECT().Delete(mockAnyContext(), "slack-now-playing/slack/base_url").Return(nil).Once()
	store.EXPECT().Delete(mockAnyContext(), "slack-now-playing/slack/token").Return(errors.New("denied")).Once()
	store.EXPECT().Delete(mockAnyContext(), "slack-now-playing/slack/d_cookie").Return(nil).Once()

	err := resolver.Forget(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "forget token")
}

func TestCredentialResolverForgetWithoutStore(t *testing.T) {
	resolver := NewCredentialResolver(nil, nil, false, nil)
	require.NoError(t, resolver.Forget(context.Background()))
}

func mockAnyQuestion(field domain.CredentialField) interface{} {
	return mock.MatchedBy(func(question ports.CredentialQuestion) bool {
		return question.Field == field
	})
}

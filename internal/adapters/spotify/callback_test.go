package spotify

import (
	"context"
	"io"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bnema/slack-now-playing/internal/domain"
	"github.com/bnema/slack-now-playing/internal/notify"
	"github.com/bnema/slack-now-playing/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func getBody(t *testing.T, target string) (int, string) {
	t.Helper()

	resp, err := http.Get(target)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestCallbackServerExchangesCodeAndPublishes(t *testing.T) {
	t.Parallel()

	exchanger := mocks.NewMockCodeExchanger(t)
	bundle := domain.TokenBundle{AccessToken: "at", RefreshToken: "rt", ExpiresIn: 3600}
	exchanger.EXPECT().Exchange(mock.Anything, "auth-code").Return(bundle, nil).Once()

	var topic notify.Topic[domain.TokenBundle]
	received := make(chan domain.TokenBundle, 2)
	topic.Subscribe(func(b domain.TokenBundle) { received <- b })

	server, err := StartCallbackServer("127.0.0.1:0", exchanger, &topic, nil)
	require.NoError(t, err)
	defer func() { _ = server.Close() }()

	status, body := getBody(t, server.RedirectURI()+"/?code=auth-code")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Logged in!")
	assert.True(t, server.LoggedIn())
	require.Len(t, received, 1)
	assert.Equal(t, bundle, <-received)
}

func TestCallbackServerMissingCodeKeepsListening(t *testing.T) {
	t.Parallel()

	exchanger := mocks.NewMockCodeExchanger(t)
	exchanger.EXPECT().Exchange(mock.Anything, "later").Return(domain.TokenBundle{AccessToken: "at", RefreshToken: "rt"}, nil).Once()

	var topic notify.Topic[domain.TokenBundle]
	var published atomic.Int32
	topic.Subscribe(func(domain.TokenBundle) { published.Add(1) })

	server, err := StartCallbackServer("127.0.0.1:0", exchanger, &topic, nil)
	require.NoError(t, err)
	defer func() { _ = server.Close() }()

	status, body := getBody(t, server.RedirectURI()+"/")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body, "Missing authorization code")
	assert.Equal(t, int32(0), published.Load())

	status, _ = getBody(t, server.RedirectURI()+"/?code=later")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, int32(1), published.Load())
}

func TestCallbackServerExchangeFailureShowsError(t *testing.T) {
	t.Parallel()

	exchanger := mocks.NewMockCodeExchanger(t)
	exchanger.EXPECT().Exchange(mock.Anything, "bad").
		Return(domain.TokenBundle{}, &domain.AuthError{Op: "exchange", StatusCode: 400, Err: assert.AnError}).Once()

	var topic notify.Topic[domain.TokenBundle]
	var published atomic.Int32
	topic.Subscribe(func(domain.TokenBundle) { published.Add(1) })

	server, err := StartCallbackServer("127.0.0.1:0", exchanger, &topic, nil)
	require.NoError(t, err)
	defer func() { _ = server.Close() }()

	status, body := getBody(t, server.RedirectURI()+"/?code=bad")
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Contains(t, body, "token endpoint returned status 400")
	assert.Equal(t, int32(0), published.Load())
	assert.False(t, server.LoggedIn())
}

func TestCallbackServerIgnoresSecondCode(t *testing.T) {
	t.Parallel()

	exchanger := mocks.NewMockCodeExchanger(t)
	exchanger.EXPECT().Exchange(mock.Anything, "first").Return(domain.TokenBundle{AccessToken: "at", RefreshToken: "rt"}, nil).Once()

	var topic notify.Topic[domain.TokenBundle]
	var published atomic.Int32
	topic.Subscribe(func(domain.TokenBundle) { published.Add(1) })

	server, err := StartCallbackServer("127.0.0.1:0", exchanger, &topic, nil)
	require.NoError(t, err)
	defer func() { _ = server.Close() }()

	status, _ := getBody(t, server.RedirectURI()+"/?code=first")
	require.Equal(t, http.StatusOK, status)

	status, body := getBody(t, server.RedirectURI()+"/?code=second")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Already logged in")
	assert.Equal(t, int32(1), published.Load())
}

func TestCallbackServerRejectsNonGet(t *testing.T) {
	t.Parallel()

	var topic notify.Topic[domain.TokenBundle]
	server, err := StartCallbackServer("127.0.0.1:0", mocks.NewMockCodeExchanger(t), &topic, nil)
	require.NoError(t, err)
	defer func() { _ = server.Close() }()

	resp, err := http.Post(server.RedirectURI()+"/?code=x", "text/plain", nil)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestCallbackServerShutdownIsIdempotent(t *testing.T) {
	t.Parallel()

	var topic notify.Topic[domain.TokenBundle]
	server, err := StartCallbackServer("127.0.0.1:0", mocks.NewMockCodeExchanger(t), &topic, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	require.NoError(t, server.Shutdown(ctx))
	require.NoError(t, server.Shutdown(ctx))
	require.NoError(t, server.Close())

	_, err = http.Get(server.RedirectURI() + "/?code=x")
	require.Error(t, err)
}

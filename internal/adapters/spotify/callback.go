package spotify

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bnema/slack-now-playing/internal/domain"
	"github.com/bnema/slack-now-playing/internal/notify"
	"github.com/bnema/slack-now-playing/internal/ports"
	"go.uber.org/zap"
)

const DefaultListenAddr = "localhost:5000"

const (
	loggedInMessage      = "Logged in! You can close this window."
	alreadyLoggedMessage = "Already logged in. You can close this window."
	missingCodeMessage   = "Missing authorization code. Open the Spotify authorization link printed in your terminal and try again."
)

// CallbackServer receives the Spotify authorization redirect, exchanges the
// code and publishes the resulting tokens. It serves until Shutdown.
type CallbackServer struct {
	listener      net.Listener
	server        *http.Server
	exchanger     ports.CodeExchanger
	authenticated *notify.Topic[domain.TokenBundle]
	logger        *zap.Logger

	exchangeMu sync.Mutex
	loggedIn   atomic.Bool
	closeOnce  sync.Once
	closeErr   error
	errCh      chan error
}

var _ ports.Listener = (*CallbackServer)(nil)

func StartCallbackServer(listenAddr string, exchanger ports.CodeExchanger, authenticated *notify.Topic[domain.TokenBundle], logger *zap.Logger) (*CallbackServer, error) {
	if exchanger == nil {
		return nil, errors.New("code exchanger is required")
	}
	if authenticated == nil {
		return nil, errors.New("authenticated topic is required")
	}
	if listenAddr == "" {
		listenAddr = DefaultListenAddr
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return nil, fmt.Errorf("listen callback server: %w", err)
	}

	cb := &CallbackServer{
		listener:      listener,
		exchanger:     exchanger,
		authenticated: authenticated,
		logger:        logger.Named("callback"),
		errCh:         make(chan error, 1),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", cb.handleCallback)

	cb.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if serveErr := cb.server.Serve(cb.listener); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			cb.errCh <- serveErr
		}
	}()

	cb.logger.Debug("callback server listening", zap.String("addr", listener.Addr().String()))

	return cb, nil
}

func (c *CallbackServer) RedirectURI() string {
	if tcpAddr, ok := c.listener.Addr().(*net.TCPAddr); ok {
		return fmt.Sprintf("http://localhost:%d", tcpAddr.Port)
	}
	return "http://localhost"
}

// Err reports a serve failure other than a regular shutdown.
func (c *CallbackServer) Err() <-chan error {
	return c.errCh
}

func (c *CallbackServer) LoggedIn() bool {
	return c.loggedIn.Load()
}

func (c *CallbackServer) Shutdown(ctx context.Context) error {
	c.closeOnce.Do(func() {
		c.closeErr = c.server.Shutdown(ctx)
		c.logger.Debug("callback server stopped")
	})
	return c.closeErr
}

func (c *CallbackServer) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.server.Close()
	})
	return c.closeErr
}

func (c *CallbackServer) handleCallback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	query := r.URL.Query()
	if oauthError := query.Get("error"); oauthError != "" {
		c.logger.Warn("authorization denied", zap.String("error", oauthError))
		http.Error(w, "Authorization failed: "+oauthError, http.StatusBadRequest)
		return
	}

	code := query.Get("code")
	if code == "" {
		http.Error(w, missingCodeMessage, http.StatusBadRequest)
		return
	}

	c.exchangeMu.Lock()
	defer c.exchangeMu.Unlock()

	if c.loggedIn.Load() {
		writeText(w, http.StatusOK, alreadyLoggedMessage)
		return
	}

	bundle, err := c.exchanger.Exchange(r.Context(), code)
	if err != nil {
		c.logger.Error("authorization code exchange failed", zap.Error(err))
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	c.loggedIn.Store(true)
	c.authenticated.Publish(bundle)
	c.logger.Info("spotify login complete")

	writeText(w, http.StatusOK, loggedInMessage)
}

func writeText(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(message))
}

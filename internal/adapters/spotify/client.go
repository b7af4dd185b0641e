package spotify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bnema/slack-now-playing/internal/domain"
	"github.com/bnema/slack-now-playing/internal/ports"
	"golang.org/x/oauth2"
)

const (
	DefaultAccountsURL = "https://accounts.spotify.com"
	DefaultAPIURL      = "https://api.spotify.com/v1"
	DefaultRedirectURI = "http://localhost:5000"
	DefaultMarket      = "ID"

	ScopeUserReadCurrentlyPlaying = "user-read-currently-playing"

	maxPayloadBytes = 1 << 20
)

type Config struct {
	Credentials domain.MusicCredentials
	AccountsURL string
	APIURL      string
	RedirectURI string
	Market      string
	HTTPClient  *http.Client
	// OpenURL is called by OpenAuthorization; nil disables opening a browser.
	OpenURL func(string) error
}

type Client struct {
	oauth      *oauth2.Config
	apiURL     string
	market     string
	httpClient *http.Client
	openURL    func(string) error

	mu          sync.RWMutex
	accessToken string
}

var (
	_ ports.MusicService  = (*Client)(nil)
	_ ports.CodeExchanger = (*Client)(nil)
)

func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Credentials.Validate(); err != nil {
		return nil, err
	}

	accountsURL, err := normalizeBaseURL(firstNonEmpty(cfg.AccountsURL, DefaultAccountsURL))
	if err != nil {
		return nil, fmt.Errorf("spotify accounts url: %w", err)
	}
	apiURL, err := normalizeBaseURL(firstNonEmpty(cfg.APIURL, DefaultAPIURL))
	if err != nil {
		return nil, fmt.Errorf("spotify api url: %w", err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		oauth: &oauth2.Config{
			ClientID:     cfg.Credentials.ClientID,
			ClientSecret: cfg.Credentials.ClientSecret,
			RedirectURL:  firstNonEmpty(cfg.RedirectURI, DefaultRedirectURI),
			Scopes:       []string{ScopeUserReadCurrentlyPlaying},
			Endpoint: oauth2.Endpoint{
				AuthURL:   accountsURL + "/authorize",
				TokenURL:  accountsURL + "/api/token",
				AuthStyle: oauth2.AuthStyleInHeader,
			},
		},
		apiURL:     apiURL,
		market:     cfg.Market,
		httpClient: httpClient,
		openURL:    cfg.OpenURL,
	}, nil
}

func (c *Client) RedirectURI() string {
	return c.oauth.RedirectURL
}

func (c *Client) AuthorizationURL() string {
	return c.oauth.AuthCodeURL("")
}

// OpenAuthorization builds the authorization URL and hands it to the browser
// opener. The URL is returned even when opening fails so it can be printed.
func (c *Client) OpenAuthorization() (string, error) {
	authURL := c.AuthorizationURL()
	if c.openURL == nil {
		return authURL, nil
	}
	if err := c.openURL(authURL); err != nil {
		return authURL, fmt.Errorf("open browser: %w", err)
	}
	return authURL, nil
}

func (c *Client) Exchange(ctx context.Context, code string) (domain.TokenBundle, error) {
	if strings.TrimSpace(code) == "" {
		return domain.TokenBundle{}, &domain.AuthError{Op: "exchange", Err: errors.New("authorization code is required")}
	}

	token, err := c.oauth.Exchange(c.oauthContext(ctx), code)
	if err != nil {
		return domain.TokenBundle{}, authError("exchange", err)
	}

	bundle := bundleFromToken(token, time.Now())
	if bundle.RefreshToken == "" {
		return domain.TokenBundle{}, &domain.AuthError{Op: "exchange", Err: errors.New("token response missing refresh_token")}
	}

	return bundle, nil
}

func (c *Client) Refresh(ctx context.Context, refreshToken string) (domain.TokenBundle, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return domain.TokenBundle{}, &domain.AuthError{Op: "refresh", Err: errors.New("refresh token is required")}
	}

	source := c.oauth.TokenSource(c.oauthContext(ctx), &oauth2.Token{RefreshToken: refreshToken})
	token, err := source.Token()
	if err != nil {
		return domain.TokenBundle{}, authError("refresh", err)
	}

	return bundleFromToken(token, time.Now()).WithRefreshFallback(refreshToken), nil
}

func (c *Client) SetAccessToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = token
}

func (c *Client) AccessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

func (c *Client) CurrentlyPlaying(ctx context.Context) (*domain.PlaybackSnapshot, error) {
	token := c.AccessToken()
	if token == "" {
		return nil, domain.ErrNotAuthenticated
	}

	endpoint := c.apiURL + "/me/player/currently-playing"
	if c.market != "" {
		endpoint += "?" + url.Values{"market": {c.market}}.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create currently playing request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request currently playing: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &domain.UpstreamError{
			Service:    "spotify",
			Op:         "currently-playing",
			StatusCode: resp.StatusCode,
			Detail:     decodeAPIError(resp.Body),
		}
	}

	var payload currentlyPlayingPayload
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxPayloadBytes)).Decode(&payload); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode currently playing response: %w", err)
	}

	return payload.snapshot(), nil
}

func (c *Client) oauthContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
}

func authError(op string, err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
		return &domain.AuthError{Op: op, StatusCode: retrieveErr.Response.StatusCode, Err: err}
	}
	return &domain.AuthError{Op: op, Err: err}
}

func bundleFromToken(token *oauth2.Token, now time.Time) domain.TokenBundle {
	bundle := domain.TokenBundle{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
	}
	if scope, ok := token.Extra("scope").(string); ok {
		bundle.Scope = scope
	}

	switch v := token.Extra("expires_in").(type) {
	case float64:
		bundle.ExpiresIn = int64(v)
	case int64:
		bundle.ExpiresIn = v
	case string:
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			bundle.ExpiresIn = parsed
		}
	}
	if bundle.ExpiresIn == 0 && !token.Expiry.IsZero() {
		bundle.ExpiresIn = int64(math.Round(token.Expiry.Sub(now).Seconds()))
	}

	return bundle
}

func normalizeBaseURL(raw string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("url host is required")
	}
	return strings.TrimRight(parsed.String(), "/"), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

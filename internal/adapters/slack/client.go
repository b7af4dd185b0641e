package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/bnema/slack-now-playing/internal/domain"
	"github.com/bnema/slack-now-playing/internal/ports"
)

const (
	profileSetPath   = "/api/users.profile.set"
	preparePhotoPath = "/api/users.preparePhoto"
	setPhotoPath     = "/api/users.setPhoto"

	maxResponseBytes = 1 << 20
)

type Client struct {
	creds      domain.ChatCredentials
	httpClient *http.Client
}

var _ ports.ChatProfile = (*Client)(nil)

type apiResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
	ID    string `json:"id"`
	URL   string `json:"url"`
}

type profileFields struct {
	StatusEmoji string `json:"status_emoji"`
	StatusText  string `json:"status_text"`
}

func NewClient(creds domain.ChatCredentials, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{creds: creds, httpClient: httpClient}
}

// ValidateCredentials reports the first missing credential as a ConfigError.
func (c *Client) ValidateCredentials() error {
	if c.creds.Token == "" {
		return &domain.ConfigError{Field: "slack." + string(domain.CredentialToken)}
	}
	if c.creds.BaseURL == "" {
		return &domain.ConfigError{Field: "slack." + string(domain.CredentialBaseURL)}
	}
	if c.creds.DCookie == "" {
		return &domain.ConfigError{Field: "slack." + string(domain.CredentialDCookie)}
	}
	return nil
}

func (c *Client) SetStatus(ctx context.Context, emoji string, text string) error {
	if err := c.ValidateCredentials(); err != nil {
		return err
	}

	profile, err := json.Marshal(profileFields{StatusEmoji: emoji, StatusText: text})
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	values := url.Values{}
	values.Set("token", c.creds.Token)
	values.Set("profile", string(profile))

	_, err = c.postForm(ctx, "users.profile.set", profileSetPath, values)
	return err
}

func (c *Client) UploadPhoto(ctx context.Context, image []byte) (domain.Photo, error) {
	if err := c.ValidateCredentials(); err != nil {
		return domain.Photo{}, err
	}
	if len(image) == 0 {
		return domain.Photo{}, errors.New("image is empty")
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("token", c.creds.Token); err != nil {
		return domain.Photo{}, fmt.Errorf("write token field: %w", err)
	}
	part, err := writer.CreateFormFile("image", "blob")
	if err != nil {
		return domain.Photo{}, fmt.Errorf("create image part: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return domain.Photo{}, fmt.Errorf("write image part: %w", err)
	}
	if err := writer.Close(); err != nil {
		return domain.Photo{}, fmt.Errorf("close multipart body: %w", err)
	}

	payload, err := c.post(ctx, "users.preparePhoto", preparePhotoPath, writer.FormDataContentType(), &body)
	if err != nil {
		return domain.Photo{}, err
	}
	if payload.ID == "" {
		return domain.Photo{}, &domain.UpstreamError{Service: "slack", Op: "users.preparePhoto", StatusCode: http.StatusOK, Detail: "response missing photo id"}
	}

	return domain.Photo{ID: payload.ID, URL: payload.URL}, nil
}

func (c *Client) SetProfilePhoto(ctx context.Context, photoID string, crop domain.CropRect) (domain.Photo, error) {
	if err := c.ValidateCredentials(); err != nil {
		return domain.Photo{}, err
	}
	if photoID == "" {
		return domain.Photo{}, errors.New("photo id is required")
	}

	values := url.Values{}
	values.Set("token", c.creds.Token)
	values.Set("id", photoID)
	values.Set("crop_x", strconv.Itoa(crop.X))
	values.Set("crop_y", strconv.Itoa(crop.Y))
	values.Set("crop_w", strconv.Itoa(crop.W))

	payload, err := c.postForm(ctx, "users.setPhoto", setPhotoPath, values)
	if err != nil {
		return domain.Photo{}, err
	}

	return domain.Photo{ID: firstNonEmpty(payload.ID, photoID), URL: payload.URL}, nil
}

func (c *Client) postForm(ctx context.Context, op, path string, values url.Values) (apiResponse, error) {
	return c.post(ctx, op, path, "application/x-www-form-urlencoded", strings.NewReader(values.Encode()))
}

func (c *Client) post(ctx context.Context, op, path, contentType string, body io.Reader) (apiResponse, error) {
	endpoint, err := buildAPIURL(c.creds.BaseURL, path)
	if err != nil {
		return apiResponse{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return apiResponse{}, fmt.Errorf("create %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Cookie", "d="+c.creds.DCookie)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apiResponse{}, fmt.Errorf("request %s: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return apiResponse{}, fmt.Errorf("read %s response: %w", op, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return apiResponse{}, &domain.UpstreamError{Service: "slack", Op: op, StatusCode: resp.StatusCode, Detail: strings.TrimSpace(string(raw))}
	}

	var payload apiResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return apiResponse{}, &domain.UpstreamError{Service: "slack", Op: op, StatusCode: resp.StatusCode, Detail: "invalid json response"}
	}
	if !payload.OK {
		return apiResponse{}, &domain.UpstreamError{Service: "slack", Op: op, StatusCode: resp.StatusCode, Detail: firstNonEmpty(payload.Error, "not ok")}
	}

	return payload, nil
}

func buildAPIURL(baseURL, path string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return "", fmt.Errorf("parse slack base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("slack base url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("slack base url host is required")
	}
	parsed.Path = path
	parsed.RawQuery = ""
	return parsed.String(), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

package artwork

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/bnema/slack-now-playing/internal/domain"
	"github.com/bnema/slack-now-playing/internal/ports"
)

// MaxImageBytes bounds a single album art download.
const MaxImageBytes = 10 << 20

type Fetcher struct {
	HTTPClient *http.Client
}

var _ ports.ImageFetcher = Fetcher{}

func (f Fetcher) Fetch(ctx context.Context, imageURL string) ([]byte, error) {
	if imageURL == "" {
		return nil, errors.New("image url is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create image request: %w", err)
	}

	resp, err := f.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("download image: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &domain.UpstreamError{Service: "artwork", Op: "download", StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if len(data) > MaxImageBytes {
		return nil, fmt.Errorf("image exceeds %d bytes", MaxImageBytes)
	}
	if len(data) == 0 {
		return nil, errors.New("image is empty")
	}

	return data, nil
}

func (f Fetcher) httpClient() *http.Client {
	if f.HTTPClient != nil {
		return f.HTTPClient
	}
	return http.DefaultClient
}

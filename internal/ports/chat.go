package ports

import (
	"context"

	"github.com/bnema/slack-now-playing/internal/domain"
)

type ChatProfile interface {
	SetStatus(ctx context.Context, emoji string, text string) error
	UploadPhoto(ctx context.Context, image []byte) (domain.Photo, error)
	SetProfilePhoto(ctx context.Context, photoID string, crop domain.CropRect) (domain.Photo, error)
}

type ImageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

type StatusReporter interface {
	Report(snapshot *domain.PlaybackSnapshot, status string)
}

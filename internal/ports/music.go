package ports

import (
	"context"

	"github.com/bnema/slack-now-playing/internal/domain"
)

// MusicService returns a nil snapshot with a nil error when nothing is playing.
type MusicService interface {
	CurrentlyPlaying(ctx context.Context) (*domain.PlaybackSnapshot, error)
	Refresh(ctx context.Context, refreshToken string) (domain.TokenBundle, error)
	SetAccessToken(token string)
}

type CodeExchanger interface {
	Exchange(ctx context.Context, code string) (domain.TokenBundle, error)
}

type Listener interface {
	Shutdown(ctx context.Context) error
}

package domain

import (
	"fmt"
	"strings"
)

const (
	ProgressBarWidth   = 10
	ProgressFilledRune = "="
	ProgressEmptyRune  = "-"

	DefaultStatusEmoji      = ":musical_note:"
	DefaultPlaceholderImage = "https://placehold.co/640"
	NothingPlayingText      = "Nothing playing..."
)

type TrackID string

type PlaybackSnapshot struct {
	TrackID     TrackID
	TrackName   string
	Artists     []string
	ProgressMs  int64
	DurationMs  int64
	AlbumArtURL string
	IsPlaying   bool
}

func (p PlaybackSnapshot) ArtistLine() string {
	return strings.Join(p.Artists, ", ")
}

// ArtworkURL falls back to placeholder when the album carries no image.
func (p PlaybackSnapshot) ArtworkURL(placeholder string) string {
	if strings.TrimSpace(p.AlbumArtURL) != "" {
		return p.AlbumArtURL
	}
	return placeholder
}

// FilledSegments is floor(progress/duration*width) clamped to [0, width].
func FilledSegments(progressMs, durationMs int64, width int) int {
	if width <= 0 || durationMs <= 0 || progressMs <= 0 {
		return 0
	}
	if progressMs >= durationMs {
		return width
	}

	filled := int(progressMs * int64(width) / durationMs)
	if filled > width {
		return width
	}
	return filled
}

func ProgressBar(progressMs, durationMs int64) string {
	filled := FilledSegments(progressMs, durationMs, ProgressBarWidth)
	return strings.Repeat(ProgressFilledRune, filled) + strings.Repeat(ProgressEmptyRune, ProgressBarWidth-filled)
}

// FormatStatus renders "<track> - <artists> [<bar>]".
func FormatStatus(p PlaybackSnapshot) string {
	return fmt.Sprintf("%s - %s [%s]", p.TrackName, p.ArtistLine(), ProgressBar(p.ProgressMs, p.DurationMs))
}

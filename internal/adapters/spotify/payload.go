package spotify

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/bnema/slack-now-playing/internal/domain"
)

type currentlyPlayingPayload struct {
	Timestamp            int64        `json:"timestamp"`
	ProgressMs           int64        `json:"progress_ms"`
	IsPlaying            bool         `json:"is_playing"`
	CurrentlyPlayingType string       `json:"currently_playing_type"`
	Item                 *trackObject `json:"item"`
}

type trackObject struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	DurationMs int64          `json:"duration_ms"`
	Artists    []artistObject `json:"artists"`
	Album      albumObject    `json:"album"`
}

type artistObject struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type albumObject struct {
	ID     string        `json:"id"`
	Name   string        `json:"name"`
	Images []imageObject `json:"images"`
}

type imageObject struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

type apiErrorEnvelope struct {
	Error struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

// snapshot returns nil when the payload carries no track, e.g. while an
// episode or ad is playing.
func (p currentlyPlayingPayload) snapshot() *domain.PlaybackSnapshot {
	if p.Item == nil || p.Item.Name == "" {
		return nil
	}

	artists := make([]string, 0, len(p.Item.Artists))
	for _, artist := range p.Item.Artists {
		artists = append(artists, artist.Name)
	}

	var artURL string
	if len(p.Item.Album.Images) > 0 {
		artURL = p.Item.Album.Images[0].URL
	}

	return &domain.PlaybackSnapshot{
		TrackID:     domain.TrackID(p.Item.ID),
		TrackName:   p.Item.Name,
		Artists:     artists,
		ProgressMs:  p.ProgressMs,
		DurationMs:  p.Item.DurationMs,
		AlbumArtURL: artURL,
		IsPlaying:   p.IsPlaying,
	}
}

func decodeAPIError(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, maxPayloadBytes))
	if err != nil {
		return ""
	}

	var envelope apiErrorEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error.Message != "" {
		return envelope.Error.Message
	}

	return strings.TrimSpace(string(raw))
}

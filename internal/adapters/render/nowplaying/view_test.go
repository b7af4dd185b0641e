package nowplaying

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/bnema/slack-now-playing/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPlayingTrack(t *testing.T) {
	now := time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)

	output, err := Render(&domain.PlaybackSnapshot{
		TrackID:    "t1",
		TrackName:  "Song",
		Artists:    []string{"A", "B"},
		ProgressMs: 90000,
		DurationMs: 180000,
		IsPlaying:  true,
	}, "Song - A, B [=====-----]", RenderOptions{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, "11:00:00")
	assert.Contains(t, output, "Song")
	assert.Contains(t, output, "A, B")
	assert.Contains(t, output, "=====")
	assert.Contains(t, output, "-----")
	assert.Contains(t, output, "1:30 / 3:00")
	assert.NotContains(t, output, "paused")
}

func TestRenderPausedTrack(t *testing.T) {
	output, err := Render(&domain.PlaybackSnapshot{
		TrackName:  "Song",
		Artists:    []string{"A"},
		ProgressMs: 0,
		DurationMs: 1000,
	}, "", RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "[paused]")
	assert.Contains(t, output, "----------")
}

func TestRenderNothingPlaying(t *testing.T) {
	output, err := Render(nil, domain.NothingPlayingText, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "Nothing playing...")
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "0:00", formatClock(-5))
	assert.Equal(t, "0:09", formatClock(9999))
	assert.Equal(t, "12:05", formatClock(725000))
}

func TestInterpolateColorClamps(t *testing.T) {
	assert.Equal(t, "240", string(interpolateColor(-1, 0, 10)))
	assert.Equal(t, "255", string(interpolateColor(20, 0, 10)))
	assert.Equal(t, "255", string(interpolateColor(1, 0, 0)))
}

func TestReporterWritesOneLinePerReport(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewReporter(&buf, func() time.Time { return time.Date(2026, 1, 1, 8, 30, 0, 0, time.UTC) })

	reporter.Report(nil, domain.NothingPlayingText)
	reporter.Report(&domain.PlaybackSnapshot{TrackName: "Song", Artists: []string{"A"}, DurationMs: 1000, IsPlaying: true}, "Song - A [----------]")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "08:30:00")
	assert.Contains(t, lines[1], "Song")
}

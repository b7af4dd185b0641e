package nowplaying

import (
	"fmt"
	"strings"
	"time"

	"github.com/bnema/slack-now-playing/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type RenderOptions struct {
	Now time.Time
}

func renderView(snapshot *domain.PlaybackSnapshot, status string, opts RenderOptions, s styles) string {
	parts := []string{}
	if !opts.Now.IsZero() {
		parts = append(parts, s.clock.Render(opts.Now.Format("15:04:05")), " ")
	}

	if snapshot == nil {
		parts = append(parts, s.empty.Render(firstNonEmpty(status, domain.NothingPlayingText)))
		return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	}

	parts = append(parts,
		s.track.Render(snapshot.TrackName),
		" - ",
		s.artists.Render(snapshot.ArtistLine()),
		" ",
		renderProgressBar(snapshot.ProgressMs, snapshot.DurationMs, domain.ProgressBarWidth, s),
		" ",
		elapsedStyle(snapshot).Render(formatElapsed(snapshot.ProgressMs, snapshot.DurationMs)),
	)
	if !snapshot.IsPlaying {
		parts = append(parts, " ", s.paused.Render("[paused]"))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func renderProgressBar(progressMs, durationMs int64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := domain.FilledSegments(progressMs, durationMs, width)
	empty := width - filled
	fillSegment := s.barFill.Render(strings.Repeat(domain.ProgressFilledRune, filled))
	emptySegment := s.barEmpty.Render(strings.Repeat(domain.ProgressEmptyRune, empty))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		fillSegment,
		emptySegment,
		s.barBracket.Render("]"),
	)
}

func formatElapsed(progressMs, durationMs int64) string {
	return fmt.Sprintf("%s / %s", formatClock(progressMs), formatClock(durationMs))
}

func formatClock(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	total := ms / 1000
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func elapsedStyle(snapshot *domain.PlaybackSnapshot) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(interpolateColor(float64(snapshot.ProgressMs), 0, float64(snapshot.DurationMs)))
}

// interpolateColor maps value onto the ANSI greyscale ramp, 240 at min and 255
// at max.
func interpolateColor(value, min, max float64) lipgloss.Color {
	if max <= min {
		return lipgloss.Color("255")
	}

	normalized := (value - min) / (max - min)
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}

	baseColor := 240.0
	targetColor := 255.0
	colorCode := int(baseColor + (targetColor-baseColor)*normalized)

	return lipgloss.Color(fmt.Sprintf("%d", colorCode))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

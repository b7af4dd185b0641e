package nowplaying

import (
	"errors"
	"io"

	"github.com/bnema/slack-now-playing/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUnexpectedRenderModel = errors.New("now playing renderer ended with an unknown model")

// frame is one status push waiting to be drawn.
type frame struct {
	snapshot *domain.PlaybackSnapshot
	status   string
	opts     RenderOptions
}

type frameMsg frame

// lineModel draws a single frame and quits, so the program never owns the
// terminal between polls.
type lineModel struct {
	pending frame
	styles  styles
	line    string
}

func (m lineModel) Init() tea.Cmd {
	pending := m.pending
	return func() tea.Msg { return frameMsg(pending) }
}

func (m lineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if f, ok := msg.(frameMsg); ok {
		m.line = renderView(f.snapshot, f.status, f.opts, m.styles)
		return m, tea.Quit
	}
	return m, nil
}

func (m lineModel) View() string {
	return m.line
}

// Render draws one console line for a status push. A nil snapshot renders the
// nothing-playing line.
func Render(snapshot *domain.PlaybackSnapshot, status string, opts RenderOptions) (string, error) {
	program := tea.NewProgram(
		lineModel{
			pending: frame{snapshot: snapshot, status: status, opts: opts},
			styles:  newStyles(),
		},
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	final, err := program.Run()
	if err != nil {
		return "", err
	}

	drawn, ok := final.(lineModel)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}
	return drawn.View(), nil
}

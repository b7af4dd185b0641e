package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	loginWaitStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	loginHintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// loginWaitModel checks loggedIn on every spinner frame and quits once the
// redirect listener has traded the code.
type loginWaitModel struct {
	spinner  spinner.Model
	loggedIn func() bool
	started  time.Time
	now      func() time.Time
	finished bool
}

func newLoginWaitModel(loggedIn func() bool, now func() time.Time) loginWaitModel {
	if now == nil {
		now = time.Now
	}

	return loginWaitModel{
		spinner:  spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(loginWaitStyle)),
		loggedIn: loggedIn,
		started:  now(),
		now:      now,
	}
}

func (m loginWaitModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m loginWaitModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	tick, ok := msg.(spinner.TickMsg)
	if !ok {
		return m, nil
	}
	if m.loggedIn() {
		m.finished = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(tick)
	return m, cmd
}

func (m loginWaitModel) View() string {
	if m.finished {
		return ""
	}

	waited := m.now().Sub(m.started).Truncate(time.Second)
	return fmt.Sprintf("%s Waiting for Spotify authorization... %s", m.spinner.View(), loginHintStyle.Render(waited.String()))
}

// runLoginSpinner animates on output until loggedIn reports true. A canceled
// ctx ends it quietly.
func runLoginSpinner(ctx context.Context, output io.Writer, loggedIn func() bool) error {
	program := tea.NewProgram(
		newLoginWaitModel(loggedIn, nil),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	if _, err := program.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("login spinner: %w", err)
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

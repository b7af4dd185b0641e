package prompt

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/bnema/slack-now-playing/internal/ports"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type TextInput struct {
	in  io.Reader
	out io.Writer
}

var _ ports.CredentialPrompter = (*TextInput)(nil)

func NewTextInput(in io.Reader, out io.Writer) *TextInput {
	return &TextInput{in: in, out: out}
}

func (p *TextInput) Prompt(ctx context.Context, question ports.CredentialQuestion) (string, error) {
	program := tea.NewProgram(
		newInputModel(question),
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)

	finalModel, err := program.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("prompt %s: %w", question.Field, err)
	}

	result, ok := finalModel.(inputModel)
	if !ok {
		return "", fmt.Errorf("prompt %s: unexpected final model %T", question.Field, finalModel)
	}
	if result.canceled {
		return "", ErrCanceled
	}

	return result.value(), nil
}

var (
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

type inputModel struct {
	question  ports.CredentialQuestion
	input     textinput.Model
	invalid   string
	submitted bool
	canceled  bool
}

func newInputModel(question ports.CredentialQuestion) inputModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = question.Label
	ti.Width = 60
	if question.Secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	ti.Focus()

	return inputModel{question: question, input: ti}
}

func (m inputModel) value() string {
	return strings.TrimSpace(m.input.Value())
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			if m.value() == "" {
				m.invalid = "a value is required"
				return m, nil
			}
			m.submitted = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.canceled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.invalid = ""
	return m, cmd
}

func (m inputModel) View() string {
	if m.submitted || m.canceled {
		return ""
	}

	lines := make([]string, 0, len(m.question.Hints)+3)
	for _, hint := range m.question.Hints {
		lines = append(lines, hintStyle.Render(hint))
	}
	lines = append(lines, labelStyle.Render(m.question.Label), m.input.View())
	if m.invalid != "" {
		lines = append(lines, errorStyle.Render(m.invalid))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n"
}

package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/bnema/slack-now-playing/internal/ports"
)

// Line reads one answer per line. Secrets are echoed; use it for piped input.
// A single reader goroutine owns the input, so a prompt abandoned by a
// canceled context hands its line to the next prompt.
type Line struct {
	reader *bufio.Reader
	out    io.Writer
	mu     sync.Mutex
	start  sync.Once
	lines  chan lineResult
}

type lineResult struct {
	line string
	err  error
}

var _ ports.CredentialPrompter = (*Line)(nil)

func NewLine(in io.Reader, out io.Writer) *Line {
	if out == nil {
		out = io.Discard
	}
	return &Line{reader: bufio.NewReader(in), out: out, lines: make(chan lineResult)}
}

func (l *Line) Prompt(ctx context.Context, question ports.CredentialQuestion) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for _, hint := range question.Hints {
		_, _ = fmt.Fprintln(l.out, hint)
	}
	_, _ = fmt.Fprintf(l.out, "%s: ", question.Label)

	l.start.Do(func() { go l.readLoop() })

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-l.lines:
		if !ok {
			return "", fmt.Errorf("read %s: %w", question.Field, io.ErrUnexpectedEOF)
		}
		value := strings.TrimSpace(res.line)
		if res.err != nil && !(errors.Is(res.err, io.EOF) && value != "") {
			if errors.Is(res.err, io.EOF) {
				return "", fmt.Errorf("read %s: %w", question.Field, io.ErrUnexpectedEOF)
			}
			return "", fmt.Errorf("read %s: %w", question.Field, res.err)
		}
		return value, nil
	}
}

// readLoop hands lines over one at a time and closes lines after the first
// read error.
func (l *Line) readLoop() {
	defer close(l.lines)
	for {
		line, err := l.reader.ReadString('\n')
		l.lines <- lineResult{line: line, err: err}
		if err != nil {
			return
		}
	}
}

// Package prompt asks the operator for missing chat credentials.
package prompt

import (
	"errors"
	"io"
	"os"

	"github.com/bnema/slack-now-playing/internal/ports"
	"golang.org/x/term"
)

var ErrCanceled = errors.New("prompt canceled")

// New returns an interactive prompter when in is a terminal and a plain line
// reader otherwise.
func New(in *os.File, out io.Writer) ports.CredentialPrompter {
	if in != nil && term.IsTerminal(int(in.Fd())) {
		return NewTextInput(in, out)
	}
	return NewLine(in, out)
}

package pass

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/bnema/slack-now-playing/internal/domain"
	"github.com/bnema/slack-now-playing/internal/ports"
)

// ErrUnavailable means pass is not installed, so callers should try another
// backend.
var ErrUnavailable = errors.New("pass is not installed")

// invocation is one pass(1) call. stdin is empty for read-only commands.
type invocation struct {
	args  []string
	stdin string
}

type result struct {
	stdout string
	stderr string
}

type runner func(ctx context.Context, call invocation) (result, error)

// Store remembers chat credentials as single-line pass entries.
type Store struct {
	run runner
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{run: execPass}
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	value = strings.TrimRight(value, "\r\n")
	if strings.ContainsAny(value, "\r\n") {
		return fmt.Errorf("pass insert %q: credential spans several lines", key)
	}

	_, err := s.call(ctx, "insert", key, invocation{
		args:  []string{"insert", "--echo", "--force", key},
		stdin: value + "\n",
	})
	return err
}

// Get returns the first line of the entry, which is where pass keeps the
// password of multi-line entries.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	out, err := s.call(ctx, "show", key, invocation{args: []string{"show", key}})
	if err != nil {
		return "", err
	}

	first, _, _ := strings.Cut(out.stdout, "\n")
	return strings.TrimSuffix(first, "\r"), nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.call(ctx, "rm", key, invocation{args: []string{"rm", "--force", key}})
	if errors.Is(err, domain.ErrSecretNotFound) {
		return nil
	}
	return err
}

func (s *Store) call(ctx context.Context, op string, key string, call invocation) (result, error) {
	if err := ctx.Err(); err != nil {
		return result{}, err
	}

	out, err := s.run(ctx, call)
	if err == nil {
		return out, nil
	}
	if errors.Is(err, ErrUnavailable) {
		return out, err
	}
	if strings.Contains(out.stderr, "is not in the password store") {
		return out, fmt.Errorf("pass %s %q: %w", op, key, domain.ErrSecretNotFound)
	}
	if out.stderr != "" {
		return out, fmt.Errorf("pass %s %q: %w: %s", op, key, err, out.stderr)
	}
	return out, fmt.Errorf("pass %s %q: %w", op, key, err)
}

func execPass(ctx context.Context, call invocation) (result, error) {
	path, err := exec.LookPath("pass")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return result{}, ErrUnavailable
		}
		return result{}, fmt.Errorf("locate pass: %w", err)
	}

	cmd := exec.CommandContext(ctx, path, call.args...)
	if call.stdin != "" {
		cmd.Stdin = strings.NewReader(call.stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	return result{stdout: stdout.String(), stderr: strings.TrimSpace(stderr.String())}, err
}

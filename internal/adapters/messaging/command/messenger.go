// Package command delivers messages by running an external program, such as
// an SMS bridge, with the message body on stdin.
package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/bnema/drivefocus/internal/domain"
	"github.com/bnema/drivefocus/internal/ports"
)

// RecipientPlaceholder is replaced with the recipient in every argument.
const RecipientPlaceholder = "{to}"

var ErrUnavailable = errors.New("messaging command unavailable")

type runFunc func(ctx context.Context, input string, name string, args ...string) (stdout string, stderr string, err error)

type Messenger struct {
	argv []string
	run  runFunc
}

var _ ports.Messenger = (*Messenger)(nil)

func NewMessenger(argv []string) (*Messenger, error) {
	if len(argv) == 0 || strings.TrimSpace(argv[0]) == "" {
		return nil, errors.New("messaging command is empty")
	}

	return &Messenger{argv: append([]string(nil), argv...), run: runCommand}, nil
}

func (m *Messenger) Send(ctx context.Context, to string, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	to = strings.TrimSpace(to)
	if to == "" {
		return domain.ErrEmptyRecipient
	}

	args := make([]string, 0, len(m.argv)-1)
	for _, arg := range m.argv[1:] {
		args = append(args, strings.ReplaceAll(arg, RecipientPlaceholder, to))
	}

	_, stderr, err := m.run(ctx, body, m.argv[0], args...)
	if err != nil {
		return formatError(m.argv[0], to, err, stderr)
	}

	return nil
}

func runCommand(ctx context.Context, input string, name string, args ...string) (string, string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", "", fmt.Errorf("%w: %s", ErrUnavailable, name)
		}
		return "", "", fmt.Errorf("locate %s: %w", name, err)
	}

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = strings.NewReader(input)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	return stdout.String(), strings.TrimSpace(stderr.String()), err
}

func formatError(name string, to string, err error, stderr string) error {
	if stderr == "" {
		return fmt.Errorf("%s send to %q: %w", name, to, err)
	}

	return fmt.Errorf("%s send to %q: %w: %s", name, to, err, stderr)
}

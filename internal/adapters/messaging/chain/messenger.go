// Package chain tries a primary messenger and falls back to a secondary one.
package chain

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/drivefocus/internal/domain"
	"github.com/bnema/drivefocus/internal/ports"
)

type Messenger struct {
	primary  ports.Messenger
	fallback ports.Messenger
}

var _ ports.Messenger = (*Messenger)(nil)

var (
	errNilPrimary  = errors.New("primary messenger is nil")
	errNilFallback = errors.New("fallback messenger is nil")
)

func NewMessenger(primary ports.Messenger, fallback ports.Messenger) (*Messenger, error) {
	if primary == nil {
		return nil, errNilPrimary
	}
	if fallback == nil {
		return nil, errNilFallback
	}

	return &Messenger{primary: primary, fallback: fallback}, nil
}

func (m *Messenger) Send(ctx context.Context, to string, body string) error {
	err := m.primary.Send(ctx, to, body)
	if err == nil {
		return nil
	}
	if shouldSkipFallback(err) {
		return err
	}

	fallbackErr := m.fallback.Send(ctx, to, body)
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("primary messenger failed: %w; fallback messenger failed: %w", err, fallbackErr)
}

func shouldSkipFallback(err error) bool {
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, domain.ErrEmptyRecipient)
}

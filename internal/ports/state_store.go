package ports

import (
	"context"
	"time"

	"github.com/bnema/drivefocus/internal/domain"
)

// StateStore is the durable key/value surface shared by the classifier and
// the call screener. Each operation is atomic for its own key; there is no
// multi-key transaction. Missing keys are not errors.
type StateStore interface {
	GetBool(ctx context.Context, key string, fallback bool) (bool, error)
	SetBool(ctx context.Context, key string, value bool) error
	GetTimestamp(ctx context.Context, key string) (time.Time, bool, error)
	SetTimestamp(ctx context.Context, key string, value time.Time) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
	Close() error
}

// ChangeFeed notifies observers when watched boolean keys change value.
// The channel is closed when ctx is done.
type ChangeFeed interface {
	Watch(ctx context.Context, keys ...string) (<-chan domain.StateChange, error)
}

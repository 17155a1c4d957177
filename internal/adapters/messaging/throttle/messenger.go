// Package throttle caps how often messages go out. It never waits: a send
// over the limit fails with domain.ErrThrottled so call screening is not
// held up by a burst of rejected calls.
package throttle

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/bnema/drivefocus/internal/domain"
	"github.com/bnema/drivefocus/internal/ports"
)

type Messenger struct {
	next    ports.Messenger
	limiter *rate.Limiter
}

var _ ports.Messenger = (*Messenger)(nil)

// NewMessenger allows perMinute sends on average with bursts up to burst.
// A non-positive perMinute disables throttling.
func NewMessenger(next ports.Messenger, perMinute float64, burst int) *Messenger {
	if burst < 1 {
		burst = 1
	}

	limit := rate.Inf
	if perMinute > 0 {
		limit = rate.Limit(perMinute / 60)
	}

	return &Messenger{next: next, limiter: rate.NewLimiter(limit, burst)}
}

func (m *Messenger) Send(ctx context.Context, to string, body string) error {
	if !m.limiter.Allow() {
		return fmt.Errorf("send to %q: %w", to, domain.ErrThrottled)
	}

	return m.next.Send(ctx, to, body)
}

package application

import (
	"context"
	"fmt"

	"github.com/bnema/drivefocus/internal/domain"
	"github.com/bnema/drivefocus/internal/ports"
)

type StatusService struct {
	store          ports.StateStore
	history        *History
	clock          ports.Clock
	defaultHandler bool
}

// NewStatusService reports the stored state. defaultHandler reflects whether
// the platform has made this app the call screener; it is supplied by
// configuration because detecting it is platform specific.
func NewStatusService(store ports.StateStore, history *History, clock ports.Clock, defaultHandler bool) *StatusService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &StatusService{store: store, history: history, clock: clock, defaultHandler: defaultHandler}
}

func (s *StatusService) Status(ctx context.Context) (Status, error) {
	now := s.clock.Now()

	monitoring, err := s.store.GetBool(ctx, domain.KeyMonitoringEnabled, false)
	if err != nil {
		return Status{}, fmt.Errorf("read monitoring state: %w", err)
	}
	driving, err := s.store.GetBool(ctx, domain.KeyIsDriving, false)
	if err != nil {
		return Status{}, fmt.Errorf("read driving state: %w", err)
	}
	history, err := s.history.List(ctx, now)
	if err != nil {
		return Status{}, err
	}

	return Status{
		At:                now,
		MonitoringEnabled: monitoring,
		Driving:           driving,
		DefaultHandler:    s.defaultHandler,
		History:           history,
	}, nil
}

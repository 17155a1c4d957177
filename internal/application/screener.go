package application

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bnema/drivefocus/internal/domain"
	"github.com/bnema/drivefocus/internal/logger"
	"github.com/bnema/drivefocus/internal/ports"
)

var errNoMessenger = errors.New("no messenger configured")

// CallScreener decides whether an incoming call rings through. It holds no
// state of its own; every decision is made from the store.
type CallScreener struct {
	store     ports.StateStore
	messenger ports.Messenger
	cfg       ScreenerConfig
	newID     func() string
}

func NewCallScreener(store ports.StateStore, messenger ports.Messenger, cfg ScreenerConfig) *CallScreener {
	return &CallScreener{
		store:     store,
		messenger: messenger,
		cfg:       cfg.withDefaults(),
		newID:     uuid.NewString,
	}
}

// OnIncomingCall decides on the call and carries out the rejection side
// effects when the call is screened.
func (s *CallScreener) OnIncomingCall(ctx context.Context, callerID string, now time.Time) domain.Verdict {
	return s.Apply(ctx, s.Decide(ctx, callerID, now))
}

// Decide evaluates the policy in order: monitoring, driving, emergency
// callback. A matching emergency entry is consumed here so it can only let
// one callback through. Unreadable state resolves toward allowing the call.
func (s *CallScreener) Decide(ctx context.Context, callerID string, now time.Time) domain.Verdict {
	callerID = strings.TrimSpace(callerID)
	verdict := domain.Verdict{
		ID:       s.newID(),
		CallerID: callerID,
		At:       now,
	}
	log := logger.With("verdict", verdict.ID, "caller", callerID)

	allow := func(reason domain.Reason) domain.Verdict {
		verdict.Decision = domain.DecisionAllow
		verdict.Reason = reason
		log.Info("call allowed", "reason", reason)
		return verdict
	}

	if !s.readBool(ctx, log, domain.KeyMonitoringEnabled) {
		return allow(domain.ReasonMonitoringOff)
	}
	if !s.readBool(ctx, log, domain.KeyIsDriving) {
		return allow(domain.ReasonNotDriving)
	}

	if callerID != "" && s.consumeEmergencyCallback(ctx, log, callerID, now) {
		return allow(domain.ReasonEmergencyCallback)
	}

	verdict.Decision = domain.DecisionReject
	verdict.Reason = domain.ReasonScreened
	log.Info("call rejected", "reason", verdict.Reason)
	return verdict
}

// Apply sends the apology and records the rejection for a screened call.
// The two effects are independent and neither changes the decision.
// Callers without an identifier get neither.
func (s *CallScreener) Apply(ctx context.Context, verdict domain.Verdict) domain.Verdict {
	if verdict.Decision != domain.DecisionReject || verdict.CallerID == "" {
		return verdict
	}
	log := logger.With("verdict", verdict.ID, "caller", verdict.CallerID)

	apology := domain.Effect{Kind: domain.EffectSendApology}
	if err := s.sendApology(ctx, verdict.CallerID); err != nil {
		apology.Error = err.Error()
		log.Warn("apology not sent", "error", err)
	} else {
		apology.Applied = true
	}

	record := domain.Effect{Kind: domain.EffectRecordRejection}
	opCtx, cancel := withTimeout(ctx, s.cfg.StoreTimeout)
	err := s.store.SetTimestamp(opCtx, domain.RejectedCallKey(verdict.CallerID), verdict.At)
	cancel()
	if err != nil {
		record.Error = err.Error()
		log.Warn("rejection not recorded", "error", err)
	} else {
		record.Applied = true
	}

	verdict.Effects = append(verdict.Effects, apology, record)
	return verdict
}

func (s *CallScreener) sendApology(ctx context.Context, callerID string) error {
	if s.messenger == nil {
		return errNoMessenger
	}

	opCtx, cancel := withTimeout(ctx, s.cfg.SendTimeout)
	defer cancel()
	return s.messenger.Send(opCtx, callerID, s.cfg.ApologyMessage)
}

func (s *CallScreener) readBool(ctx context.Context, log *slog.Logger, key string) bool {
	opCtx, cancel := withTimeout(ctx, s.cfg.StoreTimeout)
	defer cancel()

	value, err := s.store.GetBool(opCtx, key, false)
	if err != nil {
		log.Warn("state unreadable, assuming false", "key", key, "error", err)
		return false
	}
	return value
}

func (s *CallScreener) consumeEmergencyCallback(ctx context.Context, log *slog.Logger, callerID string, now time.Time) bool {
	key := domain.RejectedCallKey(callerID)

	opCtx, cancel := withTimeout(ctx, s.cfg.StoreTimeout)
	rejectedAt, found, err := s.store.GetTimestamp(opCtx, key)
	cancel()
	if err != nil {
		log.Warn("rejection history unreadable, treating as absent", "error", err)
		return false
	}
	if !found {
		return false
	}

	entry := domain.RejectionEntry{CallerID: callerID, RejectedAt: rejectedAt}
	if !entry.WithinEmergencyWindow(now, s.cfg.EmergencyWindow) {
		return false
	}

	opCtx, cancel = withTimeout(ctx, s.cfg.StoreTimeout)
	err = s.store.Delete(opCtx, key)
	cancel()
	if err != nil {
		log.Warn("emergency entry not cleared", "error", err)
	}

	return true
}

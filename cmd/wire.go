package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"

	commandmessenger "github.com/bnema/drivefocus/internal/adapters/messaging/command"
	chainmessenger "github.com/bnema/drivefocus/internal/adapters/messaging/chain"
	"github.com/bnema/drivefocus/internal/adapters/messaging/outbox"
	"github.com/bnema/drivefocus/internal/adapters/messaging/throttle"
	statusadapter "github.com/bnema/drivefocus/internal/adapters/render/status"
	memorystore "github.com/bnema/drivefocus/internal/adapters/store/memory"
	sqlitestore "github.com/bnema/drivefocus/internal/adapters/store/sqlite"
	"github.com/bnema/drivefocus/internal/adapters/store/watch"
	"github.com/bnema/drivefocus/internal/application"
	"github.com/bnema/drivefocus/internal/config"
	"github.com/bnema/drivefocus/internal/logger"
	"github.com/bnema/drivefocus/internal/ports"
)

type app struct {
	cfg            config.Config
	store          ports.StateStore
	feed           ports.ChangeFeed
	outbox         *outbox.Outbox
	screener       *application.CallScreener
	monitor        *application.Monitor
	history        *application.History
	status         *application.StatusService
	statusRenderer func(application.Status, statusadapter.RenderOptions) (string, error)
	now            func() time.Time
}

func wireApp() (*app, error) {
	cfg, err := config.Load(viper.New())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("configure logging: %w", err)
	}

	store, feed, err := wireStore(cfg.Store)
	if err != nil {
		return nil, err
	}

	messenger, box, err := wireMessenger(cfg.Messaging)
	if err != nil {
		return nil, errors.Join(err, store.Close())
	}

	clock := ports.SystemClock{}
	history := application.NewHistory(store, cfg.Policy.EmergencyWindow, cfg.Policy.HistoryRetention)

	return &app{
		cfg:    cfg,
		store:  store,
		feed:   feed,
		outbox: box,
		screener: application.NewCallScreener(store, messenger, application.ScreenerConfig{
			EmergencyWindow: cfg.Policy.EmergencyWindow,
			ApologyMessage:  cfg.Policy.ApologyMessage,
			StoreTimeout:    cfg.Policy.StoreTimeout,
			SendTimeout:     cfg.Messaging.SendTimeout,
		}),
		monitor: application.NewMonitor(store, feed, clock, application.MonitorConfig{
			Thresholds:       cfg.Classifier,
			StoreTimeout:     cfg.Policy.StoreTimeout,
			EmergencyWindow:  cfg.Policy.EmergencyWindow,
			HistoryRetention: cfg.Policy.HistoryRetention,
		}),
		history:        history,
		status:         application.NewStatusService(store, history, clock, cfg.Presentation.DefaultHandler),
		statusRenderer: statusadapter.Render,
		now:            time.Now,
	}, nil
}

func (a *app) Close() error {
	if a == nil || a.store == nil {
		return nil
	}
	return a.store.Close()
}

func wireStore(cfg config.StoreConfig) (ports.StateStore, ports.ChangeFeed, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		store := memorystore.NewStore()
		return store, store, nil
	case config.BackendSQLite:
		store, err := sqlitestore.NewStore(cfg.Path, cfg.BusyTimeout)
		if err != nil {
			return nil, nil, fmt.Errorf("wire state store: %w", err)
		}
		return store, watch.NewFeed(store, store.Dir(), cfg.WatchPollInterval), nil
	default:
		return nil, nil, fmt.Errorf("unsupported store backend %q", cfg.Backend)
	}
}

// wireMessenger sends through the configured command when there is one and
// falls back to the outbox, all behind the apology throttle.
func wireMessenger(cfg config.MessagingConfig) (ports.Messenger, *outbox.Outbox, error) {
	box, err := outbox.NewOutbox(cfg.OutboxPath)
	if err != nil {
		return nil, nil, fmt.Errorf("wire outbox: %w", err)
	}

	var messenger ports.Messenger = box
	if len(cfg.Command) > 0 {
		command, err := commandmessenger.NewMessenger(cfg.Command)
		if err != nil {
			return nil, nil, fmt.Errorf("wire messaging command: %w", err)
		}
		messenger, err = chainmessenger.NewMessenger(command, box)
		if err != nil {
			return nil, nil, fmt.Errorf("wire messenger chain: %w", err)
		}
	}

	return throttle.NewMessenger(messenger, cfg.RatePerMinute, cfg.Burst), box, nil
}

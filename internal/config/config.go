package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/drivefocus/internal/domain"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".drivefocus"
	envPrefix  = "DRIVEFOCUS"
	envConfig  = "DRIVEFOCUS_CONFIG"

	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

const (
	keyStoreBackend      = "store.backend"
	keyStorePath         = "store.path"
	keyStoreBusyTimeout  = "store.busy_timeout"
	keyWatchPollInterval = "store.watch_poll_interval"
	keySpeedThreshold    = "classifier.speed_threshold_mps"
	keyRequiredHigh      = "classifier.required_high"
	keyRequiredLow       = "classifier.required_low"
	keyEmergencyWindow   = "policy.emergency_window"
	keyApologyMessage    = "policy.apology_message"
	keyStoreTimeout      = "policy.store_timeout"
	keyHistoryRetention  = "policy.history_retention"
	keyMessagingCommand  = "messaging.command"
	keyOutboxPath        = "messaging.outbox_path"
	keySendTimeout       = "messaging.send_timeout"
	keyRatePerMinute     = "messaging.rate_per_minute"
	keyBurst             = "messaging.burst"
	keyMinInterval       = "location.min_interval"
	keyRequestedInterval = "location.requested_interval"
	keyDefaultHandler    = "presentation.default_handler"
	keyLogLevel          = "log.level"
)

const (
	defaultStoreTimeout   = 750 * time.Millisecond
	defaultBusyTimeout    = 250 * time.Millisecond
	defaultRetention      = 24 * time.Hour
	defaultMinInterval    = 3 * time.Second
	defaultRequested      = 5 * time.Second
	defaultWatchPoll      = 2 * time.Second
	defaultSendTimeout    = 5 * time.Second
	defaultRatePerMinute  = 6.0
	defaultMessagingBurst = 3
)

type Config struct {
	BaseDir      string
	Store        StoreConfig
	Classifier   domain.Thresholds
	Policy       PolicyConfig
	Messaging    MessagingConfig
	Location     LocationConfig
	Presentation PresentationConfig
	LogLevel     string
}

type StoreConfig struct {
	Backend           string
	Path              string
	BusyTimeout       time.Duration
	WatchPollInterval time.Duration
}

type PolicyConfig struct {
	EmergencyWindow  time.Duration
	ApologyMessage   string
	StoreTimeout     time.Duration
	HistoryRetention time.Duration
}

type MessagingConfig struct {
	// Command is the argv used to deliver an apology; "{to}" is replaced
	// with the caller. When empty, messages only go to the outbox.
	Command       []string
	OutboxPath    string
	SendTimeout   time.Duration
	RatePerMinute float64
	Burst         int
}

type LocationConfig struct {
	MinInterval       time.Duration
	RequestedInterval time.Duration
}

type PresentationConfig struct {
	// DefaultHandler mirrors whether the platform granted the call-screening
	// role. It is informational only.
	DefaultHandler bool
}

// Load reads ~/.drivefocus/config.toml (or $DRIVEFOCUS_CONFIG) with
// DRIVEFOCUS_* environment overrides on top of built-in defaults.
func Load(v *viper.Viper) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve home directory: %w", err)
	}
	baseDir := filepath.Join(homeDir, configDir)

	setDefaults(v, baseDir)

	v.SetConfigType(configType)
	if path := os.Getenv(envConfig); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(baseDir)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{
		BaseDir: baseDir,
		Store: StoreConfig{
			Backend:           strings.ToLower(strings.TrimSpace(v.GetString(keyStoreBackend))),
			Path:              v.GetString(keyStorePath),
			BusyTimeout:       v.GetDuration(keyStoreBusyTimeout),
			WatchPollInterval: v.GetDuration(keyWatchPollInterval),
		},
		Classifier: domain.Thresholds{
			SpeedMetersPerSecond: v.GetFloat64(keySpeedThreshold),
			RequiredHigh:         v.GetInt(keyRequiredHigh),
			RequiredLow:          v.GetInt(keyRequiredLow),
		},
		Policy: PolicyConfig{
			EmergencyWindow:  v.GetDuration(keyEmergencyWindow),
			ApologyMessage:   v.GetString(keyApologyMessage),
			StoreTimeout:     v.GetDuration(keyStoreTimeout),
			HistoryRetention: v.GetDuration(keyHistoryRetention),
		},
		Messaging: MessagingConfig{
			Command:       v.GetStringSlice(keyMessagingCommand),
			OutboxPath:    v.GetString(keyOutboxPath),
			SendTimeout:   v.GetDuration(keySendTimeout),
			RatePerMinute: v.GetFloat64(keyRatePerMinute),
			Burst:         v.GetInt(keyBurst),
		},
		Location: LocationConfig{
			MinInterval:       v.GetDuration(keyMinInterval),
			RequestedInterval: v.GetDuration(keyRequestedInterval),
		},
		Presentation: PresentationConfig{
			DefaultHandler: v.GetBool(keyDefaultHandler),
		},
		LogLevel: v.GetString(keyLogLevel),
	}

	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, baseDir string) {
	v.SetDefault(keyStoreBackend, BackendSQLite)
	v.SetDefault(keyStorePath, filepath.Join(baseDir, "state"))
	v.SetDefault(keyStoreBusyTimeout, defaultBusyTimeout)
	v.SetDefault(keyWatchPollInterval, defaultWatchPoll)
	v.SetDefault(keySpeedThreshold, domain.DefaultSpeedThresholdMPS)
	v.SetDefault(keyRequiredHigh, domain.DefaultRequiredHigh)
	v.SetDefault(keyRequiredLow, domain.DefaultRequiredLow)
	v.SetDefault(keyEmergencyWindow, domain.DefaultEmergencyWindow)
	v.SetDefault(keyApologyMessage, domain.DefaultApologyMessage)
	v.SetDefault(keyStoreTimeout, defaultStoreTimeout)
	v.SetDefault(keyHistoryRetention, defaultRetention)
	v.SetDefault(keyMessagingCommand, []string{})
	v.SetDefault(keyOutboxPath, filepath.Join(baseDir, "outbox.toml"))
	v.SetDefault(keySendTimeout, defaultSendTimeout)
	v.SetDefault(keyRatePerMinute, defaultRatePerMinute)
	v.SetDefault(keyBurst, defaultMessagingBurst)
	v.SetDefault(keyMinInterval, defaultMinInterval)
	v.SetDefault(keyRequestedInterval, defaultRequested)
	v.SetDefault(keyDefaultHandler, false)
	v.SetDefault(keyLogLevel, "info")
}

func (c *Config) normalize() error {
	switch c.Store.Backend {
	case BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("unsupported store backend %q", c.Store.Backend)
	}

	if strings.TrimSpace(c.Store.Path) == "" {
		return errors.New("store path is empty")
	}
	absPath, err := filepath.Abs(c.Store.Path)
	if err != nil {
		return fmt.Errorf("resolve store path: %w", err)
	}
	c.Store.Path = filepath.Clean(absPath)

	if err := c.Classifier.Validate(); err != nil {
		return fmt.Errorf("classifier config: %w", err)
	}

	if c.Policy.EmergencyWindow <= 0 {
		return fmt.Errorf("emergency window must be positive, got %s", c.Policy.EmergencyWindow)
	}
	if c.Policy.StoreTimeout <= 0 {
		c.Policy.StoreTimeout = defaultStoreTimeout
	}
	if c.Policy.HistoryRetention < c.Policy.EmergencyWindow {
		c.Policy.HistoryRetention = c.Policy.EmergencyWindow
	}
	if strings.TrimSpace(c.Policy.ApologyMessage) == "" {
		c.Policy.ApologyMessage = domain.DefaultApologyMessage
	}

	if c.Messaging.SendTimeout <= 0 {
		c.Messaging.SendTimeout = defaultSendTimeout
	}
	if c.Messaging.Burst < 1 {
		c.Messaging.Burst = 1
	}

	if c.Location.MinInterval < 0 {
		c.Location.MinInterval = 0
	}
	if c.Location.RequestedInterval < c.Location.MinInterval {
		c.Location.RequestedInterval = c.Location.MinInterval
	}

	if c.Store.WatchPollInterval <= 0 {
		c.Store.WatchPollInterval = defaultWatchPoll
	}

	return nil
}

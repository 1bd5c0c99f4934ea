package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"  validate:"required"`
	Session SessionConfig `mapstructure:"session" validate:"required"`
	Limits  LimitsConfig  `mapstructure:"limits"  validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port"             validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level"        validate:"required,oneof=debug info warn error"`
	LogFormat       string        `mapstructure:"log_format"       validate:"required,oneof=json text"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"     validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"    validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// SessionConfig controls how browser sessions and their decks are kept.
type SessionConfig struct {
	CookieName    string        `mapstructure:"cookie_name"    validate:"required"`
	CookieSecure  bool          `mapstructure:"cookie_secure"`
	IdleTimeout   time.Duration `mapstructure:"idle_timeout"   validate:"gte=1m"`
	MaxSessions   int           `mapstructure:"max_sessions"   validate:"gte=1"`
	SweepSchedule string        `mapstructure:"sweep_schedule" validate:"required"`
}

// LimitsConfig bounds request sizes and rates.
type LimitsConfig struct {
	MaxTextBytes      int     `mapstructure:"max_text_bytes"      validate:"gte=1"`
	MaxBodyBytes      int     `mapstructure:"max_body_bytes"      validate:"gtefield=MaxTextBytes"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second" validate:"gt=0"`
	Burst             int     `mapstructure:"burst"               validate:"gte=1"`
}

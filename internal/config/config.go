// Package config loads and validates this service's TOML configuration.
//
// The file named by the CONFIG_FILE environment variable is read once, at
// startup. There is no hot-reload path: a bad value fails the process
// before it binds a listener rather than surfacing later mid-request.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml"

	"rodan/internal/auth"
)

const (
	defaultSegmentSize  = 1000
	defaultMaxSegments  = 10
	defaultRotation     = 12 * time.Hour
	defaultBroadcastCap = 100
)

// SecurityConfig holds the HMAC secret used to validate bearer JWTs.
type SecurityConfig struct {
	JWTSecret string `toml:"jwt-secret"`
}

// ServerConfig controls the HTTP bind address, CORS policy, and JWT secret.
type ServerConfig struct {
	Host        string         `toml:"host"`
	Port        int            `toml:"port"`
	Production  bool           `toml:"production"`
	CORSURL     []string       `toml:"cors-url"`
	Security    SecurityConfig `toml:"security"`
}

// HTTPEventsConfig configures the POST ingestion endpoint.
type HTTPEventsConfig struct {
	Endpoint string `toml:"endpoint"`
	APIKey   string `toml:"api-key"`

	// HashedAPIKey is computed from APIKey during Load and is the only form
	// retained afterward; APIKey is cleared once the hash is computed.
	HashedAPIKey string `toml:"-"`
}

// EventsConfig selects the transport used to receive events. Only HTTP is
// implemented; the field is a pointer so "not configured" is distinguishable
// from a zero-value HTTPEventsConfig.
type EventsConfig struct {
	HTTP *HTTPEventsConfig `toml:"http"`
}

// AppConfig controls ingestion, durable logging, and retention behavior.
type AppConfig struct {
	AuthRequired     bool          `toml:"auth-required"`
	Events           *EventsConfig `toml:"events"`
	EventLogging     bool          `toml:"event-logging"`
	EventLogFile     string        `toml:"event-log-file"`
	EventLogRotation string        `toml:"event-log-rotation"`
	EventSegmentSize int           `toml:"event-segment-size"`
	EventMaxSegments int           `toml:"event-max-segments"`

	// EventLogRotationDuration is EventLogRotation parsed by Load, or the
	// default rotation period if unset.
	EventLogRotationDuration time.Duration `toml:"-"`
}

// Config is the full decoded and validated configuration.
type Config struct {
	Server ServerConfig `toml:"server"`
	App    AppConfig    `toml:"app"`
}

// Load reads the TOML file at path, applies defaults, validates it, and
// hashes the configured API key (discarding the raw value). It returns an
// error for any I/O, decode, or validation failure; all are treated as
// fatal by the caller.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	if cfg.App.Events != nil && cfg.App.Events.HTTP != nil && cfg.App.Events.HTTP.APIKey != "" {
		http := cfg.App.Events.HTTP
		http.HashedAPIKey = auth.HashAPIKey(http.APIKey)
		http.APIKey = ""
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.EventSegmentSize == 0 {
		cfg.App.EventSegmentSize = defaultSegmentSize
	}
	if cfg.App.EventMaxSegments == 0 {
		cfg.App.EventMaxSegments = defaultMaxSegments
	}
	cfg.App.EventLogRotationDuration = defaultRotation
	if cfg.App.EventLogRotation != "" {
		if d, err := time.ParseDuration(cfg.App.EventLogRotation); err == nil {
			cfg.App.EventLogRotationDuration = d
		}
	}
}

// BroadcastCapacity returns the fan-out ring capacity. There is no TOML key
// for it; it is fixed at the built-in default.
func (c *Config) BroadcastCapacity() int {
	return defaultBroadcastCap
}

func (c *Config) validate() error {
	if err := c.Server.validate(); err != nil {
		return err
	}
	if err := c.App.validate(); err != nil {
		return err
	}
	return nil
}

func (s *ServerConfig) validate() error {
	if strings.TrimSpace(s.Host) == "" {
		return fmt.Errorf("server.host cannot be empty")
	}
	if s.Port <= 0 {
		return fmt.Errorf("server.port must be greater than 0")
	}
	if len(s.CORSURL) == 0 {
		return fmt.Errorf("server.cors-url must contain at least one origin")
	}
	if s.Production && len(s.CORSURL) == 1 && s.CORSURL[0] == "*" {
		return fmt.Errorf("server.cors-url cannot be a wildcard when server.production is true")
	}
	return s.Security.validate()
}

func (s *SecurityConfig) validate() error {
	if strings.TrimSpace(s.JWTSecret) == "" {
		return fmt.Errorf("server.security.jwt-secret cannot be empty")
	}
	if len(s.JWTSecret) < 8 {
		return fmt.Errorf("server.security.jwt-secret must be at least 8 characters")
	}
	return nil
}

func (a *AppConfig) validate() error {
	if a.Events != nil {
		if err := a.Events.validate(); err != nil {
			return err
		}
	}
	if a.EventLogging && strings.TrimSpace(a.EventLogFile) == "" {
		return fmt.Errorf("app: event-logging is enabled but no log file is given")
	}
	if a.EventLogRotation != "" {
		if _, err := time.ParseDuration(a.EventLogRotation); err != nil {
			return fmt.Errorf("app: event-log-rotation is not a valid duration: %w", err)
		}
	}
	if a.EventSegmentSize <= 0 {
		return fmt.Errorf("app: event-segment-size must be greater than 0")
	}
	if a.EventMaxSegments <= 0 {
		return fmt.Errorf("app: event-max-segments must be greater than 0")
	}
	return nil
}

func (e *EventsConfig) validate() error {
	if e.HTTP == nil {
		return fmt.Errorf("events: at least one event type (http) must be configured")
	}
	return e.HTTP.validate()
}

func (h *HTTPEventsConfig) validate() error {
	if strings.TrimSpace(h.Endpoint) == "" {
		return fmt.Errorf("events.http.endpoint cannot be empty")
	}
	if h.Endpoint[0] != '/' {
		return fmt.Errorf("events.http.endpoint must start with '/'")
	}
	if h.APIKey != "" && len(h.APIKey) < 16 {
		return fmt.Errorf("events.http.api-key must be at least 16 characters")
	}
	return nil
}


// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config loads runtime settings from the environment with caarlos0/env.

Loading fails fast: missing required keys and inconsistent relay settings
stop the process before any connection is opened.
*/
package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Broadcast modes for ticket-message fan-out.
const (
	// BroadcastLocal dispatches ticket messages directly into the in-process hub.
	BroadcastLocal = "local"

	// BroadcastRedis publishes ticket messages on a Redis channel that every
	// API process subscribes to.
	BroadcastRedis = "redis"
)

// Deployment environments.
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Config is the API server configuration.
type Config struct {
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	DatabaseURL   string `env:"DATABASE_URL,required"`
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`
	RedisURL      string `env:"REDIS_URL,required"`

	// RS256 key pair for access tokens.
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH,required"`
	JWTPubKeyPath  string `env:"JWT_PUBLIC_KEY_PATH,required"`

	// ExtraOrigins are browser origins accepted besides the product domain.
	ExtraOrigins []string `env:"EXTRA_ORIGINS" envSeparator:","`

	Realtime RealtimeConfig `envPrefix:"WS_"`
}

// RealtimeConfig tunes the websocket relay and its heartbeat.
type RealtimeConfig struct {
	PingInterval   time.Duration `env:"PING_INTERVAL"    envDefault:"25s"`
	PongWait       time.Duration `env:"PONG_WAIT"        envDefault:"60s"`
	WriteWait      time.Duration `env:"WRITE_WAIT"       envDefault:"10s"`
	MaxMessageSize int64         `env:"MAX_MESSAGE_SIZE" envDefault:"65536"`
	SendBuffer     int           `env:"SEND_BUFFER"      envDefault:"256"`

	// Inbound frames per second allowed for a single connection.
	MessageRate  float64 `env:"MESSAGE_RATE"  envDefault:"20"`
	MessageBurst int     `env:"MESSAGE_BURST" envDefault:"40"`

	// AllowRawIdentifier accepts a bare account id in the auth frame
	// instead of a signed token. Only meant for trusted internal clients.
	AllowRawIdentifier bool `env:"ALLOW_RAW_IDENTIFIER" envDefault:"false"`

	Broadcast    string `env:"BROADCAST"     envDefault:"local"`
	RedisChannel string `env:"REDIS_CHANNEL" envDefault:"support:ticket_messages"`
}

// Load parses and validates the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks constraints struct tags cannot express.
func (c *Config) Validate() error {
	if !slices.Contains([]string{EnvDevelopment, EnvStaging, EnvProduction}, c.Environment) {
		return fmt.Errorf("config: ENVIRONMENT must be development, staging or production, got %q", c.Environment)
	}

	relay := c.Realtime
	if relay.Broadcast != BroadcastLocal && relay.Broadcast != BroadcastRedis {
		return fmt.Errorf("config: WS_BROADCAST must be %q or %q, got %q", BroadcastLocal, BroadcastRedis, relay.Broadcast)
	}
	if relay.PongWait <= relay.PingInterval {
		return fmt.Errorf("config: WS_PONG_WAIT (%s) must exceed WS_PING_INTERVAL (%s)", relay.PongWait, relay.PingInterval)
	}
	if relay.SendBuffer < 1 {
		return fmt.Errorf("config: WS_SEND_BUFFER must be positive, got %d", relay.SendBuffer)
	}
	if relay.MessageRate <= 0 || relay.MessageBurst < 1 {
		return fmt.Errorf("config: WS_MESSAGE_RATE and WS_MESSAGE_BURST must be positive")
	}
	return nil
}

// IsDevelopment enables the permissive origin policy.
func (c *Config) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

// AllowedOrigins returns ExtraOrigins without blanks or surrounding spaces.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range c.ExtraOrigins {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

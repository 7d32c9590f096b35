// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, Hasher) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// DefaultSessionDays is used when AUTH_EXPIRATION_DAYS is unset or not positive.
const DefaultSessionDays = 7

// # Configuration Schema

// Config holds all runtime configuration for the Motolink API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Store (Redis) for invitation tokens
	RedisURL string `env:"REDIS_URL,required"`

	// AuthSecret peppers password hashes and signs provisioning tokens.
	AuthSecret string `env:"AUTH_SECRET,required"`

	// AuthExpirationDays is the session lifetime in days.
	AuthExpirationDays int `env:"AUTH_EXPIRATION_DAYS" envDefault:"7"`

	// DefaultBranchID is the fallback selection for users without branches.
	DefaultBranchID string `env:"DEFAULT_BRANCH_ID"`

	// Message broker (RabbitMQ). Empty disables invitation publishing.
	AMQPURL string `env:"AMQP_URL"`

	// AppBaseURL is used to build links sent in invitations.
	AppBaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:3000"`

	// FrontendURL receives every non-API path after the route guard. Optional.
	FrontendURL string `env:"FRONTEND_URL"`

	// TrustedProxies lists the addresses or CIDR ranges whose forwarding
	// headers are honoured. Empty trusts none.
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`

	// Cross-Origin Resource Sharing
	AllowedOriginSuffix string `env:"ALLOWED_ORIGIN_SUFFIX" envDefault:"motolink.com.br"`
}

// MailerConfig holds the settings of the invitation mail worker.
type MailerConfig struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Debug       bool   `env:"DEBUG"       envDefault:"false"`

	AMQPURL string `env:"AMQP_URL,required"`

	SMTPHost     string        `env:"SMTP_HOST,required"`
	SMTPPort     int           `env:"SMTP_PORT"         envDefault:"465"`
	SMTPUsername string        `env:"SMTP_USERNAME,required"`
	SMTPPassword string        `env:"SMTP_PASSWORD,required"`
	SMTPFrom     string        `env:"SMTP_FROM"`
	DialTimeout  time.Duration `env:"SMTP_DIAL_TIMEOUT" envDefault:"10s"`
}

// SeedConfig holds the settings of the seed command.
type SeedConfig struct {
	DatabaseURL   string `env:"DATABASE_URL"`
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`
	AuthSecret    string `env:"AUTH_SECRET,required"`

	// The administrator is skipped when SEED_ADMIN_PASSWORD is empty.
	AdminName     string `env:"SEED_ADMIN_NAME"     envDefault:"Administrador"`
	AdminEmail    string `env:"SEED_ADMIN_EMAIL"    envDefault:"admin@motolink.com.br"`
	AdminPassword string `env:"SEED_ADMIN_PASSWORD"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	// env treats an empty value as present, the pepper must not be blank.
	if cfg.AuthSecret == "" {
		return nil, fmt.Errorf("config: AUTH_SECRET must not be empty")
	}

	return cfg, nil
}

// LoadMailer parses environment variables into a [MailerConfig] struct.
func LoadMailer() (*MailerConfig, error) {
	cfg := &MailerConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse mailer environment: %w", err)
	}

	if cfg.SMTPFrom == "" {
		cfg.SMTPFrom = cfg.SMTPUsername
	}

	return cfg, nil
}

// LoadSeed parses environment variables into a [SeedConfig] struct.
// DATABASE_URL is checked by the seed itself, printing a service token
// needs only the secret.
func LoadSeed() (*SeedConfig, error) {
	cfg := &SeedConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse seed environment: %w", err)
	}

	if cfg.AuthSecret == "" {
		return nil, fmt.Errorf("config: AUTH_SECRET must not be empty")
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// SecureCookies reports whether cookies carry the Secure attribute. Every
// environment except local development does, staging included.
func (c *Config) SecureCookies() bool {
	return !c.IsDevelopment()
}

// SessionTTL converts AuthExpirationDays into a duration.
func (c *Config) SessionTTL() time.Duration {
	days := c.AuthExpirationDays
	if days <= 0 {
		days = DefaultSessionDays
	}
	return time.Duration(days) * 24 * time.Hour
}

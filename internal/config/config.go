package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth" validate:"required"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port         int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel     string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ClientOrigin string `mapstructure:"client_origin" validate:"required,url"`
	// TrustProxy takes the client address from True-Client-IP, X-Real-IP
	// or X-Forwarded-For. Only enable it behind a proxy that sets them.
	TrustProxy bool `mapstructure:"trust_proxy"`
}

// AuthConfig contains all authentication settings.
type AuthConfig struct {
	JWTSecret     string        `mapstructure:"jwt_secret" validate:"required"`
	TokenLifetime time.Duration `mapstructure:"token_lifetime" validate:"required,gt=0"`
	BcryptCost    int           `mapstructure:"bcrypt_cost" validate:"required,gte=4,lte=31"`
}

// RateLimitConfig bounds how often a single client may hit the
// register and login endpoints.
type RateLimitConfig struct {
	Requests int           `mapstructure:"requests" validate:"required,gt=0"`
	Window   time.Duration `mapstructure:"window" validate:"required,gt=0"`
}

// DatabaseConfig selects the storage backend. An empty URL means the
// in-memory store is used.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// UsePostgres reports whether a database URL was configured.
func (c DatabaseConfig) UsePostgres() bool {
	return c.URL != ""
}

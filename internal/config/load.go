package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Default values applied when the corresponding variable is unset.
const (
	DefaultPort           = 3000
	DefaultLogLevel       = "info"
	DefaultClientOrigin   = "http://localhost:5173"
	DefaultTokenLifetime  = "1h"
	DefaultBcryptCost     = 10
	DefaultAuthRateLimit  = 10
	DefaultAuthRateWindow = "15m"
)

// DefaultEnvFile is the dotenv file Load reads when present.
const DefaultEnvFile = ".env"

// ErrMissingJWTSecret is returned when no signing secret is configured.
var ErrMissingJWTSecret = errors.New("JWT_SECRET is not set")

// environment variable names keyed by the viper key they populate
var envBindings = map[string]string{
	"port":             "PORT",
	"log_level":        "LOG_LEVEL",
	"client_origin":    "CLIENT_ORIGIN",
	"trust_proxy":      "TRUST_PROXY",
	"jwt_secret":       "JWT_SECRET",
	"token_lifetime":   "TOKEN_LIFETIME",
	"bcrypt_cost":      "BCRYPT_COST",
	"auth_rate_limit":  "AUTH_RATE_LIMIT",
	"auth_rate_window": "AUTH_RATE_WINDOW",
	"database_url":     "DATABASE_URL",
}

// Load configuration from environment variables and an optional .env file in
// the working directory. Environment variables take precedence over values
// from the file. Returns a populated Config or an error if loading or
// validation fails.
func Load() (*Config, error) {
	return LoadWithFile(DefaultEnvFile)
}

// LoadWithFile is like Load but reads the dotenv file at path. A missing file
// is not an error.
func LoadWithFile(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("port", DefaultPort)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("client_origin", DefaultClientOrigin)
	v.SetDefault("trust_proxy", false)
	v.SetDefault("token_lifetime", DefaultTokenLifetime)
	v.SetDefault("bcrypt_cost", DefaultBcryptCost)
	v.SetDefault("auth_rate_limit", DefaultAuthRateLimit)
	v.SetDefault("auth_rate_window", DefaultAuthRateWindow)
	v.SetDefault("database_url", "")
	v.SetDefault("jwt_secret", "")

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			// viper folds dotenv keys to lower case, so PORT in the file
			// lands on the same key as the PORT binding above.
			v.SetConfigFile(path)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetInt("port"),
			LogLevel:     v.GetString("log_level"),
			ClientOrigin: v.GetString("client_origin"),
			TrustProxy:   v.GetBool("trust_proxy"),
		},
		Auth: AuthConfig{
			JWTSecret:     v.GetString("jwt_secret"),
			TokenLifetime: v.GetDuration("token_lifetime"),
			BcryptCost:    v.GetInt("bcrypt_cost"),
		},
		RateLimit: RateLimitConfig{
			Requests: v.GetInt("auth_rate_limit"),
			Window:   v.GetDuration("auth_rate_window"),
		},
		Database: DatabaseConfig{
			URL: v.GetString("database_url"),
		},
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

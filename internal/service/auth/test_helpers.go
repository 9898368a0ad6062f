package auth

import (
	"time"

	"github.com/phrazzld/todo-api/internal/config"
)

// NewTestJWTService creates a JWT service with a custom clock, so tests can
// issue tokens at one instant and validate them at another.
func NewTestJWTService(secret string, lifetime time.Duration, timeFunc func() time.Time) JWTService {
	return &hmacJWTService{
		signingKey:    []byte(secret),
		tokenLifetime: lifetime,
		timeFunc:      timeFunc,
	}
}

// DefaultTestAuthConfig returns an AuthConfig suitable for tests: a fixed
// secret, a one hour lifetime and the cheapest bcrypt cost.
func DefaultTestAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:     "test-jwt-secret",
		TokenLifetime: time.Hour,
		BcryptCost:    minCost,
	}
}

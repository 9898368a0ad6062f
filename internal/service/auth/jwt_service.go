package auth

import (
	"context"
	"time"
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed token carrying the user's email.
	GenerateToken(ctx context.Context, email string) (string, error)

	// ValidateToken verifies signature, algorithm and expiry, and returns the
	// claims of a valid token. Failures are ErrInvalidToken or ErrExpiredToken.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the validated contents of an access token.
type Claims struct {
	// Email identifies the user the token was issued for.
	Email string `json:"email"`

	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}

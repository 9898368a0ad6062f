package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/service/auth"
	"github.com/phrazzld/todo-api/internal/store"
)

// AuthService registers users, logs them in and turns bearer tokens back
// into identities.
type AuthService interface {
	// Register validates the credentials and stores a new user with a hashed password.
	Register(ctx context.Context, email, password string) error

	// Login verifies the credentials and returns a signed access token.
	Login(ctx context.Context, email, password string) (string, error)

	// Authenticate resolves the raw Authorization header value into an identity.
	Authenticate(ctx context.Context, authorizationHeader string) (domain.Identity, error)

	// CurrentUser returns the public view of an authenticated identity.
	CurrentUser(ctx context.Context, identity domain.Identity) (domain.Identity, error)
}

type authService struct {
	users    store.UserStore
	hasher   auth.PasswordHasher
	verifier auth.PasswordVerifier
	tokens   auth.JWTService
	logger   *slog.Logger

	// dummyHash is compared against when the email is unknown, so a failed
	// login costs the same whether or not the account exists.
	dummyHash string
}

var _ AuthService = (*authService)(nil)

// NewAuthService creates an AuthService.
func NewAuthService(
	users store.UserStore,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	tokens auth.JWTService,
	logger *slog.Logger,
) (AuthService, error) {
	if users == nil || hasher == nil || verifier == nil || tokens == nil {
		return nil, errors.New("auth service: all dependencies are required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	dummyHash, err := hasher.Hash("not-a-real-password")
	if err != nil {
		return nil, fmt.Errorf("auth service: failed to prepare dummy hash: %w", err)
	}

	return &authService{
		users:     users,
		hasher:    hasher,
		verifier:  verifier,
		tokens:    tokens,
		logger:    logger.With("component", "auth_service"),
		dummyHash: dummyHash,
	}, nil
}

func (s *authService) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, s.logger)
}

// Register creates a user. Validation failures come back as domain
// validation errors, a taken email as ErrUserExists and anything else as
// ErrRegistrationFailed.
func (s *authService) Register(ctx context.Context, email, password string) error {
	log := s.log(ctx)

	user, err := domain.NewUser(email, password)
	if err != nil {
		log.Debug("registration rejected", "reason", err)
		return err
	}

	_, err = s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		log.Debug("attempted to register existing email")
		return ErrUserExists
	case !errors.Is(err, store.ErrUserNotFound):
		log.Error("failed to look up user during registration", "error", err)
		return fmt.Errorf("%w: %w", ErrRegistrationFailed, err)
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		log.Error("failed to hash password", "error", err)
		return fmt.Errorf("%w: %w", ErrRegistrationFailed, err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			// Lost a race with a concurrent registration.
			log.Debug("attempted to register existing email")
			return ErrUserExists
		}
		log.Error("failed to save user", "error", err)
		return fmt.Errorf("%w: %w", ErrRegistrationFailed, err)
	}

	log.Info("user registered")
	return nil
}

// Login returns a token for valid credentials. Unknown emails and wrong
// passwords both yield ErrInvalidCredentials.
func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	log := s.log(ctx)

	if err := domain.ValidateCredentials(email, password); err != nil {
		return "", err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			_ = s.verifier.Compare(s.dummyHash, password)
			log.Debug("login failed: unknown email")
			return "", ErrInvalidCredentials
		}
		log.Error("failed to look up user during login", "error", err)
		return "", NewServiceError("auth", "login", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		log.Debug("login failed: password mismatch")
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(ctx, user.Email)
	if err != nil {
		log.Error("failed to generate token", "error", err)
		return "", NewServiceError("auth", "login", err)
	}

	log.Debug("user logged in")
	return token, nil
}

// Authenticate extracts the token that follows the first space in the
// header and validates it. The scheme word itself is not inspected.
func (s *authService) Authenticate(ctx context.Context, header string) (domain.Identity, error) {
	if header == "" {
		return domain.Identity{}, auth.ErrMissingAuthHeader
	}

	parts := strings.Split(header, " ")
	if len(parts) < 2 || parts[1] == "" {
		return domain.Identity{}, auth.ErrMissingToken
	}

	claims, err := s.tokens.ValidateToken(ctx, parts[1])
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) || errors.Is(err, auth.ErrExpiredToken) {
			return domain.Identity{}, err
		}
		return domain.Identity{}, fmt.Errorf("%w: %w", auth.ErrInvalidToken, err)
	}

	return domain.Identity{Email: claims.Email}, nil
}

// CurrentUser echoes the identity back; tokens are self-contained so no
// store lookup is needed.
func (s *authService) CurrentUser(_ context.Context, identity domain.Identity) (domain.Identity, error) {
	if identity.IsZero() {
		return domain.Identity{}, ErrInvalidIdentity
	}
	return identity, nil
}

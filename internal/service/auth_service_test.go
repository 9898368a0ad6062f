package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/mocks"
	"github.com/phrazzld/todo-api/internal/platform/memory"
	"github.com/phrazzld/todo-api/internal/service"
	"github.com/phrazzld/todo-api/internal/service/auth"
	"github.com/phrazzld/todo-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const validPassword = "Passw0rd!"

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newAuthService wires the service with real bcrypt and JWT primitives over
// the memory store.
func newAuthService(t *testing.T) (service.AuthService, auth.JWTService) {
	t.Helper()

	hasher, err := auth.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)
	tokens := auth.NewTestJWTService("test-secret", time.Hour, time.Now)

	svc, err := service.NewAuthService(memory.NewUserStore(), hasher, hasher, tokens, quietLogger())
	require.NoError(t, err)
	return svc, tokens
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, tokens := newAuthService(t)

	require.NoError(t, svc.Register(ctx, "a@x.com", validPassword))

	token, err := svc.Login(ctx, "a@x.com", validPassword)
	require.NoError(t, err)

	claims, err := tokens.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Email)

	identity, err := svc.Authenticate(ctx, "Bearer "+token)
	require.NoError(t, err)
	assert.Equal(t, domain.Identity{Email: "a@x.com"}, identity)

	me, err := svc.CurrentUser(ctx, identity)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", me.Email)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newAuthService(t)
	require.NoError(t, svc.Register(ctx, "taken@x.com", validPassword))

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"empty email", "", validPassword, domain.ErrCredentialsRequired},
		{"empty password", "a@x.com", "", domain.ErrCredentialsRequired},
		{"bad email", "not-an-email", validPassword, domain.ErrInvalidEmail},
		{"weak password", "a@x.com", "abc", domain.ErrWeakPassword},
		{"no symbol", "a@x.com", "Passw0rd", domain.ErrWeakPassword},
		{"duplicate", "taken@x.com", validPassword, service.ErrUserExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Register(ctx, tt.email, tt.password)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("different case email is a different user", func(t *testing.T) {
		assert.NoError(t, svc.Register(ctx, "Taken@x.com", validPassword))
	})
}

func TestAuthService_LoginFailuresAreIndistinguishable(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newAuthService(t)
	require.NoError(t, svc.Register(ctx, "a@x.com", validPassword))

	_, errUnknown := svc.Login(ctx, "nobody@x.com", validPassword)
	_, errWrong := svc.Login(ctx, "a@x.com", "Wr0ng!pass")

	assert.ErrorIs(t, errUnknown, service.ErrInvalidCredentials)
	assert.ErrorIs(t, errWrong, service.ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrong.Error())

	_, err := svc.Login(ctx, "", "")
	assert.ErrorIs(t, err, domain.ErrCredentialsRequired)
}

func TestAuthService_Authenticate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, tokens := newAuthService(t)

	valid, err := tokens.GenerateToken(ctx, "a@x.com")
	require.NoError(t, err)

	foreign, err := auth.NewTestJWTService("other-secret", time.Hour, time.Now).GenerateToken(ctx, "a@x.com")
	require.NoError(t, err)

	past := time.Now().Add(-2 * time.Hour)
	expired, err := auth.NewTestJWTService("test-secret", time.Hour, func() time.Time { return past }).
		GenerateToken(ctx, "a@x.com")
	require.NoError(t, err)

	tests := []struct {
		name      string
		header    string
		wantErr   error
		wantEmail string
	}{
		{"missing header", "", auth.ErrMissingAuthHeader, ""},
		{"scheme only", "Bearer", auth.ErrMissingToken, ""},
		{"scheme and space", "Bearer ", auth.ErrMissingToken, ""},
		{"garbage token", "Bearer garbage", auth.ErrInvalidToken, ""},
		{"foreign secret", "Bearer " + foreign, auth.ErrInvalidToken, ""},
		{"expired", "Bearer " + expired, auth.ErrExpiredToken, ""},
		{"valid", "Bearer " + valid, nil, "a@x.com"},
		{"scheme is not inspected", "Token " + valid, nil, "a@x.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, err := svc.Authenticate(ctx, tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, identity.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantEmail, identity.Email)
		})
	}
}

func TestAuthService_AuthErrorCategories(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, auth.ErrMissingAuthHeader, domain.ErrUnauthorized)
	assert.ErrorIs(t, auth.ErrMissingToken, domain.ErrUnauthorized)
	assert.ErrorIs(t, auth.ErrInvalidToken, domain.ErrForbidden)
	assert.ErrorIs(t, auth.ErrExpiredToken, domain.ErrForbidden)
}

func TestAuthService_StoreFailures(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	boom := errors.New("connection reset")

	newSvc := func(users store.UserStore, tokens auth.JWTService) service.AuthService {
		svc, err := service.NewAuthService(users, &mocks.MockPasswordVerifier{ShouldSucceed: true},
			&mocks.MockPasswordVerifier{ShouldSucceed: true}, tokens, quietLogger())
		require.NoError(t, err)
		return svc
	}

	t.Run("lookup failure during register", func(t *testing.T) {
		users := new(mocks.UserStore)
		users.On("GetByEmail", mock.Anything, "a@x.com").Return(nil, boom)

		err := newSvc(users, &mocks.MockJWTService{}).Register(ctx, "a@x.com", validPassword)
		assert.ErrorIs(t, err, service.ErrRegistrationFailed)
		assert.ErrorIs(t, err, boom)
		users.AssertExpectations(t)
	})

	t.Run("insert race surfaces as conflict", func(t *testing.T) {
		users := new(mocks.UserStore)
		users.On("GetByEmail", mock.Anything, "a@x.com").Return(nil, store.ErrUserNotFound)
		users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == "a@x.com" && u.HashedPassword == "hashed:"+validPassword && u.Password == ""
		})).Return(store.ErrEmailExists)

		err := newSvc(users, &mocks.MockJWTService{}).Register(ctx, "a@x.com", validPassword)
		assert.ErrorIs(t, err, service.ErrUserExists)
		users.AssertExpectations(t)
	})

	t.Run("lookup failure during login is internal", func(t *testing.T) {
		users := new(mocks.UserStore)
		users.On("GetByEmail", mock.Anything, "a@x.com").Return(nil, boom)

		_, err := newSvc(users, &mocks.MockJWTService{}).Login(ctx, "a@x.com", validPassword)
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("token signing failure", func(t *testing.T) {
		users := new(mocks.UserStore)
		users.On("GetByEmail", mock.Anything, "a@x.com").
			Return(&domain.User{Email: "a@x.com", HashedPassword: "h"}, nil)

		_, err := newSvc(users, &mocks.MockJWTService{Err: boom}).Login(ctx, "a@x.com", validPassword)
		assert.ErrorIs(t, err, boom)
	})
}

func TestAuthService_UnknownEmailStillComparesPassword(t *testing.T) {
	t.Parallel()
	users := new(mocks.UserStore)
	users.On("GetByEmail", mock.Anything, "nobody@x.com").Return(nil, store.ErrUserNotFound)
	verifier := &mocks.MockPasswordVerifier{}

	svc, err := service.NewAuthService(users, verifier, verifier, &mocks.MockJWTService{}, quietLogger())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "nobody@x.com", validPassword)
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	assert.Equal(t, 1, verifier.CompareCallCount)
	assert.Equal(t, validPassword, verifier.CompareCalledWith.Password)
}

func TestNewAuthService_RequiresDependencies(t *testing.T) {
	t.Parallel()
	_, err := service.NewAuthService(nil, nil, nil, nil, nil)
	assert.Error(t, err)
}

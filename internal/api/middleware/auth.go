package middleware

import (
	"errors"
	"net/http"

	"github.com/phrazzld/todo-api/internal/api"
	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/service"
)

// AuthMiddleware resolves the Authorization header into an identity.
type AuthMiddleware struct {
	authService service.AuthService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(authService service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
	}
}

// Authenticate validates the bearer token and adds the identity to the
// request context. A missing header or token is a 401; a token that fails
// verification is a 403 and is logged at WARN.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := m.authService.Authenticate(r.Context(), r.Header.Get("Authorization"))
		if err != nil {
			var opts []shared.ResponseOption
			if errors.Is(err, domain.ErrForbidden) {
				opts = append(opts, shared.WithElevatedLogLevel())
			}
			api.HandleAPIError(w, r, err, opts...)
			return
		}

		ctx := shared.WithIdentity(r.Context(), identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}


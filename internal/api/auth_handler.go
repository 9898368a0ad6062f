package api

import (
	"net/http"

	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/service"
)

// AuthHandler handles registration, login and the current-user endpoint.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register handles POST /api/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleAPIError(w, r, ErrInvalidRequestFormat)
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		HandleAPIError(w, r, domain.ErrCredentialsRequired)
		return
	}

	if err := h.authService.Register(r.Context(), req.Email, req.Password); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, MessageResponse{
		Message: "Registered successfully",
	})
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleAPIError(w, r, ErrInvalidRequestFormat)
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		HandleAPIError(w, r, domain.ErrCredentialsRequired)
		return
	}

	token, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, LoginResponse{Token: token})
}

// Me handles GET /api/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	current, err := h.authService.CurrentUser(r.Context(), identity)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MeResponse{Email: current.Email})
}

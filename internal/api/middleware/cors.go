package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows the browser client at origin to call the API with a bearer
// token. An empty origin disables cross-origin access.
func CORS(origin string) func(http.Handler) http.Handler {
	allowed := []string{}
	if origin != "" {
		allowed = append(allowed, origin)
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   allowed,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{TraceIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	})
}

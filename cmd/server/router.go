package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/todo-api/internal/api"
	apiMiddleware "github.com/phrazzld/todo-api/internal/api/middleware"
	"github.com/phrazzld/todo-api/internal/api/shared"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	if app.config.Server.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(apiMiddleware.Trace(app.logger))
	r.Use(apiMiddleware.AccessLog)
	r.Use(apiMiddleware.Recover)
	r.Use(apiMiddleware.CORS(app.config.Server.ClientOrigin))

	authHandler := api.NewAuthHandler(app.authService)
	taskHandler := api.NewTaskHandler(app.taskService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.authService)

	// One limiter instance, so register and login draw on the same budget.
	authLimiter := apiMiddleware.RateLimit(
		app.config.RateLimit.Requests,
		app.config.RateLimit.Window,
		app.config.Server.TrustProxy,
	)

	r.Route("/api", func(r chi.Router) {
		r.With(authLimiter).Post("/register", authHandler.Register)
		r.With(authLimiter).Post("/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/me", authHandler.Me)

			r.Get("/tasks", taskHandler.List)
			r.Post("/tasks", taskHandler.Create)
			r.Put("/tasks/{"+api.TaskIDParam+"}", taskHandler.Update)
			r.Delete("/tasks/{"+api.TaskIDParam+"}", taskHandler.Delete)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r
}

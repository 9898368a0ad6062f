package middleware

import (
	"fmt"
	"net/http"

	"github.com/phrazzld/todo-api/internal/api/shared"
)

// Recover turns a panic in a handler into a JSON 500 response.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
				"Internal server error", fmt.Errorf("panic: %v", rec))
		}()
		next.ServeHTTP(w, r)
	})
}

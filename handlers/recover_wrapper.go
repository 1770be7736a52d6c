package handlers

import (
	"net/http"
	"runtime"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// Recover turns a panicking handler into a 500 and logs the stack.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				stack := make([]byte, 8*1024)
				stack = stack[:runtime.Stack(stack, false)]
				log.Error().
					Str("request_id", middleware.GetReqID(r.Context())).
					Str("path", r.URL.Path).
					Interface("panic", rec).
					Bytes("stack", stack).
					Msg("panic recovered")
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
		}()

		next.ServeHTTP(w, r)
	})
}


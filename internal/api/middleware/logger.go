package middleware

import (
	"log"
	"net/http"
	"strings"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// Logger is a middleware that logs HTTP requests with the chi request ID,
// the authenticated owner (if any) and the response status.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Create a response writer wrapper to capture status code
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		owner := wrapped.owner
		if owner == "" {
			owner = "-"
		}

		// Sanitize user-supplied values to prevent log injection: strip CR/LF before logging.
		sanitize := strings.NewReplacer("\n", "", "\r", "").Replace
		//nolint:gosec // G706: method and path are sanitized above to strip newlines/carriage-returns before logging.
		log.Printf(
			"[%s] %s %s owner=%s %d %s",
			chimiddleware.GetReqID(r.Context()),
			sanitize(r.Method),
			sanitize(r.URL.Path),
			owner,
			wrapped.statusCode,
			time.Since(start),
		)
	})
}

// responseWriter wraps http.ResponseWriter to capture the status code and
// the owner resolved further down the chain.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	owner      string
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// setOwner records the owner on a wrapped writer; other writers are ignored.
func setOwner(w http.ResponseWriter, ownerID string) {
	if rw, ok := w.(*responseWriter); ok {
		rw.owner = ownerID
	}
}

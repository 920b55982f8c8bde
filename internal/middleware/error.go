package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	logpkg "github.com/stormnotes/suite/internal/logger"
	"github.com/stormnotes/suite/internal/request"
)

// panicResponse mirrors the API error envelope so a recovered panic looks
// like any other error to the client. RequestID lets the caller quote the
// matching server log line when reporting the failure.
type panicResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
	Timestamp string `json:"timestamp"`
}

// ErrorHandler creates panic-recovery middleware. It tags the request with
// an ID before anything downstream runs so the panic log, the access log
// line, and the client response all carry the same identifier.
func ErrorHandler(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r = r.WithContext(request.WithRequestID(r.Context(), r))

			defer func() {
				if rec := recover(); rec != nil {
					// Log panic details server-side but don't expose to client
					logger.Error("panic_recovered",
						zap.Any("error", rec),
						zap.String("request_id", request.RequestID(r.Context())),
						zap.String("path", logpkg.SanitizePath(r.URL.Path)),
						zap.String("method", r.Method),
						zap.Stack("stack"),
					)
					respondPanicJSON(w, r, logger)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// respondPanicJSON sends the generic internal-error envelope
func respondPanicJSON(w http.ResponseWriter, r *http.Request, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)

	response := panicResponse{
		Success:   false,
		Error:     "Internal Server Error",
		Message:   "An unexpected error occurred",
		RequestID: request.RequestID(r.Context()),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error("failed_to_encode_error_response",
			zap.Error(err),
			zap.String("request_id", response.RequestID),
		)
	}
}

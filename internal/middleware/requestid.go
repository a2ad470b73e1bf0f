package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"

	maxRequestIDLength = 64
)

// RequestID propagates a sane incoming X-Request-ID or mints a fresh UUID,
// installing it in the context and echoing it on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := sanitizeRequestID(r.Header.Get("X-Request-ID"))
		if rid == "" {
			rid = uuid.NewString()
		}
		ctx := context.WithValue(r.Context(), requestIDKey, rid)
		w.Header().Set("X-Request-ID", rid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sanitizeRequestID rejects ids that are oversized or carry non-printable
// bytes; those end up in log lines and response headers verbatim.
func sanitizeRequestID(rid string) string {
	if rid == "" || len(rid) > maxRequestIDLength {
		return ""
	}
	for i := 0; i < len(rid); i++ {
		if rid[i] <= 0x20 || rid[i] >= 0x7f {
			return ""
		}
	}
	return rid
}

func RequestIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// FilePath: api/middleware/api.middleware.requestid.go
package middleware

import (
	"context"
	"net/http"

	nuts "github.com/vaudience/go-nuts"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// RequestIDHeader is the header carrying the request id, generated when
// the client does not send one.
const RequestIDHeader = "X-Request-Id"

// RequestID tags every request with an id for log correlation.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = nuts.NID("req", 12)
		}
		w.Header().Set(RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID returns the request id from the context, empty when the
// request never passed through the middleware.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

package middleware

import (
	"net/http"

	"github.com/google/uuid"

	appctx "github.com/bookverse/bookverse-api/internal/pkg/context"
)

const requestIDHeader = "X-Request-Id"

// RequestID attaches a request id to the context and echoes it in the
// response header. An incoming X-Request-Id is trusted as-is.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(appctx.WithRequestID(r.Context(), id)))
	})
}

package response

import (
	"net/http"

	appctx "github.com/bookverse/bookverse-api/internal/pkg/context"
)

// RequestIDFromContext returns the request id set by the RequestID
// middleware, or "" if none.
func RequestIDFromContext(r *http.Request) string {
	if r == nil {
		return ""
	}
	id, _ := appctx.RequestID(r.Context())
	return id
}

package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bookverse/bookverse-api/internal/domain"
	appctx "github.com/bookverse/bookverse-api/internal/pkg/context"
)

func writeErr(t *testing.T, err error) (*httptest.ResponseRecorder, ErrorBody) {
	t.Helper()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	WriteError(rec, req, err)

	var body ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestWriteError_KindToStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrMissingField("email"), http.StatusBadRequest, "missing_field"},
		{domain.ErrInvalidCredentials(), http.StatusUnauthorized, "invalid_credentials"},
		{domain.ErrTokenRevoked(), http.StatusForbidden, "token_revoked"},
		{domain.ErrBookNotFound(), http.StatusNotFound, "book_not_found"},
		{domain.ErrEmailAlreadyExists(), http.StatusConflict, "email_already_exists"},
		{domain.ErrRateLimited(), http.StatusTooManyRequests, "rate_limited"},
		{domain.ErrRedisUnavailable(errors.New("x")), http.StatusServiceUnavailable, "redis_unavailable"},
		{domain.ErrInternal(errors.New("x")), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		rec, body := writeErr(t, tc.err)
		require.Equal(t, tc.status, rec.Code, "err=%v", tc.err)
		require.Equal(t, tc.code, body.Error.Code, "err=%v", tc.err)
	}
}

func TestWriteError_NonDomainError_Opaque500(t *testing.T) {
	rec, body := writeErr(t, errors.New("pq: column users.secret does not exist"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "internal_error", body.Error.Code)
	require.NotContains(t, rec.Body.String(), "pq:")
}

func TestWriteError_MetaSurvives(t *testing.T) {
	_, body := writeErr(t, domain.ErrInvalidField("rating", "must be between 1 and 5"))

	require.Equal(t, "rating", body.Error.Meta["field"])
	require.Equal(t, "must be between 1 and 5", body.Error.Meta["reason"])
}

func TestWriteError_IncludesRequestID(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req = req.WithContext(appctx.WithRequestID(req.Context(), "req-123"))

	WriteError(rec, req, domain.ErrForbidden())

	var body ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "req-123", body.Error.RequestID)
}

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bookverse/bookverse-api/internal/application/auth"
	"github.com/bookverse/bookverse-api/internal/domain"
	"github.com/bookverse/bookverse-api/internal/transport/http/dto"
	"github.com/bookverse/bookverse-api/internal/transport/http/middleware"
	"github.com/bookverse/bookverse-api/internal/transport/http/response"
	"github.com/bookverse/bookverse-api/internal/transport/http/validate"
)

type AuthHandler struct {
	svc *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Signup handles POST /api/v1/auth/signup.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	u, err := h.svc.Signup(r.Context(), auth.SignupCmd{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.Created(w, dto.NewUserView(u))
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.LoginView{
		User:   dto.NewUserView(res.User),
		Tokens: dto.NewTokenView(res.Tokens),
	})
}

// Refresh handles GET /api/v1/auth/refresh_token. The refresh token
// travels in the Authorization header like any other bearer token.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	token, err := middleware.BearerToken(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	tokens, err := h.svc.Refresh(r.Context(), token)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.NewTokenView(tokens))
}

// Logout handles GET /api/v1/auth/logout. The presented access token is
// revoked for its remaining lifetime.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, err := middleware.BearerToken(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.Logout(r.Context(), token); err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, map[string]string{"message": "logged out"})
}

// Me handles GET /api/v1/auth/me. Runs behind the token guard and role
// check, so the user is already on the context.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFrom(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenMissing())
		return
	}
	response.OK(w, dto.NewUserView(u))
}

// VerifyEmail handles GET /api/v1/auth/verify/{token}.
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		response.WriteError(w, r, domain.ErrTokenMissing())
		return
	}

	if err := h.svc.VerifyEmail(r.Context(), token); err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, map[string]string{"message": "account verified"})
}

// PasswordResetRequest handles POST /api/v1/auth/password-reset.
// Responds 200 whether or not the email exists.
func (h *AuthHandler) PasswordResetRequest(w http.ResponseWriter, r *http.Request) {
	var req dto.PasswordResetRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.PasswordResetRequest(r.Context(), req.Email); err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, map[string]string{
		"message": "if the account exists, a reset link has been sent",
	})
}

// PasswordResetConfirm handles POST /api/v1/auth/password-reset-confirm/{token}.
func (h *AuthHandler) PasswordResetConfirm(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		response.WriteError(w, r, domain.ErrTokenMissing())
		return
	}

	var req dto.PasswordResetConfirmRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.PasswordResetConfirm(r.Context(), token, req.NewPassword, req.ConfirmPassword); err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, map[string]string{"message": "password updated"})
}

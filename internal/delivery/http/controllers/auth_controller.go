package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"campusevents/internal/adapters/auth"
	h "campusevents/internal/delivery/http/helpers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/domain"
)

// LoginRequest is the request body for POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is the data of a successful login. The token itself travels only in the cookie.
type LoginResponse struct {
	User *domain.Principal `json:"user"`
}

// MeResponse is the data of GET /auth/me. User is null for anonymous callers.
type MeResponse struct {
	User *domain.Principal `json:"user"`
}

type AuthController struct {
	Logger       *slog.Logger
	Service      domain.AuthService
	SessionTTL   time.Duration
	SecureCookie bool
}

func NewAuthController(logger *slog.Logger, svc domain.AuthService, sessionTTL time.Duration, secureCookie bool) *AuthController {
	return &AuthController{
		Logger:       logger,
		Service:      svc,
		SessionTTL:   sessionTTL,
		SecureCookie: secureCookie,
	}
}

// Login godoc
// @Summary Log in
// @Description Authenticate with email and password. On success the session token is set in the HTTP-only auth_token cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} helpers.APIResponse "data.user contains the principal"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/login [post]
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	principal, err := c.Service.ValidateCredentials(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, domain.ErrInvalidCredentials.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteInternalError(w)
		return
	}
	token, err := c.Service.CreateToken(principal)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteInternalError(w)
		return
	}

	http.SetCookie(w, auth.SessionCookie(token, c.SessionTTL, c.SecureCookie))
	h.WriteJSONSuccess(w, http.StatusOK, LoginResponse{User: principal})
}

// Logout godoc
// @Summary Log out
// @Description Clears the session cookie. Sessions are stateless, so nothing is revoked server-side.
// @Tags auth
// @Produce json
// @Success 200 {object} helpers.APIResponse "data.message: Logged out"
// @Router /auth/logout [post]
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, auth.ClearedSessionCookie(c.SecureCookie))
	h.WriteJSONSuccess(w, http.StatusOK, h.MessageResponse{Message: "Logged out"})
}

// Me godoc
// @Summary Current user
// @Description Always 200. data.user is null when the caller has no valid session.
// @Tags auth
// @Produce json
// @Success 200 {object} helpers.APIResponse "data.user contains the principal or null"
// @Router /auth/me [get]
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	h.WriteJSONSuccess(w, http.StatusOK, MeResponse{User: middleware.PrincipalFromContext(r.Context())})
}

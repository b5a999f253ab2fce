package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/notes-api/internal/api/shared"
	"github.com/phrazzld/notes-api/internal/service"
	"github.com/phrazzld/notes-api/internal/service/auth"
)

// RefreshCookieName is the cookie that carries the refresh token.
const RefreshCookieName = "jwt"

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	auth          auth.Service
	cookieMaxAge  time.Duration
	secureCookies bool
	logger        *slog.Logger
}

// NewAuthHandler creates a new AuthHandler. cookieMaxAge should match the
// refresh token lifetime.
func NewAuthHandler(authService auth.Service, cookieMaxAge time.Duration, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		auth:          authService,
		cookieMaxAge:  cookieMaxAge,
		secureCookies: true,
		logger:        logger.With("component", "auth_handler"),
	}
}

// Login handles POST /auth.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeBody(w, r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, service.MsgFieldsRequired, err)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, service.MsgFieldsRequired)
		return
	}

	tokens, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	http.SetCookie(w, h.refreshCookie(tokens.RefreshToken, int(h.cookieMaxAge.Seconds())))
	shared.RespondWithJSON(w, r, http.StatusOK, AccessTokenResponse{AccessToken: tokens.AccessToken})
}

// Refresh handles GET /auth/refresh using the refresh cookie.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(RefreshCookieName)
	if err != nil || cookie.Value == "" {
		HandleAPIError(w, r, auth.ErrMissingToken)
		return
	}

	accessToken, err := h.auth.Refresh(r.Context(), cookie.Value)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.logger.DebugContext(r.Context(), "refresh for unknown or inactive user")
		}
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AccessTokenResponse{AccessToken: accessToken})
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if _, err := r.Cookie(RefreshCookieName); err != nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	http.SetCookie(w, h.refreshCookie("", -1))
	shared.RespondWithMessage(w, r, http.StatusOK, "Cookie cleared")
}

func (h *AuthHandler) refreshCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     RefreshCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteNoneMode,
	}
}

package handlers

import (
	"errors"
	"net/http"
	"time"

	authsvc "github.com/ysfmrbt/skillwise/internal/services/auth"
	"github.com/ysfmrbt/skillwise/internal/transport/http/dto"
	httperrors "github.com/ysfmrbt/skillwise/internal/transport/http/errors"
)

const (
	AccessCookieName  = "access_token"
	RefreshCookieName = "refresh_token"
)

// CookieSettings controls the auth cookie attributes. Secure is on in
// production so the tokens never travel over plain HTTP there.
type CookieSettings struct {
	Secure bool
}

type AuthHandler struct {
	service *authsvc.Service
	cookies CookieSettings
}

func NewAuthHandler(service *authsvc.Service, cookies CookieSettings) *AuthHandler {
	return &AuthHandler{service: service, cookies: cookies}
}

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "AUTH_SERVICE_UNAVAILABLE", "auth service is unavailable")
		return
	}

	var req dto.SignInRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	res, err := h.service.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		handleAuthError(w, err)
		return
	}

	h.setAuthCookies(w, res)
	httperrors.Write(w, http.StatusOK, dto.AuthResponse{
		Message: "Login successful",
		User:    authUserResponse(res.User),
	})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "AUTH_SERVICE_UNAVAILABLE", "auth service is unavailable")
		return
	}

	var req dto.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	res, err := h.service.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		handleAuthError(w, err)
		return
	}

	h.setAuthCookies(w, res)
	httperrors.Write(w, http.StatusCreated, dto.AuthResponse{
		Message: "Registration successful",
		User:    authUserResponse(res.User),
	})
}

// Refresh reads the refresh cookie and rewrites only the access cookie. The
// refresh token is left untouched so its lifetime stays bounded by first
// issuance.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "AUTH_SERVICE_UNAVAILABLE", "auth service is unavailable")
		return
	}

	cookie, err := r.Cookie(RefreshCookieName)
	if err != nil || cookie.Value == "" {
		writeUnauthorized(w, "UNAUTHORIZED", "refresh token is missing")
		return
	}

	res, err := h.service.Refresh(r.Context(), cookie.Value)
	if err != nil {
		handleAuthError(w, err)
		return
	}

	h.setCookie(w, AccessCookieName, res.AccessToken, res.AccessExpires)
	httperrors.Write(w, http.StatusOK, dto.AuthResponse{
		Message: "Token refreshed",
		User:    authUserResponse(res.User),
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "AUTH_SERVICE_UNAVAILABLE", "auth service is unavailable")
		return
	}

	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	if err := h.service.Logout(r.Context(), identity.UserID); err != nil {
		handleAuthError(w, err)
		return
	}

	h.clearCookie(w, AccessCookieName)
	h.clearCookie(w, RefreshCookieName)
	httperrors.Write(w, http.StatusOK, dto.MessageResponse{Message: "Logout successful"})
}

// Profile echoes the identity decoded from the access token; no store reads.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.ProfileResponse{
		UserID: identity.UserID,
		Email:  identity.Email,
		Role:   identity.Role,
	})
}

func (h *AuthHandler) setAuthCookies(w http.ResponseWriter, res authsvc.AuthResult) {
	h.setCookie(w, AccessCookieName, res.AccessToken, res.AccessExpires)
	h.setCookie(w, RefreshCookieName, res.RefreshToken, res.RefreshExpires)
}

func (h *AuthHandler) setCookie(w http.ResponseWriter, name, value string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(time.Until(expires).Seconds()),
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *AuthHandler) clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func handleAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, authsvc.ErrInvalidInput):
		writeBadRequest(w, "INVALID_REQUEST", "request validation failed")
	case errors.Is(err, authsvc.ErrInvalidCredentials):
		writeUnauthorized(w, "INVALID_CREDENTIALS", "invalid email or password")
	case errors.Is(err, authsvc.ErrAlreadyExists):
		writeConflict(w, "ALREADY_EXISTS", "user already exists")
	case errors.Is(err, authsvc.ErrInvalidRefreshToken), errors.Is(err, authsvc.ErrRefreshExpired):
		writeUnauthorized(w, "UNAUTHORIZED", "refresh token is invalid or expired")
	case errors.Is(err, authsvc.ErrUnauthorized):
		writeUnauthorized(w, "UNAUTHORIZED", "authentication failed")
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}

func authUserResponse(user authsvc.UserSummary) dto.AuthUserResponse {
	return dto.AuthUserResponse{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	}
}

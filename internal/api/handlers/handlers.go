// Package handlers contains the handlers for the API
package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/yeshuachrist/ycapi/internal/models"
	"github.com/yeshuachrist/ycapi/internal/service"
	"github.com/yeshuachrist/ycapi/pkg/utils/response"
)

// serviceError maps service-layer sentinel errors onto the HTTP error
// taxonomy. Unrecognised errors surface as a generic 500.
func serviceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		return response.ErrorResponse(c, http.StatusUnauthorized, response.ErrTypeUnauthorized, "Invalid credentials")
	case errors.Is(err, service.ErrForbidden):
		return response.ErrorResponse(c, http.StatusForbidden, response.ErrTypeForbidden, "Forbidden")
	case errors.Is(err, service.ErrValidation):
		return response.ErrorResponse(c, http.StatusBadRequest, response.ErrTypeValidationFailed, stripSentinel(err, service.ErrValidation))
	case errors.Is(err, service.ErrConflict):
		return response.ErrorResponse(c, http.StatusConflict, response.ErrTypeConflict, stripSentinel(err, service.ErrConflict))
	case errors.Is(err, service.ErrNotFound):
		return response.ErrorResponse(c, http.StatusNotFound, response.ErrTypeNotFound, stripSentinel(err, service.ErrNotFound))
	case errors.Is(err, service.ErrUpstreamUnavailable):
		return response.ErrorResponse(c, http.StatusBadGateway, response.ErrTypeUpstreamUnavailable, "Upstream unavailable")
	default:
		return response.ErrorResponse(c, http.StatusInternalServerError, response.ErrTypeInternal, "Internal server error")
	}
}

// stripSentinel drops the sentinel prefix so the client sees the specific
// violated rule, not the internal error chain.
func stripSentinel(err error, sentinel error) string {
	msg := strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
	if msg == "" {
		return sentinel.Error()
	}
	return msg
}

// bearerToken extracts a Bearer credential from the Authorization header.
func bearerToken(c echo.Context) string {
	auth := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
}

// requestDomain resolves the domain a Quick Auth token must be bound to,
// preferring the forwarded host set by the proxy in front of the server.
func requestDomain(c echo.Context) string {
	host := c.Request().Header.Get("X-Forwarded-Host")
	if host == "" {
		host = c.Request().Host
	}
	domain, _, found := strings.Cut(host, ":")
	if !found {
		return host
	}
	return domain
}

// adminIdentity is the outcome of the dual cookie-or-bearer authorization
// used by the creation endpoints.
type adminIdentity struct {
	admin *models.AdminUserModel
	fid   *int64
}

// authorizeAdmin accepts either a valid session cookie or a Quick Auth
// bearer token for an allowlisted admin fid. A cookie, when present, is
// authoritative: an invalid cookie fails the request without consulting the
// bearer token.
func authorizeAdmin(c echo.Context, authService *service.AuthService, verifier *service.QuickAuthVerifier) (*adminIdentity, error) {
	if cookie, err := c.Cookie(service.SessionCookieName); err == nil && cookie.Value != "" {
		admin, err := authService.ValidateSession(cookie.Value)
		if err != nil {
			return nil, service.ErrUnauthenticated
		}
		return &adminIdentity{admin: admin}, nil
	}

	token := bearerToken(c)
	if token == "" {
		return nil, service.ErrUnauthenticated
	}
	fid, err := verifier.VerifyToken(c.Request().Context(), token, requestDomain(c))
	if err != nil {
		return nil, service.ErrUnauthenticated
	}
	if !verifier.IsAdminFid(fid) {
		return nil, service.ErrForbidden
	}
	return &adminIdentity{fid: &fid}, nil
}

// setSessionCookie writes the admin session cookie with the issued token.
func setSessionCookie(c echo.Context, token string, expiresAt time.Time, sessionDays int) {
	c.SetCookie(&http.Cookie{
		Name:     service.SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   sessionDays * 24 * 60 * 60,
		Expires:  expiresAt,
	})
}

// clearSessionCookie expires the admin session cookie.
func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     service.SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

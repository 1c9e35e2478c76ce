package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/yeshuachrist/ycapi/internal/api/middleware"
	"github.com/yeshuachrist/ycapi/internal/config"
	"github.com/yeshuachrist/ycapi/internal/service"
	"github.com/yeshuachrist/ycapi/pkg/utils/response"
	"github.com/yeshuachrist/ycapi/pkg/utils/zaplogger"
)

// AdminHandler is the handler for the admin console API
type AdminHandler struct {
	authService *service.AuthService
	verifier    *service.QuickAuthVerifier
	sessionDays int
}

// NewAdminHandler creates a new handler for the admin console API
func NewAdminHandler(authService *service.AuthService, verifier *service.QuickAuthVerifier, cfg *config.Config) *AdminHandler {
	return &AdminHandler{
		authService: authService,
		verifier:    verifier,
		sessionDays: cfg.SessionDays(),
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login checks a credential pair and issues a session cookie
func (h *AdminHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil || req.Email == "" || req.Password == "" {
		return response.ErrorResponse(c, http.StatusBadRequest, response.ErrTypeInvalidPayload, "Invalid payload")
	}

	if err := h.authService.EnsureBootstrapAdmin(); err != nil {
		zaplogger.Error("bootstrap admin check failed", zaplogger.Fields{"error": err.Error()})
	}

	user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		return serviceError(c, err)
	}

	token, expiresAt, err := h.authService.IssueSession(user.ID)
	if err != nil {
		return serviceError(c, err)
	}
	setSessionCookie(c, token, expiresAt, h.sessionDays)

	return response.SuccessResponse(c, map[string]interface{}{
		"email": user.EmailLower,
	})
}

// Logout revokes the presented session and clears the cookie
func (h *AdminHandler) Logout(c echo.Context) error {
	if token := middleware.SessionTokenFromContext(c); token != "" {
		if err := h.authService.RevokeSession(token); err != nil {
			return serviceError(c, err)
		}
	}
	clearSessionCookie(c)
	return response.SuccessResponse(c, map[string]interface{}{"ok": true})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ChangePassword rotates the caller's password, revokes every other session
// and re-issues a fresh cookie
func (h *AdminHandler) ChangePassword(c echo.Context) error {
	admin := middleware.AdminFromContext(c)
	if admin == nil {
		return response.ErrorResponse(c, http.StatusUnauthorized, response.ErrTypeUnauthorized, "Unauthorized")
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil || req.CurrentPassword == "" || req.NewPassword == "" {
		return response.ErrorResponse(c, http.StatusBadRequest, response.ErrTypeInvalidPayload, "Invalid payload")
	}

	token, expiresAt, err := h.authService.ChangePassword(admin, req.CurrentPassword, req.NewPassword)
	if err != nil {
		return serviceError(c, err)
	}
	setSessionCookie(c, token, expiresAt, h.sessionDays)

	return response.SuccessResponse(c, map[string]interface{}{"ok": true})
}

type createUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateUser creates an admin user. Authorized by a session cookie or an
// allowlisted Quick Auth bearer token.
func (h *AdminHandler) CreateUser(c echo.Context) error {
	if _, err := authorizeAdmin(c, h.authService, h.verifier); err != nil {
		return serviceError(c, err)
	}

	var req createUserRequest
	if err := c.Bind(&req); err != nil || req.Email == "" || req.Password == "" {
		return response.ErrorResponse(c, http.StatusBadRequest, response.ErrTypeInvalidPayload, "Invalid payload")
	}

	if err := h.authService.EnsureBootstrapAdmin(); err != nil {
		zaplogger.Error("bootstrap admin check failed", zaplogger.Fields{"error": err.Error()})
	}

	user, err := h.authService.CreateAdminUser(req.Email, req.Password)
	if err != nil {
		return serviceError(c, err)
	}
	return response.CreatedResponse(c, map[string]interface{}{
		"email": user.EmailLower,
	})
}

// Introspect reports the caller's identity: the session's admin email when a
// cookie is presented, otherwise the verified fid and its admin standing.
func (h *AdminHandler) Introspect(c echo.Context) error {
	if cookie, err := c.Cookie(service.SessionCookieName); err == nil && cookie.Value != "" {
		admin, err := h.authService.ValidateSession(cookie.Value)
		if err != nil {
			return serviceError(c, err)
		}
		return response.SuccessResponse(c, map[string]interface{}{
			"email":   admin.EmailLower,
			"isAdmin": true,
		})
	}

	token := bearerToken(c)
	if token == "" {
		return response.ErrorResponse(c, http.StatusUnauthorized, response.ErrTypeUnauthorized, "Unauthorized")
	}
	fid, err := h.verifier.VerifyToken(c.Request().Context(), token, requestDomain(c))
	if err != nil {
		return serviceError(c, err)
	}
	return response.SuccessResponse(c, map[string]interface{}{
		"fid":     fid,
		"isAdmin": h.verifier.IsAdminFid(fid),
	})
}

package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/yeshuachrist/ycapi/internal/models"
	"github.com/yeshuachrist/ycapi/internal/service"
	"github.com/yeshuachrist/ycapi/pkg/utils/response"
)

// AdminUserContextKey is where the authenticated admin is stashed in the
// echo context.
const AdminUserContextKey = "admin_user"

// SessionTokenContextKey holds the raw session token for the request, so
// logout can revoke it.
const SessionTokenContextKey = "session_token"

// SessionAuth gates a route on a valid admin session cookie. All failures
// return the same generic unauthorized response.
func SessionAuth(authService *service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(service.SessionCookieName)
			if err != nil || cookie.Value == "" {
				return response.ErrorResponse(c, http.StatusUnauthorized, response.ErrTypeUnauthorized, "Unauthorized")
			}

			admin, err := authService.ValidateSession(cookie.Value)
			if err != nil {
				return response.ErrorResponse(c, http.StatusUnauthorized, response.ErrTypeUnauthorized, "Unauthorized")
			}

			c.Set(AdminUserContextKey, admin)
			c.Set(SessionTokenContextKey, cookie.Value)
			return next(c)
		}
	}
}

// AdminFromContext returns the admin user placed by SessionAuth, or nil.
func AdminFromContext(c echo.Context) *models.AdminUserModel {
	admin, _ := c.Get(AdminUserContextKey).(*models.AdminUserModel)
	return admin
}

// SessionTokenFromContext returns the raw session token placed by SessionAuth.
func SessionTokenFromContext(c echo.Context) string {
	token, _ := c.Get(SessionTokenContextKey).(string)
	return token
}

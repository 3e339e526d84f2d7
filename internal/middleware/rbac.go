package middleware

import (
	"net/http"

	"esatalim/internal/common"

	"github.com/labstack/echo/v4"
)

// RequireAdmin rejects callers without the admin role. It must run after
// JWTMiddleware.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			caller, ok := common.CallerFromContext(c.Request().Context())
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			}
			if !caller.IsAdmin() {
				return echo.NewHTTPError(http.StatusForbidden, "Access denied. Admin only.")
			}
			return next(c)
		}
	}
}

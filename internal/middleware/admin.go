package middleware

import (
	"net/http"

	"github.com/campuslink-app/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// AdminMiddleware gates routes to users with the admin role. Must run after
// JWTAuthMiddleware so the claims are already in context.
func AdminMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get("user").(*models.JwtCustomClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			}
			if claims.Role != models.RoleAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "Admin access required")
			}
			return next(c)
		}
	}
}

package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/campuslink-app/backend/internal/models"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware applies an in-memory token-bucket limiter keyed by the
// authenticated user, falling back to the client IP for anonymous routes.
// State is process-wide and resets on restart.
func RateLimitMiddleware(requestsPerSecond float64, burst int) echo.MiddlewareFunc {
	config := echomw.RateLimiterConfig{
		Store: echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(requestsPerSecond),
			Burst:     burst,
			ExpiresIn: 3 * time.Minute,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			if claims, ok := c.Get("user").(*models.JwtCustomClaims); ok {
				return fmt.Sprintf("user:%d", claims.UserID), nil
			}
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusForbidden, "Could not identify caller")
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, "Rate limit exceeded, slow down")
		},
	}
	return echomw.RateLimiterWithConfig(config)
}

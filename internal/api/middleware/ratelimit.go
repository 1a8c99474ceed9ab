package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// AttemptLimiter counts credential attempts per client. Allow reports whether
// the client is still under its window budget.
type AttemptLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit caps login/register attempts per IP. A limiter failure fails
// open: availability over strictness, with the failure logged.
func RateLimit(limiter AttemptLimiter, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			allowed, err := limiter.Allow(c.Request().Context(), c.RealIP())
			if err != nil {
				log.Warn().Err(err).Msg("rate limiter unavailable, allowing request")
				return next(c)
			}
			if !allowed {
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many attempts, try again later")
			}
			return next(c)
		}
	}
}

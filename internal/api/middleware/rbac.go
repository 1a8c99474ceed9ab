package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aereovisao/portal-api/internal/api/metrics"
	"github.com/aereovisao/portal-api/internal/core/domain"
)

// RequireLevel gates a route at a minimum capability level. It reads the role
// the guard resolved from the store on this request, so stale token claims
// never widen access.
func RequireLevel(min domain.Level) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(RoleKey).(domain.Role)
			if !ok {
				metrics.AuthzDecisions.WithLabelValues("rejected").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
			}
			if role.CapabilityLevel() < min {
				metrics.AuthzDecisions.WithLabelValues("forbidden").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}

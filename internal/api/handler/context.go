package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aereovisao/portal-api/internal/api/middleware"
	"github.com/aereovisao/portal-api/internal/core/domain"
)

// currentUser extracts the portal principal resolved by the guard. A missing
// principal means the route was reached anonymously (optional-auth) or the
// middleware chain is miswired; either way the caller is not authenticated.
func currentUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.PrincipalKey).(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	return user, nil
}

// currentAdmin extracts the institutional principal resolved by the guard.
func currentAdmin(c echo.Context) (*domain.InstitutionalAdmin, error) {
	admin, _ := c.Get(middleware.PrincipalKey).(*domain.InstitutionalAdmin)
	if admin == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	return admin, nil
}

package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aereovisao/portal-api/internal/api/metrics"
	"github.com/aereovisao/portal-api/internal/core/domain"
	"github.com/aereovisao/portal-api/internal/core/ports"
)

// InstitutionalHandler handles the institutional site's auth routes.
type InstitutionalHandler struct {
	service ports.InstitutionalService
}

func NewInstitutionalHandler(service ports.InstitutionalService) *InstitutionalHandler {
	return &InstitutionalHandler{service: service}
}

type institutionalLoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type institutionalAuthResponse struct {
	Token string                     `json:"token"`
	Admin *domain.InstitutionalAdmin `json:"admin"`
}

type createAdminRequest struct {
	Nome     string `json:"nome"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Login authenticates an institutional admin. Disabled accounts get a
// distinct 403, unlike the portal's uniform 401.
//
// @Summary      Institutional login
// @Tags         institucional
// @Accept       json
// @Produce      json
// @Param        body  body      institutionalLoginRequest  true  "Credentials"
// @Success      200   {object}  institutionalAuthResponse
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/institucional/login [post]
func (h *InstitutionalHandler) Login(c echo.Context) error {
	var req institutionalLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	admin, tkn, err := h.service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAccountDisabled):
			metrics.Logins.WithLabelValues("institucional", "disabled").Inc()
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.Logins.WithLabelValues("institucional", "invalid").Inc()
		}
		return err
	}

	metrics.Logins.WithLabelValues("institucional", "success").Inc()
	return c.JSON(http.StatusOK, institutionalAuthResponse{Token: tkn, Admin: admin})
}

// VerifyToken returns the admin resolved for the presented token.
//
// @Summary      Verify institutional token
// @Tags         institucional
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]domain.InstitutionalAdmin
// @Failure      401  {object}  map[string]string
// @Router       /api/institucional/verify-token [get]
func (h *InstitutionalHandler) VerifyToken(c echo.Context) error {
	admin, err := currentAdmin(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]*domain.InstitutionalAdmin{"admin": admin})
}

// CreateAdmin registers a new institutional admin.
//
// @Summary      Create institutional admin
// @Tags         institucional
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createAdminRequest  true  "Admin details"
// @Success      201   {object}  domain.InstitutionalAdmin
// @Failure      400   {object}  map[string]string
// @Router       /api/institucional/admins [post]
func (h *InstitutionalHandler) CreateAdmin(c echo.Context) error {
	if _, err := currentAdmin(c); err != nil {
		return err
	}

	var req createAdminRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	admin, err := h.service.CreateAdmin(c.Request().Context(), req.Nome, req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, admin)
}

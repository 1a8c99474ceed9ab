package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aereovisao/portal-api/internal/api/metrics"
	"github.com/aereovisao/portal-api/internal/core/domain"
	"github.com/aereovisao/portal-api/internal/core/ports"
)

// AuthHandler handles portal registration and login.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Username  string `json:"username"  validate:"required,min=3"`
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"required,min=6"`
	Nome      string `json:"nome"      validate:"omitempty"`
	Documento string `json:"documento" validate:"omitempty"`
	Telefone  string `json:"telefone"  validate:"omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Register creates a new portal account.
//
// @Summary      Register a new portal user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Router       /api/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, tkn, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		Nome:      req.Nome,
		Documento: req.Documento,
		Telefone:  req.Telefone,
	})
	if err != nil {
		return err
	}

	metrics.Logins.WithLabelValues("portal", "success").Inc()
	return c.JSON(http.StatusCreated, authResponse{Token: tkn, User: user})
}

// Login authenticates a portal user and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  map[string]string
// @Router       /api/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, tkn, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.Logins.WithLabelValues("portal", "invalid").Inc()
		}
		return err
	}

	metrics.Logins.WithLabelValues("portal", "success").Inc()
	return c.JSON(http.StatusOK, authResponse{Token: tkn, User: user})
}

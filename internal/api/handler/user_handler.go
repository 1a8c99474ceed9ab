package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/aereovisao/portal-api/internal/api/metrics"
	"github.com/aereovisao/portal-api/internal/core/domain"
	"github.com/aereovisao/portal-api/internal/core/ports"
)

// UserHandler handles the current-principal and user-administration routes.
type UserHandler struct {
	userService ports.UserService
	uploads     ports.UploadStore
}

func NewUserHandler(userService ports.UserService, uploads ports.UploadStore) *UserHandler {
	return &UserHandler{userService: userService, uploads: uploads}
}

type profileRequest struct {
	Nome      *string `json:"nome"`
	Telefone  *string `json:"telefone"`
	Documento *string `json:"documento"`
	Endereco  *string `json:"endereco"`
}

type changeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=usuario colaborador admin"`
}

// Me returns the principal resolved for the presented token.
//
// @Summary      Current principal
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]string
// @Router       /api/user [get]
func (h *UserHandler) Me(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile applies a partial profile update. Accepts JSON or multipart;
// the multipart form may carry a "foto" file stored as the profile photo.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      400  {object}  map[string]string
// @Router       /api/user/profile [post]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	patch, err := h.profilePatch(c)
	if err != nil {
		return err
	}

	updated, err := h.userService.UpdateProfile(c.Request().Context(), user.ID, patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// List returns all portal users, admin only.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      403  {object}  map[string]string
// @Router       /api/usuarios [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.userService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// ChangeRole moves a user to a new role, admin only. Changing one's own role
// is rejected.
//
// @Summary      Change a user's role
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      changeRoleRequest  true  "New role"
// @Success      200   {object}  domain.User
// @Failure      403   {object}  map[string]string
// @Router       /api/usuarios/{id} [patch]
func (h *UserHandler) ChangeRole(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var req changeRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.userService.ChangeRole(c.Request().Context(), actor.ID, c.Param("id"), domain.Role(req.Role))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// profilePatch assembles the patch from either encoding. Multipart fields are
// applied only when present, matching the JSON pointer semantics.
func (h *UserHandler) profilePatch(c echo.Context) (ports.ProfilePatch, error) {
	var patch ports.ProfilePatch

	if !strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		var req profileRequest
		if err := c.Bind(&req); err != nil {
			return patch, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
		}
		patch.Nome = req.Nome
		patch.Telefone = req.Telefone
		patch.Documento = req.Documento
		patch.Endereco = req.Endereco
		return patch, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return patch, echo.NewHTTPError(http.StatusBadRequest, "invalid multipart form")
	}

	field := func(name string) *string {
		if vals, ok := form.Value[name]; ok && len(vals) > 0 {
			return &vals[0]
		}
		return nil
	}
	patch.Nome = field("nome")
	patch.Telefone = field("telefone")
	patch.Documento = field("documento")
	patch.Endereco = field("endereco")

	if files := form.File["foto"]; len(files) > 0 {
		path, err := saveUpload(c, h.uploads, "foto_perfil", files[0])
		if err != nil {
			return patch, err
		}
		patch.FotoPerfil = &path
		metrics.Uploads.WithLabelValues("foto_perfil").Inc()
	}

	return patch, nil
}

package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/aereovisao/portal-api/internal/api/metrics"
	"github.com/aereovisao/portal-api/internal/core/ports"
)

// PostHandler handles portal content routes.
type PostHandler struct {
	postService ports.PostService
	uploads     ports.UploadStore
}

func NewPostHandler(postService ports.PostService, uploads ports.UploadStore) *PostHandler {
	return &PostHandler{postService: postService, uploads: uploads}
}

type postRequest struct {
	Titulo    string `json:"titulo"    form:"titulo"`
	Conteudo  string `json:"conteudo"  form:"conteudo"`
	Categoria string `json:"categoria" form:"categoria"`
}

// List returns posts, newest first, optionally filtered by ?categoria=.
//
// @Summary      List posts
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        categoria  query     string  false  "dicas|firmware|legislacao|noticias"
// @Success      200        {array}   domain.Post
// @Router       /api/posts [get]
func (h *PostHandler) List(c echo.Context) error {
	posts, err := h.postService.List(c.Request().Context(), c.QueryParam("categoria"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// Get returns one post by id.
//
// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  domain.Post
// @Failure      404  {object}  map[string]string
// @Router       /api/posts/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	post, err := h.postService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// Create publishes a new post, colaborador and up. Accepts JSON or multipart
// with an optional "imagem" file.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  domain.Post
// @Failure      403  {object}  map[string]string
// @Router       /api/posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	author, err := currentUser(c)
	if err != nil {
		return err
	}

	in, err := h.postInput(c)
	if err != nil {
		return err
	}

	post, err := h.postService.Create(c.Request().Context(), author, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, post)
}

// Update edits a post; only the author or an admin may edit.
//
// @Summary      Update a post
// @Tags         posts
// @Accept       json
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  domain.Post
// @Failure      403  {object}  map[string]string
// @Router       /api/posts/{id} [put]
func (h *PostHandler) Update(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	in, err := h.postInput(c)
	if err != nil {
		return err
	}

	post, err := h.postService.Update(c.Request().Context(), actor, c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// Delete removes a post; only the author or an admin may delete.
//
// @Summary      Delete a post
// @Tags         posts
// @Security     BearerAuth
// @Param        id  path  string  true  "Post id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Router       /api/posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.postService.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *PostHandler) postInput(c echo.Context) (ports.PostInput, error) {
	var req postRequest
	if err := c.Bind(&req); err != nil {
		return ports.PostInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	in := ports.PostInput{
		Titulo:    req.Titulo,
		Conteudo:  req.Conteudo,
		Categoria: req.Categoria,
	}

	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		if fh, err := c.FormFile("imagem"); err == nil {
			path, err := saveUpload(c, h.uploads, "post_imagem", fh)
			if err != nil {
				return ports.PostInput{}, err
			}
			in.Imagem = path
			metrics.Uploads.WithLabelValues("post_imagem").Inc()
		}
	}

	return in, nil
}

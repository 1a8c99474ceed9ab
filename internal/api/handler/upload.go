package handler

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aereovisao/portal-api/internal/core/domain"
	"github.com/aereovisao/portal-api/internal/core/ports"
)

// saveUpload streams a multipart file into the upload store and returns its
// public path. Rejected files (type, size) surface as 400.
func saveUpload(c echo.Context, store ports.UploadStore, kind string, fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "cannot read uploaded file")
	}
	defer src.Close()

	path, err := store.Save(c.Request().Context(), kind, fh.Filename, src)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return "", echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return "", err
	}
	return path, nil
}

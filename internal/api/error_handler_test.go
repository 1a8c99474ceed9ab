package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/aereovisao/portal-api/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	return rec.Code, body.Error
}

func TestErrorHandler_DomainMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrAccountDisabled, http.StatusForbidden},
		{domain.ErrUserExists, http.StatusBadRequest},
		{domain.ErrAdminExists, http.StatusBadRequest},
		{domain.ErrSelfRoleChange, http.StatusForbidden},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrAdminNotFound, http.StatusNotFound},
		{domain.ErrPostNotFound, http.StatusNotFound},
		{domain.ErrInvalidRole, http.StatusBadRequest},
		{domain.ErrInvalidInput, http.StatusBadRequest},
	}
	for _, tc := range cases {
		code, msg := renderError(t, tc.err)
		if code != tc.code {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.code, code)
		}
		if msg == "" {
			t.Fatalf("%v: empty error message", tc.err)
		}
	}
}

func TestErrorHandler_WrappedErrors(t *testing.T) {
	code, _ := renderError(t, fmt.Errorf("saving file: %w", domain.ErrInvalidInput))
	if code != http.StatusBadRequest {
		t.Fatalf("wrapped sentinel must still map, got %d", code)
	}
}

func TestErrorHandler_DisabledAccountDistinctFromBadCredentials(t *testing.T) {
	credCode, credMsg := renderError(t, domain.ErrInvalidCredentials)
	disCode, disMsg := renderError(t, domain.ErrAccountDisabled)
	if credCode == disCode || credMsg == disMsg {
		t.Fatalf("disabled accounts must be distinguishable: %d/%q vs %d/%q",
			credCode, credMsg, disCode, disMsg)
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	code, msg := renderError(t, echo.NewHTTPError(http.StatusUnauthorized, "not authenticated"))
	if code != http.StatusUnauthorized || msg != "not authenticated" {
		t.Fatalf("unexpected rendering: %d %q", code, msg)
	}
}

func TestErrorHandler_UnknownErrorIsOpaque(t *testing.T) {
	code, msg := renderError(t, errors.New("driver: connection reset"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if msg != "internal server error" {
		t.Fatalf("internal detail leaked: %q", msg)
	}
}

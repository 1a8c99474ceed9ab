package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/aereovisao/portal-api/internal/api/middleware"
	"github.com/aereovisao/portal-api/internal/core/domain"
	"github.com/aereovisao/portal-api/internal/core/ports"
)

type stubUserService struct {
	getFn           func(ctx context.Context, id string) (*domain.User, error)
	updateProfileFn func(ctx context.Context, id string, patch ports.ProfilePatch) (*domain.User, error)
	listFn          func(ctx context.Context) ([]domain.User, error)
	changeRoleFn    func(ctx context.Context, actorID, targetID string, role domain.Role) (*domain.User, error)
}

func (s *stubUserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func (s *stubUserService) UpdateProfile(ctx context.Context, id string, patch ports.ProfilePatch) (*domain.User, error) {
	return s.updateProfileFn(ctx, id, patch)
}

func (s *stubUserService) List(ctx context.Context) ([]domain.User, error) {
	return s.listFn(ctx)
}

func (s *stubUserService) ChangeRole(ctx context.Context, actorID, targetID string, role domain.Role) (*domain.User, error) {
	return s.changeRoleFn(ctx, actorID, targetID, role)
}

type stubUploadStore struct {
	saveFn func(ctx context.Context, kind, filename string, r io.Reader) (string, error)
}

func (s *stubUploadStore) Save(ctx context.Context, kind, filename string, r io.Reader) (string, error) {
	return s.saveFn(ctx, kind, filename, r)
}

func TestUserHandler_Me(t *testing.T) {
	h := NewUserHandler(&stubUserService{}, nil)

	c, rec := newTestContext(t, http.MethodGet, "/api/user", "")
	c.Set(middleware.PrincipalKey, &domain.User{ID: "u1", Username: "ana", Role: domain.RoleColaborador})

	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var user domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &user); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if user.Username != "ana" || user.Role != domain.RoleColaborador {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestUserHandler_Me_Anonymous(t *testing.T) {
	h := NewUserHandler(&stubUserService{}, nil)

	c, _ := newTestContext(t, http.MethodGet, "/api/user", "")

	err := h.Me(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a principal, got %v", err)
	}
}

func TestUserHandler_UpdateProfile_PartialJSON(t *testing.T) {
	stub := &stubUserService{
		updateProfileFn: func(ctx context.Context, id string, patch ports.ProfilePatch) (*domain.User, error) {
			if id != "u1" {
				t.Fatalf("unexpected id: %s", id)
			}
			if patch.Nome == nil || *patch.Nome != "Ana Lima" {
				t.Fatalf("nome not carried: %+v", patch)
			}
			if patch.Telefone != nil || patch.Documento != nil || patch.Endereco != nil {
				t.Fatalf("absent fields must stay nil: %+v", patch)
			}
			return &domain.User{ID: id, Nome: *patch.Nome}, nil
		},
	}
	h := NewUserHandler(stub, nil)

	c, rec := newTestContext(t, http.MethodPost, "/api/user/profile", `{"nome":"Ana Lima"}`)
	c.Set(middleware.PrincipalKey, &domain.User{ID: "u1"})

	if err := h.UpdateProfile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_ChangeRole(t *testing.T) {
	stub := &stubUserService{
		changeRoleFn: func(ctx context.Context, actorID, targetID string, role domain.Role) (*domain.User, error) {
			if actorID != "admin1" || targetID != "u2" || role != domain.RoleColaborador {
				t.Fatalf("unexpected args: %s %s %s", actorID, targetID, role)
			}
			return &domain.User{ID: targetID, Role: role}, nil
		},
	}
	h := NewUserHandler(stub, nil)

	c, rec := newTestContext(t, http.MethodPatch, "/api/usuarios/u2", `{"role":"colaborador"}`)
	c.SetParamNames("id")
	c.SetParamValues("u2")
	c.Set(middleware.PrincipalKey, &domain.User{ID: "admin1", Role: domain.RoleAdmin})

	if err := h.ChangeRole(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_ChangeRole_UnknownRole(t *testing.T) {
	h := NewUserHandler(&stubUserService{}, nil)

	c, _ := newTestContext(t, http.MethodPatch, "/api/usuarios/u2", `{"role":"superuser"}`)
	c.SetParamNames("id")
	c.SetParamValues("u2")
	c.Set(middleware.PrincipalKey, &domain.User{ID: "admin1", Role: domain.RoleAdmin})

	err := h.ChangeRole(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown role, got %v", err)
	}
}

func TestUserHandler_ChangeRole_Self(t *testing.T) {
	stub := &stubUserService{
		changeRoleFn: func(ctx context.Context, actorID, targetID string, role domain.Role) (*domain.User, error) {
			return nil, domain.ErrSelfRoleChange
		},
	}
	h := NewUserHandler(stub, nil)

	c, _ := newTestContext(t, http.MethodPatch, "/api/usuarios/admin1", `{"role":"usuario"}`)
	c.SetParamNames("id")
	c.SetParamValues("admin1")
	c.Set(middleware.PrincipalKey, &domain.User{ID: "admin1", Role: domain.RoleAdmin})

	if err := h.ChangeRole(c); !errors.Is(err, domain.ErrSelfRoleChange) {
		t.Fatalf("expected ErrSelfRoleChange to propagate, got %v", err)
	}
}

func TestUserHandler_List(t *testing.T) {
	stub := &stubUserService{
		listFn: func(ctx context.Context) ([]domain.User, error) {
			return []domain.User{{ID: "u1"}, {ID: "u2"}}, nil
		},
	}
	h := NewUserHandler(stub, nil)

	c, rec := newTestContext(t, http.MethodGet, "/api/usuarios", "")

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var users []domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &users); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
}

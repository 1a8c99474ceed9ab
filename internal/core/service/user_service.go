package service

import (
	"context"

	"github.com/aereovisao/portal-api/internal/core/domain"
	"github.com/aereovisao/portal-api/internal/core/ports"
)

// UserService implements profile updates and user administration.
type UserService struct {
	repo ports.UserRepository
}

func NewUserService(repo ports.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) UpdateProfile(ctx context.Context, id string, patch ports.ProfilePatch) (*domain.User, error) {
	return s.repo.UpdateProfile(ctx, id, patch)
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

// ChangeRole moves target to role. An actor may never change its own role,
// enforced here rather than left to the client.
func (s *UserService) ChangeRole(ctx context.Context, actorID, targetID string, role domain.Role) (*domain.User, error) {
	if _, ok := domain.ParseRole(string(role)); !ok {
		return nil, domain.ErrInvalidRole
	}
	if actorID == targetID {
		return nil, domain.ErrSelfRoleChange
	}
	return s.repo.UpdateRole(ctx, targetID, role)
}

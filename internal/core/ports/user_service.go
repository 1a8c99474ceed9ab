package ports

import (
	"context"

	"github.com/aereovisao/portal-api/internal/core/domain"
)

// UserService implements profile and user-administration operations.
type UserService interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, patch ProfilePatch) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	// ChangeRole fails with domain.ErrSelfRoleChange when actorID == targetID.
	ChangeRole(ctx context.Context, actorID, targetID string, role domain.Role) (*domain.User, error)
}

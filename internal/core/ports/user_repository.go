package ports

import (
	"context"

	"github.com/aereovisao/portal-api/internal/core/domain"
)

// ProfilePatch carries the optional profile fields of an update; nil means
// "leave unchanged".
type ProfilePatch struct {
	Nome       *string
	Telefone   *string
	Documento  *string
	Endereco   *string
	FotoPerfil *string
}

// UserRepository defines persistence for portal principals. Create must map
// unique-index violations on email or username to domain.ErrUserExists.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	UpdateProfile(ctx context.Context, id string, patch ProfilePatch) (*domain.User, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.User, error)
}

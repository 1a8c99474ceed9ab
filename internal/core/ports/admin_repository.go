package ports

import (
	"context"
	"time"

	"github.com/aereovisao/portal-api/internal/core/domain"
)

// AdminRepository defines persistence for institutional admins.
type AdminRepository interface {
	Create(ctx context.Context, admin *domain.InstitutionalAdmin) (*domain.InstitutionalAdmin, error)
	FindByEmail(ctx context.Context, email string) (*domain.InstitutionalAdmin, error)
	FindByID(ctx context.Context, id string) (*domain.InstitutionalAdmin, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
}

package ports

import (
	"context"

	"github.com/aereovisao/portal-api/internal/core/domain"
)

// InstitutionalService implements authentication and admin management for the
// institutional site.
type InstitutionalService interface {
	// Login fails with domain.ErrAccountDisabled (after credential
	// validation) when the account's active flag is off, and stamps the
	// admin's last-login time on success.
	Login(ctx context.Context, email, password string) (*domain.InstitutionalAdmin, string, error)
	CreateAdmin(ctx context.Context, nome, email, password string) (*domain.InstitutionalAdmin, error)
}

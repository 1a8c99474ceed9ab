package ports

import (
	"context"

	"github.com/aereovisao/portal-api/internal/core/domain"
)

// RegisterInput carries the fields accepted at registration. Role is not an
// input: every new account starts as usuario.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	Nome      string
	Documento string
	Telefone  string
}

// AuthService implements portal registration and login.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
}

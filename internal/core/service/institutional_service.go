package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/aereovisao/portal-api/internal/core/domain"
	"github.com/aereovisao/portal-api/internal/core/ports"
	"github.com/aereovisao/portal-api/internal/core/token"
)

// institutionalTokenTTL is fixed: institutional sessions last 24 hours.
const institutionalTokenTTL = 24 * time.Hour

// InstitutionalService implements authentication for the institutional site.
type InstitutionalService struct {
	repo  ports.AdminRepository
	codec *token.Codec
}

func NewInstitutionalService(repo ports.AdminRepository, codec *token.Codec) *InstitutionalService {
	return &InstitutionalService{repo: repo, codec: codec}
}

// Login validates credentials, then the active flag. A disabled account with
// correct credentials surfaces domain.ErrAccountDisabled, distinct from
// invalid credentials.
func (s *InstitutionalService) Login(ctx context.Context, email, password string) (*domain.InstitutionalAdmin, string, error) {
	if email == "" || password == "" {
		return nil, "", domain.ErrInvalidCredentials
	}

	admin, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	if !admin.Ativo {
		return nil, "", domain.ErrAccountDisabled
	}

	tkn, err := s.codec.Issue(admin.ID, "", token.AudienceInstitucional, institutionalTokenTTL)
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	if err := s.repo.UpdateLastLogin(ctx, admin.ID, now); err != nil {
		return nil, "", err
	}
	admin.LastLogin = &now

	return admin, tkn, nil
}

// CreateAdmin registers a new institutional admin, active by default.
func (s *InstitutionalService) CreateAdmin(ctx context.Context, nome, email, password string) (*domain.InstitutionalAdmin, error) {
	if nome == "" || email == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return s.repo.Create(ctx, &domain.InstitutionalAdmin{
		Nome:         nome,
		Email:        email,
		PasswordHash: string(hash),
		Ativo:        true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

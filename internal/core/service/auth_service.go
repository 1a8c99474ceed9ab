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

const defaultTokenTTL = 7 * 24 * time.Hour

// dummyHash is compared against when the identifier does not exist, so a
// lookup miss costs the same as a wrong password.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// AuthService implements portal registration and login.
type AuthService struct {
	repo     ports.UserRepository
	codec    *token.Codec
	tokenTTL time.Duration
}

func NewAuthService(repo ports.UserRepository, codec *token.Codec, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthService{repo: repo, codec: codec, tokenTTL: tokenTTL}
}

// Register creates a new portal account. Every account starts as usuario;
// promotion is a separate admin-gated operation.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, string, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, "", domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		Nome:         in.Nome,
		Documento:    in.Documento,
		Telefone:     in.Telefone,
		PasswordHash: string(hash),
		Role:         domain.RoleUsuario,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}

	tkn, err := s.codec.Issue(created.ID, created.Role, token.AudiencePortal, s.tokenTTL)
	if err != nil {
		return nil, "", err
	}
	return created, tkn, nil
}

// Login validates credentials and issues a token. Unknown email and wrong
// password both surface domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if email == "" || password == "" {
		return nil, "", domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	tkn, err := s.codec.Issue(user.ID, user.Role, token.AudiencePortal, s.tokenTTL)
	if err != nil {
		return nil, "", err
	}
	return user, tkn, nil
}

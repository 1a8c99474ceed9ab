package service

import (
	"context"
	"time"

	"github.com/aereovisao/portal-api/internal/core/domain"
	"github.com/aereovisao/portal-api/internal/core/ports"
)

// PostService implements portal content management.
type PostService struct {
	repo ports.PostRepository
}

func NewPostService(repo ports.PostRepository) *PostService {
	return &PostService{repo: repo}
}

func (s *PostService) Create(ctx context.Context, author *domain.User, in ports.PostInput) (*domain.Post, error) {
	category, ok := domain.ParseCategory(in.Categoria)
	if !ok || in.Titulo == "" || in.Conteudo == "" {
		return nil, domain.ErrInvalidInput
	}

	authorName := author.Nome
	if authorName == "" {
		authorName = author.Username
	}

	now := time.Now().UTC()
	return s.repo.Create(ctx, &domain.Post{
		Titulo:     in.Titulo,
		Conteudo:   in.Conteudo,
		Categoria:  category,
		Imagem:     in.Imagem,
		AuthorID:   author.ID,
		AuthorName: authorName,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
}

func (s *PostService) Get(ctx context.Context, id string) (*domain.Post, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *PostService) List(ctx context.Context, category string) ([]domain.Post, error) {
	if category == "" {
		return s.repo.List(ctx, nil)
	}
	parsed, ok := domain.ParseCategory(category)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	return s.repo.List(ctx, &parsed)
}

func (s *PostService) Update(ctx context.Context, actor *domain.User, id string, in ports.PostInput) (*domain.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canEdit(actor, post) {
		return nil, domain.ErrForbidden
	}

	if in.Titulo != "" {
		post.Titulo = in.Titulo
	}
	if in.Conteudo != "" {
		post.Conteudo = in.Conteudo
	}
	if in.Categoria != "" {
		category, ok := domain.ParseCategory(in.Categoria)
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		post.Categoria = category
	}
	if in.Imagem != "" {
		post.Imagem = in.Imagem
	}
	post.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, post)
}

func (s *PostService) Delete(ctx context.Context, actor *domain.User, id string) error {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !canEdit(actor, post) {
		return domain.ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}

// canEdit allows the author and admins.
func canEdit(actor *domain.User, post *domain.Post) bool {
	return actor.Role == domain.RoleAdmin || actor.ID == post.AuthorID
}

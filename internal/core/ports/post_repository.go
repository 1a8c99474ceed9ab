package ports

import (
	"context"

	"github.com/aereovisao/portal-api/internal/core/domain"
)

// PostRepository defines persistence for portal posts.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) (*domain.Post, error)
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	// List returns posts newest first, optionally filtered by category.
	List(ctx context.Context, category *domain.Category) ([]domain.Post, error)
	Update(ctx context.Context, post *domain.Post) (*domain.Post, error)
	Delete(ctx context.Context, id string) error
}

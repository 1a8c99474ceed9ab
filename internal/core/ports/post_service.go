package ports

import (
	"context"

	"github.com/aereovisao/portal-api/internal/core/domain"
)

// PostInput carries the editable fields of a post.
type PostInput struct {
	Titulo    string
	Conteudo  string
	Categoria string
	Imagem    string
}

// PostService implements portal content management. Write operations are
// restricted to the author or an admin.
type PostService interface {
	Create(ctx context.Context, author *domain.User, in PostInput) (*domain.Post, error)
	Get(ctx context.Context, id string) (*domain.Post, error)
	List(ctx context.Context, category string) ([]domain.Post, error)
	Update(ctx context.Context, actor *domain.User, id string, in PostInput) (*domain.Post, error)
	Delete(ctx context.Context, actor *domain.User, id string) error
}

package domain

import "time"

// Category classifies portal posts.
type Category string

const (
	CategoryDicas      Category = "dicas"
	CategoryFirmware   Category = "firmware"
	CategoryLegislacao Category = "legislacao"
	CategoryNoticias   Category = "noticias"
)

// ParseCategory validates s against the closed category set.
func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case CategoryDicas, CategoryFirmware, CategoryLegislacao, CategoryNoticias:
		return Category(s), true
	}
	return "", false
}

// Post is a portal content entry written by an elevated user. AuthorName is a
// snapshot taken at creation; it is not refreshed on profile updates.
type Post struct {
	ID         string    `json:"id"`
	Titulo     string    `json:"titulo"`
	Conteudo   string    `json:"conteudo"`
	Categoria  Category  `json:"categoria"`
	Imagem     string    `json:"imagem,omitempty"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

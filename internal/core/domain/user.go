package domain

import "time"

// Role classifies a portal user by privilege tier.
type Role string

const (
	RoleUsuario     Role = "usuario"
	RoleColaborador Role = "colaborador"
	RoleAdmin       Role = "admin"
)

// Level is the ordered capability tier derived from a Role:
// LevelUsuario < LevelColaborador < LevelAdmin.
type Level int

const (
	LevelUsuario Level = iota
	LevelColaborador
	LevelAdmin
)

// ParseRole validates s against the closed role set.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUsuario, RoleColaborador, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// CapabilityLevel maps a role to its ordered capability tier. Unknown roles
// collapse to the lowest tier.
func (r Role) CapabilityLevel() Level {
	switch r {
	case RoleAdmin:
		return LevelAdmin
	case RoleColaborador:
		return LevelColaborador
	default:
		return LevelUsuario
	}
}

// Elevated reports whether the role may manage portal content.
func (r Role) Elevated() bool {
	return r.CapabilityLevel() >= LevelColaborador
}

// User models a portal principal.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Nome         string    `json:"nome,omitempty"`
	FotoPerfil   string    `json:"foto_perfil,omitempty"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Telefone     string    `json:"telefone,omitempty"`
	Documento    string    `json:"documento,omitempty"`
	Endereco     string    `json:"endereco,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

package domain

import "time"

// InstitutionalAdmin models a principal of the institutional site. It is a
// kind distinct from User: tokens issued for one never authorize the other.
type InstitutionalAdmin struct {
	ID           string     `json:"id"`
	Nome         string     `json:"nome"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Ativo        bool       `json:"ativo"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

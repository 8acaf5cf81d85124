package domain

import "time"

const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
)

// User models an authenticated actor: a facility operator working the
// gates, or an admin managing accounts and reading reports.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

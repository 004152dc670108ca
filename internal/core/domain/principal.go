package domain

import "time"

// Role classifies a principal's default capabilities. The set is closed;
// anything outside it is rejected at the edge.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleUser, RoleAgent:
		return true
	}
	return false
}

// Username constraints enforced at the application layer.
const (
	UsernameMinLen = 3
	UsernameMaxLen = 50
	SecretMinLen   = 8
)

// Principal models an authenticated actor. PasswordHash is never serialized;
// handlers return principals straight from the service layer and rely on the
// json:"-" tag to keep the hash out of responses.
type Principal struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

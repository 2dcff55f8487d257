package domain

import "time"

// Role is the authorization role carried by an identity and embedded in
// issued tokens.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User models an account in the credential store. PasswordHash never
// leaves the store boundary in API responses.
type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IdentityContext is the request-scoped identity derived from a verified
// token. It lives for exactly one request and is never shared across them.
type IdentityContext struct {
	SubjectID string
	Role      Role
}

// LoginResult is the public payload returned on successful authentication.
// It carries a minimal profile and the signed token, never the hash.
type LoginResult struct {
	ID        string `json:"id"`
	Token     string `json:"token"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

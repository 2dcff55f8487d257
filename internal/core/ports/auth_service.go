package ports

import (
	"context"

	"github.com/bookshelf/bookshelf-api/internal/core/domain"
)

// AuthService authenticates credentials and mints tokens.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*domain.LoginResult, error)
}

// TokenService issues and verifies signed access tokens. Verify is a pure
// function of (token, secret, clock) and is safe for concurrent use.
type TokenService interface {
	Issue(user *domain.User) (string, error)
	Verify(token string) (domain.IdentityContext, error)
}

// Hasher produces and checks salted password digests. Both operations are
// CPU-bound and may block while the hashing pool is saturated; they honour
// ctx cancellation while queued.
type Hasher interface {
	Hash(ctx context.Context, plaintext string) (string, error)
	Verify(ctx context.Context, plaintext, digest string) (bool, error)
}

// LoginThrottle bounds authentication attempts per account.
type LoginThrottle interface {
	Allow(ctx context.Context, email string) (bool, error)
}

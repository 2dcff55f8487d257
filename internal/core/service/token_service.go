package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bookshelf/bookshelf-api/internal/core/domain"
)

// Verification failures are shared instances so callers can distinguish an
// expired token from a tampered one with errors.Is.
var (
	ErrExpiredToken  = domain.NewUnauthenticated("token expired")
	ErrTamperedToken = domain.NewUnauthenticated("invalid token")
)

type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256-signed access tokens. The secret
// is read-only after construction; Verify performs no I/O and is safe for
// unsynchronized concurrent use.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue builds and signs a token binding the user's id and role.
func (s *TokenService) Issue(user *domain.User) (string, error) {
	now := s.now().UTC()
	claims := tokenClaims{
		Role: string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify recomputes the signature, checks expiry, and returns the identity
// embedded in the claims. The signing method is pinned to HS256.
func (s *TokenService) Verify(token string) (domain.IdentityContext, error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.IdentityContext{}, ErrExpiredToken
		}
		return domain.IdentityContext{}, ErrTamperedToken
	}
	if !parsed.Valid || claims.Subject == "" {
		return domain.IdentityContext{}, ErrTamperedToken
	}

	role := domain.Role(claims.Role)
	if !role.Valid() {
		return domain.IdentityContext{}, ErrTamperedToken
	}

	return domain.IdentityContext{SubjectID: claims.Subject, Role: role}, nil
}

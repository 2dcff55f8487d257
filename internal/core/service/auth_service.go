package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/bookshelf/bookshelf-api/internal/api/metrics"
	"github.com/bookshelf/bookshelf-api/internal/core/domain"
	"github.com/bookshelf/bookshelf-api/internal/core/ports"
)

// AuthService verifies credentials against the user store and issues
// access tokens. Every failure on this path collapses into the same
// Unauthenticated fault so callers cannot probe which emails exist.
type AuthService struct {
	users    ports.UserRepository
	tokens   ports.TokenService
	hasher   ports.Hasher
	throttle ports.LoginThrottle
	log      zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenService, hasher ports.Hasher, throttle ports.LoginThrottle, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, hasher: hasher, throttle: throttle, log: log}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	if email == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.NewUnauthenticated(domain.CredentialsMessage)
	}

	if s.throttle != nil {
		allowed, err := s.throttle.Allow(ctx, email)
		if err != nil {
			// fails open on a throttle outage
			s.log.Warn().Err(err).Msg("login throttle unavailable")
		} else if !allowed {
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
			return nil, domain.NewUnauthenticated(domain.CredentialsMessage)
		}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		var fault *domain.Fault
		if errors.As(err, &fault) && fault.Kind == domain.KindNotFound {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return nil, domain.NewUnauthenticated(domain.CredentialsMessage)
		}
		return nil, err
	}

	match, err := s.hasher.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		return nil, domain.NewUnexpected(err)
	}
	if !match {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.NewUnauthenticated(domain.CredentialsMessage)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, domain.NewUnexpected(err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.TokensIssuedTotal.Inc()

	return &domain.LoginResult{
		ID:        user.ID,
		Token:     token,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
	}, nil
}

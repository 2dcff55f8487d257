package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/bookshelf/bookshelf-api/internal/api/metrics"
	"github.com/bookshelf/bookshelf-api/internal/core/domain"
	"github.com/bookshelf/bookshelf-api/internal/core/ports"
)

// UserService manages accounts: registration, profile CRUD, and the
// best-effort welcome email on signup.
type UserService struct {
	repo   ports.UserRepository
	hasher ports.Hasher
	mail   ports.MailQueue
	log    zerolog.Logger
}

func NewUserService(repo ports.UserRepository, hasher ports.Hasher, mail ports.MailQueue, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, hasher: hasher, mail: mail, log: log}
}

func (s *UserService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !role.Valid() {
		return nil, domain.NewValidation(domain.FieldError{Field: "role", Message: "role must be one of: USER ADMIN"})
	}
	return s.register(ctx, in, role)
}

// RegisterAdmin creates an account with the ADMIN role regardless of the
// role carried in the input.
func (s *UserService) RegisterAdmin(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.register(ctx, in, domain.RoleAdmin)
}

func (s *UserService) register(ctx context.Context, in ports.RegisterInput, role domain.Role) (*domain.User, error) {
	existing, err := s.repo.FindByEmail(ctx, in.Email)
	if err != nil {
		var fault *domain.Fault
		if !errors.As(err, &fault) || fault.Kind != domain.KindNotFound {
			return nil, err
		}
	}
	if existing != nil {
		return nil, domain.NewConflict("user with email %s already exists", in.Email)
	}

	hash, err := s.hasher.Hash(ctx, in.Password)
	if err != nil {
		return nil, domain.NewUnexpected(err)
	}

	avatar := in.AvatarURL
	if avatar == "" {
		avatar = avatarURL(in.FirstName, in.LastName)
	}

	now := time.Now().UTC()
	user := &domain.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: hash,
		AvatarURL:    avatar,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	metrics.RegistrationsTotal.WithLabelValues(string(role)).Inc()

	// Fire-and-forget: a mail fault never fails the signup.
	if s.mail != nil {
		s.mail.Enqueue(ports.WelcomeMessage{To: created.Email, FirstName: created.FirstName})
	}

	return created, nil
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, domain.NewEmptyResult("no users were found")
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) Update(ctx context.Context, id string, in ports.UserUpdateInput) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.FirstName = in.FirstName
	user.LastName = in.LastName
	if in.Email != "" {
		user.Email = in.Email
	}
	if in.Password != "" {
		hash, err := s.hasher.Hash(ctx, in.Password)
		if err != nil {
			return nil, domain.NewUnexpected(err)
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, user)
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func avatarURL(firstName, lastName string) string {
	name := url.QueryEscape(firstName + " " + lastName)
	return fmt.Sprintf("https://ui-avatars.com/api/?name=%s&background=random", name)
}

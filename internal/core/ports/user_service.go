package ports

import (
	"context"

	"github.com/bookshelf/bookshelf-api/internal/core/domain"
)

// RegisterInput carries a registration or admin-created account request.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	AvatarURL string
	Role      domain.Role
}

// UserUpdateInput carries a partial profile update. Email and Password are
// only applied when non-empty.
type UserUpdateInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// UserService manages accounts in the credential store.
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	RegisterAdmin(ctx context.Context, in RegisterInput) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, in UserUpdateInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

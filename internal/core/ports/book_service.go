package ports

import (
	"context"
	"time"

	"github.com/bookshelf/bookshelf-api/internal/core/domain"
)

// BookInput carries a create or update request for a library record.
type BookInput struct {
	Title             string
	Author            string
	ISBN              int64
	AddedAt           *time.Time
	DeletedAt         *time.Time
	Plot              string
	CompletedReadings int
	CoverURL          string
}

// BookService manages library records on behalf of their owners.
type BookService interface {
	List(ctx context.Context) ([]domain.Book, error)
	Get(ctx context.Context, id string) (*domain.Book, error)
	Create(ctx context.Context, ownerID string, in BookInput) (*domain.Book, error)
	Update(ctx context.Context, id string, in BookInput) (*domain.Book, error)
	Delete(ctx context.Context, id string) error
}

package service

import (
	"context"
	"time"

	"github.com/bookshelf/bookshelf-api/internal/core/domain"
	"github.com/bookshelf/bookshelf-api/internal/core/ports"
)

// BookService manages library records. It is plain collaborator plumbing:
// all auth decisions happen before any of these methods run.
type BookService struct {
	books ports.BookRepository
	users ports.UserRepository
}

func NewBookService(books ports.BookRepository, users ports.UserRepository) *BookService {
	return &BookService{books: books, users: users}
}

func (s *BookService) List(ctx context.Context) ([]domain.Book, error) {
	books, err := s.books.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, domain.NewEmptyResult("no books were found")
	}
	return books, nil
}

func (s *BookService) Get(ctx context.Context, id string) (*domain.Book, error) {
	return s.books.FindByID(ctx, id)
}

func (s *BookService) Create(ctx context.Context, ownerID string, in ports.BookInput) (*domain.Book, error) {
	if _, err := s.users.FindByID(ctx, ownerID); err != nil {
		return nil, err
	}

	addedAt := time.Now().UTC()
	if in.AddedAt != nil {
		addedAt = *in.AddedAt
	}
	cover := in.CoverURL
	if cover == "" {
		cover = domain.DefaultCoverURL
	}

	book := &domain.Book{
		Title:             in.Title,
		Author:            in.Author,
		ISBN:              in.ISBN,
		AddedAt:           addedAt,
		DeletedAt:         in.DeletedAt,
		Plot:              in.Plot,
		CompletedReadings: in.CompletedReadings,
		CoverURL:          cover,
		UserID:            ownerID,
	}
	return s.books.Create(ctx, book)
}

func (s *BookService) Update(ctx context.Context, id string, in ports.BookInput) (*domain.Book, error) {
	book, err := s.books.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	book.Title = in.Title
	book.Author = in.Author
	book.ISBN = in.ISBN
	if in.AddedAt != nil {
		book.AddedAt = *in.AddedAt
	}
	book.DeletedAt = in.DeletedAt
	book.Plot = in.Plot
	book.CompletedReadings = in.CompletedReadings
	if in.CoverURL != "" {
		book.CoverURL = in.CoverURL
	}

	return s.books.Update(ctx, book)
}

func (s *BookService) Delete(ctx context.Context, id string) error {
	return s.books.Delete(ctx, id)
}

package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bookshelf/bookshelf-api/internal/core/domain"
)

const bookCollection = "books"

type MongoBookRepository struct {
	coll *mongo.Collection
}

func NewBookRepository(db *mongo.Database) *MongoBookRepository {
	return &MongoBookRepository{coll: db.Collection(bookCollection)}
}

type mongoBook struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	Title             string             `bson:"title"`
	Author            string             `bson:"author"`
	ISBN              int64              `bson:"isbn"`
	AddedAt           time.Time          `bson:"added_at"`
	DeletedAt         *time.Time         `bson:"deleted_at,omitempty"`
	Plot              string             `bson:"plot"`
	CompletedReadings int                `bson:"completed_readings"`
	CoverURL          string             `bson:"cover_url"`
	UserID            string             `bson:"user_id"`
}

func (r *MongoBookRepository) Create(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	doc := mongoBook{
		Title:             book.Title,
		Author:            book.Author,
		ISBN:              book.ISBN,
		AddedAt:           book.AddedAt,
		DeletedAt:         book.DeletedAt,
		Plot:              book.Plot,
		CompletedReadings: book.CompletedReadings,
		CoverURL:          book.CoverURL,
		UserID:            book.UserID,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert book: %w", err)
	}

	created := *book
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoBookRepository) FindByID(ctx context.Context, id string) (*domain.Book, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.NewNotFound("book with id %s not found", id)
	}

	var mb mongoBook
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mb); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.NewNotFound("book with id %s not found", id)
		}
		return nil, fmt.Errorf("find book: %w", err)
	}
	return mb.toDomain(), nil
}

func (r *MongoBookRepository) List(ctx context.Context) ([]domain.Book, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer cursor.Close(ctx)

	var books []domain.Book
	for cursor.Next(ctx) {
		var mb mongoBook
		if err := cursor.Decode(&mb); err != nil {
			return nil, fmt.Errorf("decode book: %w", err)
		}
		books = append(books, *mb.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

func (r *MongoBookRepository) Update(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	oid, err := primitive.ObjectIDFromHex(book.ID)
	if err != nil {
		return nil, domain.NewNotFound("book with id %s not found", book.ID)
	}

	update := bson.M{"$set": bson.M{
		"title":              book.Title,
		"author":             book.Author,
		"isbn":               book.ISBN,
		"added_at":           book.AddedAt,
		"deleted_at":         book.DeletedAt,
		"plot":               book.Plot,
		"completed_readings": book.CompletedReadings,
		"cover_url":          book.CoverURL,
		"user_id":            book.UserID,
	}}

	res, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return nil, fmt.Errorf("update book: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.NewNotFound("book with id %s not found", book.ID)
	}
	return book, nil
}

func (r *MongoBookRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.NewNotFound("book with id %s not found", id)
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.NewNotFound("book with id %s not found", id)
	}
	return nil
}

func (mb *mongoBook) toDomain() *domain.Book {
	return &domain.Book{
		ID:                mb.ID.Hex(),
		Title:             mb.Title,
		Author:            mb.Author,
		ISBN:              mb.ISBN,
		AddedAt:           mb.AddedAt,
		DeletedAt:         mb.DeletedAt,
		Plot:              mb.Plot,
		CompletedReadings: mb.CompletedReadings,
		CoverURL:          mb.CoverURL,
		UserID:            mb.UserID,
	}
}

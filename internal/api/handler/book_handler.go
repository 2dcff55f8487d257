package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bookshelf/bookshelf-api/internal/api/middleware"
	"github.com/bookshelf/bookshelf-api/internal/core/domain"
	"github.com/bookshelf/bookshelf-api/internal/core/ports"
)

const dateLayout = "2006-01-02"

type BookHandler struct {
	bookService ports.BookService
}

func NewBookHandler(bookService ports.BookService) *BookHandler {
	return &BookHandler{bookService: bookService}
}

type bookRequest struct {
	Title             string `json:"title" validate:"required"`
	Author            string `json:"author" validate:"required"`
	ISBN              int64  `json:"isbn" validate:"required,gt=0"`
	AddedAt           string `json:"added_at" validate:"omitempty,datetime=2006-01-02"`
	DeletedAt         string `json:"deleted_at" validate:"omitempty,datetime=2006-01-02"`
	Plot              string `json:"plot" validate:"required"`
	CompletedReadings int    `json:"completed_readings" validate:"gte=0"`
	CoverURL          string `json:"cover_url" validate:"omitempty"`
}

func (r bookRequest) toInput() ports.BookInput {
	in := ports.BookInput{
		Title:             r.Title,
		Author:            r.Author,
		ISBN:              r.ISBN,
		Plot:              r.Plot,
		CompletedReadings: r.CompletedReadings,
		CoverURL:          r.CoverURL,
	}
	// Dates already passed the datetime validation; parse failures cannot
	// happen here.
	if r.AddedAt != "" {
		t, _ := time.Parse(dateLayout, r.AddedAt)
		in.AddedAt = &t
	}
	if r.DeletedAt != "" {
		t, _ := time.Parse(dateLayout, r.DeletedAt)
		in.DeletedAt = &t
	}
	return in
}

// List returns all books.
//
// @Summary      List books
// @Tags         books
// @Produce      json
// @Success      200  {array}   domain.Book
// @Failure      204  {object}  map[string]any
// @Router       /api/books [get]
func (h *BookHandler) List(c echo.Context) error {
	books, err := h.bookService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, books)
}

// Get returns one book by id.
//
// @Summary      Get book by ID
// @Tags         books
// @Produce      json
// @Param        id   path      string  true  "Book ID"
// @Success      200  {object}  domain.Book
// @Failure      404  {object}  map[string]any
// @Router       /api/books/{id} [get]
func (h *BookHandler) Get(c echo.Context) error {
	book, err := h.bookService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, book)
}

// Create adds a book to the authenticated caller's shelf.
//
// @Summary      Create book
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        body  body      bookRequest  true  "Book details"
// @Success      201   {object}  domain.Book
// @Failure      400   {object}  map[string]any
// @Router       /api/books [post]
func (h *BookHandler) Create(c echo.Context) error {
	ident, ok := middleware.Identity(c)
	if !ok {
		return domain.NewUnauthenticated("authentication required")
	}

	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	book, err := h.bookService.Create(c.Request().Context(), ident.SubjectID, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, book)
}

// Update replaces a book's details.
//
// @Summary      Update book
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        id    path      string       true  "Book ID"
// @Param        body  body      bookRequest  true  "Updated book details"
// @Success      200   {object}  domain.Book
// @Failure      400   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /api/books/{id} [put]
func (h *BookHandler) Update(c echo.Context) error {
	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	book, err := h.bookService.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, book)
}

// Delete removes a book by id.
//
// @Summary      Delete book
// @Tags         books
// @Param        id  path  string  true  "Book ID"
// @Success      204
// @Failure      404  {object}  map[string]any
// @Router       /api/books/{id} [delete]
func (h *BookHandler) Delete(c echo.Context) error {
	if err := h.bookService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

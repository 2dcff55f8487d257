package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bookshelf/bookshelf-api/internal/api"
	"github.com/bookshelf/bookshelf-api/internal/api/handler"
	"github.com/bookshelf/bookshelf-api/internal/core/domain"
	"github.com/bookshelf/bookshelf-api/internal/core/ports"
)

type stubAuthService struct {
	loginFn func(ctx context.Context, email, password string) (*domain.LoginResult, error)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

type stubUserService struct {
	registerFn      func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	registerAdminFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
}

func (s *stubUserService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubUserService) RegisterAdmin(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerAdminFn(ctx, in)
}

func (s *stubUserService) List(context.Context) ([]domain.User, error) { return nil, nil }
func (s *stubUserService) Get(context.Context, string) (*domain.User, error) {
	return nil, nil
}
func (s *stubUserService) Update(context.Context, string, ports.UserUpdateInput) (*domain.User, error) {
	return nil, nil
}
func (s *stubUserService) Delete(context.Context, string) error { return nil }

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())
	return e
}

func postJSON(e *echo.Echo, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*domain.LoginResult, error) {
			if email != "alice@example.com" || password != "s3cretpass" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return &domain.LoginResult{
				ID:        "user-1",
				Token:     "token123",
				FirstName: "Alice",
				LastName:  "Lazzeri",
				Email:     email,
			}, nil
		},
	}
	h := handler.NewAuthHandler(stub, &stubUserService{})

	c, rec := postJSON(e, "/auth/login", `{"email":"alice@example.com","password":"s3cretpass"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" || resp["id"] != "user-1" {
		t.Fatalf("unexpected payload: %v", resp)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*domain.LoginResult, error) {
			return nil, domain.NewUnauthenticated(domain.CredentialsMessage)
		},
	}
	h := handler.NewAuthHandler(stub, &stubUserService{})

	c, rec := postJSON(e, "/auth/login", `{"email":"alice@example.com","password":"wrong-pass"}`)
	if err := h.Login(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != domain.CredentialsMessage {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*domain.LoginResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := handler.NewAuthHandler(stub, &stubUserService{})

	c, rec := postJSON(e, "/auth/login", "{")
	if err := h.Login(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

// Every violation must come back in one response, in declaration order.
func TestAuthHandler_Register_AggregateValidation(t *testing.T) {
	e := newTestEcho()
	users := &stubUserService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := handler.NewAuthHandler(&stubAuthService{}, users)

	c, rec := postJSON(e, "/auth/register", `{"first_name":"Al","last_name":"Lazzeri","email":"not-an-email","password":"short"}`)
	if err := h.Register(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	fields, ok := resp["fieldErrors"].([]any)
	if !ok || len(fields) != 3 {
		t.Fatalf("expected three field errors, got %v", resp["fieldErrors"])
	}
	got := make([]string, 0, len(fields))
	for _, f := range fields {
		got = append(got, f.(map[string]any)["field"].(string))
	}
	want := []string{"firstname", "email", "password"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("field order mismatch: got %v want %v", got, want)
		}
	}
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newTestEcho()
	users := &stubUserService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			if in.Role != "" {
				t.Fatalf("unexpected role: %s", in.Role)
			}
			return &domain.User{
				ID:           "user-1",
				FirstName:    in.FirstName,
				LastName:     in.LastName,
				Email:        in.Email,
				PasswordHash: "$2a$10$hash",
				Role:         domain.RoleUser,
			}, nil
		},
	}
	h := handler.NewAuthHandler(&stubAuthService{}, users)

	c, rec := postJSON(e, "/auth/register", `{"first_name":"Alice","last_name":"Lazzeri","email":"alice@example.com","password":"s3cretpass"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "$2a$10$hash") {
		t.Fatalf("password hash leaked in response")
	}
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	e := newTestEcho()
	users := &stubUserService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			return nil, domain.NewConflict("user with email %s already exists", in.Email)
		},
	}
	h := handler.NewAuthHandler(&stubAuthService{}, users)

	c, rec := postJSON(e, "/auth/register", `{"first_name":"Alice","last_name":"Lazzeri","email":"alice@example.com","password":"s3cretpass"}`)
	if err := h.Register(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_RegisterAdmin_Success(t *testing.T) {
	e := newTestEcho()
	users := &stubUserService{
		registerAdminFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			return &domain.User{ID: "admin-1", Role: domain.RoleAdmin}, nil
		},
	}
	h := handler.NewAuthHandler(&stubAuthService{}, users)

	c, rec := postJSON(e, "/auth/register/admin", `{"first_name":"Alice","last_name":"Lazzeri","email":"alice@example.com","password":"s3cretpass"}`)
	if err := h.RegisterAdmin(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bookshelf/bookshelf-api/internal/core/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:        "64f1c0ffee0ddba11caffe00",
		FirstName: "Alice",
		LastName:  "Lazzeri",
		Email:     "alice@example.com",
		Role:      domain.RoleAdmin,
	}
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	ident, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if ident.SubjectID != "64f1c0ffee0ddba11caffe00" {
		t.Fatalf("unexpected subject: %s", ident.SubjectID)
	}
	if ident.Role != domain.RoleAdmin {
		t.Fatalf("unexpected role: %s", ident.Role)
	}
}

func TestTokenService_Expired(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Move the clock past expiry; signature is still valid.
	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	if _, err := svc.Verify(token); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestTokenService_TamperedClaims(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("expected three segments, got %d", len(parts))
	}

	// Flip one character in the claims segment.
	claims := []byte(parts[1])
	if claims[0] == 'A' {
		claims[0] = 'B'
	} else {
		claims[0] = 'A'
	}
	tampered := parts[0] + "." + string(claims) + "." + parts[2]

	if _, err := svc.Verify(tampered); !errors.Is(err, ErrTamperedToken) {
		t.Fatalf("expected ErrTamperedToken, got %v", err)
	}
}

func TestTokenService_TamperedSignature(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	parts := strings.Split(token, ".")
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, err := svc.Verify(tampered); !errors.Is(err, ErrTamperedToken) {
		t.Fatalf("expected ErrTamperedToken, got %v", err)
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour)
	verifier := NewTokenService("secret-b", time.Hour)

	token, err := issuer.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := verifier.Verify(token); !errors.Is(err, ErrTamperedToken) {
		t.Fatalf("expected ErrTamperedToken, got %v", err)
	}
}

func TestTokenService_GarbageInput(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	if _, err := svc.Verify("not-a-token"); !errors.Is(err, ErrTamperedToken) {
		t.Fatalf("expected ErrTamperedToken, got %v", err)
	}
}

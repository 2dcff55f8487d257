package service

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHasher_VerifyMatch(t *testing.T) {
	h := NewHasher(bcrypt.MinCost, 2)
	ctx := context.Background()

	digest, err := h.Hash(ctx, "s3cretpass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if digest == "s3cretpass" {
		t.Fatalf("digest equals plaintext")
	}

	ok, err := h.Verify(ctx, "s3cretpass", digest)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !ok {
		t.Fatalf("expected match")
	}
}

func TestHasher_VerifyMismatch(t *testing.T) {
	h := NewHasher(bcrypt.MinCost, 2)
	ctx := context.Background()

	digest, err := h.Hash(ctx, "s3cretpass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	ok, err := h.Verify(ctx, "wrongpass", digest)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if ok {
		t.Fatalf("expected mismatch")
	}
}

func TestHasher_DistinctSalts(t *testing.T) {
	h := NewHasher(bcrypt.MinCost, 2)
	ctx := context.Background()

	first, err := h.Hash(ctx, "samepassword")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := h.Hash(ctx, "samepassword")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if first == second {
		t.Fatalf("two hashes of the same plaintext are identical")
	}
}

func TestHasher_MalformedDigest(t *testing.T) {
	h := NewHasher(bcrypt.MinCost, 2)

	if _, err := h.Verify(context.Background(), "whatever", "not-a-bcrypt-digest"); err == nil {
		t.Fatalf("expected error for malformed digest")
	}
}

func TestHasher_CancelledContext(t *testing.T) {
	// Pool of one slot, held by the test, so the call must queue.
	h := NewHasher(bcrypt.MinCost, 1)
	h.slots <- struct{}{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := h.Hash(ctx, "pass"); err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

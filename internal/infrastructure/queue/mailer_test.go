package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/bookshelf/bookshelf-api/internal/core/ports"
)

type recordingSender struct {
	mu   sync.Mutex
	sent []ports.WelcomeMessage
	err  error
	done chan struct{}
}

func newRecordingSender(expect int) *recordingSender {
	return &recordingSender{done: make(chan struct{}, expect)}
}

func (s *recordingSender) Send(_ context.Context, msg ports.WelcomeMessage) error {
	s.mu.Lock()
	s.sent = append(s.sent, msg)
	s.mu.Unlock()
	s.done <- struct{}{}
	return s.err
}

func (s *recordingSender) wait(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-s.done:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for delivery %d of %d", i+1, n)
		}
	}
}

func TestMailQueue_DeliversEnqueuedMessages(t *testing.T) {
	sender := newRecordingSender(2)
	q := NewMailQueue(1, 4, sender, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q.Start(ctx)

	q.Enqueue(ports.WelcomeMessage{To: "alice@example.com", FirstName: "Alice"})
	q.Enqueue(ports.WelcomeMessage{To: "bob@example.com", FirstName: "Bob"})
	sender.wait(t, 2)

	sender.mu.Lock()
	defer sender.mu.Unlock()
	if len(sender.sent) != 2 {
		t.Fatalf("expected 2 deliveries, got %d", len(sender.sent))
	}
	if sender.sent[0].To != "alice@example.com" || sender.sent[1].To != "bob@example.com" {
		t.Fatalf("messages delivered out of order: %+v", sender.sent)
	}
}

// A full buffer must never block the request path.
func TestMailQueue_DropsWhenFull(t *testing.T) {
	sender := newRecordingSender(0)
	q := NewMailQueue(1, 1, sender, zerolog.Nop())
	// Workers never started, so the single buffer slot is all there is.

	q.Enqueue(ports.WelcomeMessage{To: "first@example.com"})

	delivered := make(chan struct{})
	go func() {
		q.Enqueue(ports.WelcomeMessage{To: "overflow@example.com"})
		close(delivered)
	}()

	select {
	case <-delivered:
	case <-time.After(time.Second):
		t.Fatalf("enqueue blocked on a full buffer")
	}
	if len(q.ch) != 1 {
		t.Fatalf("overflow message should have been dropped, buffer holds %d", len(q.ch))
	}
}

func TestMailQueue_SendFailureDoesNotStopWorker(t *testing.T) {
	sender := newRecordingSender(2)
	sender.err = errors.New("smtp: connection refused")
	q := NewMailQueue(1, 4, sender, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q.Start(ctx)

	q.Enqueue(ports.WelcomeMessage{To: "alice@example.com"})
	q.Enqueue(ports.WelcomeMessage{To: "bob@example.com"})
	sender.wait(t, 2)

	sender.mu.Lock()
	defer sender.mu.Unlock()
	if len(sender.sent) != 2 {
		t.Fatalf("worker stopped after a send failure, delivered %d", len(sender.sent))
	}
}

package queue

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/bookshelf/bookshelf-api/internal/api/metrics"
	"github.com/bookshelf/bookshelf-api/internal/core/ports"
)

const (
	defaultWorkers = 2
	defaultBuffer  = 64
)

// MailQueue delivers welcome emails asynchronously on a fixed set of
// workers. Delivery is best-effort: a full queue drops the message and a
// send fault is logged, never propagated to the request that enqueued it.
type MailQueue struct {
	ch     chan ports.WelcomeMessage
	sender ports.Mailer
	log    zerolog.Logger
	nw     int
}

// NewMailQueue creates a MailQueue with numWorkers delivery workers and a
// buffer-sized channel. Defaults apply for non-positive values.
func NewMailQueue(numWorkers, buffer int, sender ports.Mailer, log zerolog.Logger) *MailQueue {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &MailQueue{
		ch:     make(chan ports.WelcomeMessage, buffer),
		sender: sender,
		log:    log,
		nw:     numWorkers,
	}
}

// Start launches all delivery workers. Workers stop when ctx is cancelled.
func (q *MailQueue) Start(ctx context.Context) {
	for i := 0; i < q.nw; i++ {
		go q.runWorker(ctx, i)
	}
}

// Enqueue hands a message to the delivery workers without blocking the
// caller. When the buffer is full the message is dropped.
func (q *MailQueue) Enqueue(msg ports.WelcomeMessage) {
	select {
	case q.ch <- msg:
		metrics.MailEnqueuedTotal.Inc()
	default:
		metrics.MailDroppedTotal.Inc()
		q.log.Warn().
			Str("to", msg.To).
			Msg("mail queue full, welcome email dropped")
	}
}

func (q *MailQueue) runWorker(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-q.ch:
			if !ok {
				return
			}
			if err := q.sender.Send(ctx, msg); err != nil {
				metrics.MailErrorsTotal.Inc()
				q.log.Error().Err(err).
					Str("to", msg.To).
					Int("worker_id", id).
					Msg("welcome email delivery failed")
			}
		}
	}
}

package ports

import "context"

// WelcomeMessage is the payload for the registration email.
type WelcomeMessage struct {
	To        string
	FirstName string
}

// Mailer delivers a single message. Implementations may block on network I/O.
type Mailer interface {
	Send(ctx context.Context, msg WelcomeMessage) error
}

// MailQueue accepts messages for best-effort, asynchronous delivery.
// Enqueue never blocks the caller; a full queue drops the message.
type MailQueue interface {
	Enqueue(msg WelcomeMessage)
}

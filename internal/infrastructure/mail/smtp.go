// Package mail implements the outbound mail port over plain SMTP.
package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/bookshelf/bookshelf-api/internal/core/ports"
)

// Config captures the settings for the SMTP relay.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPSender sends welcome emails through a single SMTP relay.
type SMTPSender struct {
	cfg Config
}

func NewSMTPSender(cfg Config) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

// Send delivers one welcome message. It blocks on network I/O; callers are
// expected to run it from the mail queue workers, not a request path.
func (s *SMTPSender) Send(_ context.Context, msg ports.WelcomeMessage) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	body := welcomeBody(s.cfg.From, msg)
	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{msg.To}, body); err != nil {
		return fmt.Errorf("send welcome mail: %w", err)
	}
	return nil
}

func welcomeBody(from string, msg ports.WelcomeMessage) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: BookShelf <%s>\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	b.WriteString("Subject: Welcome to BookShelf!\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	fmt.Fprintf(&b, "<html><body><p>Hello %s, and welcome to BookShelf!</p>", msg.FirstName)
	b.WriteString("<p>Your registration has been successful. You can now manage your personal library, track your reading progress, and much more.</p>")
	b.WriteString("<p>Happy reading!<br>The BookShelf Team</p></body></html>")
	return []byte(b.String())
}

package mailer

import (
	"context"
	"fmt"
	"net/smtp"
)

// Mailer sends a plaintext message. Implementations must be safe for
// concurrent use by request handlers.
type Mailer interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

// SMTPMailer sends mail through a plain-auth SMTP relay.
type SMTPMailer struct {
	host     string
	port     string
	username string
	password string
}

// Config holds SMTP relay details.
type Config struct {
	Host     string
	Port     string
	Username string
	Password string
}

// NewSMTPMailer creates a new SMTPMailer.
func NewSMTPMailer(cfg Config) (*SMTPMailer, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("SMTP host is required")
	}
	if cfg.Port == "" {
		return nil, fmt.Errorf("SMTP port is required")
	}
	return &SMTPMailer{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.Username,
		password: cfg.Password,
	}, nil
}

// Send delivers a plaintext message via the relay.
func (m *SMTPMailer) Send(ctx context.Context, from, to, subject, body string) error {
	addr := fmt.Sprintf("%s:%s", m.host, m.port)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	msg := []byte(
		"From: " + from + "\r\n" +
			"To: " + to + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/plain; charset=UTF-8\r\n" +
			"\r\n" +
			body,
	)

	if err := smtp.SendMail(addr, auth, from, []string{to}, msg); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}
	return nil
}

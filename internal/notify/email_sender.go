package notify

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	gomail "gopkg.in/mail.v2"
)

// EmailConfig holds SMTP configuration for sending emails.
type EmailConfig struct {
	SMTPServer string
	SMTPPort   int
	SMTPUser   string
	SMTPPass   string
	FromEmail  string
	ToEmail    string
}

type mailDialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailSender delivers messages to a single recipient via SMTP.
type EmailSender struct {
	cfg    EmailConfig
	dialer mailDialer
}

// NewEmailSender creates a sender that requires STARTTLS and authenticates with the
// configured credentials. Failed sends are not retried.
func NewEmailSender(cfg EmailConfig) *EmailSender {
	dialer := gomail.NewDialer(cfg.SMTPServer, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	dialer.Timeout = 10 * time.Second
	dialer.StartTLSPolicy = gomail.MandatoryStartTLS
	dialer.RetryFailure = false

	return &EmailSender{cfg: cfg, dialer: dialer}
}

// Send delivers an email with HTML body and plain text fallback.
func (s *EmailSender) Send(msg *RenderedMessage) error {
	m := s.buildMessage(msg)

	if err := s.dialer.DialAndSend(m); err != nil {
		log.Printf("Email error: failed to send to %s (Subject: %s): %v", s.cfg.ToEmail, msg.Subject, err)
		return fmt.Errorf("failed to send email via %s:%d: %w", s.cfg.SMTPServer, s.cfg.SMTPPort, err)
	}

	log.Printf("Email sent: %s", msg.Subject)
	return nil
}

func (s *EmailSender) buildMessage(msg *RenderedMessage) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.FromEmail)
	m.SetHeader("To", s.cfg.ToEmail)
	m.SetHeader("Subject", msg.Subject)
	m.SetHeader("Message-ID", messageID(s.cfg.FromEmail))

	if msg.HTML != "" && msg.Text != "" {
		m.SetBody("text/plain", msg.Text)
		m.AddAlternative("text/html", msg.HTML)
	} else if msg.HTML != "" {
		m.SetBody("text/html", msg.HTML)
	} else {
		m.SetBody("text/plain", msg.Text)
	}
	return m
}

func messageID(from string) string {
	domain := "localhost"
	if _, d, ok := strings.Cut(from, "@"); ok && d != "" {
		domain = d
	}
	return fmt.Sprintf("<%s@%s>", uuid.NewString(), domain)
}

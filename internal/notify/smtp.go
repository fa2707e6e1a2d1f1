package notify

import (
	"context"
	"fmt"
	"net/smtp"

	"fyno/internal/config"
)

const mimeBoundary = "----=_FynoPart_7d3c1e"

// SMTPSender delivers mail through an authenticated SMTP relay.
type SMTPSender struct {
	cfg      *config.EmailConfig
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPSender creates a sender for the configured relay.
func NewSMTPSender(cfg *config.EmailConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg, sendMail: smtp.SendMail}
}

// Send builds a multipart message with a plain text part and, when present,
// an HTML part.
func (s *SMTPSender) Send(ctx context.Context, msg EmailMessage) error {
	if s.cfg.SMTPHost == "" || s.cfg.Username == "" || s.cfg.Password == "" {
		return fmt.Errorf("notify: smtp not properly configured")
	}
	// net/smtp has no context support; honour cancellation before dialing.
	if err := ctx.Err(); err != nil {
		return err
	}

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.SMTPHost)
	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)
	if err := s.sendMail(addr, auth, s.cfg.FromEmail, []string{msg.To}, s.buildMessage(msg)); err != nil {
		return fmt.Errorf("notify: failed to send email: %w", err)
	}
	return nil
}

func (s *SMTPSender) buildMessage(msg EmailMessage) []byte {
	from := s.cfg.FromEmail
	if s.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.cfg.FromName, s.cfg.FromEmail)
	}

	headers := fmt.Sprintf("From: %s\r\n", from) +
		fmt.Sprintf("To: %s\r\n", msg.To) +
		fmt.Sprintf("Subject: %s\r\n", headerSafe(msg.Subject)) +
		"MIME-Version: 1.0\r\n" +
		fmt.Sprintf("Content-Type: multipart/alternative; boundary=\"%s\"\r\n", mimeBoundary) +
		"\r\n"

	message := headers +
		fmt.Sprintf("--%s\r\n", mimeBoundary) +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		msg.Body + "\r\n"

	if msg.HTML != "" {
		message += fmt.Sprintf("--%s\r\n", mimeBoundary) +
			"Content-Type: text/html; charset=UTF-8\r\n" +
			"\r\n" +
			msg.HTML + "\r\n"
	}

	message += fmt.Sprintf("--%s--\r\n", mimeBoundary)
	return []byte(message)
}

package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog"
)

// Config contains the SMTP connection settings.
type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// Service delivers transactional email over SMTP. When no host is configured
// it logs the message instead, which keeps local development working without
// a mail server.
type Service struct {
	cfg    Config
	logger zerolog.Logger
}

// New constructs the mail service.
func New(cfg Config, logger zerolog.Logger) *Service {
	return &Service{
		cfg:    cfg,
		logger: logger.With().Str("component", "mailer").Logger(),
	}
}

// Send delivers a plain-text message to a single recipient.
func (s *Service) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if s.cfg.Host == "" {
		s.logger.Info().
			Str("to", to).
			Str("subject", subject).
			Str("body", body).
			Msg("smtp not configured, logging email instead")
		return nil
	}

	from := s.cfg.From
	if from == "" {
		from = s.cfg.Username
	}

	message := strings.Join([]string{
		fmt.Sprintf("From: %s", from),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%s", s.cfg.Host, s.cfg.Port)

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, from, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Debug().Str("to", to).Str("subject", subject).Msg("email sent")

	return nil
}

package mailer

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"storefront/internal/config"
)

// ErrNotConfigured is returned when a transport lacks required settings.
var ErrNotConfigured = errors.New("mailer not configured")

// Mailer sends a single email with plain-text and HTML alternatives.
type Mailer interface {
	Send(ctx context.Context, to, subject, text, html string) (messageID string, err error)
}

// New selects a transport from cfg.Mailer: "ses", "smtp" or "log".
func New(ctx context.Context, cfg *config.Config) (Mailer, error) {
	switch cfg.Mailer {
	case "ses":
		return NewSES(ctx, cfg.AWSRegion, cfg.MailFrom)
	case "smtp":
		return NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom), nil
	case "log", "":
		return NewLogMailer(), nil
	default:
		return nil, fmt.Errorf("unknown mailer %q", cfg.Mailer)
	}
}

// LogMailer writes the envelope to the process log instead of delivering.
// Bodies are omitted since they can carry one-time codes.
type LogMailer struct{}

// NewLogMailer creates a LogMailer.
func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

func (m *LogMailer) Send(ctx context.Context, to, subject, text, html string) (string, error) {
	id := uuid.NewString()
	log.Printf("[mailer] to=%s subject=%q message_id=%s", to, subject, id)
	return id, nil
}

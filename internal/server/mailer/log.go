package mailer

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// LogSender is used when no SMTP relay is configured.
// It logs the recipient and subject only; bodies carry reset tokens.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a sender that only logs
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send logs the message envelope
func (s *LogSender) Send(ctx context.Context, msg Message) (string, error) {
	if msg.To == "" {
		return "", ErrNoRecipient
	}

	id := uuid.New().String()
	s.logger.WarnContext(ctx, "SMTP not configured, email not delivered",
		slog.String("message_id", id),
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
	)

	return id, nil
}

package mailer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wneessen/go-mail"
)

// SMTPConfig настройки почтового релея
type SMTPConfig struct {
	Host     string
	Username string
	Password string
	From     string
	Port     int
	Timeout  time.Duration
}

// SMTPSender sends mail through an SMTP relay
type SMTPSender struct {
	dial func(ctx context.Context, msg *mail.Msg) error
	cfg  SMTPConfig
}

// NewSMTPSender creates a sender; the connection is opened per message
func NewSMTPSender(cfg SMTPConfig) (*SMTPSender, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTimeout(cfg.Timeout),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}

	return &SMTPSender{
		cfg: cfg,
		dial: func(ctx context.Context, msg *mail.Msg) error {
			return client.DialAndSendWithContext(ctx, msg)
		},
	}, nil
}

// Send builds and delivers a message
func (s *SMTPSender) Send(ctx context.Context, msg Message) (string, error) {
	m, id, err := s.build(msg)
	if err != nil {
		return "", err
	}

	if err := s.dial(ctx, m); err != nil {
		return "", fmt.Errorf("failed to send mail: %w", err)
	}

	return id, nil
}

func (s *SMTPSender) build(msg Message) (*mail.Msg, string, error) {
	if strings.TrimSpace(msg.To) == "" {
		return nil, "", ErrNoRecipient
	}

	m := mail.NewMsg()
	if err := m.From(s.cfg.From); err != nil {
		return nil, "", fmt.Errorf("invalid from address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, "", fmt.Errorf("invalid recipient: %w", err)
	}

	id := fmt.Sprintf("<%s@%s>", uuid.New().String(), s.domain())
	m.SetGenHeader(mail.HeaderMessageID, id)
	m.Subject(msg.Subject)
	m.SetDate()

	m.SetBodyString(mail.TypeTextPlain, msg.Text)
	if msg.HTML != "" {
		m.AddAlternativeString(mail.TypeTextHTML, msg.HTML)
	}

	return m, id, nil
}

// domain берет домен отправителя для Message-ID
func (s *SMTPSender) domain() string {
	if _, domain, ok := strings.Cut(s.cfg.From, "@"); ok {
		return strings.Trim(domain, "> ")
	}
	return s.cfg.Host
}

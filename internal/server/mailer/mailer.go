// Package mailer delivers transactional email.
package mailer

import (
	"context"
	"errors"
)

// ErrNoRecipient is returned for a message without recipient
var ErrNoRecipient = errors.New("message has no recipient")

// Message is a single email with plain text and optional HTML body
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Sender delivers one message and returns its Message-ID
type Sender interface {
	Send(ctx context.Context, msg Message) (string, error)
}

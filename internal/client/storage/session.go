package storage

import (
	"context"
	"time"

	"github.com/capsort/capsort/pkg/api"
)

// Portal через какой вход была получена сессия
type Portal string

const (
	PortalStudent Portal = "student"
	PortalAdmin   Portal = "admin"
)

// SessionStorage defines interface for storing the CLI session on client.
// Хранится одна сессия: новая перезаписывает предыдущую.
type SessionStorage interface {
	// SaveSession stores the session, replacing any previous one
	SaveSession(ctx context.Context, session *Session) error

	// GetSession returns ErrSessionNotFound if nobody is logged in
	GetSession(ctx context.Context) (*Session, error)

	// DeleteSession removes stored session (logout)
	DeleteSession(ctx context.Context) error
}

// Session represents a logged-in session as stored on disk
type Session struct {
	ExpiresAt time.Time `json:"expires_at"`
	SavedAt   time.Time `json:"saved_at"`
	Server    string    `json:"server"`
	Token     string    `json:"token"`
	Portal    Portal    `json:"portal"`
	User      api.User  `json:"user"`
}

// Expired сообщает, истек ли токен к моменту now
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

package cli

import (
	"context"
	"errors"
	"time"

	"github.com/capsort/capsort/internal/client/auth"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Session Status ===")
	c.io.Println()

	session, err := c.authService.Current(ctx)
	if err != nil && !errors.Is(err, auth.ErrSessionExpired) {
		if errors.Is(err, auth.ErrNotLoggedIn) {
			c.io.Println("Status: Not authenticated")
			c.io.Println()
			c.io.Println("Run 'capsort login' to authenticate.")
			return nil
		}
		return err
	}

	u := session.User
	c.io.Println("Status: Authenticated")
	c.io.Printf("Server:  %s\n", session.Server)
	c.io.Printf("Portal:  %s\n", session.Portal)
	c.io.Printf("User:    %s\n", describeUser(u.ID, u.FullName, u.Email, u.Role))
	c.io.Printf("Expires: %s\n", session.ExpiresAt.Local().Format(time.RFC3339))

	if err != nil {
		c.io.Println("⚠️  Token has expired. Please login again.")
		return nil
	}

	remaining := time.Until(session.ExpiresAt)
	c.io.Printf("Time remaining: %s\n", remaining.Round(time.Second))

	return nil
}

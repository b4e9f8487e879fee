package cli

import (
	"context"
	"time"

	"github.com/capsort/capsort/internal/client/storage"
)

func (c *Cli) runLogin(ctx context.Context, admin bool) error {
	portal := storage.PortalStudent
	title := "=== Student Login ==="
	if admin {
		portal = storage.PortalAdmin
		title = "=== Admin Login ==="
	}

	c.io.Println(title)
	c.io.Println()

	email, err := c.readRequired("Email: ", "email")
	if err != nil {
		return err
	}

	password, _, err := c.getPassword("Password: ")
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("Authenticating...")

	session, err := c.authService.Login(ctx, portal, email, password)
	if err != nil {
		return err
	}

	u := session.User
	c.io.Println()
	c.io.Println("✓ Login successful!")
	c.io.Printf("User:    %s\n", describeUser(u.ID, u.FullName, u.Email, u.Role))
	c.io.Printf("Expires: %s\n", session.ExpiresAt.Local().Format(time.RFC3339))
	c.io.Println()
	c.io.Println("Your session has been saved.")

	return nil
}

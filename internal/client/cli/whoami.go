package cli

import (
	"context"
	"errors"

	"github.com/capsort/capsort/internal/client/auth"
)

func (c *Cli) runWhoAmI(ctx context.Context) error {
	user, err := c.authService.WhoAmI(ctx)
	switch {
	case errors.Is(err, auth.ErrNotLoggedIn):
		c.io.Println("Not logged in. Run 'capsort login' first.")
		return err
	case errors.Is(err, auth.ErrSessionExpired), errors.Is(err, auth.ErrSessionRejected):
		c.io.Println("⚠️  Your session is no longer valid. Please login again.")
		return err
	case err != nil:
		return err
	}

	c.io.Println(describeUser(user.ID, user.FullName, user.Email, user.Role))
	c.io.Printf("Contact: %s\n", user.ContactNumber)

	return nil
}

package cli

import (
	"context"

	"github.com/capsort/capsort/internal/apperr"
	clientapi "github.com/capsort/capsort/internal/client/api"
)

func (c *Cli) runForgotPassword(ctx context.Context) error {
	c.io.Println("=== Forgot Password ===")
	c.io.Println()

	email, err := c.readRequired("Email: ", "email")
	if err != nil {
		return err
	}

	msg, err := c.authService.ForgotPassword(ctx, email)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println(msg)
	c.io.Println("Then run 'capsort reset-password <token>' with the token from the link.")

	return nil
}

func (c *Cli) runResetPassword(ctx context.Context, args []string) error {
	c.io.Println("=== Reset Password ===")
	c.io.Println()

	var token string
	if len(args) > 0 {
		token = args[0]
	} else {
		var err error
		if token, err = c.readRequired("Reset token: ", "token"); err != nil {
			return err
		}
	}

	password, err := c.getNewPassword("New password: ")
	if err != nil {
		return err
	}

	msg, err := c.authService.ResetPassword(ctx, token, password)
	if err != nil {
		if clientapi.KindOf(err) == apperr.KindInvalidToken.String() {
			c.io.Println("The reset token is no longer valid. Run 'capsort forgot-password' to request a new one.")
		}
		return err
	}

	c.io.Println()
	c.io.Println("✓ " + msg)
	c.io.Println("Run 'capsort login' with your new password.")

	return nil
}

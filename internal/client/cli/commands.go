package cli

import (
	"context"
	"fmt"
)

// ErrUnknownCommand команда не распознана
type ErrUnknownCommand string

func (e ErrUnknownCommand) Error() string {
	return fmt.Sprintf("unknown command: %s", string(e))
}

// Run выполняет команду; args не включают саму команду
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return c.runRegister(ctx)
	case "login":
		return c.runLogin(ctx, false)
	case "admin-login":
		return c.runLogin(ctx, true)
	case "whoami":
		return c.runWhoAmI(ctx)
	case "status":
		return c.runStatus(ctx)
	case "logout":
		return c.runLogout(ctx)
	case "forgot-password":
		return c.runForgotPassword(ctx)
	case "reset-password":
		return c.runResetPassword(ctx, args)
	default:
		return ErrUnknownCommand(command)
	}
}

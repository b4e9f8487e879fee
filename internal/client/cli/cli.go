package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/capsort/capsort/internal/client/auth"
	"github.com/capsort/capsort/internal/client/iocli"
)

// PasswordEnv переменная окружения с паролем для неинтерактивного запуска
const PasswordEnv = "CAPSORT_PASSWORD"

// Passwords источники пароля помимо интерактивного ввода
type Passwords struct {
	FromFile string
}

type Cli struct {
	io          iocli.IO
	authService auth.Service
	passwords   Passwords
}

func New(io iocli.IO, authService auth.Service, passwords Passwords) *Cli {
	return &Cli{
		io:          io,
		authService: authService,
		passwords:   passwords,
	}
}

// getPassword retrieves password from various sources with priority:
// 1. Environment variable CAPSORT_PASSWORD
// 2. File specified with --password-file
// 3. Interactive prompt (fallback)
// fromPrompt сообщает, был ли пароль введен интерактивно.
func (c *Cli) getPassword(prompt string) (password string, fromPrompt bool, err error) {
	if envPassword := os.Getenv(PasswordEnv); envPassword != "" {
		return envPassword, false, nil
	}

	if c.passwords.FromFile != "" {
		content, err := os.ReadFile(c.passwords.FromFile)
		if err != nil {
			return "", false, fmt.Errorf("failed to read password file: %w", err)
		}
		// Убираем trailing newline
		password := strings.TrimRight(string(content), "\r\n")
		if password == "" {
			return "", false, fmt.Errorf("password file is empty")
		}
		return password, false, nil
	}

	password, err = c.io.ReadPassword(prompt)
	if err != nil {
		return "", true, fmt.Errorf("failed to read password: %w", err)
	}
	if password == "" {
		return "", true, fmt.Errorf("password cannot be empty")
	}

	return password, true, nil
}

// getNewPassword запрашивает новый пароль с подтверждением при интерактивном вводе
func (c *Cli) getNewPassword(prompt string) (string, error) {
	password, fromPrompt, err := c.getPassword(prompt)
	if err != nil {
		return "", err
	}
	if !fromPrompt {
		return password, nil
	}

	confirm, err := c.io.ReadPassword("Confirm password: ")
	if err != nil {
		return "", fmt.Errorf("failed to read confirmation: %w", err)
	}
	if password != confirm {
		return "", fmt.Errorf("passwords do not match")
	}

	return password, nil
}

// readRequired запрашивает непустое значение
func (c *Cli) readRequired(prompt, name string) (string, error) {
	value, err := c.io.ReadInput(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%s cannot be empty", name)
	}
	return value, nil
}

func PrintUsage(out iocli.IO) {
	out.Println("Capsort Client")
	out.Println()
	out.Println("Usage:")
	out.Println("  capsort [OPTIONS] COMMAND [ARGS]")
	out.Println()
	out.Println("Options:")
	out.Println("  --version              Show version information")
	out.Println("  --server URL           Server URL (default: http://localhost:5000)")
	out.Println("  --db PATH              Path to local session database (default: capsort-client.db)")
	out.Println("  --password-file PATH   Path to file containing the password")
	out.Println()
	out.Println("Password Priority (highest to lowest):")
	out.Println("  1. " + PasswordEnv + " environment variable")
	out.Println("  2. --password-file (file path)")
	out.Println("  3. Interactive prompt (fallback)")
	out.Println()
	out.Println("Commands:")
	out.Println("  register                Register a student account")
	out.Println("  login                   Login through the student portal")
	out.Println("  admin-login             Login through the admin portal")
	out.Println("  whoami                  Show the current user as seen by the server")
	out.Println("  status                  Show local session status")
	out.Println("  logout                  Delete the local session")
	out.Println("  forgot-password         Request a password reset email")
	out.Println("  reset-password [TOKEN]  Set a new password using the emailed token")
	out.Println()
	out.Println("Examples:")
	out.Println("  capsort register")
	out.Println("  capsort login")
	out.Println("  " + PasswordEnv + "='S3cret' capsort --server https://capsort.example.edu admin-login")
	out.Println("  capsort reset-password eyJhbGciOiJIUzI1NiIs...")
}

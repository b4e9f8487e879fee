package cli

import (
	"context"
	"fmt"

	pkgapi "github.com/capsort/capsort/pkg/api"
)

func (c *Cli) runRegister(ctx context.Context) error {
	c.io.Println("=== Student Registration ===")
	c.io.Println()

	fullName, err := c.readRequired("Full name: ", "full name")
	if err != nil {
		return err
	}

	contact, err := c.readRequired("Contact number: ", "contact number")
	if err != nil {
		return err
	}

	email, err := c.readRequired("Email: ", "email")
	if err != nil {
		return err
	}

	password, err := c.getNewPassword("Password (min 6 chars, upper, lower and digit): ")
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("Registering...")

	user, err := c.authService.Register(ctx, pkgapi.RegisterRequest{
		FullName:      fullName,
		ContactNumber: contact,
		Email:         email,
		Password:      password,
	})
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Registration successful!")
	c.io.Printf("User ID: %d\n", user.ID)
	c.io.Printf("Name:    %s\n", user.FullName)
	c.io.Printf("Email:   %s\n", user.Email)
	c.io.Println()
	c.io.Println("Run 'capsort login' to start using the archive.")

	return nil
}

// describeUser форматирует пользователя для вывода
func describeUser(id int64, fullName, email, role string) string {
	return fmt.Sprintf("%s <%s> (id %d, %s)", fullName, email, id, role)
}

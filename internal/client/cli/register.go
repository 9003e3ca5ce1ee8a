package cli

import (
	"context"
	"fmt"
)

// usernameArg возвращает username из аргументов или запрашивает его
func (c *Cli) usernameArg(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	username, err := c.io.ReadInput("Username: ")
	if err != nil {
		return "", fmt.Errorf("failed to read username: %w", err)
	}
	return username, nil
}

func (c *Cli) runRegister(ctx context.Context, args []string) error {
	c.io.Println("=== Registration ===")
	c.io.Println()

	username, err := c.usernameArg(args)
	if err != nil {
		return err
	}

	password, err := c.getPassword("Password (min 10 chars): ", true)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("Registering user...")

	result, err := c.authService.Register(ctx, username, password)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Registration successful!")
	c.io.Printf("User ID: %s\n", result.UserID)
	c.io.Printf("Username: %s\n", result.Username)
	c.io.Println()
	c.io.Println("Please run 'fieldkeeper login' to start using the service.")

	return nil
}

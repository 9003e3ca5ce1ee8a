package cli

import (
	"context"
	"time"
)

func (c *Cli) runLogin(ctx context.Context, args []string) error {
	c.io.Println("=== Login ===")
	c.io.Println()

	username, err := c.usernameArg(args)
	if err != nil {
		return err
	}

	password, err := c.getPassword("Password: ", false)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("Authenticating...")

	result, err := c.authService.Login(ctx, username, password)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Login successful!")
	c.io.Printf("Username: %s\n", result.Username)
	c.io.Printf("Access token expires: %s\n", result.ExpiresAt.Local().Format(time.RFC3339))

	if pending := c.outbox.PendingCount(); pending > 0 {
		c.io.Println()
		c.io.Printf("%d action(s) recorded offline are waiting. Run 'fieldkeeper sync' to send them.\n", pending)
	}

	return nil
}

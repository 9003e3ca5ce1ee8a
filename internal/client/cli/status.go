package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/fieldkeeper/internal/client/auth"
	"github.com/iudanet/fieldkeeper/internal/client/netmon"
	"github.com/iudanet/fieldkeeper/internal/models"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Status ===")
	c.io.Println()

	authData, err := c.authService.Current(ctx)
	switch {
	case errors.Is(err, auth.ErrNotAuthenticated):
		c.io.Println("Session: Not authenticated")
		c.io.Println("Run 'fieldkeeper login' to authenticate.")
	case err != nil:
		return fmt.Errorf("failed to check authentication: %w", err)
	default:
		expiresAt := time.Unix(authData.ExpiresAt, 0)
		c.io.Println("Session: Authenticated")
		c.io.Printf("Username: %s\n", authData.Username)
		c.io.Printf("Token expires: %s\n", expiresAt.Format(time.RFC3339))
		if authData.RefreshExpiresAt > 0 && time.Now().Unix() >= authData.RefreshExpiresAt {
			c.io.Println("⚠️  Session has expired. Please login again.")
		}
	}

	c.io.Println()
	if netmon.Online(c.connectivity.Check(ctx)) {
		c.io.Println("Network: online")
	} else {
		c.io.Println("Network: offline")
	}

	session := c.outbox.Session()
	if session.HasSynced() {
		c.io.Printf("Last sync: %s\n", session.LastSyncTime.Local().Format(time.RFC3339))
	} else {
		c.io.Println("Last sync: never")
	}
	c.io.Printf("Data version: %d\n", session.DataVersion)

	pending := c.outbox.PendingCount()
	failed := len(c.outbox.List(models.StatusFailed))

	c.io.Println()
	if pending == 0 && failed == 0 {
		c.io.Println("✓ All actions synchronized with server")
		return nil
	}
	if pending > 0 {
		c.io.Printf("⚠️  Pending: %d action(s) waiting to be sent\n", pending)
		c.io.Println("Run 'fieldkeeper sync' to send them.")
	}
	if failed > 0 {
		c.io.Printf("✗ Failed: %d action(s) exhausted their retries\n", failed)
		c.io.Println("Run 'fieldkeeper queue failed' to inspect them.")
	}

	return nil
}

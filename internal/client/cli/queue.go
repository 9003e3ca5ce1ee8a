package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/fieldkeeper/internal/models"
)

func (c *Cli) runQueue(ctx context.Context, args []string) error {
	filter := "all"
	if len(args) > 0 {
		filter = args[0]
	}

	var statuses []models.Status
	switch filter {
	case "all":
	case "pending", "failed", "completed":
		statuses = []models.Status{models.Status(filter)}
	case "remove", "rm":
		return c.runQueueRemove(ctx, args[1:])
	default:
		return fmt.Errorf("%w: unknown queue filter %q. Use: all, pending, failed, completed or remove", ErrUsage, filter)
	}

	c.io.Printf("=== Queued Actions (%s) ===\n", filter)
	c.io.Println()

	actions := c.outbox.List(statuses...)
	if len(actions) == 0 {
		c.io.Println("Queue is empty.")
		return nil
	}

	c.io.Printf("Found %d action(s):\n\n", len(actions))
	for _, action := range actions {
		if err := c.render("action", struct{ Action models.Action }{action}); err != nil {
			return err
		}
	}

	return nil
}

func (c *Cli) runQueueRemove(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing action id. Usage: fieldkeeper queue remove <action-id>", ErrUsage)
	}

	if !c.outbox.Remove(ctx, args[0]) {
		return fmt.Errorf("action %s not found in queue", args[0])
	}

	c.io.Printf("✓ Action %s removed from queue\n", args[0])
	return nil
}

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/iudanet/fieldkeeper/internal/client/netmon"
	"github.com/iudanet/fieldkeeper/internal/models"
)

func (c *Cli) runSync(ctx context.Context) error {
	c.io.Println("=== Synchronization ===")
	c.io.Println()

	before := c.outbox.List(models.StatusPending)

	state := c.connectivity.Check(ctx)
	if !netmon.Online(state) {
		c.outbox.RecordOnlineStatus(false)
		c.io.Println("Server is not reachable, staying offline.")
		c.io.Printf("%d action(s) stay queued and will be sent once the connection is back.\n", len(before))
		return nil
	}

	c.io.Printf("Sending %d queued action(s)...\n", len(before))

	// online фиксируется без фонового прохода: единственный проход делает
	// SyncData, иначе каждое падающее действие тратило бы две попытки
	c.outbox.RecordOnlineStatus(true)
	result := c.outbox.SyncData(ctx)

	sent := 0
	for _, action := range before {
		if _, still := findAction(c.outbox.List(), action.ID); !still {
			sent++
		}
	}
	pending := c.outbox.PendingCount()
	failed := c.outbox.List(models.StatusFailed)

	c.io.Println()
	c.io.Printf("Sent:          %d\n", sent)
	c.io.Printf("Still pending: %d\n", pending)
	c.io.Printf("Failed:        %d\n", len(failed))
	c.io.Printf("Data version:  %d\n", result.DataVersion)

	for _, f := range result.Failures {
		c.io.Printf("  ✗ %s (%s), attempt %d: %v\n", f.ActionID, f.Kind, f.Attempt, f.Err)
	}

	c.io.Println()
	switch {
	case pending == 0 && len(failed) == 0:
		c.io.Println("✓ All actions synchronized with server")
	case len(failed) > 0:
		c.io.Println("Some actions exhausted their retries. Inspect them with 'fieldkeeper queue failed'.")
	default:
		c.io.Println("Some actions will be retried on the next sync.")
	}

	return nil
}

func findAction(actions []models.Action, id string) (models.Action, bool) {
	for _, a := range actions {
		if a.ID == id {
			return a, true
		}
	}
	return models.Action{}, false
}

func (c *Cli) runWatch(ctx context.Context) error {
	c.io.Println("=== Watch ===")
	c.io.Printf("Watching connectivity, %d action(s) queued. Press Ctrl+C to stop.\n", c.outbox.PendingCount())

	started := time.Now()
	if err := c.watcher.Watch(ctx); err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}

	c.io.Println()
	c.io.Printf("Stopped after %s. Pending actions: %d\n",
		time.Since(started).Round(time.Second), c.outbox.PendingCount())
	return nil
}

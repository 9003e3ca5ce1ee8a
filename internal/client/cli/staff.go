package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/iudanet/fieldkeeper/internal/client/data"
	"github.com/iudanet/fieldkeeper/internal/models"
)

func (c *Cli) runStaff(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing subcommand. Usage: fieldkeeper staff <add|update|list>", ErrUsage)
	}

	switch args[0] {
	case "add":
		return c.runStaffAdd(ctx, args[1:])
	case "update", "edit":
		return c.runStaffUpdate(ctx, args[1:])
	case "list", "ls":
		return c.runStaffList(ctx)
	default:
		return fmt.Errorf("%w: unknown staff subcommand %q. Use: add, update or list", ErrUsage, args[0])
	}
}

func staffFlags(fs *flag.FlagSet, staff *models.StaffRecord) {
	fs.StringVar(&staff.FullName, "name", staff.FullName, "full name")
	fs.StringVar(&staff.Role, "role", staff.Role, "role on site")
	fs.StringVar(&staff.Phone, "phone", staff.Phone, "contact phone")
}

func (c *Cli) runStaffAdd(ctx context.Context, args []string) error {
	var staff models.StaffRecord

	fs := c.newFlagSet("staff add")
	fs.StringVar(&staff.ID, "id", "", "record id (generated when empty)")
	staffFlags(fs, &staff)
	if _, err := parseFlags(fs, args); err != nil {
		return err
	}

	if staff.FullName == "" {
		name, err := c.io.ReadInput("Full name: ")
		if err != nil {
			return fmt.Errorf("failed to read name: %w", err)
		}
		staff.FullName = name
	}

	actionID, err := c.dataService.AddStaff(ctx, &staff)
	if err != nil {
		return err
	}

	c.io.Printf("✓ Staff record %s queued (action %s)\n", staff.ID, actionID)
	c.printQueued()
	return nil
}

// runStaffUpdate меняет только переданные поля, остальные берутся из текущего представления
func (c *Cli) runStaffUpdate(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing staff id. Usage: fieldkeeper staff update <id> [--name N] [--role R] [--phone P]", ErrUsage)
	}
	id := args[0]

	entries, err := c.dataService.ListStaff(ctx)
	if err != nil {
		return fmt.Errorf("failed to load staff: %w", err)
	}

	var staff *models.StaffRecord
	for i := range entries {
		if entries[i].Staff.ID == id {
			staff = &entries[i].Staff
			break
		}
	}
	if staff == nil {
		return fmt.Errorf("staff record %s not found. Run 'fieldkeeper resync' to refresh the local view", id)
	}

	fs := c.newFlagSet("staff update")
	staffFlags(fs, staff)
	if _, err := parseFlags(fs, args[1:]); err != nil {
		return err
	}

	actionID, err := c.dataService.UpdateStaff(ctx, staff)
	if err != nil {
		return err
	}

	c.io.Printf("✓ Update of staff record %s queued (action %s)\n", staff.ID, actionID)
	c.printQueued()
	return nil
}

func (c *Cli) runStaffList(ctx context.Context) error {
	c.io.Println("=== Field Staff ===")
	c.io.Println()

	staff, err := c.dataService.ListStaff(ctx)
	if err != nil {
		return fmt.Errorf("failed to list staff: %w", err)
	}

	if len(staff) == 0 {
		c.io.Println("No staff records found.")
		c.io.Println()
		c.io.Println("Use 'fieldkeeper staff add' to add one.")
		return nil
	}

	c.io.Printf("Found %d staff record(s):\n\n", len(staff))
	for i, entry := range staff {
		if err := c.render("staff", struct {
			data.StaffEntry
			Index int
		}{entry, i + 1}); err != nil {
			return err
		}
	}

	return nil
}

func (c *Cli) runResync(ctx context.Context, args []string) error {
	var reason string

	fs := c.newFlagSet("resync")
	fs.StringVar(&reason, "reason", "", "why a full refresh is requested")
	if _, err := parseFlags(fs, args); err != nil {
		return err
	}

	actionID, err := c.dataService.RequestResync(ctx, reason)
	if err != nil {
		return err
	}

	c.io.Printf("✓ Full resync queued (action %s)\n", actionID)
	c.printQueued()
	return nil
}

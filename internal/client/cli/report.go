package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/iudanet/fieldkeeper/internal/client/data"
	"github.com/iudanet/fieldkeeper/internal/models"
)

func (c *Cli) runReport(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing subcommand. Usage: fieldkeeper report <submit|delete|list>", ErrUsage)
	}

	switch args[0] {
	case "submit", "add":
		return c.runReportSubmit(ctx, args[1:])
	case "delete", "rm":
		return c.runReportDelete(ctx, args[1:])
	case "list", "ls":
		return c.runReportList(ctx)
	default:
		return fmt.Errorf("%w: unknown report subcommand %q. Use: submit, delete or list", ErrUsage, args[0])
	}
}

func (c *Cli) runReportSubmit(ctx context.Context, args []string) error {
	var (
		report     models.Report
		capturedAt string
	)

	fs := c.newFlagSet("report submit")
	fs.StringVar(&report.ID, "id", "", "report id (generated when empty)")
	fs.StringVar(&report.Title, "title", "", "report title")
	fs.StringVar(&report.Site, "site", "", "site name")
	fs.StringVar(&report.Notes, "notes", "", "free-text notes")
	fs.StringVar(&report.Author, "author", "", "author name")
	fs.StringVar(&report.Signature, "signature", "", "signature data")
	fs.StringVar(&capturedAt, "captured-at", "", "capture time in RFC3339 (default now)")
	if _, err := parseFlags(fs, args); err != nil {
		return err
	}

	if capturedAt != "" {
		t, err := time.Parse(time.RFC3339, capturedAt)
		if err != nil {
			return fmt.Errorf("%w: invalid --captured-at: %w", ErrUsage, err)
		}
		report.CapturedAt = t.UTC()
	}

	// интерактивный ввод обязательных полей
	if report.Title == "" {
		title, err := c.io.ReadInput("Title: ")
		if err != nil {
			return fmt.Errorf("failed to read title: %w", err)
		}
		report.Title = title
	}
	if report.Site == "" {
		site, err := c.io.ReadInput("Site: ")
		if err != nil {
			return fmt.Errorf("failed to read site: %w", err)
		}
		report.Site = site
	}

	actionID, err := c.dataService.SubmitReport(ctx, &report)
	if err != nil {
		return err
	}

	c.io.Printf("✓ Report %s queued (action %s)\n", report.ID, actionID)
	c.printQueued()
	return nil
}

func (c *Cli) runReportDelete(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing report id. Usage: fieldkeeper report delete <id>", ErrUsage)
	}

	actionID, err := c.dataService.DeleteReport(ctx, args[0])
	if err != nil {
		return err
	}

	c.io.Printf("✓ Deletion of report %s queued (action %s)\n", args[0], actionID)
	c.printQueued()
	return nil
}

func (c *Cli) runReportList(ctx context.Context) error {
	c.io.Println("=== Field Reports ===")
	c.io.Println()

	reports, err := c.dataService.ListReports(ctx)
	if err != nil {
		return fmt.Errorf("failed to list reports: %w", err)
	}

	if len(reports) == 0 {
		c.io.Println("No reports found.")
		c.io.Println()
		c.io.Println("Use 'fieldkeeper report submit' to record one, or 'fieldkeeper resync' to fetch from server.")
		return nil
	}

	c.io.Printf("Found %d report(s):\n\n", len(reports))
	for i, entry := range reports {
		if err := c.render("report", struct {
			data.ReportEntry
			Index int
		}{entry, i + 1}); err != nil {
			return err
		}
	}

	return nil
}

// printQueued напоминает о неотправленных действиях
func (c *Cli) printQueued() {
	c.io.Printf("Pending actions: %d. Run 'fieldkeeper sync' to send them.\n", c.outbox.PendingCount())
}

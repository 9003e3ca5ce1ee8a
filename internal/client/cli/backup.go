package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/iudanet/fieldkeeper/internal/client/snapshot"
)

func (c *Cli) runExport(ctx context.Context, args []string) error {
	var (
		out     string
		encrypt bool
	)

	fs := c.newFlagSet("export")
	fs.StringVar(&out, "out", "", "output file (default stdout)")
	fs.BoolVar(&encrypt, "encrypt", false, "seal the export with a passphrase")
	if _, err := parseFlags(fs, args); err != nil {
		return err
	}

	doc, err := c.outbox.ExportSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	var raw []byte
	if encrypt {
		passphrase, err := c.getPassphrase(true)
		if err != nil {
			return err
		}
		raw, err = snapshot.Seal(doc, passphrase)
		if err != nil {
			return fmt.Errorf("failed to seal export: %w", err)
		}
	} else {
		raw, err = snapshot.Encode(doc)
		if err != nil {
			return err
		}
	}

	if out == "" {
		if _, err := c.io.Write(raw); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		c.io.Println()
		return nil
	}

	if err := os.WriteFile(out, raw, 0o600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	c.io.Printf("✓ Exported %d key(s) to %s\n", len(doc.Data), out)
	if !encrypt {
		c.io.Println("⚠️  The export is not encrypted: queued actions and cached records are stored as plain JSON.")
	}
	return nil
}

func (c *Cli) runImport(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing file. Usage: fieldkeeper import <file>", ErrUsage)
	}

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	var doc *snapshot.Document
	if snapshot.IsSealed(raw) {
		passphrase, err := c.getPassphrase(false)
		if err != nil {
			return err
		}
		doc, err = snapshot.Open(raw, passphrase)
		if err != nil {
			return err
		}
	} else {
		doc, err = snapshot.Decode(raw)
		if err != nil {
			return err
		}
	}

	if err := c.outbox.ImportSnapshot(ctx, doc); err != nil {
		if errors.Is(err, snapshot.ErrImportPartial) {
			return fmt.Errorf("%w. Local data may be incomplete, retry the import", err)
		}
		return fmt.Errorf("import failed: %w", err)
	}

	c.io.Printf("✓ Imported %d key(s) exported at %s\n", len(doc.Data), formatTime(doc.ExportedAt))
	c.io.Printf("Pending actions: %d\n", c.outbox.PendingCount())
	return nil
}

func (c *Cli) runClear(ctx context.Context, args []string) error {
	var yes bool

	fs := c.newFlagSet("clear")
	fs.BoolVar(&yes, "yes", false, "do not ask for confirmation")
	if _, err := parseFlags(fs, args); err != nil {
		return err
	}

	if pending := c.outbox.PendingCount(); pending > 0 {
		c.io.Printf("⚠️  %d action(s) have not been sent yet and will be lost.\n", pending)
	}

	if !yes {
		answer, err := c.io.ReadInput("Type 'yes' to delete all local offline data: ")
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !strings.EqualFold(answer, "yes") {
			c.io.Println("Aborted.")
			return nil
		}
	}

	if err := c.outbox.ClearAll(ctx); err != nil {
		return err
	}

	c.io.Println("✓ Local offline data cleared")
	return nil
}

func (c *Cli) runSize(ctx context.Context) error {
	size, err := c.outbox.ApproximateSize(ctx)
	if err != nil {
		return fmt.Errorf("failed to compute size: %w", err)
	}

	c.io.Printf("Local data: %s (%d bytes)\n", formatSize(size), size)
	return nil
}

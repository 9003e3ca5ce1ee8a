package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/fieldkeeper/internal/client/snapshot"
	"github.com/iudanet/fieldkeeper/internal/client/storage"
)

func testDocument() *snapshot.Document {
	return &snapshot.Document{
		Version:     snapshot.FormatVersion,
		ExportedAt:  time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC),
		DataVersion: 3,
		Data: map[string]string{
			storage.KeyPendingActions: `[]`,
			storage.KeyDataVersion:    "3",
		},
	}
}

func TestExport_PlainToStdout(t *testing.T) {
	f := newFixture(t)
	f.outbox.ExportSnapshotFunc = func(ctx context.Context) (*snapshot.Document, error) {
		return testDocument(), nil
	}

	require.NoError(t, f.run("export"))

	doc, err := snapshot.Decode([]byte(f.out.String()))
	require.NoError(t, err)
	assert.Equal(t, testDocument().Data, doc.Data)
}

func TestExport_EncryptedToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "backup.json")
	f := newFixture(t)
	f.env[EnvBackupPassphrase] = "correct horse battery"
	f.outbox.ExportSnapshotFunc = func(ctx context.Context) (*snapshot.Document, error) {
		return testDocument(), nil
	}

	require.NoError(t, f.run("export", "--encrypt", "--out", out))
	assert.Contains(t, f.out.String(), "Exported 2 key(s)")

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	require.True(t, snapshot.IsSealed(raw))

	doc, err := snapshot.Open(raw, "correct horse battery")
	require.NoError(t, err)
	assert.Equal(t, testDocument().Data, doc.Data)

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestExport_Error(t *testing.T) {
	f := newFixture(t)
	f.outbox.ExportSnapshotFunc = func(ctx context.Context) (*snapshot.Document, error) {
		return nil, errors.New("bolt closed")
	}

	err := f.run("export")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "export failed")
}

func writeExport(t *testing.T, raw []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, os.WriteFile(path, raw, 0o600))
	return path
}

func TestImport_Plain(t *testing.T) {
	raw, err := snapshot.Encode(testDocument())
	require.NoError(t, err)
	path := writeExport(t, raw)

	f := newFixture(t)
	f.outbox.ImportSnapshotFunc = func(ctx context.Context, doc *snapshot.Document) error { return nil }
	f.outbox.PendingCountFunc = func() int { return 0 }

	require.NoError(t, f.run("import", path))

	calls := f.outbox.ImportSnapshotCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, testDocument().Data, calls[0].Doc.Data)
	assert.Contains(t, f.out.String(), "Imported 2 key(s)")
}

func TestImport_Sealed(t *testing.T) {
	raw, err := snapshot.Seal(testDocument(), "correct horse battery")
	require.NoError(t, err)
	path := writeExport(t, raw)

	t.Run("right passphrase", func(t *testing.T) {
		f := newFixture(t, "correct horse battery")
		f.outbox.ImportSnapshotFunc = func(ctx context.Context, doc *snapshot.Document) error { return nil }

		require.NoError(t, f.run("import", path))
		assert.Len(t, f.outbox.ImportSnapshotCalls(), 1)
	})

	t.Run("wrong passphrase", func(t *testing.T) {
		f := newFixture(t, "wrong")

		err := f.run("import", path)
		assert.ErrorIs(t, err, snapshot.ErrWrongPassphrase)
		assert.Empty(t, f.outbox.ImportSnapshotCalls())
	})
}

func TestImport_Errors(t *testing.T) {
	t.Run("invalid format", func(t *testing.T) {
		f := newFixture(t)
		err := f.run("import", writeExport(t, []byte(`{"data": {}}`)))
		assert.ErrorIs(t, err, snapshot.ErrInvalidImportFormat)
	})

	t.Run("partial import", func(t *testing.T) {
		raw, err := snapshot.Encode(testDocument())
		require.NoError(t, err)

		f := newFixture(t)
		f.outbox.ImportSnapshotFunc = func(ctx context.Context, doc *snapshot.Document) error {
			return fmt.Errorf("%w: write failed", snapshot.ErrImportPartial)
		}

		err = f.run("import", writeExport(t, raw))
		assert.ErrorIs(t, err, snapshot.ErrImportPartial)
		assert.Contains(t, err.Error(), "retry the import")
	})

	t.Run("missing file", func(t *testing.T) {
		f := newFixture(t)
		err := f.run("import", filepath.Join(t.TempDir(), "nope.json"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read import file")
	})
}

func TestClear(t *testing.T) {
	t.Run("declined", func(t *testing.T) {
		f := newFixture(t, "no")
		f.outbox.PendingCountFunc = func() int { return 2 }

		require.NoError(t, f.run("clear"))
		assert.Empty(t, f.outbox.ClearAllCalls())
		assert.Contains(t, f.out.String(), "2 action(s) have not been sent yet")
		assert.Contains(t, f.out.String(), "Aborted.")
	})

	t.Run("confirmed", func(t *testing.T) {
		f := newFixture(t, "YES")
		f.outbox.ClearAllFunc = func(ctx context.Context) error { return nil }

		require.NoError(t, f.run("clear"))
		assert.Len(t, f.outbox.ClearAllCalls(), 1)
	})

	t.Run("yes flag", func(t *testing.T) {
		f := newFixture(t)
		f.outbox.ClearAllFunc = func(ctx context.Context) error { return errors.New("bolt closed") }

		assert.Error(t, f.run("clear", "--yes"))
		assert.Len(t, f.outbox.ClearAllCalls(), 1)
		assert.Empty(t, f.io.ReadInputCalls())
	})
}

func TestSize(t *testing.T) {
	f := newFixture(t)
	f.outbox.ApproximateSizeFunc = func(ctx context.Context) (int64, error) { return 2048, nil }

	require.NoError(t, f.run("size"))
	assert.Contains(t, f.out.String(), "Local data: 2.0 KiB (2048 bytes)")
}

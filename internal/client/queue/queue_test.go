package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/fieldkeeper/internal/client/storage"
	"github.com/iudanet/fieldkeeper/internal/client/storage/boltdb"
	"github.com/iudanet/fieldkeeper/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(t *testing.T) *boltdb.Storage {
	t.Helper()
	store, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "queue.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// persisted читает очередь напрямую из хранилища
func persisted(t *testing.T, store storage.KVStorage) []models.Action {
	t.Helper()
	raw, ok, err := store.Get(context.Background(), storage.KeyPendingActions)
	require.NoError(t, err)
	require.True(t, ok, "queue key must be written")

	var actions []models.Action
	require.NoError(t, json.Unmarshal([]byte(raw), &actions))
	return actions
}

func report(id string) models.SubmitReportPayload {
	return models.SubmitReportPayload{Report: models.Report{ID: id, Title: "Report " + id}}
}

func TestQueue_EnqueueOffline(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	q := New(store, Config{}, testLogger())

	id, err := q.Enqueue(ctx, report("p1"))
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	actions := q.List()
	require.Len(t, actions, 1)
	assert.Equal(t, id, actions[0].ID)
	assert.Equal(t, models.KindSubmitReport, actions[0].Kind)
	assert.Equal(t, models.StatusPending, actions[0].Status)
	assert.Equal(t, 0, actions[0].RetryCount)
	assert.Equal(t, DefaultRetryBudget, actions[0].RetryBudget)
	assert.Equal(t, report("p1"), actions[0].Payload)
}

func TestQueue_EnqueueInvalidPayload(t *testing.T) {
	ctx := context.Background()
	store := &storage.KVStorageMock{}
	q := New(store, Config{}, testLogger())

	_, err := q.Enqueue(ctx, models.DeleteReportPayload{})
	assert.ErrorIs(t, err, ErrInvalidPayload)

	_, err = q.Enqueue(ctx, nil)
	assert.ErrorIs(t, err, ErrInvalidPayload)

	assert.Equal(t, 0, q.Len())
	// Невалидный payload не приводит к записи
	assert.Empty(t, store.SetCalls())
}

func TestQueue_RetryBudgets(t *testing.T) {
	ctx := context.Background()
	q := New(newTestStore(t), Config{
		DefaultRetryBudget: 5,
		RetryBudgets:       map[models.Kind]int{models.KindFullResync: 1, models.KindDeleteReport: 0},
	}, testLogger())

	resyncID, err := q.Enqueue(ctx, models.FullResyncPayload{})
	require.NoError(t, err)
	deleteID, err := q.Enqueue(ctx, models.DeleteReportPayload{ReportID: "r1"})
	require.NoError(t, err)
	customID, err := q.Enqueue(ctx, report("p1"), WithRetryBudget(2))
	require.NoError(t, err)
	ignoredID, err := q.Enqueue(ctx, report("p2"), WithRetryBudget(0))
	require.NoError(t, err)

	budget := func(id string) int {
		a, ok := q.Get(id)
		require.True(t, ok)
		return a.RetryBudget
	}

	assert.Equal(t, 1, budget(resyncID))
	assert.Equal(t, 5, budget(deleteID), "non-positive per-kind budget falls back to default")
	assert.Equal(t, 2, budget(customID))
	assert.Equal(t, 5, budget(ignoredID))
}

func TestQueue_PersistedEqualsMemory(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	q := New(store, Config{}, testLogger())

	check := func() {
		t.Helper()
		assert.Equal(t, q.List(), persisted(t, store))
	}

	ids := make([]string, 0, 5)
	for i := range 5 {
		id, err := q.Enqueue(ctx, report(fmt.Sprintf("p%d", i)))
		require.NoError(t, err)
		ids = append(ids, id)
		check()
	}

	assert.True(t, q.Remove(ctx, ids[1]))
	check()

	require.NoError(t, q.UpdateStatus(ctx, ids[2], Patch{RetryCount: 1, Status: models.StatusPending}))
	check()

	require.NoError(t, q.UpdateStatus(ctx, ids[3], Patch{RetryCount: 3, Status: models.StatusFailed}))
	check()

	require.NoError(t, q.UpdateStatus(ctx, ids[0], Patch{Status: models.StatusCompleted}))
	check()

	// Порядок вставки сохраняется
	got := q.List()
	require.Len(t, got, 3)
	assert.Equal(t, []string{ids[2], ids[3], ids[4]}, []string{got[0].ID, got[1].ID, got[2].ID})

	q.Clear(ctx)
	check()
	assert.Empty(t, q.List())
}

func TestQueue_RemoveMissingIsNoop(t *testing.T) {
	ctx := context.Background()
	store := &storage.KVStorageMock{}
	q := New(store, Config{}, testLogger())

	assert.False(t, q.Remove(ctx, "missing"))
	assert.Empty(t, store.SetCalls())
}

func TestQueue_UpdateStatusErrors(t *testing.T) {
	ctx := context.Background()
	q := New(newTestStore(t), Config{}, testLogger())

	id, err := q.Enqueue(ctx, report("p1"))
	require.NoError(t, err)

	err = q.UpdateStatus(ctx, "missing", Patch{Status: models.StatusPending})
	assert.ErrorIs(t, err, ErrActionNotFound)

	require.NoError(t, q.UpdateStatus(ctx, id, Patch{RetryCount: 2, Status: models.StatusPending}))

	// retryCount не уменьшается
	err = q.UpdateStatus(ctx, id, Patch{RetryCount: 1, Status: models.StatusPending})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	require.NoError(t, q.UpdateStatus(ctx, id, Patch{RetryCount: 3, Status: models.StatusFailed}))

	// failed терминален
	err = q.UpdateStatus(ctx, id, Patch{RetryCount: 3, Status: models.StatusPending})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	a, ok := q.Get(id)
	require.True(t, ok)
	assert.Equal(t, models.StatusFailed, a.Status)
	assert.Equal(t, 3, a.RetryCount)
}

func TestQueue_PersistenceFailureKeepsMemoryState(t *testing.T) {
	ctx := context.Background()
	store := &storage.KVStorageMock{
		SetFunc: func(ctx context.Context, key, value string) error {
			return errors.New("disk full")
		},
	}
	q := New(store, Config{}, testLogger())

	id, err := q.Enqueue(ctx, report("p1"))
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, 1, q.Len())

	calls := store.SetCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, storage.KeyPendingActions, calls[0].Key)
}

func TestQueue_LoadRestoresState(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	q1 := New(store, Config{}, testLogger())
	_, err := q1.Enqueue(ctx, report("p1"))
	require.NoError(t, err)
	_, err = q1.Enqueue(ctx, models.AddStaffRecordPayload{Staff: models.StaffRecord{ID: "s1", FullName: "Anna"}})
	require.NoError(t, err)

	q2 := New(store, Config{}, testLogger())
	require.NoError(t, q2.Load(ctx))
	assert.Equal(t, q1.List(), q2.List())
}

func TestQueue_LoadMissingAndCorrupt(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	q := New(store, Config{}, testLogger())
	require.NoError(t, q.Load(ctx))
	assert.Equal(t, 0, q.Len())

	require.NoError(t, store.Set(ctx, storage.KeyPendingActions, `{not json`))
	assert.ErrorIs(t, q.Load(ctx), ErrCorruptQueue)

	require.NoError(t, store.Set(ctx, storage.KeyPendingActions, `[{"id":"x","kind":"teleport"}]`))
	err := q.Load(ctx)
	assert.ErrorIs(t, err, ErrCorruptQueue)
	assert.ErrorIs(t, err, models.ErrUnknownKind)
}

func TestQueue_OnEnqueueHook(t *testing.T) {
	ctx := context.Background()
	q := New(newTestStore(t), Config{}, testLogger())

	var got []models.Action
	q.OnEnqueue(func(a models.Action) {
		// Хук вызывается вне блокировки очереди
		assert.Equal(t, 1, q.Len())
		got = append(got, a)
	})

	id, err := q.Enqueue(ctx, report("p1"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, id, got[0].ID)
}

func TestQueue_CreatedAtAndIDs(t *testing.T) {
	ctx := context.Background()
	q := New(newTestStore(t), Config{}, testLogger())

	fixed := time.Date(2024, 6, 1, 8, 0, 0, 0, time.FixedZone("MSK", 3*3600))
	q.now = func() time.Time { return fixed }

	seq := []string{"dup", "dup", "other"}
	q.newID = func() (string, error) {
		id := seq[0]
		seq = seq[1:]
		return id, nil
	}

	first, err := q.Enqueue(ctx, report("p1"))
	require.NoError(t, err)
	second, err := q.Enqueue(ctx, report("p2"))
	require.NoError(t, err)

	assert.Equal(t, "dup", first)
	assert.Equal(t, "other", second)

	a, _ := q.Get(first)
	assert.True(t, a.CreatedAt.Equal(fixed))
	assert.Equal(t, time.UTC, a.CreatedAt.Location())
}

func TestQueue_ConcurrentEnqueue(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	q := New(store, Config{}, testLogger())

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := q.Enqueue(ctx, report(fmt.Sprintf("p%d", i)))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, q.Len())
	assert.Equal(t, q.List(), persisted(t, store))

	seen := make(map[string]bool)
	for _, a := range q.List() {
		assert.False(t, seen[a.ID], "duplicate id %s", a.ID)
		seen[a.ID] = true
	}
}

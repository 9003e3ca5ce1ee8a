package sync

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	stdsync "sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/fieldkeeper/internal/client/queue"
	"github.com/iudanet/fieldkeeper/internal/client/storage"
	"github.com/iudanet/fieldkeeper/internal/client/storage/boltdb"
	"github.com/iudanet/fieldkeeper/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// countingStore считает операции записи поверх настоящего хранилища
type countingStore struct {
	storage.KVStorage
	writes atomic.Int64
}

func (s *countingStore) Set(ctx context.Context, key, value string) error {
	s.writes.Add(1)
	return s.KVStorage.Set(ctx, key, value)
}

func (s *countingStore) Remove(ctx context.Context, key string) error {
	s.writes.Add(1)
	return s.KVStorage.Remove(ctx, key)
}

func (s *countingStore) MultiSet(ctx context.Context, pairs map[string]string) error {
	s.writes.Add(1)
	return s.KVStorage.MultiSet(ctx, pairs)
}

func (s *countingStore) MultiRemove(ctx context.Context, keys []string) error {
	s.writes.Add(1)
	return s.KVStorage.MultiRemove(ctx, keys)
}

type fixture struct {
	store  *countingStore
	queue  *queue.Queue
	engine *Engine
}

func newFixture(t *testing.T, handlers Handlers, cfg Config, opts ...Option) *fixture {
	t.Helper()

	bolt, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "sync.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = bolt.Close() })

	store := &countingStore{KVStorage: bolt}
	q := queue.New(store, queue.Config{}, testLogger())
	e := NewEngine(q, store, handlers, cfg, testLogger(), opts...)
	t.Cleanup(e.Close)

	return &fixture{store: store, queue: q, engine: e}
}

func (f *fixture) enqueue(t *testing.T, id string, opts ...queue.EnqueueOption) string {
	t.Helper()
	actionID, err := f.queue.Enqueue(context.Background(),
		models.SubmitReportPayload{Report: models.Report{ID: id, Title: "Report " + id}}, opts...)
	require.NoError(t, err)
	return actionID
}

func succeed(context.Context, models.Payload) error { return nil }

func fail(context.Context, models.Payload) error { return errors.New("server unavailable") }

func allKinds(h Handler) Handlers {
	handlers := Handlers{}
	for _, k := range models.Kinds() {
		handlers[k] = h
	}
	return handlers
}

func TestEngine_GuardEmptyQueue(t *testing.T) {
	f := newFixture(t, allKinds(succeed), Config{})
	f.engine.SetOnline(true)

	before := f.engine.Session()
	res := f.engine.ProcessPendingActions(context.Background())

	assert.Equal(t, SkipEmpty, res.Skipped)
	assert.False(t, res.Ran())
	assert.Equal(t, before, f.engine.Session())
	assert.Zero(t, f.store.writes.Load())
}

func TestEngine_GuardOffline(t *testing.T) {
	var calls atomic.Int32
	f := newFixture(t, allKinds(func(context.Context, models.Payload) error {
		calls.Add(1)
		return nil
	}), Config{})
	f.enqueue(t, "p1")
	writes := f.store.writes.Load()

	before := f.engine.Session()
	res := f.engine.ProcessPendingActions(context.Background())

	assert.Equal(t, SkipOffline, res.Skipped)
	assert.Equal(t, before, f.engine.Session())
	assert.Equal(t, writes, f.store.writes.Load())
	assert.Zero(t, calls.Load())
	assert.Equal(t, 1, f.queue.Len())
}

func TestEngine_GuardInProgress(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})

	f := newFixture(t, allKinds(func(context.Context, models.Payload) error {
		close(entered)
		<-release
		return nil
	}), Config{})
	f.enqueue(t, "p1")
	f.engine.SetOnline(true)

	done := make(chan DrainResult)
	go func() { done <- f.engine.ProcessPendingActions(context.Background()) }()

	<-entered
	assert.True(t, f.engine.Session().SyncInProgress)

	writes := f.store.writes.Load()
	res := f.engine.ProcessPendingActions(context.Background())
	assert.Equal(t, SkipInProgress, res.Skipped)
	assert.Equal(t, writes, f.store.writes.Load())

	close(release)
	first := <-done
	assert.True(t, first.Ran())
	assert.Equal(t, 1, first.Completed)
	assert.False(t, f.engine.Session().SyncInProgress)
}

func TestEngine_ScenarioB_DrainOnline(t *testing.T) {
	f := newFixture(t, allKinds(succeed), Config{})
	f.enqueue(t, "p1")

	assert.True(t, f.engine.SetOnline(true))
	assert.False(t, f.engine.SetOnline(true))

	res := f.engine.ProcessPendingActions(context.Background())
	assert.True(t, res.Ran())
	assert.Equal(t, 1, res.Attempted)
	assert.Equal(t, 1, res.Completed)

	assert.Equal(t, 0, f.queue.Len())
	session := f.engine.Session()
	assert.True(t, session.HasSynced())
	assert.False(t, session.SyncInProgress)

	raw, ok, err := f.store.Get(context.Background(), storage.KeyLastSync)
	require.NoError(t, err)
	require.True(t, ok)
	parsed, err := time.Parse(time.RFC3339Nano, raw)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(session.LastSyncTime))
}

func TestEngine_ScenarioC_RetryBudgetTwo(t *testing.T) {
	f := newFixture(t, allKinds(fail), Config{})
	id := f.enqueue(t, "p1", queue.WithRetryBudget(2))
	f.engine.SetOnline(true)

	f.engine.ProcessPendingActions(context.Background())
	f.engine.ProcessPendingActions(context.Background())

	a, ok := f.queue.Get(id)
	require.True(t, ok, "failed action must be retained")
	assert.Equal(t, models.StatusFailed, a.Status)
	assert.Equal(t, 2, a.RetryCount)
}

func TestEngine_RetryBound(t *testing.T) {
	const budget = 4

	f := newFixture(t, allKinds(fail), Config{})
	id := f.enqueue(t, "p1", queue.WithRetryBudget(budget))
	f.engine.SetOnline(true)

	for pass := 1; pass < budget; pass++ {
		res := f.engine.ProcessPendingActions(context.Background())
		assert.Equal(t, 1, res.Retried, "pass %d", pass)

		a, ok := f.queue.Get(id)
		require.True(t, ok)
		assert.Equal(t, models.StatusPending, a.Status, "pass %d", pass)
		assert.Equal(t, pass, a.RetryCount)
	}

	res := f.engine.ProcessPendingActions(context.Background())
	assert.Equal(t, 1, res.Failed)
	require.Len(t, res.Failures, 1)
	assert.True(t, res.Failures[0].Final)
	assert.Equal(t, budget, res.Failures[0].Attempt)

	// Последующие проходы не трогают failed и не удаляют его
	for range 2 {
		res = f.engine.ProcessPendingActions(context.Background())
		assert.True(t, res.Ran())
		assert.Zero(t, res.Attempted)
	}

	a, ok := f.queue.Get(id)
	require.True(t, ok)
	assert.Equal(t, models.StatusFailed, a.Status)
	assert.Equal(t, budget, a.RetryCount)
}

func TestEngine_FailureIsolation(t *testing.T) {
	f := newFixture(t, Handlers{
		models.KindSubmitReport: succeed,
		models.KindDeleteReport: fail,
	}, Config{})

	ctx := context.Background()
	failing, err := f.queue.Enqueue(ctx, models.DeleteReportPayload{ReportID: "r1"})
	require.NoError(t, err)
	f.enqueue(t, "p2")
	f.engine.SetOnline(true)

	res := f.engine.ProcessPendingActions(ctx)
	assert.Equal(t, 2, res.Attempted)
	assert.Equal(t, 1, res.Completed)
	assert.Equal(t, 1, res.Retried)

	remaining := f.queue.List()
	require.Len(t, remaining, 1)
	assert.Equal(t, failing, remaining[0].ID)
}

func TestEngine_PanicAndMissingHandler(t *testing.T) {
	f := newFixture(t, Handlers{
		models.KindSubmitReport: func(context.Context, models.Payload) error {
			panic("nil map")
		},
	}, Config{})

	ctx := context.Background()
	panicking := f.enqueue(t, "p1")
	unhandled, err := f.queue.Enqueue(ctx, models.FullResyncPayload{})
	require.NoError(t, err)
	f.engine.SetOnline(true)

	res := f.engine.ProcessPendingActions(ctx)
	require.Len(t, res.Failures, 2)
	assert.Contains(t, res.Failures[0].Error(), "handler panic: nil map")
	assert.ErrorIs(t, res.Failures[1], ErrNoHandler)

	// Флаг снят, следующий проход возможен
	assert.False(t, f.engine.Session().SyncInProgress)

	for _, id := range []string{panicking, unhandled} {
		a, ok := f.queue.Get(id)
		require.True(t, ok)
		assert.Equal(t, 1, a.RetryCount)
	}

	res = f.engine.ProcessPendingActions(ctx)
	assert.True(t, res.Ran())
}

func TestEngine_MutualExclusion(t *testing.T) {
	var calls atomic.Int32
	entered := make(chan struct{}, 1)
	release := make(chan struct{})

	f := newFixture(t, allKinds(func(context.Context, models.Payload) error {
		calls.Add(1)
		select {
		case entered <- struct{}{}:
		default:
		}
		<-release
		return nil
	}), Config{})
	f.enqueue(t, "p1")
	f.enqueue(t, "p2")
	f.engine.SetOnline(true)

	results := make(chan DrainResult, 2)
	var wg stdsync.WaitGroup
	for range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- f.engine.ProcessPendingActions(context.Background())
		}()
	}

	<-entered
	// Второй вызов либо уже отклонен, либо будет отклонен guard-ом
	assert.Eventually(t, func() bool { return len(results) == 1 }, time.Second, time.Millisecond)
	close(release)
	wg.Wait()
	close(results)

	ran := 0
	for res := range results {
		if res.Ran() {
			ran++
		} else {
			assert.Equal(t, SkipInProgress, res.Skipped)
		}
	}
	assert.Equal(t, 1, ran)
	assert.EqualValues(t, 2, calls.Load(), "each action handled exactly once")
	assert.Equal(t, 0, f.queue.Len())
}

func TestEngine_ActionIDInContext(t *testing.T) {
	var got string
	f := newFixture(t, allKinds(func(ctx context.Context, _ models.Payload) error {
		got, _ = ActionIDFromContext(ctx)
		return nil
	}), Config{})
	id := f.enqueue(t, "p1")
	f.engine.SetOnline(true)

	f.engine.ProcessPendingActions(context.Background())
	assert.Equal(t, id, got)

	_, ok := ActionIDFromContext(context.Background())
	assert.False(t, ok)
}

func TestEngine_HandlerTimeout(t *testing.T) {
	f := newFixture(t, allKinds(func(ctx context.Context, _ models.Payload) error {
		<-ctx.Done()
		return ctx.Err()
	}), Config{HandlerTimeout: 20 * time.Millisecond})
	id := f.enqueue(t, "p1")
	f.engine.SetOnline(true)

	res := f.engine.ProcessPendingActions(context.Background())
	require.Len(t, res.Failures, 1)
	assert.ErrorIs(t, res.Failures[0], context.DeadlineExceeded)

	a, ok := f.queue.Get(id)
	require.True(t, ok)
	assert.Equal(t, 1, a.RetryCount)
}

func TestEngine_CancelledContextStopsPass(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	f := newFixture(t, allKinds(func(context.Context, models.Payload) error {
		cancel()
		return nil
	}), Config{})
	f.enqueue(t, "p1")
	second := f.enqueue(t, "p2")
	f.engine.SetOnline(true)

	res := f.engine.ProcessPendingActions(ctx)
	assert.Equal(t, 1, res.Attempted)
	assert.Equal(t, 1, res.Completed)

	a, ok := f.queue.Get(second)
	require.True(t, ok)
	assert.Equal(t, 0, a.RetryCount)
	assert.Equal(t, models.StatusPending, a.Status)

	// lastSyncTime пишется даже при отмененном контексте
	_, ok, err := f.store.Get(context.Background(), storage.KeyLastSync)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEngine_CancelDuringHandlerKeepsRetryCount(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	f := newFixture(t, allKinds(func(ctx context.Context, _ models.Payload) error {
		// закрытие процесса посреди запроса
		cancel()
		return ctx.Err()
	}), Config{})
	first := f.enqueue(t, "p1")
	second := f.enqueue(t, "p2")
	f.engine.SetOnline(true)

	res := f.engine.ProcessPendingActions(ctx)
	assert.Equal(t, 1, res.Attempted)
	assert.Zero(t, res.Retried)
	assert.Zero(t, res.Failed)
	assert.Empty(t, res.Failures)

	for _, id := range []string{first, second} {
		a, ok := f.queue.Get(id)
		require.True(t, ok)
		assert.Equal(t, 0, a.RetryCount, id)
		assert.Equal(t, models.StatusPending, a.Status, id)
	}
}

func TestEngine_SyncDataBumpsVersion(t *testing.T) {
	f := newFixture(t, allKinds(succeed), Config{})
	ctx := context.Background()

	// Офлайн: проход пропущен, но версия все равно растет
	res := f.engine.SyncData(ctx)
	assert.Equal(t, SkipOffline, res.Skipped)
	assert.EqualValues(t, 1, res.DataVersion)

	f.engine.SetOnline(true)
	f.enqueue(t, "p1")
	res = f.engine.SyncData(ctx)
	assert.Equal(t, 1, res.Completed)
	assert.EqualValues(t, 2, f.engine.Session().DataVersion)

	raw, ok, err := f.store.Get(ctx, storage.KeyDataVersion)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2", raw)

	// ProcessPendingActions версию не трогает
	f.enqueue(t, "p2")
	f.engine.ProcessPendingActions(ctx)
	assert.EqualValues(t, 2, f.engine.Session().DataVersion)
}

func TestEngine_LoadAndReset(t *testing.T) {
	f := newFixture(t, allKinds(succeed), Config{})
	ctx := context.Background()

	last := time.Date(2024, 7, 1, 10, 0, 0, 123, time.UTC)
	require.NoError(t, f.store.MultiSet(ctx, map[string]string{
		storage.KeyLastSync:    last.Format(time.RFC3339Nano),
		storage.KeyDataVersion: "41",
	}))

	require.NoError(t, f.engine.Load(ctx))
	session := f.engine.Session()
	assert.True(t, session.LastSyncTime.Equal(last))
	assert.EqualValues(t, 41, session.DataVersion)

	f.engine.Reset()
	session = f.engine.Session()
	assert.False(t, session.HasSynced())
	assert.Zero(t, session.DataVersion)

	// Мусор в хранилище игнорируется
	require.NoError(t, f.store.MultiSet(ctx, map[string]string{
		storage.KeyLastSync:    "yesterday",
		storage.KeyDataVersion: "-3",
	}))
	require.NoError(t, f.engine.Load(ctx))
	session = f.engine.Session()
	assert.False(t, session.HasSynced())
	assert.Zero(t, session.DataVersion)
}

func TestEngine_TriggerDrain(t *testing.T) {
	f := newFixture(t, allKinds(succeed), Config{})
	f.enqueue(t, "p1")
	f.engine.SetOnline(true)

	f.engine.TriggerDrain()
	f.engine.TriggerDrain()
	f.engine.Wait()

	assert.Equal(t, 0, f.queue.Len())
	assert.Equal(t, 0, f.engine.PendingCount())

	f.engine.Close()
	f.enqueue(t, "p2")
	f.engine.TriggerDrain()
	f.engine.Wait()
	assert.Equal(t, 1, f.queue.Len(), "closed engine ignores triggers")
}

type fakeRecorder struct {
	completed, retried, failed []models.Kind
	drains                     int
	version                    int64
	mu                         stdsync.Mutex
}

func (r *fakeRecorder) ActionCompleted(k models.Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completed = append(r.completed, k)
}

func (r *fakeRecorder) ActionRetried(k models.Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.retried = append(r.retried, k)
}

func (r *fakeRecorder) ActionFailed(k models.Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failed = append(r.failed, k)
}

func (r *fakeRecorder) DrainFinished(time.Duration, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drains++
}

func (r *fakeRecorder) DataVersion(v int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.version = v
}

func TestEngine_Recorder(t *testing.T) {
	rec := &fakeRecorder{}
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	f := newFixture(t, Handlers{
		models.KindSubmitReport: succeed,
		models.KindDeleteReport: fail,
	}, Config{}, WithRecorder(rec), WithClock(func() time.Time { return fixed }))

	ctx := context.Background()
	f.enqueue(t, "p1")
	_, err := f.queue.Enqueue(ctx, models.DeleteReportPayload{ReportID: "r1"}, queue.WithRetryBudget(1))
	require.NoError(t, err)
	f.engine.SetOnline(true)

	res := f.engine.SyncData(ctx)
	assert.Zero(t, res.Duration)

	assert.Equal(t, []models.Kind{models.KindSubmitReport}, rec.completed)
	assert.Empty(t, rec.retried)
	assert.Equal(t, []models.Kind{models.KindDeleteReport}, rec.failed)
	assert.Equal(t, 1, rec.drains)
	assert.EqualValues(t, 1, rec.version)
	assert.True(t, f.engine.Session().LastSyncTime.Equal(fixed))
}

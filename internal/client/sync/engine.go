// Package sync drains the offline action queue against per-kind effect
// handlers and keeps the sync session state.
package sync

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	stdsync "sync"
	"time"

	"github.com/iudanet/fieldkeeper/internal/client/queue"
	"github.com/iudanet/fieldkeeper/internal/client/storage"
	"github.com/iudanet/fieldkeeper/internal/models"
)

// Handler performs the remote effect of one action.
// A returned error counts as a failed attempt.
type Handler func(ctx context.Context, payload models.Payload) error

// Handlers maps every action kind to its effect handler.
type Handlers map[models.Kind]Handler

// ActionQueue is the part of queue.Queue the engine depends on.
type ActionQueue interface {
	List(filter ...models.Status) []models.Action
	Len() int
	PendingCount() int
	Remove(ctx context.Context, id string) bool
	UpdateStatus(ctx context.Context, id string, patch queue.Patch) error
}

var _ ActionQueue = (*queue.Queue)(nil)

// Config holds engine tunables.
type Config struct {
	// HandlerTimeout ограничивает один вызов обработчика; 0 - без ограничения
	HandlerTimeout time.Duration
}

// Session is a snapshot of the sync session state.
type Session struct {
	LastSyncTime   time.Time
	DataVersion    int64
	IsOnline       bool
	SyncInProgress bool
}

// HasSynced reports whether at least one drain pass has completed.
func (s Session) HasSynced() bool {
	return !s.LastSyncTime.IsZero()
}

// Engine drains the action queue. At most one drain pass runs at a time.
type Engine struct {
	queue    ActionQueue
	store    storage.KVStorage
	handlers Handlers
	recorder Recorder
	logger   *slog.Logger
	now      func() time.Time
	bgCtx    context.Context
	cancel   context.CancelFunc
	session  Session
	cfg      Config
	wg       stdsync.WaitGroup
	mu       stdsync.Mutex
	closed   bool
}

// Option customizes an Engine.
type Option func(*Engine)

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) {
		if r != nil {
			e.recorder = r
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine creates an engine in the offline, idle state.
func NewEngine(q ActionQueue, store storage.KVStorage, handlers Handlers, cfg Config, logger *slog.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	e := &Engine{
		queue:    q,
		store:    store,
		handlers: handlers,
		recorder: nopRecorder{},
		logger:   logger,
		now:      time.Now,
		bgCtx:    ctx,
		cancel:   cancel,
		cfg:      cfg,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load restores lastSyncTime and dataVersion from storage.
// Unparseable values are logged and ignored.
func (e *Engine) Load(ctx context.Context) error {
	values, err := e.store.MultiGet(ctx, []string{storage.KeyLastSync, storage.KeyDataVersion})
	if err != nil {
		return fmt.Errorf("failed to read sync session: %w", err)
	}

	var (
		lastSync time.Time
		version  int64
	)

	if raw, ok := values[storage.KeyLastSync]; ok && raw != "" {
		if lastSync, err = time.Parse(time.RFC3339Nano, raw); err != nil {
			e.logger.Warn("Ignoring invalid last sync time", "value", raw, "error", err)
			lastSync = time.Time{}
		}
	}
	if raw, ok := values[storage.KeyDataVersion]; ok && raw != "" {
		if version, err = strconv.ParseInt(raw, 10, 64); err != nil || version < 0 {
			e.logger.Warn("Ignoring invalid data version", "value", raw, "error", err)
			version = 0
		}
	}

	e.mu.Lock()
	e.session.LastSyncTime = lastSync
	e.session.DataVersion = version
	e.mu.Unlock()

	e.recorder.DataVersion(version)
	return nil
}

// Reset forgets lastSyncTime and dataVersion. It does not touch storage.
func (e *Engine) Reset() {
	e.mu.Lock()
	e.session.LastSyncTime = time.Time{}
	e.session.DataVersion = 0
	e.mu.Unlock()

	e.recorder.DataVersion(0)
}

// Session returns a copy of the current session state.
func (e *Engine) Session() Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session
}

// SetOnline records the online state and reports whether it changed.
func (e *Engine) SetOnline(online bool) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session.IsOnline == online {
		return false
	}
	e.session.IsOnline = online
	return true
}

// PendingCount returns the number of pending actions in the queue.
func (e *Engine) PendingCount() int {
	return e.queue.PendingCount()
}

// TriggerDrain starts a drain pass on a background goroutine and returns
// immediately. Overlapping triggers are resolved by the in-progress guard.
func (e *Engine) TriggerDrain() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		e.ProcessPendingActions(e.bgCtx)
	}()
}

// Wait blocks until every triggered background drain has finished.
func (e *Engine) Wait() {
	e.wg.Wait()
}

// Close cancels background drains and waits for them to exit.
func (e *Engine) Close() {
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()

	e.cancel()
	e.wg.Wait()
}

// SyncData runs a drain pass and then bumps the data version, whether or
// not any action moved. The new version is persisted.
func (e *Engine) SyncData(ctx context.Context) DrainResult {
	result := e.ProcessPendingActions(ctx)

	e.mu.Lock()
	e.session.DataVersion++
	version := e.session.DataVersion
	e.mu.Unlock()

	if err := e.store.Set(context.WithoutCancel(ctx), storage.KeyDataVersion, strconv.FormatInt(version, 10)); err != nil {
		e.logger.Error("Failed to persist data version", "version", version, "error", err)
	}
	e.recorder.DataVersion(version)

	result.DataVersion = version
	return result
}

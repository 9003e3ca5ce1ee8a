// Package offline is the entry point of the local-first core: it owns the
// action queue, the sync engine and snapshot support for one local store.
package offline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	stdsync "sync"
	"time"

	"github.com/iudanet/fieldkeeper/internal/client/netmon"
	"github.com/iudanet/fieldkeeper/internal/client/queue"
	"github.com/iudanet/fieldkeeper/internal/client/snapshot"
	"github.com/iudanet/fieldkeeper/internal/client/storage"
	"github.com/iudanet/fieldkeeper/internal/client/sync"
	"github.com/iudanet/fieldkeeper/internal/models"
)

// Options configures a Service.
type Options struct {
	Logger   *slog.Logger
	Recorder sync.Recorder
	Queue    queue.Config
	Engine   sync.Config
	Monitor  netmon.Config
	// AutoSyncInterval задает период фоновых попыток в Run; 0 отключает их
	AutoSyncInterval time.Duration
}

// Service is constructed once per process and passed to its consumers.
type Service struct {
	store     storage.KVStorage
	queue     *queue.Queue
	engine    *sync.Engine
	snapshots *snapshot.Service
	logger    *slog.Logger
	monitor   *netmon.Monitor
	opts      Options
	mu        stdsync.Mutex
}

// New wires the queue, engine and snapshot service over store.
// Call Initialize before use to restore persisted state.
func New(store storage.KVStorage, handlers sync.Handlers, opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	q := queue.New(store, opts.Queue, logger.With("component", "queue"))

	var engineOpts []sync.Option
	if opts.Recorder != nil {
		engineOpts = append(engineOpts, sync.WithRecorder(opts.Recorder))
	}
	engine := sync.NewEngine(q, store, handlers, opts.Engine, logger.With("component", "sync"), engineOpts...)

	s := &Service{
		store:     store,
		queue:     q,
		engine:    engine,
		snapshots: snapshot.New(store, logger.With("component", "snapshot")),
		logger:    logger,
		opts:      opts,
	}

	// Новое действие при наличии сети сразу уходит в фоновый drain
	q.OnEnqueue(func(models.Action) {
		if engine.Session().IsOnline {
			engine.TriggerDrain()
		}
	})

	return s
}

// Initialize loads the queue and the sync session from storage.
func (s *Service) Initialize(ctx context.Context) error {
	if err := s.queue.Load(ctx); err != nil {
		return fmt.Errorf("failed to load queue: %w", err)
	}
	if err := s.engine.Load(ctx); err != nil {
		return fmt.Errorf("failed to load sync session: %w", err)
	}

	session := s.engine.Session()
	s.logger.Info("Offline service initialized",
		"queued", s.queue.Len(),
		"pending", s.queue.PendingCount(),
		"data_version", session.DataVersion)
	return nil
}

// SetOnlineStatus records connectivity. Going online with pending actions
// schedules a drain right away.
func (s *Service) SetOnlineStatus(online bool) {
	if !s.engine.SetOnline(online) {
		return
	}

	s.logger.Info("Online status changed", "online", online)
	if online && s.queue.PendingCount() > 0 {
		s.engine.TriggerDrain()
	}
}

// RecordOnlineStatus records connectivity without scheduling a drain.
// It is for callers that run the pass themselves right after, such as an
// explicit SyncData.
func (s *Service) RecordOnlineStatus(online bool) {
	if s.engine.SetOnline(online) {
		s.logger.Info("Online status changed", "online", online)
	}
}

// Enqueue adds an action for payload. Only invalid payloads are reported as errors.
func (s *Service) Enqueue(ctx context.Context, payload models.Payload, opts ...queue.EnqueueOption) (string, error) {
	return s.queue.Enqueue(ctx, payload, opts...)
}

// Remove deletes a queued action. It reports whether the action existed.
func (s *Service) Remove(ctx context.Context, id string) bool {
	return s.queue.Remove(ctx, id)
}

// List returns queued actions in insertion order.
func (s *Service) List(filter ...models.Status) []models.Action {
	return s.queue.List(filter...)
}

// Get returns a queued action by id.
func (s *Service) Get(id string) (models.Action, bool) {
	return s.queue.Get(id)
}

// PendingCount returns the number of actions still waiting to be sent.
func (s *Service) PendingCount() int {
	return s.queue.PendingCount()
}

// ProcessPendingActions runs one drain pass synchronously.
func (s *Service) ProcessPendingActions(ctx context.Context) sync.DrainResult {
	return s.engine.ProcessPendingActions(ctx)
}

// SyncData is the explicit "sync now" request: a drain pass followed by a data version bump.
func (s *Service) SyncData(ctx context.Context) sync.DrainResult {
	return s.engine.SyncData(ctx)
}

// Session returns the current sync session state.
func (s *Service) Session() sync.Session {
	return s.engine.Session()
}

// Wait blocks until background drains triggered so far have finished.
func (s *Service) Wait() {
	s.engine.Wait()
}

// ClearAll drops every queued action and removes the offline keys from storage.
func (s *Service) ClearAll(ctx context.Context) error {
	// фоновый проход не должен дописать lastSyncTime после очистки
	s.engine.Wait()
	s.queue.Clear(ctx)
	s.engine.Reset()

	if err := s.store.MultiRemove(ctx, storage.OfflineKeys()); err != nil {
		s.logger.Error("Failed to remove offline keys", "error", err)
		return fmt.Errorf("failed to clear offline data: %w", err)
	}

	s.logger.Info("Offline data cleared")
	return nil
}

// ApproximateSize returns the total size of stored values in bytes.
func (s *Service) ApproximateSize(ctx context.Context) (int64, error) {
	return s.snapshots.ApproximateSize(ctx)
}

// ExportSnapshot captures the whole local store.
func (s *Service) ExportSnapshot(ctx context.Context) (*snapshot.Document, error) {
	return s.snapshots.Export(ctx)
}

// ImportSnapshot replaces the whole local store with doc and reloads the
// queue and the sync session from it. A background drain that is already
// running finishes first.
func (s *Service) ImportSnapshot(ctx context.Context, doc *snapshot.Document) error {
	s.engine.Wait()

	importErr := s.snapshots.ImportDocument(ctx, doc)
	if errors.Is(importErr, snapshot.ErrInvalidImportFormat) {
		return importErr
	}

	// После частичного импорта тоже перечитываем состояние: память
	// должна соответствовать тому, что реально лежит в хранилище
	if err := s.Initialize(ctx); err != nil {
		return errors.Join(importErr, err)
	}
	return importErr
}

// Cache returns the server view stored by the last full resync.
func (s *Service) Cache(ctx context.Context) (*models.Cache, bool, error) {
	raw, ok, err := s.store.Get(ctx, storage.KeyCache)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache: %w", err)
	}
	if !ok || raw == "" {
		return &models.Cache{}, false, nil
	}

	var cache models.Cache
	if err := json.Unmarshal([]byte(raw), &cache); err != nil {
		return nil, false, fmt.Errorf("failed to decode cache: %w", err)
	}
	return &cache, true, nil
}

// AttachMonitor starts a network monitor fed by provider that drives the
// online state of this service. A previously attached monitor is stopped.
func (s *Service) AttachMonitor(provider netmon.Provider) *netmon.Monitor {
	m := netmon.NewMonitor(provider, s.engine, s.opts.Monitor, s.logger.With("component", "netmon"))

	s.mu.Lock()
	prev := s.monitor
	s.monitor = m
	s.mu.Unlock()

	if prev != nil {
		prev.Stop()
	}
	m.Start()
	return m
}

// Run triggers a background drain every AutoSyncInterval until ctx is done.
// With a zero interval it only waits for ctx.
func (s *Service) Run(ctx context.Context) {
	if s.opts.AutoSyncInterval <= 0 {
		<-ctx.Done()
		return
	}

	ticker := time.NewTicker(s.opts.AutoSyncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.queue.PendingCount() > 0 {
				s.engine.TriggerDrain()
			}
		}
	}
}

// Close stops the monitor and waits for background drains.
func (s *Service) Close() {
	s.mu.Lock()
	m := s.monitor
	s.monitor = nil
	s.mu.Unlock()

	if m != nil {
		m.Stop()
	}
	s.engine.Close()
}

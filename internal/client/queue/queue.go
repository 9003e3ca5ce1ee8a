// Package queue implements the persistent, insertion-ordered queue of
// actions that have not yet been confirmed by the server.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/fieldkeeper/internal/client/storage"
	"github.com/iudanet/fieldkeeper/internal/models"
)

// DefaultRetryBudget is used for kinds without an explicit budget.
const DefaultRetryBudget = 3

var (
	// ErrInvalidPayload wraps payload validation failures returned by Enqueue
	ErrInvalidPayload = errors.New("invalid action payload")

	// ErrActionNotFound indicates that no queued action has the given id
	ErrActionNotFound = errors.New("action not found")

	// ErrInvalidTransition indicates a status or retry count change the state machine forbids
	ErrInvalidTransition = errors.New("invalid action transition")

	// ErrCorruptQueue indicates that the persisted queue could not be decoded
	ErrCorruptQueue = errors.New("persisted queue is corrupt")
)

// Config holds retry budgets for new actions.
type Config struct {
	// RetryBudgets переопределяет бюджет для отдельных видов действий
	RetryBudgets       map[models.Kind]int
	DefaultRetryBudget int
}

// Patch describes a retry bookkeeping update of a single action.
type Patch struct {
	Status     models.Status
	RetryCount int
}

// EnqueueOption customizes a single Enqueue call.
type EnqueueOption func(*enqueueOptions)

type enqueueOptions struct {
	retryBudget int
}

// WithRetryBudget overrides the retry budget of the enqueued action.
// Values below 1 are ignored.
func WithRetryBudget(n int) EnqueueOption {
	return func(o *enqueueOptions) {
		if n >= 1 {
			o.retryBudget = n
		}
	}
}

// Queue is the in-memory action queue mirrored to the KV store under
// storage.KeyPendingActions. Every mutation writes the full queue before
// returning.
type Queue struct {
	store     storage.KVStorage
	logger    *slog.Logger
	budgets   map[models.Kind]int
	now       func() time.Time
	newID     func() (string, error)
	onEnqueue func(models.Action)
	actions   []models.Action
	budget    int
	mu        sync.Mutex
}

// New creates an empty queue. Call Load to restore persisted state.
func New(store storage.KVStorage, cfg Config, logger *slog.Logger) *Queue {
	if logger == nil {
		logger = slog.Default()
	}

	budget := cfg.DefaultRetryBudget
	if budget < 1 {
		budget = DefaultRetryBudget
	}

	budgets := make(map[models.Kind]int, len(cfg.RetryBudgets))
	for kind, n := range cfg.RetryBudgets {
		if n >= 1 {
			budgets[kind] = n
		}
	}

	return &Queue{
		store:   store,
		logger:  logger,
		budgets: budgets,
		budget:  budget,
		now:     time.Now,
		newID:   newActionID,
		actions: []models.Action{},
	}
}

// newActionID returns a UUIDv7: millisecond timestamp plus random bits.
func newActionID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// OnEnqueue registers a hook called after every successful Enqueue.
// The hook runs outside the queue lock and must not block.
func (q *Queue) OnEnqueue(fn func(models.Action)) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.onEnqueue = fn
}

// RetryBudgetFor returns the budget a new action of kind would get.
func (q *Queue) RetryBudgetFor(kind models.Kind) int {
	if n, ok := q.budgets[kind]; ok {
		return n
	}
	return q.budget
}

// Enqueue validates payload, appends a pending action and persists the queue.
// A failed persistence write is logged; the action stays queued in memory.
func (q *Queue) Enqueue(ctx context.Context, payload models.Payload, opts ...EnqueueOption) (string, error) {
	if payload == nil {
		return "", fmt.Errorf("%w: payload is nil", ErrInvalidPayload)
	}
	kind := payload.Kind()
	if !kind.Valid() {
		return "", fmt.Errorf("%w: %w", ErrInvalidPayload, models.ErrUnknownKind)
	}
	if err := payload.Validate(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	o := enqueueOptions{retryBudget: q.RetryBudgetFor(kind)}
	for _, opt := range opts {
		opt(&o)
	}

	q.mu.Lock()
	id, err := q.uniqueID()
	if err != nil {
		q.mu.Unlock()
		return "", fmt.Errorf("failed to generate action id: %w", err)
	}

	action := models.Action{
		ID:          id,
		Kind:        kind,
		Payload:     payload,
		CreatedAt:   q.now().UTC(),
		RetryCount:  0,
		RetryBudget: o.retryBudget,
		Status:      models.StatusPending,
	}
	q.actions = append(q.actions, action)
	q.persistLocked(ctx)
	hook := q.onEnqueue
	q.mu.Unlock()

	q.logger.Debug("Action enqueued", "id", id, "kind", kind, "retry_budget", action.RetryBudget)

	if hook != nil {
		hook(action)
	}

	return id, nil
}

// uniqueID генерирует id, не совпадающий ни с одной записью очереди
func (q *Queue) uniqueID() (string, error) {
	for range 3 {
		id, err := q.newID()
		if err != nil {
			return "", err
		}
		if q.indexLocked(id) < 0 {
			return id, nil
		}
	}
	return "", fmt.Errorf("id collision")
}

// Remove deletes the action with id. It reports whether an entry was removed;
// a missing id is not an error.
func (q *Queue) Remove(ctx context.Context, id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	i := q.indexLocked(id)
	if i < 0 {
		return false
	}

	q.actions = slices.Delete(q.actions, i, i+1)
	q.persistLocked(ctx)
	return true
}

// UpdateStatus applies retry bookkeeping to a single action and persists the queue.
// A transition to completed deletes the entry.
func (q *Queue) UpdateStatus(ctx context.Context, id string, patch Patch) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	i := q.indexLocked(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrActionNotFound, id)
	}

	current := q.actions[i]
	if !current.Status.CanTransition(patch.Status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, patch.Status)
	}
	if patch.RetryCount < current.RetryCount {
		return fmt.Errorf("%w: retry count %d -> %d", ErrInvalidTransition, current.RetryCount, patch.RetryCount)
	}

	if patch.Status == models.StatusCompleted {
		q.actions = slices.Delete(q.actions, i, i+1)
	} else {
		q.actions[i].RetryCount = patch.RetryCount
		q.actions[i].Status = patch.Status
	}

	q.persistLocked(ctx)
	return nil
}

// List returns copies of queued actions in insertion order,
// optionally limited to the given statuses.
func (q *Queue) List(filter ...models.Status) []models.Action {
	q.mu.Lock()
	defer q.mu.Unlock()

	result := make([]models.Action, 0, len(q.actions))
	for _, a := range q.actions {
		if len(filter) == 0 || slices.Contains(filter, a.Status) {
			result = append(result, a)
		}
	}
	return result
}

// Get returns a copy of the action with id.
func (q *Queue) Get(id string) (models.Action, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	i := q.indexLocked(id)
	if i < 0 {
		return models.Action{}, false
	}
	return q.actions[i], true
}

// Len returns the number of queued actions regardless of status.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.actions)
}

// PendingCount returns the number of actions still waiting to be sent.
func (q *Queue) PendingCount() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := 0
	for _, a := range q.actions {
		if a.Status == models.StatusPending {
			n++
		}
	}
	return n
}

// Load replaces the in-memory queue with the persisted one.
// A missing key yields an empty queue.
func (q *Queue) Load(ctx context.Context) error {
	raw, ok, err := q.store.Get(ctx, storage.KeyPendingActions)
	if err != nil {
		return fmt.Errorf("failed to read queue: %w", err)
	}

	actions := []models.Action{}
	if ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &actions); err != nil {
			return fmt.Errorf("%w: %w", ErrCorruptQueue, err)
		}
		if actions == nil {
			actions = []models.Action{}
		}
	}

	q.mu.Lock()
	q.actions = actions
	q.mu.Unlock()

	q.logger.Debug("Queue loaded", "actions", len(actions))
	return nil
}

// Clear drops every action, including failed ones, and persists the empty queue.
func (q *Queue) Clear(ctx context.Context) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.actions = []models.Action{}
	q.persistLocked(ctx)
}

func (q *Queue) indexLocked(id string) int {
	return slices.IndexFunc(q.actions, func(a models.Action) bool { return a.ID == id })
}

// persistLocked пишет всю очередь целиком; ошибка только логируется,
// источником истины остается память до следующей успешной записи
func (q *Queue) persistLocked(ctx context.Context) {
	data, err := json.Marshal(q.actions)
	if err != nil {
		q.logger.Error("Failed to encode queue", "error", err)
		return
	}

	if err := q.store.Set(ctx, storage.KeyPendingActions, string(data)); err != nil {
		q.logger.Error("Failed to persist queue", "actions", len(q.actions), "error", err)
	}
}

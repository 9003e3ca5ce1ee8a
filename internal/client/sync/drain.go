package sync

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/iudanet/fieldkeeper/internal/client/queue"
	"github.com/iudanet/fieldkeeper/internal/client/storage"
	"github.com/iudanet/fieldkeeper/internal/models"
)

// SkipReason explains why a drain request did nothing.
type SkipReason string

const (
	SkipInProgress SkipReason = "sync in progress"
	SkipOffline    SkipReason = "offline"
	SkipEmpty      SkipReason = "queue empty"
)

// ErrNoHandler is reported when an action kind has no registered handler.
var ErrNoHandler = errors.New("no handler registered for action kind")

// ActionError describes one failed handler attempt.
type ActionError struct {
	Err      error
	ActionID string
	Kind     models.Kind
	Attempt  int
	Final    bool
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("action %s (%s) attempt %d: %v", e.ActionID, e.Kind, e.Attempt, e.Err)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

// DrainResult summarizes one drain request.
type DrainResult struct {
	Skipped     SkipReason
	Failures    []*ActionError
	Duration    time.Duration
	DataVersion int64
	Attempted   int
	Completed   int
	Retried     int
	Failed      int
}

// Ran reports whether a drain pass actually executed.
func (r DrainResult) Ran() bool {
	return r.Skipped == ""
}

type actionIDKey struct{}

// ContextWithActionID returns ctx carrying the id of the action being processed.
func ContextWithActionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, actionIDKey{}, id)
}

// ActionIDFromContext returns the id of the action a handler is processing.
func ActionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(actionIDKey{}).(string)
	return id, ok && id != ""
}

// ProcessPendingActions runs one drain pass over the pending actions,
// oldest first. It is a no-op when a pass is already running, when the
// engine is offline, or when the queue is empty. Handler failures are
// absorbed into retry bookkeeping and never returned.
func (e *Engine) ProcessPendingActions(ctx context.Context) (result DrainResult) {
	// Guard: проверка и захват флага под одной блокировкой
	e.mu.Lock()
	switch {
	case e.session.SyncInProgress:
		result.Skipped = SkipInProgress
	case !e.session.IsOnline:
		result.Skipped = SkipOffline
	case e.queue.Len() == 0:
		result.Skipped = SkipEmpty
	default:
		e.session.SyncInProgress = true
	}
	e.mu.Unlock()

	if !result.Ran() {
		e.logger.Debug("Drain skipped", "reason", result.Skipped)
		return result
	}

	started := e.now()
	defer func() {
		e.finishPass(ctx, started, &result)
	}()

	pending := e.queue.List(models.StatusPending)
	e.logger.Info("Starting drain pass", "pending", len(pending))

	for _, action := range pending {
		if err := ctx.Err(); err != nil {
			// Оставшиеся действия остаются pending без изменения retryCount
			e.logger.Warn("Drain pass interrupted", "remaining", len(pending)-result.Attempted, "error", err)
			break
		}

		result.Attempted++
		err := e.runHandler(ctx, action)
		if err == nil {
			e.queue.Remove(ctx, action.ID)
			result.Completed++
			e.recorder.ActionCompleted(action.Kind)
			e.logger.Debug("Action completed", "id", action.ID, "kind", action.Kind)
			continue
		}

		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			// Проход прерван (Close, Ctrl+C), а не отказ сервера: попытку не списываем
			e.logger.Warn("Drain pass interrupted", "id", action.ID, "kind", action.Kind,
				"remaining", len(pending)-result.Attempted+1, "error", err)
			break
		}

		e.recordFailure(ctx, action, err, &result)
	}

	return result
}

// recordFailure увеличивает retryCount и переводит действие в failed,
// когда бюджет исчерпан
func (e *Engine) recordFailure(ctx context.Context, action models.Action, err error, result *DrainResult) {
	action.RetryCount++
	patch := queue.Patch{RetryCount: action.RetryCount, Status: models.StatusPending}
	if action.Exhausted() {
		patch.Status = models.StatusFailed
	}

	actionErr := &ActionError{
		ActionID: action.ID,
		Kind:     action.Kind,
		Attempt:  patch.RetryCount,
		Final:    patch.Status == models.StatusFailed,
		Err:      err,
	}
	result.Failures = append(result.Failures, actionErr)

	if updErr := e.queue.UpdateStatus(ctx, action.ID, patch); updErr != nil {
		// Действие могли удалить параллельно (remove во время прохода)
		e.logger.Debug("Failed to update action status", "id", action.ID, "error", updErr)
		return
	}

	if actionErr.Final {
		result.Failed++
		e.recorder.ActionFailed(action.Kind)
		e.logger.Warn("Action failed permanently",
			"id", action.ID, "kind", action.Kind, "retry_count", patch.RetryCount, "error", err)
		return
	}

	result.Retried++
	e.recorder.ActionRetried(action.Kind)
	e.logger.Info("Action will be retried",
		"id", action.ID, "kind", action.Kind, "retry_count", patch.RetryCount,
		"retry_budget", action.RetryBudget, "error", err)
}

// runHandler вызывает обработчик, превращая panic в обычную ошибку
func (e *Engine) runHandler(ctx context.Context, action models.Action) (err error) {
	handler, ok := e.handlers[action.Kind]
	if !ok || handler == nil {
		return fmt.Errorf("%w: %s", ErrNoHandler, action.Kind)
	}

	ctx = ContextWithActionID(ctx, action.ID)
	if e.cfg.HandlerTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.HandlerTimeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("Handler panicked", "id", action.ID, "kind", action.Kind,
				"panic", r, "stack", string(debug.Stack()))
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()

	return handler(ctx, action.Payload)
}

// finishPass выполняется всегда, даже при panic внутри прохода:
// фиксирует lastSyncTime и снимает флаг syncInProgress
func (e *Engine) finishPass(ctx context.Context, started time.Time, result *DrainResult) {
	finished := e.now().UTC()
	result.Duration = finished.Sub(started)

	if err := e.store.Set(context.WithoutCancel(ctx), storage.KeyLastSync, finished.Format(time.RFC3339Nano)); err != nil {
		e.logger.Error("Failed to persist last sync time", "error", err)
	}

	e.mu.Lock()
	e.session.LastSyncTime = finished
	e.session.SyncInProgress = false
	e.mu.Unlock()

	pending := e.queue.PendingCount()
	e.recorder.DrainFinished(result.Duration, pending)
	e.logger.Info("Drain pass finished",
		"attempted", result.Attempted,
		"completed", result.Completed,
		"retried", result.Retried,
		"failed", result.Failed,
		"pending", pending,
		"duration", result.Duration)
}

// Package effects implements the per-kind action handlers that push queued
// field mutations to the server.
package effects

//go:generate moq -out tokensource_mock.go . TokenSource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/iudanet/fieldkeeper/internal/client/api"
	"github.com/iudanet/fieldkeeper/internal/client/storage"
	"github.com/iudanet/fieldkeeper/internal/client/sync"
	"github.com/iudanet/fieldkeeper/internal/models"
)

// ErrUnexpectedPayload is returned when a handler receives a payload of another kind.
var ErrUnexpectedPayload = errors.New("unexpected payload type")

// TokenSource supplies a valid access token for API calls.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// Effects binds action kinds to server calls.
type Effects struct {
	client api.ClientAPI
	tokens TokenSource
	store  storage.KVStorage
	logger *slog.Logger
	now    func() time.Time
}

// New creates the handler set. store receives the local cache updates.
func New(client api.ClientAPI, tokens TokenSource, store storage.KVStorage, logger *slog.Logger) *Effects {
	return &Effects{
		client: client,
		tokens: tokens,
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Handlers returns a handler for every action kind.
func (e *Effects) Handlers() sync.Handlers {
	return sync.Handlers{
		models.KindSubmitReport:      e.submitReport,
		models.KindDeleteReport:      e.deleteReport,
		models.KindAddStaffRecord:    e.addStaff,
		models.KindUpdateStaffRecord: e.updateStaff,
		models.KindFullResync:        e.fullResync,
	}
}

func (e *Effects) submitReport(ctx context.Context, payload models.Payload) error {
	p, ok := payload.(models.SubmitReportPayload)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnexpectedPayload, payload)
	}
	token, key, err := e.credentials(ctx)
	if err != nil {
		return err
	}

	resp, err := e.client.SubmitReport(ctx, token, key, models.ReportToAPI(p.Report))
	if err != nil {
		return e.rejected(models.KindSubmitReport, err)
	}
	e.logger.Debug("Report submitted", "report_id", p.Report.ID, "replayed", resp.Replayed)

	e.updateCache(ctx, func(c *models.Cache) {
		c.Reports = upsertReport(c.Reports, p.Report)
	})
	return nil
}

func (e *Effects) deleteReport(ctx context.Context, payload models.Payload) error {
	p, ok := payload.(models.DeleteReportPayload)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnexpectedPayload, payload)
	}
	token, key, err := e.credentials(ctx)
	if err != nil {
		return err
	}

	if _, err := e.client.DeleteReport(ctx, token, key, p.ReportID); err != nil {
		// отчета уже нет на сервере, цель действия достигнута
		if !api.IsNotFound(err) {
			return e.rejected(models.KindDeleteReport, err)
		}
		e.logger.Debug("Report already deleted on server", "report_id", p.ReportID)
	}

	e.updateCache(ctx, func(c *models.Cache) {
		c.Reports = slices.DeleteFunc(c.Reports, func(r models.Report) bool {
			return r.ID == p.ReportID
		})
	})
	return nil
}

func (e *Effects) addStaff(ctx context.Context, payload models.Payload) error {
	p, ok := payload.(models.AddStaffRecordPayload)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnexpectedPayload, payload)
	}
	token, key, err := e.credentials(ctx)
	if err != nil {
		return err
	}

	if _, err := e.client.AddStaff(ctx, token, key, models.StaffToAPI(p.Staff)); err != nil {
		return e.rejected(models.KindAddStaffRecord, err)
	}

	e.updateCache(ctx, func(c *models.Cache) {
		c.Staff = upsertStaff(c.Staff, p.Staff)
	})
	return nil
}

func (e *Effects) updateStaff(ctx context.Context, payload models.Payload) error {
	p, ok := payload.(models.UpdateStaffRecordPayload)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnexpectedPayload, payload)
	}
	token, key, err := e.credentials(ctx)
	if err != nil {
		return err
	}

	resp, err := e.client.UpdateStaff(ctx, token, key, models.StaffToAPI(p.Staff))
	if err != nil {
		return e.rejected(models.KindUpdateStaffRecord, err)
	}
	if !resp.Applied {
		// на сервере более новая версия, локальный кеш обновит следующий resync
		e.logger.Info("Staff update superseded by newer server version", "staff_id", p.Staff.ID)
		return nil
	}

	e.updateCache(ctx, func(c *models.Cache) {
		c.Staff = upsertStaff(c.Staff, p.Staff)
	})
	return nil
}

func (e *Effects) fullResync(ctx context.Context, payload models.Payload) error {
	if _, ok := payload.(models.FullResyncPayload); !ok {
		return fmt.Errorf("%w: %T", ErrUnexpectedPayload, payload)
	}
	token, err := e.tokens.AccessToken(ctx)
	if err != nil {
		return fmt.Errorf("failed to get access token: %w", err)
	}

	resp, err := e.client.Resync(ctx, token)
	if err != nil {
		return e.rejected(models.KindFullResync, err)
	}

	cache := models.Cache{
		RefreshedAt: e.now().UTC(),
		Reports:     make([]models.Report, 0, len(resp.Reports)),
		Staff:       make([]models.StaffRecord, 0, len(resp.Staff)),
	}
	for _, r := range resp.Reports {
		cache.Reports = append(cache.Reports, models.ReportFromAPI(r))
	}
	for _, s := range resp.Staff {
		cache.Staff = append(cache.Staff, models.StaffFromAPI(s))
	}

	if err := e.writeCache(ctx, &cache); err != nil {
		return err
	}
	e.logger.Info("Local cache refreshed",
		"reports", len(cache.Reports),
		"staff", len(cache.Staff))
	return nil
}

// credentials returns the bearer token and the idempotency key of the running action.
func (e *Effects) credentials(ctx context.Context) (token, key string, err error) {
	token, err = e.tokens.AccessToken(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to get access token: %w", err)
	}
	key, ok := sync.ActionIDFromContext(ctx)
	if !ok {
		e.logger.Warn("Handler called outside of a drain pass, sending without idempotency key")
	}
	return token, key, nil
}

func (e *Effects) rejected(kind models.Kind, err error) error {
	if api.Permanent(err) {
		e.logger.Warn("Server rejected action", "kind", kind, "status", api.StatusCode(err), "error", err)
	}
	return err
}

func (e *Effects) readCache(ctx context.Context) (*models.Cache, error) {
	raw, ok, err := e.store.Get(ctx, storage.KeyCache)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache: %w", err)
	}
	var cache models.Cache
	if !ok || raw == "" {
		return &cache, nil
	}
	if err := json.Unmarshal([]byte(raw), &cache); err != nil {
		// битый кеш заменяется, источник истины на сервере
		e.logger.Warn("Discarding unreadable cache", "error", err)
		return &models.Cache{}, nil
	}
	return &cache, nil
}

func (e *Effects) writeCache(ctx context.Context, cache *models.Cache) error {
	data, err := json.Marshal(cache)
	if err != nil {
		return fmt.Errorf("failed to encode cache: %w", err)
	}
	if err := e.store.Set(ctx, storage.KeyCache, string(data)); err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}
	return nil
}

// updateCache applies a confirmed mutation to the local cache.
// Failure here is logged only: the server already accepted the action.
func (e *Effects) updateCache(ctx context.Context, apply func(*models.Cache)) {
	cache, err := e.readCache(ctx)
	if err == nil {
		apply(cache)
		err = e.writeCache(ctx, cache)
	}
	if err != nil {
		e.logger.Error("Failed to update local cache", "error", err)
	}
}

func upsertReport(reports []models.Report, r models.Report) []models.Report {
	if i := slices.IndexFunc(reports, func(x models.Report) bool { return x.ID == r.ID }); i >= 0 {
		reports[i] = r
		return reports
	}
	return append(reports, r)
}

func upsertStaff(staff []models.StaffRecord, s models.StaffRecord) []models.StaffRecord {
	if i := slices.IndexFunc(staff, func(x models.StaffRecord) bool { return x.ID == s.ID }); i >= 0 {
		if staff[i].IsNewerThan(s) {
			return staff
		}
		staff[i] = s
		return staff
	}
	return append(staff, s)
}

// Package data is the typed field-data layer on top of the offline queue.
// Mutations are queued as actions; reads merge the last server snapshot with
// the still-pending local actions.
package data

//go:generate moq -out service_mock.go . Service

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/fieldkeeper/internal/client/offline"
	"github.com/iudanet/fieldkeeper/internal/client/queue"
	"github.com/iudanet/fieldkeeper/internal/models"
)

// Service определяет интерфейс для клиентского data сервиса.
// Every mutation returns the id of the queued action.
type Service interface {
	SubmitReport(ctx context.Context, report *models.Report) (string, error)
	DeleteReport(ctx context.Context, reportID string) (string, error)
	AddStaff(ctx context.Context, staff *models.StaffRecord) (string, error)
	UpdateStaff(ctx context.Context, staff *models.StaffRecord) (string, error)
	RequestResync(ctx context.Context, reason string) (string, error)

	ListReports(ctx context.Context) ([]ReportEntry, error)
	ListStaff(ctx context.Context) ([]StaffEntry, error)
}

// Outbox is the part of the offline service used here.
type Outbox interface {
	Enqueue(ctx context.Context, payload models.Payload, opts ...queue.EnqueueOption) (string, error)
	List(filter ...models.Status) []models.Action
	Cache(ctx context.Context) (*models.Cache, bool, error)
}

var _ Outbox = (*offline.Service)(nil)

// ReportEntry is a report as the user currently sees it.
type ReportEntry struct {
	Report models.Report
	// Pending is true while a local change to the report is not yet confirmed by the server
	Pending bool
}

// StaffEntry is a staff record as the user currently sees it.
type StaffEntry struct {
	Staff   models.StaffRecord
	Pending bool
}

type service struct {
	outbox Outbox
	now    func() time.Time
	newID  func() string
}

// NewService creates a new data service
func NewService(outbox Outbox) Service {
	return &service{
		outbox: outbox,
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
	}
}

// SubmitReport queues a report upload. Missing id and capture time are filled in.
func (s *service) SubmitReport(ctx context.Context, report *models.Report) (string, error) {
	if report == nil {
		return "", fmt.Errorf("report is nil")
	}
	if report.ID == "" {
		report.ID = s.newID()
	}
	if report.CapturedAt.IsZero() {
		report.CapturedAt = s.now().UTC()
	}
	return s.enqueue(ctx, models.SubmitReportPayload{Report: *report})
}

// DeleteReport queues the removal of a report.
func (s *service) DeleteReport(ctx context.Context, reportID string) (string, error) {
	return s.enqueue(ctx, models.DeleteReportPayload{ReportID: reportID})
}

// AddStaff queues a new staff record and stamps its edit time.
func (s *service) AddStaff(ctx context.Context, staff *models.StaffRecord) (string, error) {
	if staff == nil {
		return "", fmt.Errorf("staff record is nil")
	}
	if staff.ID == "" {
		staff.ID = s.newID()
	}
	staff.UpdatedAt = s.now().UTC()
	return s.enqueue(ctx, models.AddStaffRecordPayload{Staff: *staff})
}

// UpdateStaff queues a staff record replacement and stamps its edit time.
func (s *service) UpdateStaff(ctx context.Context, staff *models.StaffRecord) (string, error) {
	if staff == nil {
		return "", fmt.Errorf("staff record is nil")
	}
	staff.UpdatedAt = s.now().UTC()
	return s.enqueue(ctx, models.UpdateStaffRecordPayload{Staff: *staff})
}

// RequestResync queues a full refresh of the local cache.
func (s *service) RequestResync(ctx context.Context, reason string) (string, error) {
	return s.enqueue(ctx, models.FullResyncPayload{Reason: strings.TrimSpace(reason)})
}

func (s *service) enqueue(ctx context.Context, payload models.Payload) (string, error) {
	id, err := s.outbox.Enqueue(ctx, payload)
	if err != nil {
		return "", fmt.Errorf("failed to queue %s: %w", payload.Kind(), err)
	}
	return id, nil
}

// ListReports returns cached reports with pending local changes applied, ordered by capture time.
func (s *service) ListReports(ctx context.Context) ([]ReportEntry, error) {
	cache, _, err := s.outbox.Cache(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]ReportEntry, 0, len(cache.Reports))
	for _, r := range cache.Reports {
		entries = append(entries, ReportEntry{Report: r})
	}

	// применяем неподтвержденные действия в порядке очереди
	for _, action := range s.outbox.List(models.StatusPending) {
		switch p := action.Payload.(type) {
		case models.SubmitReportPayload:
			entry := ReportEntry{Report: p.Report, Pending: true}
			if i := indexReport(entries, p.Report.ID); i >= 0 {
				entries[i] = entry
			} else {
				entries = append(entries, entry)
			}
		case models.DeleteReportPayload:
			if i := indexReport(entries, p.ReportID); i >= 0 {
				entries = slices.Delete(entries, i, i+1)
			}
		}
	}

	slices.SortStableFunc(entries, func(a, b ReportEntry) int {
		return a.Report.CapturedAt.Compare(b.Report.CapturedAt)
	})
	return entries, nil
}

// ListStaff returns cached staff with pending local changes applied, ordered by name.
func (s *service) ListStaff(ctx context.Context) ([]StaffEntry, error) {
	cache, _, err := s.outbox.Cache(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]StaffEntry, 0, len(cache.Staff))
	for _, r := range cache.Staff {
		entries = append(entries, StaffEntry{Staff: r})
	}

	for _, action := range s.outbox.List(models.StatusPending) {
		var staff models.StaffRecord
		switch p := action.Payload.(type) {
		case models.AddStaffRecordPayload:
			staff = p.Staff
		case models.UpdateStaffRecordPayload:
			staff = p.Staff
		default:
			continue
		}
		entry := StaffEntry{Staff: staff, Pending: true}
		if i := indexStaff(entries, staff.ID); i >= 0 {
			entries[i] = entry
		} else {
			entries = append(entries, entry)
		}
	}

	slices.SortStableFunc(entries, func(a, b StaffEntry) int {
		return cmp.Or(
			strings.Compare(strings.ToLower(a.Staff.FullName), strings.ToLower(b.Staff.FullName)),
			strings.Compare(a.Staff.ID, b.Staff.ID),
		)
	})
	return entries, nil
}

func indexReport(entries []ReportEntry, id string) int {
	return slices.IndexFunc(entries, func(e ReportEntry) bool { return e.Report.ID == id })
}

func indexStaff(entries []StaffEntry, id string) int {
	return slices.IndexFunc(entries, func(e StaffEntry) bool { return e.Staff.ID == id })
}

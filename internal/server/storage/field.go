package storage

import (
	"context"

	"github.com/iudanet/fieldkeeper/internal/models"
)

// FieldStorage persists reports and staff records per user.
type FieldStorage interface {
	// SaveReport inserts a report or replaces one with the same ID
	SaveReport(ctx context.Context, userID string, report *models.Report) error

	// DeleteReport removes a report
	// Returns ErrRecordNotFound if report doesn't exist
	DeleteReport(ctx context.Context, userID, reportID string) error

	// ListReports returns all reports of the user ordered by capture time
	ListReports(ctx context.Context, userID string) ([]models.Report, error)

	// AddStaff creates a staff record. An existing record with the same ID
	// is overwritten only when the incoming one is newer (last-writer-wins).
	// Returns false when the stored record was kept.
	AddStaff(ctx context.Context, userID string, staff *models.StaffRecord) (bool, error)

	// UpdateStaff replaces an existing staff record under last-writer-wins.
	// Returns ErrRecordNotFound if record doesn't exist
	UpdateStaff(ctx context.Context, userID string, staff *models.StaffRecord) (bool, error)

	// ListStaff returns all staff records of the user ordered by name
	ListStaff(ctx context.Context, userID string) ([]models.StaffRecord, error)
}

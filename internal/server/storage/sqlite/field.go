package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/fieldkeeper/internal/models"
	"github.com/iudanet/fieldkeeper/internal/server/storage"
)

// SaveReport inserts a report or replaces one with the same ID
func (s *Storage) SaveReport(ctx context.Context, userID string, report *models.Report) error {
	query := `
		INSERT INTO reports (user_id, id, title, site, notes, author, signature, captured_at, received_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, id) DO UPDATE SET
			title = excluded.title,
			site = excluded.site,
			notes = excluded.notes,
			author = excluded.author,
			signature = excluded.signature,
			captured_at = excluded.captured_at,
			received_at = excluded.received_at
	`

	_, err := s.db.ExecContext(ctx, query,
		userID,
		report.ID,
		report.Title,
		report.Site,
		report.Notes,
		report.Author,
		report.Signature,
		report.CapturedAt.UTC(),
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	return nil
}

// DeleteReport removes a report
func (s *Storage) DeleteReport(ctx context.Context, userID, reportID string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM reports WHERE user_id = ? AND id = ?`, userID, reportID)
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}

	return expectAffected(result, storage.ErrRecordNotFound)
}

// ListReports returns all reports of the user ordered by capture time
func (s *Storage) ListReports(ctx context.Context, userID string) ([]models.Report, error) {
	query := `
		SELECT id, title, site, notes, author, signature, captured_at
		FROM reports
		WHERE user_id = ?
		ORDER BY captured_at, id
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	reports := []models.Report{}
	for rows.Next() {
		var r models.Report
		if err := rows.Scan(&r.ID, &r.Title, &r.Site, &r.Notes, &r.Author, &r.Signature, &r.CapturedAt); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return reports, nil
}

// AddStaff creates a staff record or overwrites an older one with the same ID
func (s *Storage) AddStaff(ctx context.Context, userID string, staff *models.StaffRecord) (bool, error) {
	return s.putStaff(ctx, userID, staff, false)
}

// UpdateStaff replaces an existing staff record if the incoming one is newer
func (s *Storage) UpdateStaff(ctx context.Context, userID string, staff *models.StaffRecord) (bool, error) {
	return s.putStaff(ctx, userID, staff, true)
}

// putStaff пишет запись по правилу last-writer-wins внутри одной транзакции
func (s *Storage) putStaff(ctx context.Context, userID string, staff *models.StaffRecord, mustExist bool) (applied bool, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var current time.Time
	err = tx.QueryRowContext(ctx,
		`SELECT updated_at FROM staff WHERE user_id = ? AND id = ?`, userID, staff.ID,
	).Scan(&current)

	exists := true
	switch {
	case errors.Is(err, sql.ErrNoRows):
		exists = false
	case err != nil:
		return false, fmt.Errorf("failed to get staff record: %w", err)
	}

	if !exists && mustExist {
		err = storage.ErrRecordNotFound
		return false, err
	}

	// равные метки времени: побеждает уже сохраненная запись
	if exists && !staff.UpdatedAt.After(current) {
		if err = tx.Commit(); err != nil {
			return false, fmt.Errorf("failed to commit transaction: %w", err)
		}
		return false, nil
	}

	query := `
		INSERT INTO staff (user_id, id, full_name, role, phone, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, id) DO UPDATE SET
			full_name = excluded.full_name,
			role = excluded.role,
			phone = excluded.phone,
			updated_at = excluded.updated_at
	`
	if _, err = tx.ExecContext(ctx, query,
		userID,
		staff.ID,
		staff.FullName,
		staff.Role,
		staff.Phone,
		staff.UpdatedAt.UTC(),
	); err != nil {
		return false, fmt.Errorf("failed to save staff record: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return true, nil
}

// ListStaff returns all staff records of the user ordered by name
func (s *Storage) ListStaff(ctx context.Context, userID string) ([]models.StaffRecord, error) {
	query := `
		SELECT id, full_name, role, phone, updated_at
		FROM staff
		WHERE user_id = ?
		ORDER BY full_name COLLATE NOCASE, id
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query staff: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	staff := []models.StaffRecord{}
	for rows.Next() {
		var r models.StaffRecord
		if err := rows.Scan(&r.ID, &r.FullName, &r.Role, &r.Phone, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan staff record: %w", err)
		}
		staff = append(staff, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return staff, nil
}

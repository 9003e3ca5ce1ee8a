package cli

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/fieldkeeper/internal/client/data"
	"github.com/iudanet/fieldkeeper/internal/client/queue"
	"github.com/iudanet/fieldkeeper/internal/models"
)

func TestReportSubmit_Flags(t *testing.T) {
	f := newFixture(t)
	f.outbox.PendingCountFunc = func() int { return 1 }
	f.data.SubmitReportFunc = func(ctx context.Context, report *models.Report) (string, error) {
		report.ID = "r-1"
		return "a-1", nil
	}

	require.NoError(t, f.run("report", "submit",
		"--title", "Trench A", "--site", "North", "--notes", "clay at 40cm",
		"--captured-at", "2026-06-01T09:00:00+02:00"))

	calls := f.data.SubmitReportCalls()
	require.Len(t, calls, 1)
	got := calls[0].Report
	assert.Equal(t, "Trench A", got.Title)
	assert.Equal(t, "North", got.Site)
	assert.Equal(t, "clay at 40cm", got.Notes)
	assert.Equal(t, time.Date(2026, 6, 1, 7, 0, 0, 0, time.UTC), got.CapturedAt)

	assert.Contains(t, f.out.String(), "Report r-1 queued (action a-1)")
	assert.Contains(t, f.out.String(), "Pending actions: 1")
}

func TestReportSubmit_PromptsMissingFields(t *testing.T) {
	f := newFixture(t, "Trench B", "South")
	f.data.SubmitReportFunc = func(ctx context.Context, report *models.Report) (string, error) {
		return "a-1", nil
	}

	require.NoError(t, f.run("report", "submit"))

	got := f.data.SubmitReportCalls()[0].Report
	assert.Equal(t, "Trench B", got.Title)
	assert.Equal(t, "South", got.Site)
	assert.True(t, got.CapturedAt.IsZero(), "capture time is left to the data service")
}

func TestReportSubmit_Errors(t *testing.T) {
	t.Run("bad capture time", func(t *testing.T) {
		f := newFixture(t)
		err := f.run("report", "submit", "--title", "T", "--site", "S", "--captured-at", "yesterday")
		assert.ErrorIs(t, err, ErrUsage)
		assert.Empty(t, f.data.SubmitReportCalls())
	})

	t.Run("invalid payload", func(t *testing.T) {
		f := newFixture(t)
		f.data.SubmitReportFunc = func(ctx context.Context, report *models.Report) (string, error) {
			return "", queue.ErrInvalidPayload
		}
		err := f.run("report", "submit", "--title", "T", "--site", "S")
		assert.ErrorIs(t, err, queue.ErrInvalidPayload)
	})
}

func TestReportDelete(t *testing.T) {
	f := newFixture(t)
	f.data.DeleteReportFunc = func(ctx context.Context, reportID string) (string, error) {
		return "a-2", nil
	}

	require.NoError(t, f.run("report", "delete", "r-1"))
	assert.Equal(t, "r-1", f.data.DeleteReportCalls()[0].ReportID)
	assert.Contains(t, f.out.String(), "Deletion of report r-1 queued (action a-2)")
}

func TestReportList(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		f := newFixture(t)
		f.data.ListReportsFunc = func(ctx context.Context) ([]data.ReportEntry, error) {
			return []data.ReportEntry{}, nil
		}

		require.NoError(t, f.run("report", "list"))
		assert.Contains(t, f.out.String(), "No reports found.")
	})

	t.Run("entries", func(t *testing.T) {
		f := newFixture(t)
		f.data.ListReportsFunc = func(ctx context.Context) ([]data.ReportEntry, error) {
			return []data.ReportEntry{
				{Report: models.Report{ID: "r-1", Title: "Trench A", Site: "North"}},
				{Report: models.Report{ID: "r-2", Title: "Trench B", Site: "North", Notes: "wet"}, Pending: true},
			}, nil
		}

		require.NoError(t, f.run("report", "list"))

		out := f.out.String()
		assert.Contains(t, out, "Found 2 report(s)")
		assert.Contains(t, out, "1. Trench A\n")
		assert.Contains(t, out, "2. Trench B  [pending]")
		assert.Contains(t, out, "Notes:    wet")
	})

	t.Run("error", func(t *testing.T) {
		f := newFixture(t)
		f.data.ListReportsFunc = func(ctx context.Context) ([]data.ReportEntry, error) {
			return nil, errors.New("corrupt cache")
		}
		assert.Error(t, f.run("report", "list"))
	})
}

func TestStaffAdd(t *testing.T) {
	f := newFixture(t)
	f.data.AddStaffFunc = func(ctx context.Context, staff *models.StaffRecord) (string, error) {
		staff.ID = "s-1"
		return "a-3", nil
	}

	require.NoError(t, f.run("staff", "add", "--name", "Anna Petrova", "--role", "lead"))

	got := f.data.AddStaffCalls()[0].Staff
	assert.Equal(t, "Anna Petrova", got.FullName)
	assert.Equal(t, "lead", got.Role)
	assert.Contains(t, f.out.String(), "Staff record s-1 queued (action a-3)")
}

func TestStaffUpdate_KeepsUnsetFields(t *testing.T) {
	f := newFixture(t)
	f.data.ListStaffFunc = func(ctx context.Context) ([]data.StaffEntry, error) {
		return []data.StaffEntry{
			{Staff: models.StaffRecord{ID: "s-1", FullName: "Anna Petrova", Role: "lead", Phone: "+7 900 000-00-00"}},
		}, nil
	}
	f.data.UpdateStaffFunc = func(ctx context.Context, staff *models.StaffRecord) (string, error) {
		return "a-4", nil
	}

	require.NoError(t, f.run("staff", "update", "s-1", "--role", "site chief"))

	got := f.data.UpdateStaffCalls()[0].Staff
	assert.Equal(t, models.StaffRecord{
		ID:       "s-1",
		FullName: "Anna Petrova",
		Role:     "site chief",
		Phone:    "+7 900 000-00-00",
	}, *got)
}

func TestStaffUpdate_NotFound(t *testing.T) {
	f := newFixture(t)
	f.data.ListStaffFunc = func(ctx context.Context) ([]data.StaffEntry, error) {
		return nil, nil
	}

	err := f.run("staff", "update", "s-404", "--role", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.Empty(t, f.data.UpdateStaffCalls())
}

func TestStaffList(t *testing.T) {
	f := newFixture(t)
	f.data.ListStaffFunc = func(ctx context.Context) ([]data.StaffEntry, error) {
		return []data.StaffEntry{
			{Staff: models.StaffRecord{ID: "s-1", FullName: "Anna Petrova", Role: "lead"}, Pending: true},
		}, nil
	}

	require.NoError(t, f.run("staff", "list"))
	assert.Contains(t, f.out.String(), "1. Anna Petrova  [pending]")
	assert.Contains(t, f.out.String(), "Role:    lead")
}

func TestResync(t *testing.T) {
	f := newFixture(t)
	f.data.RequestResyncFunc = func(ctx context.Context, reason string) (string, error) {
		return "a-5", nil
	}

	require.NoError(t, f.run("resync", "--reason", "new tablet"))
	assert.Equal(t, "new tablet", f.data.RequestResyncCalls()[0].Reason)
	assert.Contains(t, f.out.String(), "Full resync queued (action a-5)")
}

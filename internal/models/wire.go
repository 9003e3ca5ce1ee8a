package models

import "github.com/iudanet/fieldkeeper/pkg/api"

// ReportToAPI converts a report to its wire form.
func ReportToAPI(r Report) api.Report {
	return api.Report{
		CapturedAt: r.CapturedAt,
		ID:         r.ID,
		Title:      r.Title,
		Site:       r.Site,
		Notes:      r.Notes,
		Author:     r.Author,
		Signature:  r.Signature,
	}
}

// ReportFromAPI converts a wire report, normalizing time to UTC.
func ReportFromAPI(r api.Report) Report {
	return Report{
		CapturedAt: r.CapturedAt.UTC(),
		ID:         r.ID,
		Title:      r.Title,
		Site:       r.Site,
		Notes:      r.Notes,
		Author:     r.Author,
		Signature:  r.Signature,
	}
}

// StaffToAPI converts a staff record to its wire form.
func StaffToAPI(s StaffRecord) api.StaffRecord {
	return api.StaffRecord{
		UpdatedAt: s.UpdatedAt,
		ID:        s.ID,
		FullName:  s.FullName,
		Role:      s.Role,
		Phone:     s.Phone,
	}
}

// StaffFromAPI converts a wire staff record, normalizing time to UTC.
func StaffFromAPI(s api.StaffRecord) StaffRecord {
	return StaffRecord{
		UpdatedAt: s.UpdatedAt.UTC(),
		ID:        s.ID,
		FullName:  s.FullName,
		Role:      s.Role,
		Phone:     s.Phone,
	}
}

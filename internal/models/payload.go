package models

import (
	"fmt"

	"github.com/iudanet/fieldkeeper/internal/validation"
)

// Payload is the kind-specific body of an action.
// Implementations are value types so an action can be copied and serialized freely.
type Payload interface {
	Kind() Kind
	Validate() error
}

// SubmitReportPayload uploads a captured field report.
type SubmitReportPayload struct {
	Report Report `json:"report"`
}

func (SubmitReportPayload) Kind() Kind { return KindSubmitReport }

func (p SubmitReportPayload) Validate() error {
	return p.Report.Validate()
}

// UpdateStaffRecordPayload replaces an existing staff record.
type UpdateStaffRecordPayload struct {
	Staff StaffRecord `json:"staff"`
}

func (UpdateStaffRecordPayload) Kind() Kind { return KindUpdateStaffRecord }

func (p UpdateStaffRecordPayload) Validate() error {
	return p.Staff.Validate()
}

// DeleteReportPayload removes a report on the server.
type DeleteReportPayload struct {
	ReportID string `json:"reportId"`
}

func (DeleteReportPayload) Kind() Kind { return KindDeleteReport }

func (p DeleteReportPayload) Validate() error {
	return validation.ValidateRecordID("report id", p.ReportID)
}

// AddStaffRecordPayload creates a new staff record.
type AddStaffRecordPayload struct {
	Staff StaffRecord `json:"staff"`
}

func (AddStaffRecordPayload) Kind() Kind { return KindAddStaffRecord }

func (p AddStaffRecordPayload) Validate() error {
	return p.Staff.Validate()
}

// FullResyncPayload asks for a complete refresh of the local cache.
type FullResyncPayload struct {
	Reason string `json:"reason,omitempty"`
}

func (FullResyncPayload) Kind() Kind { return KindFullResync }

func (p FullResyncPayload) Validate() error {
	if err := validation.ValidateText("reason", p.Reason, false, validation.MaxTitleLen); err != nil {
		return fmt.Errorf("full resync: %w", err)
	}
	return nil
}

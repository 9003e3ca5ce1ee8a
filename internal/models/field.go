package models

import (
	"time"

	"github.com/iudanet/fieldkeeper/internal/validation"
)

// Report is a field documentation record captured on site.
type Report struct {
	CapturedAt time.Time `json:"capturedAt"`
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Site       string    `json:"site"`
	Notes      string    `json:"notes,omitempty"`
	Author     string    `json:"author,omitempty"`
	// Signature хранится как есть (base64), захват подписи вне этого модуля
	Signature string `json:"signature,omitempty"`
}

// Validate checks report fields.
func (r Report) Validate() error {
	if err := validation.ValidateRecordID("report id", r.ID); err != nil {
		return err
	}
	if err := validation.ValidateText("title", r.Title, true, validation.MaxTitleLen); err != nil {
		return err
	}
	if err := validation.ValidateText("site", r.Site, false, validation.MaxNameLen); err != nil {
		return err
	}
	return validation.ValidateText("notes", r.Notes, false, validation.MaxNotesLen)
}

// StaffRecord describes a member of the field staff.
type StaffRecord struct {
	UpdatedAt time.Time `json:"updatedAt"`
	ID        string    `json:"id"`
	FullName  string    `json:"fullName"`
	Role      string    `json:"role,omitempty"`
	Phone     string    `json:"phone,omitempty"`
}

// Validate checks staff record fields.
func (s StaffRecord) Validate() error {
	if err := validation.ValidateRecordID("staff id", s.ID); err != nil {
		return err
	}
	if err := validation.ValidateText("full name", s.FullName, true, validation.MaxNameLen); err != nil {
		return err
	}
	if err := validation.ValidateText("role", s.Role, false, validation.MaxNameLen); err != nil {
		return err
	}
	return validation.ValidatePhone(s.Phone)
}

// IsNewerThan reports whether s was edited after other (last-writer-wins).
func (s StaffRecord) IsNewerThan(other StaffRecord) bool {
	return s.UpdatedAt.After(other.UpdatedAt)
}

// Cache is the server view pulled by the last full resync.
type Cache struct {
	RefreshedAt time.Time     `json:"refreshedAt"`
	Reports     []Report      `json:"reports"`
	Staff       []StaffRecord `json:"staff"`
}

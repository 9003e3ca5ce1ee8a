package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrUnknownKind is returned when an action kind is not part of the known set.
var ErrUnknownKind = errors.New("unknown action kind")

// Kind identifies the type of a queued mutation.
// Теги только добавляются, выведенные из оборота не переиспользуются.
type Kind string

const (
	KindSubmitReport      Kind = "submit-report"
	KindUpdateStaffRecord Kind = "update-staff-record"
	KindDeleteReport      Kind = "delete-report"
	KindAddStaffRecord    Kind = "add-staff-record"
	KindFullResync        Kind = "full-resync"
)

// Kinds returns all known action kinds in declaration order.
func Kinds() []Kind {
	return []Kind{
		KindSubmitReport,
		KindUpdateStaffRecord,
		KindDeleteReport,
		KindAddStaffRecord,
		KindFullResync,
	}
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindSubmitReport, KindUpdateStaffRecord, KindDeleteReport, KindAddStaffRecord, KindFullResync:
		return true
	}
	return false
}

// Status is the lifecycle state of a queued action.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are allowed from s.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// CanTransition reports whether the status machine allows s -> to.
// Only pending actions move: to completed, to failed, or stay pending on retry.
func (s Status) CanTransition(to Status) bool {
	if s.Terminal() || !s.Valid() {
		return false
	}
	return to.Valid()
}

// Action is a single not-yet-confirmed mutation waiting for remote confirmation.
type Action struct {
	CreatedAt   time.Time `json:"createdAt"`
	Payload     Payload   `json:"payload"`
	ID          string    `json:"id"`
	Kind        Kind      `json:"kind"`
	Status      Status    `json:"status"`
	RetryCount  int       `json:"retryCount"`
	RetryBudget int       `json:"retryBudget"`
}

// Exhausted reports whether the action has used up its retry budget.
func (a Action) Exhausted() bool {
	return a.RetryCount >= a.RetryBudget
}

// UnmarshalJSON decodes an action, resolving the payload type by kind.
func (a *Action) UnmarshalJSON(data []byte) error {
	// alias без методов, чтобы не уйти в рекурсию
	type actionAlias Action
	aux := struct {
		*actionAlias
		Payload json.RawMessage `json:"payload"`
	}{actionAlias: (*actionAlias)(a)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	payload, err := DecodePayload(a.Kind, aux.Payload)
	if err != nil {
		return fmt.Errorf("action %s: %w", a.ID, err)
	}
	a.Payload = payload
	return nil
}

// DecodePayload decodes raw JSON into the payload type registered for kind.
func DecodePayload(kind Kind, raw json.RawMessage) (Payload, error) {
	var (
		payload Payload
		err     error
	)

	switch kind {
	case KindSubmitReport:
		var p SubmitReportPayload
		err = unmarshalPayload(raw, &p)
		payload = p
	case KindUpdateStaffRecord:
		var p UpdateStaffRecordPayload
		err = unmarshalPayload(raw, &p)
		payload = p
	case KindDeleteReport:
		var p DeleteReportPayload
		err = unmarshalPayload(raw, &p)
		payload = p
	case KindAddStaffRecord:
		var p AddStaffRecordPayload
		err = unmarshalPayload(raw, &p)
		payload = p
	case KindFullResync:
		var p FullResyncPayload
		err = unmarshalPayload(raw, &p)
		payload = p
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to decode %s payload: %w", kind, err)
	}
	return payload, nil
}

func unmarshalPayload(raw json.RawMessage, v any) error {
	// пустой payload допустим для видов без обязательных полей
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return json.Unmarshal(raw, v)
}

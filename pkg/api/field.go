package api

import "time"

// IdempotencyKeyHeader carries the client action id of a mutating request.
// A repeated key is acknowledged without applying the mutation again.
const IdempotencyKeyHeader = "Idempotency-Key"

// Report is a field report on the wire.
type Report struct {
	CapturedAt time.Time `json:"captured_at"`
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Site       string    `json:"site"`
	Notes      string    `json:"notes,omitempty"`
	Author     string    `json:"author,omitempty"`
	Signature  string    `json:"signature,omitempty"`
}

// StaffRecord is a staff record on the wire.
type StaffRecord struct {
	UpdatedAt time.Time `json:"updated_at"`
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role,omitempty"`
	Phone     string    `json:"phone,omitempty"`
}

// MutationResponse acknowledges a mutating request.
type MutationResponse struct {
	ID string `json:"id"`
	// Applied is false when the server kept a newer version (staff last-writer-wins)
	Applied bool `json:"applied"`
	// Replayed is true when the idempotency key had already been processed
	Replayed bool `json:"replayed"`
}

// ResyncResponse is the full server view for the current user.
type ResyncResponse struct {
	ServerTime time.Time     `json:"server_time"`
	Reports    []Report      `json:"reports"`
	Staff      []StaffRecord `json:"staff"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Time   time.Time `json:"time"`
	Status string    `json:"status"`
}

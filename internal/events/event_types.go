package events

import (
	"time"

	"github.com/spec-kit/fleet-admin/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventJobCreated       EventType = "job_created"
	EventJobAssigned      EventType = "job_assigned"
	EventJobStatusChanged EventType = "job_status_changed"
)

// Actor encapsulates who performed the mutation.
type Actor struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	JobID     string      `json:"job_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// JobCreatedPayload payload.
type JobCreatedPayload struct {
	Reference    string `json:"reference"`
	CustomerName string `json:"customer_name"`
	CreatedBy    string `json:"created_by"`
}

// JobAssignedPayload payload.
type JobAssignedPayload struct {
	DriverID  string `json:"driver_id"`
	Reference string `json:"reference"`
	CreatedBy string `json:"created_by"`
}

// JobStatusChangedPayload payload.
type JobStatusChangedPayload struct {
	OldStatus domain.JobStatus `json:"old_status"`
	NewStatus domain.JobStatus `json:"new_status"`
	Reference string           `json:"reference"`
	CreatedBy string           `json:"created_by"`
}

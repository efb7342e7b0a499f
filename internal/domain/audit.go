package domain

import "time"

// AuditEntry records a mutation performed through the API.
type AuditEntry struct {
	ID         string
	ActorID    string
	ActorEmail string
	Action     string
	EntityType string
	EntityID   string
	Detail     map[string]any
	CreatedAt  time.Time
}

package domain

import "time"

// JobStatus enumerates the haul lifecycle.
type JobStatus string

const (
	JobStatusPending   JobStatus = "PENDING"
	JobStatusAssigned  JobStatus = "ASSIGNED"
	JobStatusInTransit JobStatus = "IN_TRANSIT"
	JobStatusDelivered JobStatus = "DELIVERED"
	JobStatusCancelled JobStatus = "CANCELLED"
)

// Job models a single haul from pickup to dropoff.
type Job struct {
	ID               string
	Reference        string
	CustomerName     string
	PickupAddress    string
	DropoffAddress   string
	CargoDescription string
	WeightKG         *float64
	DriverID         *string
	Status           JobStatus
	ScheduledAt      *time.Time
	DeliveredAt      *time.Time
	CreatedBy        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CanTransition reports whether a status change is legal.
func (j *Job) CanTransition(next JobStatus) bool {
	switch j.Status {
	case JobStatusPending:
		return next == JobStatusAssigned || next == JobStatusCancelled
	case JobStatusAssigned:
		return next == JobStatusInTransit || next == JobStatusCancelled
	case JobStatusInTransit:
		return next == JobStatusDelivered || next == JobStatusCancelled
	default:
		return false
	}
}

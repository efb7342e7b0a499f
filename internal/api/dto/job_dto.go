package dto

import (
	"time"

	"github.com/spec-kit/fleet-admin/internal/domain"
)

// CreateJobRequest payload.
type CreateJobRequest struct {
	CustomerName     string     `json:"customer_name"`
	PickupAddress    string     `json:"pickup_address"`
	DropoffAddress   string     `json:"dropoff_address"`
	CargoDescription string     `json:"cargo_description"`
	WeightKG         *float64   `json:"weight_kg"`
	ScheduledAt      *time.Time `json:"scheduled_at"`
}

// UpdateJobRequest carries optional changes for pending jobs.
type UpdateJobRequest struct {
	CustomerName     *string    `json:"customer_name"`
	PickupAddress    *string    `json:"pickup_address"`
	DropoffAddress   *string    `json:"dropoff_address"`
	CargoDescription *string    `json:"cargo_description"`
	WeightKG         *float64   `json:"weight_kg"`
	ScheduledAt      *time.Time `json:"scheduled_at"`
}

// AssignJobRequest puts a driver on a job.
type AssignJobRequest struct {
	DriverID string `json:"driver_id"`
}

// JobStatusRequest advances the job lifecycle.
type JobStatusRequest struct {
	Status domain.JobStatus `json:"status"`
}

// JobResponse is the public view of a job.
type JobResponse struct {
	ID               string           `json:"id"`
	Reference        string           `json:"reference"`
	CustomerName     string           `json:"customer_name"`
	PickupAddress    string           `json:"pickup_address"`
	DropoffAddress   string           `json:"dropoff_address"`
	CargoDescription string           `json:"cargo_description"`
	WeightKG         *float64         `json:"weight_kg"`
	DriverID         *string          `json:"driver_id"`
	Status           domain.JobStatus `json:"status"`
	ScheduledAt      *time.Time       `json:"scheduled_at"`
	DeliveredAt      *time.Time       `json:"delivered_at"`
	CreatedBy        string           `json:"created_by"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// NewJobResponse maps a domain job.
func NewJobResponse(job *domain.Job) JobResponse {
	return JobResponse{
		ID:               job.ID,
		Reference:        job.Reference,
		CustomerName:     job.CustomerName,
		PickupAddress:    job.PickupAddress,
		DropoffAddress:   job.DropoffAddress,
		CargoDescription: job.CargoDescription,
		WeightKG:         job.WeightKG,
		DriverID:         job.DriverID,
		Status:           job.Status,
		ScheduledAt:      job.ScheduledAt,
		DeliveredAt:      job.DeliveredAt,
		CreatedBy:        job.CreatedBy,
		CreatedAt:        job.CreatedAt,
		UpdatedAt:        job.UpdatedAt,
	}
}

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/fleet-admin/internal/domain"
	"github.com/spec-kit/fleet-admin/internal/events"
	"github.com/spec-kit/fleet-admin/internal/repository"
	apperrors "github.com/spec-kit/fleet-admin/pkg/util"
)

// Actor identifies who performs a mutation.
type Actor struct {
	UserID string
	Email  string
}

// JobService coordinates the haul lifecycle.
type JobService struct {
	jobs       repository.JobRepository
	drivers    repository.DriverRepository
	dispatcher events.Dispatcher
}

// NewJobService builds the service.
func NewJobService(jobs repository.JobRepository, drivers repository.DriverRepository, dispatcher events.Dispatcher) *JobService {
	return &JobService{jobs: jobs, drivers: drivers, dispatcher: dispatcher}
}

// JobCreateInput describes job creation payload.
type JobCreateInput struct {
	CustomerName     string
	PickupAddress    string
	DropoffAddress   string
	CargoDescription string
	WeightKG         *float64
	ScheduledAt      *time.Time
}

// JobUpdateInput carries optional field changes for pending jobs.
type JobUpdateInput struct {
	CustomerName     *string
	PickupAddress    *string
	DropoffAddress   *string
	CargoDescription *string
	WeightKG         *float64
	ScheduledAt      *time.Time
}

// Create registers a new haul in PENDING state.
func (s *JobService) Create(ctx context.Context, actor Actor, input JobCreateInput) (*domain.Job, error) {
	job := &domain.Job{
		Reference:        newJobReference(),
		CustomerName:     input.CustomerName,
		PickupAddress:    input.PickupAddress,
		DropoffAddress:   input.DropoffAddress,
		CargoDescription: input.CargoDescription,
		WeightKG:         input.WeightKG,
		Status:           domain.JobStatusPending,
		ScheduledAt:      input.ScheduledAt,
		CreatedBy:        actor.UserID,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventJobCreated, job, actor, events.JobCreatedPayload{
		Reference:    job.Reference,
		CustomerName: job.CustomerName,
		CreatedBy:    job.CreatedBy,
	})
	return job, nil
}

// Update modifies a job that has not yet left PENDING.
func (s *JobService) Update(ctx context.Context, id string, input JobUpdateInput) (*domain.Job, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.Status != domain.JobStatusPending {
		return nil, apperrors.NewConflict("only pending jobs can be edited", nil)
	}
	if input.CustomerName != nil {
		job.CustomerName = *input.CustomerName
	}
	if input.PickupAddress != nil {
		job.PickupAddress = *input.PickupAddress
	}
	if input.DropoffAddress != nil {
		job.DropoffAddress = *input.DropoffAddress
	}
	if input.CargoDescription != nil {
		job.CargoDescription = *input.CargoDescription
	}
	if input.WeightKG != nil {
		job.WeightKG = input.WeightKG
	}
	if input.ScheduledAt != nil {
		job.ScheduledAt = input.ScheduledAt
	}
	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// Assign puts a driver on a pending job.
func (s *JobService) Assign(ctx context.Context, actor Actor, jobID, driverID string) (*domain.Job, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !job.CanTransition(domain.JobStatusAssigned) {
		return nil, apperrors.NewConflict(
			fmt.Sprintf("job in status %s cannot be assigned", job.Status), nil)
	}

	driver, err := s.drivers.GetByID(ctx, driverID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("driver", nil)
		}
		return nil, err
	}
	if driver.Status != domain.DriverStatusAvailable {
		return nil, apperrors.NewConflict("driver is not available", nil)
	}

	job.DriverID = &driver.ID
	job.Status = domain.JobStatusAssigned
	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, err
	}

	driver.Status = domain.DriverStatusOnJob
	if err := s.drivers.Update(ctx, driver); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventJobAssigned, job, actor, events.JobAssignedPayload{
		DriverID:  driver.ID,
		Reference: job.Reference,
		CreatedBy: job.CreatedBy,
	})
	return job, nil
}

// ChangeStatus advances the haul lifecycle, enforcing legal transitions.
func (s *JobService) ChangeStatus(ctx context.Context, actor Actor, jobID string, next domain.JobStatus) (*domain.Job, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !job.CanTransition(next) {
		return nil, apperrors.NewConflict(
			fmt.Sprintf("illegal transition %s -> %s", job.Status, next), nil)
	}

	old := job.Status
	job.Status = next
	if next == domain.JobStatusDelivered {
		now := time.Now()
		job.DeliveredAt = &now
	}
	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, err
	}

	// A finished haul frees its driver.
	if (next == domain.JobStatusDelivered || next == domain.JobStatusCancelled) && job.DriverID != nil {
		if driver, err := s.drivers.GetByID(ctx, *job.DriverID); err == nil {
			driver.Status = domain.DriverStatusAvailable
			_ = s.drivers.Update(ctx, driver)
		}
	}

	s.publish(ctx, events.EventJobStatusChanged, job, actor, events.JobStatusChangedPayload{
		OldStatus: old,
		NewStatus: next,
		Reference: job.Reference,
		CreatedBy: job.CreatedBy,
	})
	return job, nil
}

// Get loads one job.
func (s *JobService) Get(ctx context.Context, id string) (*domain.Job, error) {
	return s.jobs.GetByID(ctx, id)
}

// List pages through jobs with filters.
func (s *JobService) List(ctx context.Context, filter repository.JobFilter) ([]domain.Job, error) {
	return s.jobs.List(ctx, filter)
}

func (s *JobService) publish(ctx context.Context, eventType events.EventType, job *domain.Job, actor Actor, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		JobID:     job.ID,
		Actor:     events.Actor{UserID: actor.UserID, Email: actor.Email},
		Timestamp: time.Now(),
		Payload:   payload,
	})
}

func newJobReference() string {
	return "HJ-" + strings.ToUpper(uuid.NewString()[:8])
}

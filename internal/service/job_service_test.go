package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/fleet-admin/internal/domain"
	"github.com/spec-kit/fleet-admin/internal/events"
	"github.com/spec-kit/fleet-admin/internal/repository"
	apperrors "github.com/spec-kit/fleet-admin/pkg/util"
)

type stubJobRepository struct {
	jobs map[string]*domain.Job
	seq  int
}

func newStubJobRepository() *stubJobRepository {
	return &stubJobRepository{jobs: make(map[string]*domain.Job)}
}

func (r *stubJobRepository) Create(_ context.Context, job *domain.Job) error {
	r.seq++
	job.ID = fmt.Sprintf("job-%03d", r.seq)
	job.CreatedAt = time.Now()
	job.UpdatedAt = job.CreatedAt
	copied := *job
	r.jobs[job.ID] = &copied
	return nil
}

func (r *stubJobRepository) Update(_ context.Context, job *domain.Job) error {
	if _, ok := r.jobs[job.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *job
	r.jobs[job.ID] = &copied
	return nil
}

func (r *stubJobRepository) GetByID(_ context.Context, id string) (*domain.Job, error) {
	job, ok := r.jobs[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *job
	return &copied, nil
}

func (r *stubJobRepository) GetByReference(_ context.Context, reference string) (*domain.Job, error) {
	for _, job := range r.jobs {
		if job.Reference == reference {
			copied := *job
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *stubJobRepository) List(context.Context, repository.JobFilter) ([]domain.Job, error) {
	var out []domain.Job
	for _, job := range r.jobs {
		out = append(out, *job)
	}
	return out, nil
}

type stubDriverRepository struct {
	drivers map[string]*domain.Driver
}

func newStubDriverRepository() *stubDriverRepository {
	return &stubDriverRepository{drivers: make(map[string]*domain.Driver)}
}

func (r *stubDriverRepository) Create(_ context.Context, driver *domain.Driver) error {
	copied := *driver
	r.drivers[driver.ID] = &copied
	return nil
}

func (r *stubDriverRepository) Update(_ context.Context, driver *domain.Driver) error {
	if _, ok := r.drivers[driver.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *driver
	r.drivers[driver.ID] = &copied
	return nil
}

func (r *stubDriverRepository) Delete(_ context.Context, id string) error {
	if _, ok := r.drivers[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.drivers, id)
	return nil
}

func (r *stubDriverRepository) GetByID(_ context.Context, id string) (*domain.Driver, error) {
	driver, ok := r.drivers[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *driver
	return &copied, nil
}

func (r *stubDriverRepository) List(context.Context, *domain.DriverStatus, int, int) ([]domain.Driver, error) {
	var out []domain.Driver
	for _, driver := range r.drivers {
		out = append(out, *driver)
	}
	return out, nil
}

func newJobServiceFixture() (*JobService, *stubJobRepository, *stubDriverRepository, *[]events.Event) {
	jobs := newStubJobRepository()
	drivers := newStubDriverRepository()
	dispatcher := events.NewInMemoryDispatcher()

	captured := &[]events.Event{}
	for _, eventType := range []events.EventType{events.EventJobCreated, events.EventJobAssigned, events.EventJobStatusChanged} {
		dispatcher.Subscribe(eventType, func(_ context.Context, event events.Event) error {
			*captured = append(*captured, event)
			return nil
		})
	}

	return NewJobService(jobs, drivers, dispatcher), jobs, drivers, captured
}

func TestJobServiceCreate(t *testing.T) {
	svc, _, _, captured := newJobServiceFixture()
	actor := Actor{UserID: "user-1", Email: "dispatch@haul.test"}

	job, err := svc.Create(context.Background(), actor, JobCreateInput{
		CustomerName:   "Acme Gravel",
		PickupAddress:  "1 Quarry Rd",
		DropoffAddress: "9 Site Ave",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusPending, job.Status)
	assert.True(t, strings.HasPrefix(job.Reference, "HJ-"))
	assert.Equal(t, "user-1", job.CreatedBy)

	require.Len(t, *captured, 1)
	assert.Equal(t, events.EventJobCreated, (*captured)[0].Type)
}

func TestJobServiceAssign(t *testing.T) {
	svc, _, drivers, captured := newJobServiceFixture()
	ctx := context.Background()
	actor := Actor{UserID: "user-1"}

	require.NoError(t, drivers.Create(ctx, &domain.Driver{ID: "drv-1", Status: domain.DriverStatusAvailable}))

	job, err := svc.Create(ctx, actor, JobCreateInput{CustomerName: "Acme"})
	require.NoError(t, err)

	job, err = svc.Assign(ctx, actor, job.ID, "drv-1")
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusAssigned, job.Status)
	require.NotNil(t, job.DriverID)
	assert.Equal(t, "drv-1", *job.DriverID)

	driver, err := drivers.GetByID(ctx, "drv-1")
	require.NoError(t, err)
	assert.Equal(t, domain.DriverStatusOnJob, driver.Status)

	require.Len(t, *captured, 2)
	assert.Equal(t, events.EventJobAssigned, (*captured)[1].Type)
}

func TestJobServiceAssignBusyDriver(t *testing.T) {
	svc, _, drivers, _ := newJobServiceFixture()
	ctx := context.Background()
	actor := Actor{UserID: "user-1"}

	require.NoError(t, drivers.Create(ctx, &domain.Driver{ID: "drv-1", Status: domain.DriverStatusOnJob}))

	job, err := svc.Create(ctx, actor, JobCreateInput{CustomerName: "Acme"})
	require.NoError(t, err)

	_, err = svc.Assign(ctx, actor, job.ID, "drv-1")
	var de *apperrors.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "CONFLICT", de.Code)
}

func TestJobServiceStatusLifecycle(t *testing.T) {
	svc, _, drivers, _ := newJobServiceFixture()
	ctx := context.Background()
	actor := Actor{UserID: "user-1"}

	require.NoError(t, drivers.Create(ctx, &domain.Driver{ID: "drv-1", Status: domain.DriverStatusAvailable}))

	job, err := svc.Create(ctx, actor, JobCreateInput{CustomerName: "Acme"})
	require.NoError(t, err)
	job, err = svc.Assign(ctx, actor, job.ID, "drv-1")
	require.NoError(t, err)

	job, err = svc.ChangeStatus(ctx, actor, job.ID, domain.JobStatusInTransit)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusInTransit, job.Status)

	job, err = svc.ChangeStatus(ctx, actor, job.ID, domain.JobStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusDelivered, job.Status)
	assert.NotNil(t, job.DeliveredAt)

	// Delivery frees the driver for the next haul.
	driver, err := drivers.GetByID(ctx, "drv-1")
	require.NoError(t, err)
	assert.Equal(t, domain.DriverStatusAvailable, driver.Status)
}

func TestJobServiceIllegalTransition(t *testing.T) {
	svc, _, _, _ := newJobServiceFixture()
	ctx := context.Background()
	actor := Actor{UserID: "user-1"}

	job, err := svc.Create(ctx, actor, JobCreateInput{CustomerName: "Acme"})
	require.NoError(t, err)

	_, err = svc.ChangeStatus(ctx, actor, job.ID, domain.JobStatusDelivered)
	var de *apperrors.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "CONFLICT", de.Code)
}

func TestJobServiceUpdateOnlyPending(t *testing.T) {
	svc, _, drivers, _ := newJobServiceFixture()
	ctx := context.Background()
	actor := Actor{UserID: "user-1"}

	require.NoError(t, drivers.Create(ctx, &domain.Driver{ID: "drv-1", Status: domain.DriverStatusAvailable}))

	job, err := svc.Create(ctx, actor, JobCreateInput{CustomerName: "Acme"})
	require.NoError(t, err)

	name := "Acme Gravel Co"
	job, err = svc.Update(ctx, job.ID, JobUpdateInput{CustomerName: &name})
	require.NoError(t, err)
	assert.Equal(t, name, job.CustomerName)

	_, err = svc.Assign(ctx, actor, job.ID, "drv-1")
	require.NoError(t, err)

	_, err = svc.Update(ctx, job.ID, JobUpdateInput{CustomerName: &name})
	var de *apperrors.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "CONFLICT", de.Code)
}

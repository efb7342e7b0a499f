package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/fleet-admin/internal/domain"
)

// JobFilter captures listing parameters.
type JobFilter struct {
	Statuses    []domain.JobStatus
	DriverID    *string
	CreatedBy   *string
	SearchTerm  *string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
	Offset      int
}

// JobRepository encapsulates job persistence.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	Update(ctx context.Context, job *domain.Job) error
	GetByID(ctx context.Context, id string) (*domain.Job, error)
	GetByReference(ctx context.Context, reference string) (*domain.Job, error)
	List(ctx context.Context, filter JobFilter) ([]domain.Job, error)
}

type jobRepository struct {
	pool *pgxpool.Pool
}

// NewJobRepository instantiates repository.
func NewJobRepository(pool *pgxpool.Pool) JobRepository {
	return &jobRepository{pool: pool}
}

const jobColumns = `id, reference, customer_name, pickup_address, dropoff_address,
        cargo_description, weight_kg, driver_id, status, scheduled_at, delivered_at,
        created_by, created_at, updated_at`

func (r *jobRepository) Create(ctx context.Context, job *domain.Job) error {
	const query = `
        INSERT INTO jobs (reference, customer_name, pickup_address, dropoff_address,
            cargo_description, weight_kg, driver_id, status, scheduled_at, created_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		job.Reference,
		job.CustomerName,
		job.PickupAddress,
		job.DropoffAddress,
		job.CargoDescription,
		job.WeightKG,
		job.DriverID,
		job.Status,
		job.ScheduledAt,
		job.CreatedBy,
	).Scan(&job.ID, &job.CreatedAt, &job.UpdatedAt)
}

func (r *jobRepository) Update(ctx context.Context, job *domain.Job) error {
	const query = `
        UPDATE jobs SET customer_name=$1, pickup_address=$2, dropoff_address=$3,
            cargo_description=$4, weight_kg=$5, driver_id=$6, status=$7,
            scheduled_at=$8, delivered_at=$9, updated_at=NOW()
        WHERE id=$10`
	cmd, err := r.pool.Exec(ctx, query,
		job.CustomerName,
		job.PickupAddress,
		job.DropoffAddress,
		job.CargoDescription,
		job.WeightKG,
		job.DriverID,
		job.Status,
		job.ScheduledAt,
		job.DeliveredAt,
		job.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *jobRepository) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	query := fmt.Sprintf(`SELECT %s FROM jobs WHERE id=$1`, jobColumns)
	return scanJob(r.pool.QueryRow(ctx, query, id))
}

func (r *jobRepository) GetByReference(ctx context.Context, reference string) (*domain.Job, error) {
	query := fmt.Sprintf(`SELECT %s FROM jobs WHERE reference=$1`, jobColumns)
	return scanJob(r.pool.QueryRow(ctx, query, reference))
}

func (r *jobRepository) List(ctx context.Context, filter JobFilter) ([]domain.Job, error) {
	conditions := []string{"1=1"}
	args := []any{}
	idx := 1

	if len(filter.Statuses) > 0 {
		conditions = append(conditions, fmt.Sprintf("status = ANY($%d)", idx))
		statuses := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, string(s))
		}
		args = append(args, statuses)
		idx++
	}
	if filter.DriverID != nil {
		conditions = append(conditions, fmt.Sprintf("driver_id = $%d", idx))
		args = append(args, *filter.DriverID)
		idx++
	}
	if filter.CreatedBy != nil {
		conditions = append(conditions, fmt.Sprintf("created_by = $%d", idx))
		args = append(args, *filter.CreatedBy)
		idx++
	}
	if filter.SearchTerm != nil {
		conditions = append(conditions, fmt.Sprintf("(reference ILIKE $%d OR customer_name ILIKE $%d)", idx, idx))
		args = append(args, "%"+*filter.SearchTerm+"%")
		idx++
	}
	if filter.CreatedFrom != nil {
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", idx))
		args = append(args, *filter.CreatedFrom)
		idx++
	}
	if filter.CreatedTo != nil {
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", idx))
		args = append(args, *filter.CreatedTo)
		idx++
	}

	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	query := fmt.Sprintf(`SELECT %s FROM jobs WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		jobColumns, strings.Join(conditions, " AND "), idx, idx+1)
	args = append(args, limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var job domain.Job
	if err := row.Scan(
		&job.ID,
		&job.Reference,
		&job.CustomerName,
		&job.PickupAddress,
		&job.DropoffAddress,
		&job.CargoDescription,
		&job.WeightKG,
		&job.DriverID,
		&job.Status,
		&job.ScheduledAt,
		&job.DeliveredAt,
		&job.CreatedBy,
		&job.CreatedAt,
		&job.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &job, nil
}

package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/fleet-admin/internal/domain"
)

// DriverRepository encapsulates driver persistence.
type DriverRepository interface {
	Create(ctx context.Context, driver *domain.Driver) error
	Update(ctx context.Context, driver *domain.Driver) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Driver, error)
	List(ctx context.Context, status *domain.DriverStatus, limit, offset int) ([]domain.Driver, error)
}

type driverRepository struct {
	pool *pgxpool.Pool
}

// NewDriverRepository instantiates repository.
func NewDriverRepository(pool *pgxpool.Pool) DriverRepository {
	return &driverRepository{pool: pool}
}

func (r *driverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	const query = `
        INSERT INTO drivers (name, phone, license_number, license_expiry, truck_plate, status)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		driver.Name,
		driver.Phone,
		driver.LicenseNumber,
		driver.LicenseExpiry,
		driver.TruckPlate,
		driver.Status,
	).Scan(&driver.ID, &driver.CreatedAt, &driver.UpdatedAt)
}

func (r *driverRepository) Update(ctx context.Context, driver *domain.Driver) error {
	const query = `
        UPDATE drivers SET name=$1, phone=$2, license_number=$3, license_expiry=$4,
            truck_plate=$5, status=$6, updated_at=NOW()
        WHERE id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		driver.Name,
		driver.Phone,
		driver.LicenseNumber,
		driver.LicenseExpiry,
		driver.TruckPlate,
		driver.Status,
		driver.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *driverRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM drivers WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *driverRepository) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	const query = `
        SELECT id, name, phone, license_number, license_expiry, truck_plate, status, created_at, updated_at
        FROM drivers WHERE id=$1`

	var driver domain.Driver
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&driver.ID,
		&driver.Name,
		&driver.Phone,
		&driver.LicenseNumber,
		&driver.LicenseExpiry,
		&driver.TruckPlate,
		&driver.Status,
		&driver.CreatedAt,
		&driver.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &driver, nil
}

func (r *driverRepository) List(ctx context.Context, status *domain.DriverStatus, limit, offset int) ([]domain.Driver, error) {
	const query = `
        SELECT id, name, phone, license_number, license_expiry, truck_plate, status, created_at, updated_at
        FROM drivers
        WHERE ($1::text IS NULL OR status = $1)
        ORDER BY name LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, status, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drivers []domain.Driver
	for rows.Next() {
		var driver domain.Driver
		if err := rows.Scan(
			&driver.ID,
			&driver.Name,
			&driver.Phone,
			&driver.LicenseNumber,
			&driver.LicenseExpiry,
			&driver.TruckPlate,
			&driver.Status,
			&driver.CreatedAt,
			&driver.UpdatedAt,
		); err != nil {
			return nil, err
		}
		drivers = append(drivers, driver)
	}
	return drivers, rows.Err()
}

package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/fleet-admin/internal/domain"
)

// LocationRepository stores driver position reports.
type LocationRepository interface {
	Insert(ctx context.Context, location *domain.Location) error
	LatestByDriver(ctx context.Context, driverID string) (*domain.Location, error)
	ListByDriver(ctx context.Context, driverID string, limit int) ([]domain.Location, error)
}

type locationRepository struct {
	pool *pgxpool.Pool
}

// NewLocationRepository instantiates repository.
func NewLocationRepository(pool *pgxpool.Pool) LocationRepository {
	return &locationRepository{pool: pool}
}

func (r *locationRepository) Insert(ctx context.Context, location *domain.Location) error {
	const query = `
        INSERT INTO driver_locations (driver_id, latitude, longitude, speed_kph, heading, recorded_at)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		location.DriverID,
		location.Latitude,
		location.Longitude,
		location.SpeedKPH,
		location.Heading,
		location.RecordedAt,
	).Scan(&location.ID, &location.CreatedAt)
}

func (r *locationRepository) LatestByDriver(ctx context.Context, driverID string) (*domain.Location, error) {
	const query = `
        SELECT id, driver_id, latitude, longitude, speed_kph, heading, recorded_at, created_at
        FROM driver_locations WHERE driver_id=$1
        ORDER BY recorded_at DESC LIMIT 1`

	var location domain.Location
	if err := r.pool.QueryRow(ctx, query, driverID).Scan(
		&location.ID,
		&location.DriverID,
		&location.Latitude,
		&location.Longitude,
		&location.SpeedKPH,
		&location.Heading,
		&location.RecordedAt,
		&location.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *locationRepository) ListByDriver(ctx context.Context, driverID string, limit int) ([]domain.Location, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	const query = `
        SELECT id, driver_id, latitude, longitude, speed_kph, heading, recorded_at, created_at
        FROM driver_locations WHERE driver_id=$1
        ORDER BY recorded_at DESC LIMIT $2`

	rows, err := r.pool.Query(ctx, query, driverID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locations []domain.Location
	for rows.Next() {
		var location domain.Location
		if err := rows.Scan(
			&location.ID,
			&location.DriverID,
			&location.Latitude,
			&location.Longitude,
			&location.SpeedKPH,
			&location.Heading,
			&location.RecordedAt,
			&location.CreatedAt,
		); err != nil {
			return nil, err
		}
		locations = append(locations, location)
	}
	return locations, rows.Err()
}

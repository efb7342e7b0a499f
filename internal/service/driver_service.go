package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/fleet-admin/internal/domain"
	"github.com/spec-kit/fleet-admin/internal/repository"
	apperrors "github.com/spec-kit/fleet-admin/pkg/util"
)

// DriverService covers driver management and location heartbeats.
type DriverService struct {
	drivers   repository.DriverRepository
	locations repository.LocationRepository
}

// NewDriverService builds the service.
func NewDriverService(drivers repository.DriverRepository, locations repository.LocationRepository) *DriverService {
	return &DriverService{drivers: drivers, locations: locations}
}

// DriverCreateInput describes a new driver record.
type DriverCreateInput struct {
	Name          string
	Phone         string
	LicenseNumber string
	LicenseExpiry *time.Time
	TruckPlate    *string
}

// DriverUpdateInput carries optional field changes.
type DriverUpdateInput struct {
	Name          *string
	Phone         *string
	LicenseNumber *string
	LicenseExpiry *time.Time
	TruckPlate    *string
	Status        *domain.DriverStatus
}

// HeartbeatInput is one position report from the field.
type HeartbeatInput struct {
	DriverID   string
	Latitude   float64
	Longitude  float64
	SpeedKPH   *float64
	Heading    *float64
	RecordedAt *time.Time
}

// Create registers a driver as AVAILABLE.
func (s *DriverService) Create(ctx context.Context, input DriverCreateInput) (*domain.Driver, error) {
	driver := &domain.Driver{
		Name:          input.Name,
		Phone:         input.Phone,
		LicenseNumber: input.LicenseNumber,
		LicenseExpiry: input.LicenseExpiry,
		TruckPlate:    input.TruckPlate,
		Status:        domain.DriverStatusAvailable,
	}
	if err := s.drivers.Create(ctx, driver); err != nil {
		return nil, err
	}
	return driver, nil
}

// Update applies partial changes to a driver.
func (s *DriverService) Update(ctx context.Context, id string, input DriverUpdateInput) (*domain.Driver, error) {
	driver, err := s.drivers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		driver.Name = *input.Name
	}
	if input.Phone != nil {
		driver.Phone = *input.Phone
	}
	if input.LicenseNumber != nil {
		driver.LicenseNumber = *input.LicenseNumber
	}
	if input.LicenseExpiry != nil {
		driver.LicenseExpiry = input.LicenseExpiry
	}
	if input.TruckPlate != nil {
		driver.TruckPlate = input.TruckPlate
	}
	if input.Status != nil {
		driver.Status = *input.Status
	}
	if err := s.drivers.Update(ctx, driver); err != nil {
		return nil, err
	}
	return driver, nil
}

// Delete removes a driver record.
func (s *DriverService) Delete(ctx context.Context, id string) error {
	return s.drivers.Delete(ctx, id)
}

// Get loads one driver.
func (s *DriverService) Get(ctx context.Context, id string) (*domain.Driver, error) {
	return s.drivers.GetByID(ctx, id)
}

// List pages through drivers, optionally by duty status.
func (s *DriverService) List(ctx context.Context, status *domain.DriverStatus, limit, offset int) ([]domain.Driver, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.drivers.List(ctx, status, limit, offset)
}

// RecordHeartbeat stores a position report for a known driver.
func (s *DriverService) RecordHeartbeat(ctx context.Context, input HeartbeatInput) (*domain.Location, error) {
	if _, err := s.drivers.GetByID(ctx, input.DriverID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("driver", nil)
		}
		return nil, err
	}

	recordedAt := time.Now()
	if input.RecordedAt != nil {
		recordedAt = *input.RecordedAt
	}

	location := &domain.Location{
		DriverID:   input.DriverID,
		Latitude:   input.Latitude,
		Longitude:  input.Longitude,
		SpeedKPH:   input.SpeedKPH,
		Heading:    input.Heading,
		RecordedAt: recordedAt,
	}
	if err := s.locations.Insert(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

// LatestLocation returns the most recent position for a driver.
func (s *DriverService) LatestLocation(ctx context.Context, driverID string) (*domain.Location, error) {
	location, err := s.locations.LatestByDriver(ctx, driverID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("location", nil)
		}
		return nil, err
	}
	return location, nil
}

// LocationTrail returns recent positions for a driver, newest first.
func (s *DriverService) LocationTrail(ctx context.Context, driverID string, limit int) ([]domain.Location, error) {
	return s.locations.ListByDriver(ctx, driverID, limit)
}

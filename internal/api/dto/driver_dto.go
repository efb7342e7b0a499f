package dto

import (
	"time"

	"github.com/spec-kit/fleet-admin/internal/domain"
)

// CreateDriverRequest payload.
type CreateDriverRequest struct {
	Name          string     `json:"name"`
	Phone         string     `json:"phone"`
	LicenseNumber string     `json:"license_number"`
	LicenseExpiry *time.Time `json:"license_expiry"`
	TruckPlate    *string    `json:"truck_plate"`
}

// UpdateDriverRequest carries optional driver changes.
type UpdateDriverRequest struct {
	Name          *string              `json:"name"`
	Phone         *string              `json:"phone"`
	LicenseNumber *string              `json:"license_number"`
	LicenseExpiry *time.Time           `json:"license_expiry"`
	TruckPlate    *string              `json:"truck_plate"`
	Status        *domain.DriverStatus `json:"status"`
}

// DriverResponse is the public view of a driver.
type DriverResponse struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Phone         string              `json:"phone"`
	LicenseNumber string              `json:"license_number"`
	LicenseExpiry *time.Time          `json:"license_expiry"`
	TruckPlate    *string             `json:"truck_plate"`
	Status        domain.DriverStatus `json:"status"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// NewDriverResponse maps a domain driver.
func NewDriverResponse(driver *domain.Driver) DriverResponse {
	return DriverResponse{
		ID:            driver.ID,
		Name:          driver.Name,
		Phone:         driver.Phone,
		LicenseNumber: driver.LicenseNumber,
		LicenseExpiry: driver.LicenseExpiry,
		TruckPlate:    driver.TruckPlate,
		Status:        driver.Status,
		CreatedAt:     driver.CreatedAt,
		UpdatedAt:     driver.UpdatedAt,
	}
}

// HeartbeatRequest is one position report.
type HeartbeatRequest struct {
	DriverID   string     `json:"driver_id"`
	Latitude   float64    `json:"latitude"`
	Longitude  float64    `json:"longitude"`
	SpeedKPH   *float64   `json:"speed_kph"`
	Heading    *float64   `json:"heading"`
	RecordedAt *time.Time `json:"recorded_at"`
}

// LocationResponse is one stored position.
type LocationResponse struct {
	ID         string    `json:"id"`
	DriverID   string    `json:"driver_id"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	SpeedKPH   *float64  `json:"speed_kph"`
	Heading    *float64  `json:"heading"`
	RecordedAt time.Time `json:"recorded_at"`
}

// NewLocationResponse maps a domain location.
func NewLocationResponse(location *domain.Location) LocationResponse {
	return LocationResponse{
		ID:         location.ID,
		DriverID:   location.DriverID,
		Latitude:   location.Latitude,
		Longitude:  location.Longitude,
		SpeedKPH:   location.SpeedKPH,
		Heading:    location.Heading,
		RecordedAt: location.RecordedAt,
	}
}

package domain

import "time"

// DriverStatus enumerates duty states for a driver.
type DriverStatus string

const (
	DriverStatusAvailable DriverStatus = "AVAILABLE"
	DriverStatusOnJob     DriverStatus = "ON_JOB"
	DriverStatusOffDuty   DriverStatus = "OFF_DUTY"
)

// Driver models a truck driver managed by dispatch.
type Driver struct {
	ID            string
	Name          string
	Phone         string
	LicenseNumber string
	LicenseExpiry *time.Time
	TruckPlate    *string
	Status        DriverStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

package domain

import "time"

// Location is a single driver position report.
type Location struct {
	ID         string
	DriverID   string
	Latitude   float64
	Longitude  float64
	SpeedKPH   *float64
	Heading    *float64
	RecordedAt time.Time
	CreatedAt  time.Time
}

package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/fleet-admin/internal/api/dto"
	"github.com/spec-kit/fleet-admin/internal/service"
	apperrors "github.com/spec-kit/fleet-admin/pkg/util"
)

// LocationsHandler exposes the realtime heartbeat endpoints.
type LocationsHandler struct {
	drivers *service.DriverService
}

// NewLocationsHandler constructs handler.
func NewLocationsHandler(driverService *service.DriverService) *LocationsHandler {
	return &LocationsHandler{drivers: driverService}
}

// Heartbeat handles POST /locations/heartbeat.
func (h *LocationsHandler) Heartbeat(c *fiber.Ctx) error {
	var req dto.HeartbeatRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.DriverID == "" {
		return apperrors.NewValidationError("driver_id required", nil)
	}
	if req.Latitude < -90 || req.Latitude > 90 || req.Longitude < -180 || req.Longitude > 180 {
		return apperrors.NewValidationError("coordinates out of range", nil)
	}

	location, err := h.drivers.RecordHeartbeat(c.Context(), service.HeartbeatInput{
		DriverID:   req.DriverID,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		SpeedKPH:   req.SpeedKPH,
		Heading:    req.Heading,
		RecordedAt: req.RecordedAt,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"location": dto.NewLocationResponse(location)})
}

// Latest handles GET /locations/:driverID/latest.
func (h *LocationsHandler) Latest(c *fiber.Ctx) error {
	location, err := h.drivers.LatestLocation(c.Context(), c.Params("driverID"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"location": dto.NewLocationResponse(location)})
}

// Trail handles GET /locations/:driverID.
func (h *LocationsHandler) Trail(c *fiber.Ctx) error {
	locations, err := h.drivers.LocationTrail(c.Context(), c.Params("driverID"), c.QueryInt("limit", 100))
	if err != nil {
		return err
	}
	items := make([]dto.LocationResponse, 0, len(locations))
	for i := range locations {
		items = append(items, dto.NewLocationResponse(&locations[i]))
	}
	return c.JSON(fiber.Map{"locations": items})
}

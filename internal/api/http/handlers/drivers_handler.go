package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/fleet-admin/internal/api/dto"
	"github.com/spec-kit/fleet-admin/internal/domain"
	"github.com/spec-kit/fleet-admin/internal/service"
	apperrors "github.com/spec-kit/fleet-admin/pkg/util"
)

// DriversHandler exposes driver management endpoints.
type DriversHandler struct {
	drivers *service.DriverService
}

// NewDriversHandler constructs handler.
func NewDriversHandler(driverService *service.DriverService) *DriversHandler {
	return &DriversHandler{drivers: driverService}
}

// List handles GET /drivers.
func (h *DriversHandler) List(c *fiber.Ctx) error {
	var status *domain.DriverStatus
	if raw := c.Query("status"); raw != "" {
		s := domain.DriverStatus(raw)
		status = &s
	}
	drivers, err := h.drivers.List(c.Context(), status, c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return err
	}
	items := make([]dto.DriverResponse, 0, len(drivers))
	for i := range drivers {
		items = append(items, dto.NewDriverResponse(&drivers[i]))
	}
	return c.JSON(fiber.Map{"drivers": items})
}

// Get handles GET /drivers/:id.
func (h *DriversHandler) Get(c *fiber.Ctx) error {
	driver, err := h.drivers.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"driver": dto.NewDriverResponse(driver)})
}

// Create handles POST /drivers.
func (h *DriversHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateDriverRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.LicenseNumber == "" {
		return apperrors.NewValidationError("name and license_number required", nil)
	}

	driver, err := h.drivers.Create(c.Context(), service.DriverCreateInput{
		Name:          req.Name,
		Phone:         req.Phone,
		LicenseNumber: req.LicenseNumber,
		LicenseExpiry: req.LicenseExpiry,
		TruckPlate:    req.TruckPlate,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"driver": dto.NewDriverResponse(driver)})
}

// Update handles PATCH /drivers/:id.
func (h *DriversHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateDriverRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	driver, err := h.drivers.Update(c.Context(), c.Params("id"), service.DriverUpdateInput{
		Name:          req.Name,
		Phone:         req.Phone,
		LicenseNumber: req.LicenseNumber,
		LicenseExpiry: req.LicenseExpiry,
		TruckPlate:    req.TruckPlate,
		Status:        req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"driver": dto.NewDriverResponse(driver)})
}

// Delete handles DELETE /drivers/:id.
func (h *DriversHandler) Delete(c *fiber.Ctx) error {
	if err := h.drivers.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "driver deleted"})
}

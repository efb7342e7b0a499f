package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/fleet-admin/internal/api/dto"
	"github.com/spec-kit/fleet-admin/internal/auth"
	"github.com/spec-kit/fleet-admin/internal/domain"
	"github.com/spec-kit/fleet-admin/internal/repository"
	"github.com/spec-kit/fleet-admin/internal/service"
	apperrors "github.com/spec-kit/fleet-admin/pkg/util"
)

// JobsHandler exposes haul management endpoints.
type JobsHandler struct {
	jobs *service.JobService
}

// NewJobsHandler constructs handler.
func NewJobsHandler(jobService *service.JobService) *JobsHandler {
	return &JobsHandler{jobs: jobService}
}

// Create handles POST /jobs.
func (h *JobsHandler) Create(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	var req dto.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.CustomerName == "" || req.PickupAddress == "" || req.DropoffAddress == "" {
		return apperrors.NewValidationError("customer_name, pickup_address, dropoff_address required", nil)
	}

	job, err := h.jobs.Create(c.Context(), actor, service.JobCreateInput{
		CustomerName:     req.CustomerName,
		PickupAddress:    req.PickupAddress,
		DropoffAddress:   req.DropoffAddress,
		CargoDescription: req.CargoDescription,
		WeightKG:         req.WeightKG,
		ScheduledAt:      req.ScheduledAt,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"job": dto.NewJobResponse(job)})
}

// List handles GET /jobs.
func (h *JobsHandler) List(c *fiber.Ctx) error {
	filter := repository.JobFilter{
		Limit:  c.QueryInt("limit", 50),
		Offset: c.QueryInt("offset", 0),
	}
	if raw := c.Query("status"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			filter.Statuses = append(filter.Statuses, domain.JobStatus(strings.TrimSpace(s)))
		}
	}
	if driverID := c.Query("driver_id"); driverID != "" {
		filter.DriverID = &driverID
	}
	if search := c.Query("search"); search != "" {
		filter.SearchTerm = &search
	}

	jobs, err := h.jobs.List(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		items = append(items, dto.NewJobResponse(&jobs[i]))
	}
	return c.JSON(fiber.Map{"jobs": items})
}

// Get handles GET /jobs/:id.
func (h *JobsHandler) Get(c *fiber.Ctx) error {
	job, err := h.jobs.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"job": dto.NewJobResponse(job)})
}

// Update handles PATCH /jobs/:id.
func (h *JobsHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	job, err := h.jobs.Update(c.Context(), c.Params("id"), service.JobUpdateInput{
		CustomerName:     req.CustomerName,
		PickupAddress:    req.PickupAddress,
		DropoffAddress:   req.DropoffAddress,
		CargoDescription: req.CargoDescription,
		WeightKG:         req.WeightKG,
		ScheduledAt:      req.ScheduledAt,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"job": dto.NewJobResponse(job)})
}

// Assign handles POST /jobs/:id/assign.
func (h *JobsHandler) Assign(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	var req dto.AssignJobRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.DriverID == "" {
		return apperrors.NewValidationError("driver_id required", nil)
	}

	job, err := h.jobs.Assign(c.Context(), actor, c.Params("id"), req.DriverID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"job": dto.NewJobResponse(job)})
}

// ChangeStatus handles POST /jobs/:id/status.
func (h *JobsHandler) ChangeStatus(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	var req dto.JobStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Status == "" {
		return apperrors.NewValidationError("status required", nil)
	}

	job, err := h.jobs.ChangeStatus(c.Context(), actor, c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"job": dto.NewJobResponse(job)})
}

func actorFromContext(c *fiber.Ctx) (service.Actor, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return service.Actor{}, apperrors.NewUnauthenticated("authentication required")
	}
	return service.Actor{UserID: principal.UserID, Email: principal.Email}, nil
}

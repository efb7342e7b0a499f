package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/fleet-admin/internal/service"
	apperrors "github.com/spec-kit/fleet-admin/pkg/util"
)

// AdminHandler exposes the table browser and ad-hoc provisioning.
type AdminHandler struct {
	tables *service.TableService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(tableService *service.TableService) *AdminHandler {
	return &AdminHandler{tables: tableService}
}

// ListTables handles GET /admin/tables.
func (h *AdminHandler) ListTables(c *fiber.Ctx) error {
	tables, err := h.tables.ListTables(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"tables": tables})
}

// BrowseTable handles GET /admin/tables/:name.
func (h *AdminHandler) BrowseTable(c *fiber.Ctx) error {
	name := c.Params("name")
	if name == "" {
		return apperrors.NewValidationError("table name required", nil)
	}
	page, err := h.tables.BrowseRows(c.Context(), name, c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"table":   page.Table,
		"columns": page.Columns,
		"rows":    page.Rows,
		"total":   page.Total,
	})
}

// Provision handles POST /admin/provision.
func (h *AdminHandler) Provision(c *fiber.Ctx) error {
	applied, err := h.tables.Provision(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"applied": applied})
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/fleet-admin/internal/repository"
	"github.com/spec-kit/fleet-admin/internal/service"
)

// AuditHandler exposes the admin audit trail.
type AuditHandler struct {
	audit *service.AuditService
}

// NewAuditHandler constructs handler.
func NewAuditHandler(auditService *service.AuditService) *AuditHandler {
	return &AuditHandler{audit: auditService}
}

// List handles GET /audit.
func (h *AuditHandler) List(c *fiber.Ctx) error {
	filter := repository.AuditFilter{
		Limit:  c.QueryInt("limit", 100),
		Offset: c.QueryInt("offset", 0),
	}
	if actorID := c.Query("actor_id"); actorID != "" {
		filter.ActorID = &actorID
	}
	if entityType := c.Query("entity_type"); entityType != "" {
		filter.EntityType = &entityType
	}
	if entityID := c.Query("entity_id"); entityID != "" {
		filter.EntityID = &entityID
	}

	entries, err := h.audit.List(c.Context(), filter)
	if err != nil {
		return err
	}

	items := make([]fiber.Map, 0, len(entries))
	for _, entry := range entries {
		items = append(items, fiber.Map{
			"id":          entry.ID,
			"actor_id":    entry.ActorID,
			"actor_email": entry.ActorEmail,
			"action":      entry.Action,
			"entity_type": entry.EntityType,
			"entity_id":   entry.EntityID,
			"detail":      entry.Detail,
			"created_at":  entry.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"entries": items})
}

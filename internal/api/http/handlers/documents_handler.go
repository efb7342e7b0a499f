package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/fleet-admin/internal/api/dto"
	"github.com/spec-kit/fleet-admin/internal/domain"
	"github.com/spec-kit/fleet-admin/internal/repository"
	"github.com/spec-kit/fleet-admin/internal/service"
	apperrors "github.com/spec-kit/fleet-admin/pkg/util"
)

// DocumentsHandler exposes document metadata endpoints.
type DocumentsHandler struct {
	documents *service.DocumentService
}

// NewDocumentsHandler constructs handler.
func NewDocumentsHandler(documentService *service.DocumentService) *DocumentsHandler {
	return &DocumentsHandler{documents: documentService}
}

// Create handles POST /documents.
func (h *DocumentsHandler) Create(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	var req dto.CreateDocumentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.FileName == "" || req.StorageKey == "" {
		return apperrors.NewValidationError("file_name and storage_key required", nil)
	}

	document, err := h.documents.Create(c.Context(), actor, service.DocumentCreateInput{
		JobID:      req.JobID,
		DriverID:   req.DriverID,
		Kind:       req.Kind,
		FileName:   req.FileName,
		MimeType:   req.MimeType,
		SizeBytes:  req.SizeBytes,
		StorageKey: req.StorageKey,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"document": dto.NewDocumentResponse(document)})
}

// List handles GET /documents.
func (h *DocumentsHandler) List(c *fiber.Ctx) error {
	filter := repository.DocumentFilter{
		Limit:  c.QueryInt("limit", 50),
		Offset: c.QueryInt("offset", 0),
	}
	if jobID := c.Query("job_id"); jobID != "" {
		filter.JobID = &jobID
	}
	if driverID := c.Query("driver_id"); driverID != "" {
		filter.DriverID = &driverID
	}
	if raw := c.Query("kind"); raw != "" {
		kind := domain.DocumentKind(raw)
		filter.Kind = &kind
	}

	documents, err := h.documents.List(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.DocumentResponse, 0, len(documents))
	for i := range documents {
		items = append(items, dto.NewDocumentResponse(&documents[i]))
	}
	return c.JSON(fiber.Map{"documents": items})
}

// Get handles GET /documents/:id.
func (h *DocumentsHandler) Get(c *fiber.Ctx) error {
	document, err := h.documents.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"document": dto.NewDocumentResponse(document)})
}

// Delete handles DELETE /documents/:id.
func (h *DocumentsHandler) Delete(c *fiber.Ctx) error {
	if err := h.documents.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "document deleted"})
}

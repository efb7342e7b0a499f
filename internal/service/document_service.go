package service

import (
	"context"

	"github.com/spec-kit/fleet-admin/internal/domain"
	"github.com/spec-kit/fleet-admin/internal/repository"
	apperrors "github.com/spec-kit/fleet-admin/pkg/util"
)

// DocumentService covers paperwork metadata. File bytes live in external
// storage; only the storage key is recorded here.
type DocumentService struct {
	documents repository.DocumentRepository
}

// NewDocumentService builds the service.
func NewDocumentService(documents repository.DocumentRepository) *DocumentService {
	return &DocumentService{documents: documents}
}

// DocumentCreateInput describes an uploaded file's metadata.
type DocumentCreateInput struct {
	JobID      *string
	DriverID   *string
	Kind       domain.DocumentKind
	FileName   string
	MimeType   string
	SizeBytes  int64
	StorageKey string
}

// Create records metadata for an uploaded file.
func (s *DocumentService) Create(ctx context.Context, actor Actor, input DocumentCreateInput) (*domain.Document, error) {
	if input.JobID == nil && input.DriverID == nil {
		return nil, apperrors.NewValidationError("document must reference a job or a driver", nil)
	}
	kind := input.Kind
	if kind == "" {
		kind = domain.DocumentKindOther
	}
	document := &domain.Document{
		JobID:      input.JobID,
		DriverID:   input.DriverID,
		Kind:       kind,
		FileName:   input.FileName,
		MimeType:   input.MimeType,
		SizeBytes:  input.SizeBytes,
		StorageKey: input.StorageKey,
		UploadedBy: actor.UserID,
	}
	if err := s.documents.Create(ctx, document); err != nil {
		return nil, err
	}
	return document, nil
}

// Get loads one document's metadata.
func (s *DocumentService) Get(ctx context.Context, id string) (*domain.Document, error) {
	return s.documents.GetByID(ctx, id)
}

// List pages through documents with filters.
func (s *DocumentService) List(ctx context.Context, filter repository.DocumentFilter) ([]domain.Document, error) {
	return s.documents.List(ctx, filter)
}

// Delete removes document metadata.
func (s *DocumentService) Delete(ctx context.Context, id string) error {
	return s.documents.Delete(ctx, id)
}

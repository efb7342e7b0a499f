package dto

import (
	"time"

	"github.com/spec-kit/fleet-admin/internal/domain"
)

// CreateDocumentRequest records metadata for an uploaded file.
type CreateDocumentRequest struct {
	JobID      *string             `json:"job_id"`
	DriverID   *string             `json:"driver_id"`
	Kind       domain.DocumentKind `json:"kind"`
	FileName   string              `json:"file_name"`
	MimeType   string              `json:"mime_type"`
	SizeBytes  int64               `json:"size_bytes"`
	StorageKey string              `json:"storage_key"`
}

// DocumentResponse is the public view of document metadata.
type DocumentResponse struct {
	ID         string              `json:"id"`
	JobID      *string             `json:"job_id"`
	DriverID   *string             `json:"driver_id"`
	Kind       domain.DocumentKind `json:"kind"`
	FileName   string              `json:"file_name"`
	MimeType   string              `json:"mime_type"`
	SizeBytes  int64               `json:"size_bytes"`
	StorageKey string              `json:"storage_key"`
	UploadedBy string              `json:"uploaded_by"`
	CreatedAt  time.Time           `json:"created_at"`
}

// NewDocumentResponse maps a domain document.
func NewDocumentResponse(document *domain.Document) DocumentResponse {
	return DocumentResponse{
		ID:         document.ID,
		JobID:      document.JobID,
		DriverID:   document.DriverID,
		Kind:       document.Kind,
		FileName:   document.FileName,
		MimeType:   document.MimeType,
		SizeBytes:  document.SizeBytes,
		StorageKey: document.StorageKey,
		UploadedBy: document.UploadedBy,
		CreatedAt:  document.CreatedAt,
	}
}

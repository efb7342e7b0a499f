package domain

import "time"

// DocumentKind classifies stored paperwork.
type DocumentKind string

const (
	DocumentKindPOD        DocumentKind = "PROOF_OF_DELIVERY"
	DocumentKindInspection DocumentKind = "INSPECTION"
	DocumentKindLicense    DocumentKind = "LICENSE"
	DocumentKindOther      DocumentKind = "OTHER"
)

// Document holds metadata for an uploaded file. The bytes themselves live
// in external storage under StorageKey.
type Document struct {
	ID         string
	JobID      *string
	DriverID   *string
	Kind       DocumentKind
	FileName   string
	MimeType   string
	SizeBytes  int64
	StorageKey string
	UploadedBy string
	CreatedAt  time.Time
}

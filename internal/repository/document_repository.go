package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/fleet-admin/internal/domain"
)

// DocumentFilter narrows document listings.
type DocumentFilter struct {
	JobID    *string
	DriverID *string
	Kind     *domain.DocumentKind
	Limit    int
	Offset   int
}

// DocumentRepository stores uploaded file metadata.
type DocumentRepository interface {
	Create(ctx context.Context, document *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	List(ctx context.Context, filter DocumentFilter) ([]domain.Document, error)
	Delete(ctx context.Context, id string) error
}

type documentRepository struct {
	pool *pgxpool.Pool
}

// NewDocumentRepository instantiates repository.
func NewDocumentRepository(pool *pgxpool.Pool) DocumentRepository {
	return &documentRepository{pool: pool}
}

func (r *documentRepository) Create(ctx context.Context, document *domain.Document) error {
	const query = `
        INSERT INTO documents (job_id, driver_id, kind, file_name, mime_type, size_bytes, storage_key, uploaded_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		document.JobID,
		document.DriverID,
		document.Kind,
		document.FileName,
		document.MimeType,
		document.SizeBytes,
		document.StorageKey,
		document.UploadedBy,
	).Scan(&document.ID, &document.CreatedAt)
}

func (r *documentRepository) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	const query = `
        SELECT id, job_id, driver_id, kind, file_name, mime_type, size_bytes, storage_key, uploaded_by, created_at
        FROM documents WHERE id=$1`

	var document domain.Document
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&document.ID,
		&document.JobID,
		&document.DriverID,
		&document.Kind,
		&document.FileName,
		&document.MimeType,
		&document.SizeBytes,
		&document.StorageKey,
		&document.UploadedBy,
		&document.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &document, nil
}

func (r *documentRepository) List(ctx context.Context, filter DocumentFilter) ([]domain.Document, error) {
	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	const query = `
        SELECT id, job_id, driver_id, kind, file_name, mime_type, size_bytes, storage_key, uploaded_by, created_at
        FROM documents
        WHERE ($1::uuid IS NULL OR job_id = $1)
          AND ($2::uuid IS NULL OR driver_id = $2)
          AND ($3::text IS NULL OR kind = $3)
        ORDER BY created_at DESC LIMIT $4 OFFSET $5`

	rows, err := r.pool.Query(ctx, query, filter.JobID, filter.DriverID, filter.Kind, limit, filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var documents []domain.Document
	for rows.Next() {
		var document domain.Document
		if err := rows.Scan(
			&document.ID,
			&document.JobID,
			&document.DriverID,
			&document.Kind,
			&document.FileName,
			&document.MimeType,
			&document.SizeBytes,
			&document.StorageKey,
			&document.UploadedBy,
			&document.CreatedAt,
		); err != nil {
			return nil, err
		}
		documents = append(documents, document)
	}
	return documents, rows.Err()
}

func (r *documentRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM documents WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

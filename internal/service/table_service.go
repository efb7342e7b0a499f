package service

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/spec-kit/fleet-admin/internal/persistence"
	"github.com/spec-kit/fleet-admin/internal/repository"
	apperrors "github.com/spec-kit/fleet-admin/pkg/util"
)

// TableService backs the admin table browser and ad-hoc provisioning.
type TableService struct {
	tables repository.TableRepository
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewTableService builds the service.
func NewTableService(tables repository.TableRepository, pool *pgxpool.Pool, logger *zap.Logger) *TableService {
	return &TableService{tables: tables, pool: pool, logger: logger}
}

// ListTables returns browsable table names.
func (s *TableService) ListTables(ctx context.Context) ([]string, error) {
	return s.tables.ListTables(ctx)
}

// BrowseRows pages through one table after an allowlist check.
func (s *TableService) BrowseRows(ctx context.Context, table string, limit, offset int) (*repository.TablePage, error) {
	if !repository.IsBrowsableTable(table) {
		return nil, apperrors.NewValidationError("unknown or non-browsable table", map[string]any{"table": table})
	}
	return s.tables.BrowseRows(ctx, table, limit, offset)
}

// Provision applies the migration set on demand and returns what ran.
func (s *TableService) Provision(ctx context.Context) ([]string, error) {
	applied, err := persistence.RunMigrations(ctx, s.pool, s.logger)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return applied, nil
}

package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Browsable tables. Identifiers are only ever interpolated after an
// allowlist check, never straight from caller input.
var browsableTables = []string{
	"users",
	"drivers",
	"jobs",
	"driver_locations",
	"notifications",
	"documents",
	"audit_log",
}

// TablePage is one page of rows from a browsable table.
type TablePage struct {
	Table   string
	Columns []string
	Rows    []map[string]any
	Total   int64
}

// TableRepository backs the generic admin table browser.
type TableRepository interface {
	ListTables(ctx context.Context) ([]string, error)
	BrowseRows(ctx context.Context, table string, limit, offset int) (*TablePage, error)
}

type tableRepository struct {
	pool *pgxpool.Pool
}

// NewTableRepository instantiates repository.
func NewTableRepository(pool *pgxpool.Pool) TableRepository {
	return &tableRepository{pool: pool}
}

// ListTables returns the allowlisted tables that actually exist in the
// connected database.
func (r *tableRepository) ListTables(ctx context.Context) ([]string, error) {
	const query = `
        SELECT table_name FROM information_schema.tables
        WHERE table_schema = 'public' AND table_name = ANY($1)
        ORDER BY table_name`

	rows, err := r.pool.Query(ctx, query, browsableTables)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// BrowseRows pages through one allowlisted table.
func (r *tableRepository) BrowseRows(ctx context.Context, table string, limit, offset int) (*TablePage, error) {
	if !IsBrowsableTable(table) {
		return nil, fmt.Errorf("table %q is not browsable", table)
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var total int64
	if err := r.pool.QueryRow(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table)).Scan(&total); err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, fmt.Sprintf(`SELECT * FROM %s LIMIT $1 OFFSET $2`, table), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	descriptions := rows.FieldDescriptions()
	columns := make([]string, 0, len(descriptions))
	for _, d := range descriptions {
		columns = append(columns, string(d.Name))
	}

	page := &TablePage{Table: table, Columns: columns, Rows: []map[string]any{}, Total: total}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		record := make(map[string]any, len(columns))
		for i, col := range columns {
			record[col] = values[i]
		}
		page.Rows = append(page.Rows, record)
	}
	return page, rows.Err()
}

// IsBrowsableTable reports whether the table browser may touch the table.
func IsBrowsableTable(table string) bool {
	for _, t := range browsableTables {
		if t == table {
			return true
		}
	}
	return false
}

package spec

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresLoader reads mapping rows from a metadata table in PostgreSQL.
// The table must expose the same columns as the CSV spec.
type PostgresLoader struct {
	connStr string
	schema  string
	table   string
}

// NewPostgresLoader creates a loader for the given spec table.
func NewPostgresLoader(connStr, schema, table string) *PostgresLoader {
	if schema == "" {
		schema = "public"
	}
	return &PostgresLoader{connStr: connStr, schema: schema, table: table}
}

func (l *PostgresLoader) Load(ctx context.Context) ([]MappingRow, error) {
	cfg, err := pgxpool.ParseConfig(l.connStr)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}
	cfg.MaxConns = 1 // single connection for a one-shot read
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to PostgreSQL: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("pinging PostgreSQL: %w", err)
	}

	sql := fmt.Sprintf(`SELECT src_project, src_dataset, src_table, src_column,
		tgt_dataset, tgt_table, tgt_column, transformation_rule,
		COALESCE(filter_condition, ''), COALESCE(load_type, ''), COALESCE(watermark_column, '')
		FROM %s.%s ORDER BY id`, quoteIdent(l.schema), quoteIdent(l.table))

	res, err := pool.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("querying spec table %s.%s: %w", l.schema, l.table, err)
	}
	defer res.Close()

	var rows []MappingRow
	for res.Next() {
		var r MappingRow
		if err := res.Scan(
			&r.SrcProject, &r.SrcDataset, &r.SrcTable, &r.SrcColumn,
			&r.TgtDataset, &r.TgtTable, &r.TgtColumn, &r.TransformationRule,
			&r.FilterCondition, &r.LoadType, &r.WatermarkColumn,
		); err != nil {
			return nil, fmt.Errorf("scanning spec row: %w", err)
		}
		rows = append(rows, r)
	}
	if err := res.Err(); err != nil {
		return nil, fmt.Errorf("reading spec table: %w", err)
	}
	return rows, nil
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

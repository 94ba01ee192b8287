// Package postgres introspects the analytics database that the workflow
// engine runs generated SQL against. The console only reads catalog metadata
// here; it never executes user queries itself.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/monsite/console-api/internal/core/domain"
)

const connectTimeout = 10 * time.Second

// Connect initialises a pgx pool and verifies connectivity with a ping.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.New(pingCtx, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres connect: %w", err)
	}
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	return pool, nil
}

// SchemaRepository reads table structure from pg_catalog. The whole result is
// aggregated into one JSON document server-side, keeping the round trip to a
// single row.
type SchemaRepository struct {
	pool *pgxpool.Pool
}

func NewSchemaRepository(pool *pgxpool.Pool) *SchemaRepository {
	return &SchemaRepository{pool: pool}
}

const tablesQuery = `
WITH params AS ( SELECT $1::text AS schema_name ),
tables AS (
  SELECT c.oid AS relid, n.nspname AS schema_name, c.relname AS table_name
  FROM pg_class c
  JOIN pg_namespace n ON n.oid = c.relnamespace
  JOIN params p ON p.schema_name = n.nspname
  WHERE c.relkind IN ('r','p')
),
cols AS (
  SELECT t.relid,
         jsonb_agg(jsonb_build_object(
           'name', a.attname,
           'type', pg_catalog.format_type(a.atttypid, a.atttypmod),
           'nullable', NOT a.attnotnull
         ) ORDER BY a.attnum) AS columns
  FROM tables t
  JOIN pg_attribute a ON a.attrelid = t.relid AND a.attnum > 0 AND NOT a.attisdropped
  GROUP BY t.relid
),
pks AS (
  SELECT t.relid, jsonb_agg(a.attname ORDER BY k.seq) AS primary_key
  FROM tables t
  JOIN pg_constraint con ON con.conrelid = t.relid AND con.contype = 'p'
  JOIN LATERAL unnest(con.conkey) WITH ORDINALITY AS k(attnum, seq) ON TRUE
  JOIN pg_attribute a ON a.attrelid = t.relid AND a.attnum = k.attnum
  GROUP BY t.relid
),
fks AS (
  SELECT t.relid,
         jsonb_agg(jsonb_build_object(
           'name', con.conname,
           'columns', (SELECT jsonb_agg(a.attname ORDER BY ord)
                       FROM unnest(con.conkey) WITH ORDINALITY AS s(attnum, ord)
                       JOIN pg_attribute a ON a.attrelid = t.relid AND a.attnum = s.attnum),
           'referenced_schema', tgt_ns.nspname,
           'referenced_table',  tgt.relname,
           'referenced_columns', (SELECT jsonb_agg(a.attname ORDER BY ord)
                                  FROM unnest(con.confkey) WITH ORDINALITY AS s(attnum, ord)
                                  JOIN pg_attribute a ON a.attrelid = tgt.oid AND a.attnum = s.attnum)
         ) ORDER BY con.conname) AS foreign_keys
  FROM tables t
  JOIN pg_constraint con ON con.conrelid = t.relid AND con.contype = 'f'
  JOIN pg_class tgt ON tgt.oid = con.confrelid
  JOIN pg_namespace tgt_ns ON tgt_ns.oid = tgt.relnamespace
  GROUP BY t.relid
)
SELECT COALESCE(jsonb_agg(
         jsonb_build_object(
           'schema',       t.schema_name,
           'table',        t.table_name,
           'columns',      c.columns,
           'primary_key',  COALESCE(pk.primary_key, '[]'::jsonb),
           'foreign_keys', COALESCE(fk.foreign_keys, '[]'::jsonb)
         )
         ORDER BY t.table_name
       ), '[]'::jsonb) AS tables_json
FROM tables t
JOIN cols c ON c.relid = t.relid
LEFT JOIN pks pk ON pk.relid = t.relid
LEFT JOIN fks fk ON fk.relid = t.relid`

func (r *SchemaRepository) Tables(ctx context.Context, schema string) ([]domain.SchemaTable, error) {
	var raw []byte
	if err := r.pool.QueryRow(ctx, tablesQuery, schema).Scan(&raw); err != nil {
		return nil, fmt.Errorf("introspect schema %q: %w", schema, err)
	}

	var tables []domain.SchemaTable
	if err := json.Unmarshal(raw, &tables); err != nil {
		return nil, fmt.Errorf("decode schema json: %w", err)
	}
	return tables, nil
}

// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package audit

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/johnvilela/motolink/internal/platform/database/schema"
	"github.com/johnvilela/motolink/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed trace store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var traceColumns = strings.Join(schema.SystemHistoryTrace.Columns(), ", ")

func scanTrace(row pgx.Row, extra ...any) (*Trace, error) {
	trace := &Trace{}
	destinations := []any{
		&trace.ID, &trace.UserID, &trace.User, &trace.Action,
		&trace.EntityType, &trace.EntityID, &trace.Changes, &trace.CreatedAt,
	}
	if err := row.Scan(append(destinations, extra...)...); err != nil {
		return nil, err
	}
	return trace, nil
}

/*
Create inserts a trace; actor and changes are stored as JSONB.

Parameters:
  - context: context.Context
  - trace: *Trace

Returns:
  - error: Write failures
*/
func (repository *PostgresRepository) Create(context context.Context, trace *Trace) error {
	table := schema.SystemHistoryTrace
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s`,
		table.Table,
		table.ID, table.UserID, table.User, table.Action, table.EntityType, table.EntityID, table.Changes,
		table.CreatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		trace.ID, trace.UserID, trace.User, trace.Action, trace.EntityType, trace.EntityID, trace.Changes,
	).Scan(&trace.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_history_trace")
	}
	return nil
}

/*
List returns a filtered page of traces ordered by creation time.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit: int
  - offset: int

Returns:
  - []*Trace: Page of traces
  - int: Total matching count
  - error: Retrieval failures
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Trace, int, error) {
	table := schema.SystemHistoryTrace

	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf(`SELECT %s, COUNT(*) OVER() AS total FROM %s WHERE TRUE`, traceColumns, table.Table))

	args := []any{}
	addCondition := func(column string, value any) {
		args = append(args, value)
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", column, len(args)))
	}

	if filter.EntityType != "" {
		addCondition(table.EntityType, filter.EntityType)
	}
	if filter.UserID != "" {
		addCondition(table.UserID, filter.UserID)
	}
	if filter.EntityID != "" {
		addCondition(table.EntityID, filter.EntityID)
	}
	if filter.Action != "" {
		addCondition(table.Action, filter.Action)
	}

	args = append(args, limit, offset)
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s DESC, %s DESC LIMIT $%d OFFSET $%d",
		table.CreatedAt, table.ID, len(args)-1, len(args)))

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_history_traces")
	}
	defer rows.Close()

	traces := []*Trace{}
	var total int
	for rows.Next() {
		trace, err := scanTrace(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_history_trace")
		}
		traces = append(traces, trace)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "iterate_history_traces")
	}

	return traces, total, nil
}

/*
FindByID retrieves a single trace by its primary key.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Trace: Hydrated entity
  - error: dberr.ErrNotFound or retrieval failures
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Trace, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		traceColumns, schema.SystemHistoryTrace.Table, schema.SystemHistoryTrace.ID,
	)

	trace, err := scanTrace(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_history_trace_by_id")
	}
	return trace, nil
}

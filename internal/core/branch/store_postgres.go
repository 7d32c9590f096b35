// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package branch

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/johnvilela/motolink/internal/platform/database/schema"
	"github.com/johnvilela/motolink/internal/platform/dberr"
)

var branchColumns = strings.Join(schema.CoreBranch.Columns(), ", ")

// ScanBranch hydrates a [Branch] selected with the core.branch columns.
func ScanBranch(row pgx.Row, extra ...any) (*Branch, error) {
	branch := &Branch{}
	destinations := []any{&branch.ID, &branch.Code, &branch.Name, &branch.CreatedAt, &branch.UpdatedAt}
	if err := row.Scan(append(destinations, extra...)...); err != nil {
		return nil, err
	}
	return branch, nil
}

// PostgresRepository implements [Repository] on core.branch.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new Postgres implementation of [Repository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
List returns branches ordered newest first.

Description: A non-nil but empty IDs slice yields no rows, which is what a
collaborator without branches must see.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit: int
  - offset: int

Returns:
  - []*Branch: Page of branches
  - int: Total matching count
  - error: Retrieval failures
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Branch, int, error) {
	table := schema.CoreBranch

	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf(`SELECT %s, COUNT(*) OVER() AS total FROM %s WHERE TRUE`, branchColumns, table.Table))

	args := []any{}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		queryBuilder.WriteString(fmt.Sprintf(" AND (%s ILIKE $%d OR %s ILIKE $%d)", table.Name, len(args), table.Code, len(args)))
	}
	if filter.IDs != nil {
		args = append(args, filter.IDs)
		queryBuilder.WriteString(fmt.Sprintf(" AND %s::text = ANY($%d)", table.ID, len(args)))
	}

	args = append(args, limit, offset)
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s DESC LIMIT $%d OFFSET $%d", table.CreatedAt, len(args)-1, len(args)))

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_branches")
	}
	defer rows.Close()

	branches := []*Branch{}
	var total int
	for rows.Next() {
		branch, err := ScanBranch(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_branch")
		}
		branches = append(branches, branch)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "iterate_branches")
	}
	return branches, total, nil
}

// FindByID retrieves a branch by primary key.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Branch, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, branchColumns, schema.CoreBranch.Table, schema.CoreBranch.ID)

	branch, err := ScanBranch(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "find_branch_by_id")
	}
	return branch, nil
}

// FindByCode retrieves a branch by its unique code.
func (repository *PostgresRepository) FindByCode(context context.Context, code string) (*Branch, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, branchColumns, schema.CoreBranch.Table, schema.CoreBranch.Code)

	branch, err := ScanBranch(repository.pool.QueryRow(context, query, code))
	if err != nil {
		return nil, dberr.Wrap(err, "find_branch_by_code")
	}
	return branch, nil
}

// Create inserts a branch.
func (repository *PostgresRepository) Create(context context.Context, branch *Branch) error {
	table := schema.CoreBranch
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3) RETURNING %s, %s`,
		table.Table, table.ID, table.Code, table.Name, table.CreatedAt, table.UpdatedAt)

	err := repository.pool.QueryRow(context, query, branch.ID, branch.Code, branch.Name).Scan(&branch.CreatedAt, &branch.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_branch")
	}
	return nil
}

// Update overwrites code and name.
func (repository *PostgresRepository) Update(context context.Context, branch *Branch) error {
	table := schema.CoreBranch
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = now() WHERE %s = $1 RETURNING %s`,
		table.Table, table.Code, table.Name, table.UpdatedAt, table.ID, table.UpdatedAt)

	err := repository.pool.QueryRow(context, query, branch.ID, branch.Code, branch.Name).Scan(&branch.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_branch")
	}
	return nil
}

// Upsert creates the branch or renames the existing one with the same code,
// filling the stored id back. Runs on tx so seeding stays atomic.
func Upsert(context context.Context, tx pgx.Tx, branch *Branch) error {
	table := schema.CoreBranch
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)
		ON CONFLICT (%s) DO UPDATE SET %s = EXCLUDED.%s, %s = now()
		RETURNING %s, %s, %s`,
		table.Table, table.ID, table.Code, table.Name,
		table.Code, table.Name, table.Name, table.UpdatedAt,
		table.ID, table.CreatedAt, table.UpdatedAt,
	)

	err := tx.QueryRow(context, query, branch.ID, branch.Code, branch.Name).Scan(&branch.ID, &branch.CreatedAt, &branch.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "upsert_branch")
	}
	return nil
}

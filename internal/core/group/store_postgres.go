// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package group

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/johnvilela/motolink/internal/platform/database/schema"
	"github.com/johnvilela/motolink/internal/platform/dberr"
	"github.com/johnvilela/motolink/internal/platform/postgres"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed group store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var groupColumns = strings.Join(schema.CoreClientGroup.Columns(), ", ")

// # Group Retrieval

/*
List returns a filtered and paginated list of groups.

Description: Uses ILIKE for the name search and COUNT(*) OVER() for total metadata.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit: int
  - offset: int

Returns:
  - []*Group: Slice of matching groups
  - int: Total record count
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Group, int, error) {
	table := schema.CoreClientGroup

	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() as total
		FROM %s
		WHERE TRUE
	`, groupColumns, table.Table))

	args := []any{}
	argID := 1

	if filter.Query != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s ILIKE $%d", table.Name, argID))
		args = append(args, "%"+filter.Query+"%")
		argID++
	}

	if filter.BranchID != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", table.BranchID, argID))
		args = append(args, filter.BranchID)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s DESC LIMIT $%d OFFSET $%d", table.CreatedAt, argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_groups")
	}
	defer rows.Close()

	groups := []*Group{}
	var total int
	for rows.Next() {
		group := &Group{}
		err := rows.Scan(
			&group.ID, &group.Name, &group.Description, &group.BranchID,
			&group.CreatedAt, &group.UpdatedAt, &total,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_group")
		}
		groups = append(groups, group)
	}

	return groups, total, dberr.Wrap(rows.Err(), "iterate_groups")
}

/*
FindByID retrieves a single group record by its primary key.

Parameters:
  - context: context.Context
  - id: string
  - branchID: string (empty matches any branch)

Returns:
  - *Group: Hydrated entity
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) FindByID(context context.Context, id, branchID string) (*Group, error) {
	table := schema.CoreClientGroup
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s = $1 AND ($2 = '' OR %s::text = $2)
	`, groupColumns, table.Table, table.ID, table.BranchID)

	group := &Group{}
	err := repository.db.QueryRow(context, query, id, branchID).Scan(
		&group.ID, &group.Name, &group.Description, &group.BranchID, &group.CreatedAt, &group.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_group_by_id")
	}
	return group, nil
}

// # Group Mutations

/*
Create persists a new group to the database.

Parameters:
  - context: context.Context
  - group: *Group

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) Create(context context.Context, group *Group) error {
	table := schema.CoreClientGroup
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s, %s
	`, table.Table, table.ID, table.Name, table.Description, table.BranchID, table.CreatedAt, table.UpdatedAt)

	err := repository.db.QueryRow(context, query,
		group.ID, group.Name, group.Description, group.BranchID,
	).Scan(&group.CreatedAt, &group.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_group")
	}
	return nil
}

// Update modifies an existing group's details.
func (repository *PostgresRepository) Update(context context.Context, group *Group) error {
	table := schema.CoreClientGroup
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`, table.Table, table.Name, table.Description, table.BranchID, table.UpdatedAt, table.ID, table.UpdatedAt)

	err := repository.db.QueryRow(context, query,
		group.ID, group.Name, group.Description, group.BranchID,
	).Scan(&group.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_group")
	}
	return nil
}

// Delete removes a group without clients inside one transaction.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	return postgres.WithTx(context, repository.db, func(tx pgx.Tx) error {
		lockQuery := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 FOR UPDATE`,
			schema.CoreClientGroup.ID, schema.CoreClientGroup.Table, schema.CoreClientGroup.ID)

		var lockedID string
		if err := tx.QueryRow(context, lockQuery, id).Scan(&lockedID); err != nil {
			return dberr.Wrap(err, "lock_group")
		}

		var referenced bool
		referenceQuery := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
			schema.CoreClient.Table, schema.CoreClient.GroupID)
		if err := tx.QueryRow(context, referenceQuery, id).Scan(&referenced); err != nil {
			return dberr.Wrap(err, "check_group_references")
		}
		if referenced {
			return ErrReferenced
		}

		deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreClientGroup.Table, schema.CoreClientGroup.ID)
		if _, err := tx.Exec(context, deleteQuery, id); err != nil {
			return dberr.Wrap(err, "delete_group")
		}
		return nil
	})
}

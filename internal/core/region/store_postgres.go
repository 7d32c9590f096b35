// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package region

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

var regionColumns = strings.Join(schema.CoreRegion.Columns(), ", ")

func scanRegion(row pgx.Row, extra ...any) (*Region, error) {
	region := &Region{}
	destinations := []any{
		&region.ID, &region.Name, &region.Description, &region.BranchID, &region.CreatedAt, &region.UpdatedAt,
	}
	if err := row.Scan(append(destinations, extra...)...); err != nil {
		return nil, err
	}
	return region, nil
}

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed region store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// # Region Retrieval

/*
List returns a filtered and paginated list of regions, newest first.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit: int
  - offset: int

Returns:
  - []*Region: Slice of matching regions
  - int: Total record count
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Region, int, error) {
	table := schema.CoreRegion

	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf(`SELECT %s, COUNT(*) OVER() AS total FROM %s WHERE TRUE`, regionColumns, table.Table))

	args := []any{}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		queryBuilder.WriteString(fmt.Sprintf(" AND %s ILIKE $%d", table.Name, len(args)))
	}
	if filter.BranchID != "" {
		args = append(args, filter.BranchID)
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", table.BranchID, len(args)))
	}

	args = append(args, limit, offset)
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s DESC LIMIT $%d OFFSET $%d", table.CreatedAt, len(args)-1, len(args)))

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_regions")
	}
	defer rows.Close()

	regions := []*Region{}
	var total int
	for rows.Next() {
		region, err := scanRegion(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_region")
		}
		regions = append(regions, region)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "iterate_regions")
	}

	return regions, total, nil
}

// FindByID retrieves a region, optionally restricted to one branch.
func (repository *PostgresRepository) FindByID(context context.Context, id, branchID string) (*Region, error) {
	table := schema.CoreRegion
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND ($2 = '' OR %s::text = $2)`,
		regionColumns, table.Table, table.ID, table.BranchID,
	)

	region, err := scanRegion(repository.pool.QueryRow(context, query, id, branchID))
	if err != nil {
		return nil, dberr.Wrap(err, "get_region_by_id")
	}
	return region, nil
}

// # Region Mutations

// Create inserts a region and fills its timestamps.
func (repository *PostgresRepository) Create(context context.Context, region *Region) error {
	table := schema.CoreRegion
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s, %s`,
		table.Table, table.ID, table.Name, table.Description, table.BranchID,
		table.CreatedAt, table.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		region.ID, region.Name, region.Description, region.BranchID,
	).Scan(&region.CreatedAt, &region.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_region")
	}
	return nil
}

// Update overwrites the mutable columns of a region.
func (repository *PostgresRepository) Update(context context.Context, region *Region) error {
	table := schema.CoreRegion
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = now()
		WHERE %s = $1
		RETURNING %s`,
		table.Table, table.Name, table.Description, table.BranchID, table.UpdatedAt,
		table.ID, table.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		region.ID, region.Name, region.Description, region.BranchID,
	).Scan(&region.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_region")
	}
	return nil
}

/*
Delete removes a region that nothing references.

Description: The row is locked first so a deliveryman or client created
concurrently cannot slip in between the reference check and the delete.
Soft-deleted rows still hold the foreign key and therefore count.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: [ErrReferenced], dberr.ErrNotFound or database failures
*/
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	return postgres.WithTx(context, repository.pool, func(tx pgx.Tx) error {
		lockQuery := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 FOR UPDATE`,
			schema.CoreRegion.ID, schema.CoreRegion.Table, schema.CoreRegion.ID)

		var lockedID string
		if err := tx.QueryRow(context, lockQuery, id).Scan(&lockedID); err != nil {
			return dberr.Wrap(err, "lock_region")
		}

		referenceQuery := fmt.Sprintf(`
			SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)
			    OR EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
			schema.CoreDeliveryman.Table, schema.CoreDeliveryman.RegionID,
			schema.CoreClient.Table, schema.CoreClient.RegionID,
		)

		var referenced bool
		if err := tx.QueryRow(context, referenceQuery, id).Scan(&referenced); err != nil {
			return dberr.Wrap(err, "check_region_references")
		}
		if referenced {
			return ErrReferenced
		}

		deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreRegion.Table, schema.CoreRegion.ID)
		if _, err := tx.Exec(context, deleteQuery, id); err != nil {
			return dberr.Wrap(err, "delete_region")
		}
		return nil
	})
}

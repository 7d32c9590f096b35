// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package deliveryman

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/johnvilela/motolink/internal/platform/database/schema"
	"github.com/johnvilela/motolink/internal/platform/dberr"
	"github.com/johnvilela/motolink/pkg/mask"
)

var deliverymanColumns = strings.Join(schema.CoreDeliveryman.Columns(), ", ")

func scanDeliveryman(row pgx.Row, extra ...any) (*Deliveryman, error) {
	d := &Deliveryman{}
	destinations := []any{
		&d.ID, &d.Name, &d.Document, &d.Phone, &d.ContractType, &d.MainPixKey, &d.SecondPixKey,
		&d.ThirdPixKey, &d.Agency, &d.Account, &d.VehicleModel, &d.VehiclePlate, &d.VehicleColor,
		&d.Files, &d.RegionID, &d.BranchID, &d.IsBlocked, &d.IsDeleted, &d.CreatedAt, &d.UpdatedAt,
	}
	if err := row.Scan(append(destinations, extra...)...); err != nil {
		return nil, err
	}
	return d, nil
}

// PostgresRepository implements [Repository] on core.deliveryman.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed courier store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// # Retrieval

/*
List returns non-deleted couriers matching filter, newest first.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit: int
  - offset: int

Returns:
  - []*Deliveryman: Page of couriers
  - int: Total matching count
  - error: Retrieval failures
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Deliveryman, int, error) {
	table := schema.CoreDeliveryman

	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf(`SELECT %s, COUNT(*) OVER() AS total FROM %s WHERE NOT %s`,
		deliverymanColumns, table.Table, table.IsDeleted))

	args := []any{}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		condition := fmt.Sprintf("%s ILIKE $%d", table.Name, len(args))

		// Document and phone are stored without masks.
		if digits := mask.Clean(filter.Search); digits != "" {
			args = append(args, "%"+digits+"%")
			condition += fmt.Sprintf(" OR %s LIKE $%d OR %s LIKE $%d", table.Document, len(args), table.Phone, len(args))
		}
		queryBuilder.WriteString(" AND (" + condition + ")")
	}
	if filter.BranchID != "" {
		args = append(args, filter.BranchID)
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", table.BranchID, len(args)))
	}
	if filter.RegionID != "" {
		args = append(args, filter.RegionID)
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", table.RegionID, len(args)))
	}
	if filter.IsBlocked != nil {
		args = append(args, *filter.IsBlocked)
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", table.IsBlocked, len(args)))
	}

	args = append(args, limit, offset)
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s DESC LIMIT $%d OFFSET $%d", table.CreatedAt, len(args)-1, len(args)))

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_deliverymen")
	}
	defer rows.Close()

	deliverymen := []*Deliveryman{}
	var total int
	for rows.Next() {
		deliveryman, err := scanDeliveryman(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_deliveryman")
		}
		deliverymen = append(deliverymen, deliveryman)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "iterate_deliverymen")
	}

	return deliverymen, total, nil
}

// FindByID retrieves a courier, deleted ones included.
func (repository *PostgresRepository) FindByID(context context.Context, id, branchID string) (*Deliveryman, error) {
	table := schema.CoreDeliveryman
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND ($2 = '' OR %s::text = $2)`,
		deliverymanColumns, table.Table, table.ID, table.BranchID)

	deliveryman, err := scanDeliveryman(repository.pool.QueryRow(context, query, id, branchID))
	if err != nil {
		return nil, dberr.Wrap(err, "get_deliveryman_by_id")
	}
	return deliveryman, nil
}

// # Mutations

// Create inserts a courier and fills its timestamps.
func (repository *PostgresRepository) Create(context context.Context, d *Deliveryman) error {
	table := schema.CoreDeliveryman
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING %s, %s`,
		table.Table,
		table.ID, table.Name, table.Document, table.Phone, table.ContractType, table.MainPixKey,
		table.SecondPixKey, table.ThirdPixKey, table.Agency, table.Account, table.VehicleModel,
		table.VehiclePlate, table.VehicleColor, table.Files, table.RegionID, table.BranchID,
		table.CreatedAt, table.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		d.ID, d.Name, d.Document, d.Phone, d.ContractType, d.MainPixKey,
		d.SecondPixKey, d.ThirdPixKey, d.Agency, d.Account, d.VehicleModel,
		d.VehiclePlate, d.VehicleColor, d.Files, d.RegionID, d.BranchID,
	).Scan(&d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_deliveryman")
	}
	return nil
}

// Update overwrites the writable columns of a non-deleted courier.
func (repository *PostgresRepository) Update(context context.Context, d *Deliveryman) error {
	table := schema.CoreDeliveryman
	query := fmt.Sprintf(`
		UPDATE %s SET
			%s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8,
			%s = $9, %s = $10, %s = $11, %s = $12, %s = $13, %s = $14, %s = $15,
			%s = $16, %s = now()
		WHERE %s = $1 AND NOT %s
		RETURNING %s`,
		table.Table,
		table.Name, table.Document, table.Phone, table.ContractType, table.MainPixKey, table.SecondPixKey, table.ThirdPixKey,
		table.Agency, table.Account, table.VehicleModel, table.VehiclePlate, table.VehicleColor, table.Files, table.RegionID,
		table.BranchID, table.UpdatedAt,
		table.ID, table.IsDeleted,
		table.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		d.ID, d.Name, d.Document, d.Phone, d.ContractType, d.MainPixKey, d.SecondPixKey, d.ThirdPixKey,
		d.Agency, d.Account, d.VehicleModel, d.VehiclePlate, d.VehicleColor, d.Files, d.RegionID,
		d.BranchID,
	).Scan(&d.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_deliveryman")
	}
	return nil
}

// SoftDelete flags a courier as deleted.
func (repository *PostgresRepository) SoftDelete(context context.Context, id string) error {
	table := schema.CoreDeliveryman
	query := fmt.Sprintf(`UPDATE %s SET %s = TRUE, %s = now() WHERE %s = $1 AND NOT %s`,
		table.Table, table.IsDeleted, table.UpdatedAt, table.ID, table.IsDeleted)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "soft_delete_deliveryman")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// SetBlocked persists IsBlocked.
func (repository *PostgresRepository) SetBlocked(context context.Context, d *Deliveryman) error {
	table := schema.CoreDeliveryman
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = now() WHERE %s = $1 AND NOT %s RETURNING %s`,
		table.Table, table.IsBlocked, table.UpdatedAt, table.ID, table.IsDeleted, table.UpdatedAt)

	if err := repository.pool.QueryRow(context, query, d.ID, d.IsBlocked).Scan(&d.UpdatedAt); err != nil {
		return dberr.Wrap(err, "set_deliveryman_blocked")
	}
	return nil
}

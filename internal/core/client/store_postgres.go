// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package client

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

var clientColumns = strings.Join(schema.CoreClient.Columns(), ", ")

func scanClient(row pgx.Row, extra ...any) (*Client, error) {
	c := &Client{}
	destinations := []any{
		&c.ID, &c.Name, &c.CNPJ, &c.CEP, &c.Street, &c.Number, &c.Complement, &c.City,
		&c.Neighborhood, &c.UF, &c.Observations, &c.RegionID, &c.GroupID, &c.ContactName,
		&c.ContactPhone, &c.ProvideMeal, &c.CommercialCondition, &c.BranchID, &c.IsDeleted,
		&c.CreatedAt, &c.UpdatedAt,
	}
	if err := row.Scan(append(destinations, extra...)...); err != nil {
		return nil, err
	}
	return c, nil
}

// PostgresRepository implements [Repository] on core.client.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed client store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// whereClause renders the filter shared by [PostgresRepository.List] and
// [PostgresRepository.Options].
func whereClause(filter Filter) (string, []any) {
	table := schema.CoreClient

	var clause strings.Builder
	clause.WriteString(fmt.Sprintf(" WHERE NOT %s", table.IsDeleted))

	args := []any{}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		condition := fmt.Sprintf("%s ILIKE $%d", table.Name, len(args))
		if digits := mask.Clean(filter.Search); digits != "" {
			args = append(args, "%"+digits+"%")
			condition += fmt.Sprintf(" OR %s LIKE $%d", table.CNPJ, len(args))
		}
		clause.WriteString(" AND (" + condition + ")")
	}
	if filter.BranchID != "" {
		args = append(args, filter.BranchID)
		clause.WriteString(fmt.Sprintf(" AND %s = $%d", table.BranchID, len(args)))
	}
	if filter.RegionID != "" {
		args = append(args, filter.RegionID)
		clause.WriteString(fmt.Sprintf(" AND %s = $%d", table.RegionID, len(args)))
	}
	if filter.GroupID != "" {
		args = append(args, filter.GroupID)
		clause.WriteString(fmt.Sprintf(" AND %s = $%d", table.GroupID, len(args)))
	}
	return clause.String(), args
}

// # Client Retrieval

/*
List returns a page of active clients, newest first.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit: int
  - offset: int

Returns:
  - []*Client: Page of clients
  - int: Total matching count
  - error: Retrieval failures
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Client, int, error) {
	where, args := whereClause(filter)
	args = append(args, limit, offset)

	query := fmt.Sprintf(`SELECT %s, COUNT(*) OVER() AS total FROM %s%s ORDER BY %s DESC LIMIT $%d OFFSET $%d`,
		clientColumns, schema.CoreClient.Table, where, schema.CoreClient.CreatedAt, len(args)-1, len(args))

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_clients")
	}
	defer rows.Close()

	clients := []*Client{}
	var total int
	for rows.Next() {
		client, err := scanClient(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_client")
		}
		clients = append(clients, client)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "iterate_clients")
	}
	return clients, total, nil
}

// Options returns the id, name and CNPJ of every matching client by name.
func (repository *PostgresRepository) Options(context context.Context, filter Filter) ([]*Option, error) {
	table := schema.CoreClient
	where, args := whereClause(filter)

	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s%s ORDER BY %s ASC`,
		table.ID, table.Name, table.CNPJ, table.Table, where, table.Name)

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_client_options")
	}
	defer rows.Close()

	options := []*Option{}
	for rows.Next() {
		option := &Option{}
		if err := rows.Scan(&option.ID, &option.Name, &option.CNPJ); err != nil {
			return nil, dberr.Wrap(err, "scan_client_option")
		}
		options = append(options, option)
	}
	return options, dberr.Wrap(rows.Err(), "iterate_client_options")
}

// FindByID retrieves a client, deleted ones included.
func (repository *PostgresRepository) FindByID(context context.Context, id, branchID string) (*Client, error) {
	table := schema.CoreClient
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND ($2 = '' OR %s::text = $2)`,
		clientColumns, table.Table, table.ID, table.BranchID)

	client, err := scanClient(repository.pool.QueryRow(context, query, id, branchID))
	if err != nil {
		return nil, dberr.Wrap(err, "get_client_by_id")
	}
	return client, nil
}

// FindByCNPJ retrieves the active client owning cnpj.
func (repository *PostgresRepository) FindByCNPJ(context context.Context, cnpj string) (*Client, error) {
	table := schema.CoreClient
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND NOT %s`,
		clientColumns, table.Table, table.CNPJ, table.IsDeleted)

	client, err := scanClient(repository.pool.QueryRow(context, query, cnpj))
	if err != nil {
		return nil, dberr.Wrap(err, "get_client_by_cnpj")
	}
	return client, nil
}

// # Client Mutations

// Create inserts a client and fills its timestamps.
func (repository *PostgresRepository) Create(context context.Context, c *Client) error {
	table := schema.CoreClient
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING %s, %s`,
		table.Table,
		table.ID, table.Name, table.CNPJ, table.CEP, table.Street, table.Number, table.Complement,
		table.City, table.Neighborhood, table.UF, table.Observations, table.RegionID, table.GroupID,
		table.ContactName, table.ContactPhone, table.ProvideMeal, table.CommercialCondition, table.BranchID,
		table.CreatedAt, table.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		c.ID, c.Name, c.CNPJ, c.CEP, c.Street, c.Number, c.Complement,
		c.City, c.Neighborhood, c.UF, c.Observations, c.RegionID, c.GroupID,
		c.ContactName, c.ContactPhone, c.ProvideMeal, c.CommercialCondition, c.BranchID,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_client")
	}
	return nil
}

// Update overwrites the writable columns of an active client.
func (repository *PostgresRepository) Update(context context.Context, c *Client) error {
	table := schema.CoreClient
	query := fmt.Sprintf(`
		UPDATE %s SET
			%s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = $9,
			%s = $10, %s = $11, %s = $12, %s = $13, %s = $14, %s = $15, %s = $16, %s = $17,
			%s = $18, %s = now()
		WHERE %s = $1 AND NOT %s
		RETURNING %s`,
		table.Table,
		table.Name, table.CNPJ, table.CEP, table.Street, table.Number, table.Complement, table.City, table.Neighborhood,
		table.UF, table.Observations, table.RegionID, table.GroupID, table.ContactName, table.ContactPhone, table.ProvideMeal, table.CommercialCondition,
		table.BranchID, table.UpdatedAt,
		table.ID, table.IsDeleted,
		table.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		c.ID, c.Name, c.CNPJ, c.CEP, c.Street, c.Number, c.Complement, c.City, c.Neighborhood,
		c.UF, c.Observations, c.RegionID, c.GroupID, c.ContactName, c.ContactPhone, c.ProvideMeal, c.CommercialCondition,
		c.BranchID,
	).Scan(&c.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_client")
	}
	return nil
}

// SoftDelete flags a client as deleted, releasing its CNPJ.
func (repository *PostgresRepository) SoftDelete(context context.Context, id string) error {
	table := schema.CoreClient
	query := fmt.Sprintf(`UPDATE %s SET %s = TRUE, %s = now() WHERE %s = $1 AND NOT %s`,
		table.Table, table.IsDeleted, table.UpdatedAt, table.ID, table.IsDeleted)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "soft_delete_client")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

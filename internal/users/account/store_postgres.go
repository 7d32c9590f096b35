// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/johnvilela/motolink/internal/platform/database/schema"
	"github.com/johnvilela/motolink/internal/platform/dberr"
	"github.com/johnvilela/motolink/internal/platform/sec"
	"github.com/johnvilela/motolink/internal/users/auth"
)

// # Repository Implementations

// PostgresRepository implements [Repository] on users.account.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new Postgres implementation of [Repository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
FindByID retrieves a user by primary key, deleted ones included.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *auth.User: Hydrated entity
  - error: dberr.ErrNotFound or database failures
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*auth.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		auth.UserColumns, schema.UserAccount.Table, schema.UserAccount.ID,
	)

	user, err := auth.ScanUser(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "find_account_by_id")
	}
	return user, nil
}

// FindByEmail retrieves the non-deleted user owning the e-mail.
func (repository *PostgresRepository) FindByEmail(context context.Context, email string) (*auth.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE lower(%s) = lower($1) AND NOT %s`,
		auth.UserColumns, schema.UserAccount.Table, schema.UserAccount.Email, schema.UserAccount.IsDeleted,
	)

	user, err := auth.ScanUser(repository.pool.QueryRow(context, query, email))
	if err != nil {
		return nil, dberr.Wrap(err, "find_account_by_email")
	}
	return user, nil
}

/*
List returns a filtered page of non-deleted users ordered newest first.

Description: UUIDv7 ids grow with creation time, so ordering and the keyset
cursor both use the id column.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit: int
  - offset: int

Returns:
  - []*auth.User: Page of users
  - int: Total matching count (cursor excluded)
  - error: Retrieval failures
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*auth.User, int, error) {
	table := schema.UserAccount

	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf(`SELECT %s, COUNT(*) OVER() AS total FROM %s WHERE NOT %s`,
		auth.UserColumns, table.Table, table.IsDeleted))

	args := []any{}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		queryBuilder.WriteString(fmt.Sprintf(" AND (%s ILIKE $%d OR %s ILIKE $%d)", table.Name, len(args), table.Email, len(args)))
	}
	if filter.BranchID != "" {
		args = append(args, filter.BranchID)
		queryBuilder.WriteString(fmt.Sprintf(" AND $%d = ANY(%s)", len(args), table.Branches))
	}

	// The window total is computed before the cursor so it reflects the whole result set.
	selectQuery := queryBuilder.String()
	if filter.Cursor != "" {
		args = append(args, filter.Cursor)
		selectQuery = fmt.Sprintf(`SELECT * FROM (%s) page WHERE page.%s < $%d`, selectQuery, table.ID, len(args))
		offset = 0
	}

	args = append(args, limit, offset)
	selectQuery += fmt.Sprintf(" ORDER BY %s DESC LIMIT $%d OFFSET $%d", table.ID, len(args)-1, len(args))

	rows, err := repository.pool.Query(context, selectQuery, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_accounts")
	}
	defer rows.Close()

	users := []*auth.User{}
	var total int
	for rows.Next() {
		user, err := auth.ScanUser(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_account")
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "iterate_accounts")
	}

	return users, total, nil
}

// ListByRole returns every non-deleted user of role.
func (repository *PostgresRepository) ListByRole(context context.Context, role sec.UserRole) ([]*auth.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND NOT %s ORDER BY %s`,
		auth.UserColumns, schema.UserAccount.Table, schema.UserAccount.Role, schema.UserAccount.IsDeleted, schema.UserAccount.ID,
	)

	rows, err := repository.pool.Query(context, query, role)
	if err != nil {
		return nil, dberr.Wrap(err, "list_accounts_by_role")
	}
	defer rows.Close()

	users := []*auth.User{}
	for rows.Next() {
		user, err := auth.ScanUser(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_account")
		}
		users = append(users, user)
	}
	return users, dberr.Wrap(rows.Err(), "iterate_accounts_by_role")
}

/*
Create inserts a new account row.

Parameters:
  - context: context.Context
  - user: *auth.User

Returns:
  - error: dberr mapped failures (e.g. duplicated e-mail)
*/
func (repository *PostgresRepository) Create(context context.Context, user *auth.User) error {
	table := schema.UserAccount
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING %s, %s`,
		table.Table,
		table.ID, table.Name, table.Email, table.Password, table.Role, table.Permissions,
		table.Branches, table.Status, table.Phone, table.Document, table.BirthDate, table.Files,
		table.CreatedAt, table.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		user.ID, user.Name, user.Email, user.Password, user.Role, user.Permissions,
		user.Branches, user.Status, user.Phone, user.Document, user.BirthDate, user.Files,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_account")
	}
	return nil
}

/*
Update overwrites the mutable columns of a non-deleted account.

Parameters:
  - context: context.Context
  - user: *auth.User

Returns:
  - error: dberr.ErrNotFound or write failures
*/
func (repository *PostgresRepository) Update(context context.Context, user *auth.User) error {
	table := schema.UserAccount
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = $9, %s = $10, %s = $11, %s = now()
		WHERE %s = $1 AND NOT %s
		RETURNING %s`,
		table.Table,
		table.Name, table.Email, table.Password, table.Role, table.Permissions, table.Branches,
		table.Phone, table.Document, table.BirthDate, table.Files, table.UpdatedAt,
		table.ID, table.IsDeleted,
		table.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		user.ID, user.Name, user.Email, user.Password, user.Role, user.Permissions, user.Branches,
		user.Phone, user.Document, user.BirthDate, user.Files,
	).Scan(&user.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_account")
	}
	return nil
}

// SoftDelete flags the account as deleted.
func (repository *PostgresRepository) SoftDelete(context context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = TRUE, %s = now() WHERE %s = $1 AND NOT %s`,
		schema.UserAccount.Table, schema.UserAccount.IsDeleted, schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID, schema.UserAccount.IsDeleted,
	)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "soft_delete_account")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// SetPermissions replaces the permission list of an account.
func (repository *PostgresRepository) SetPermissions(context context.Context, id string, permissions []string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = now() WHERE %s = $1`,
		schema.UserAccount.Table, schema.UserAccount.Permissions, schema.UserAccount.UpdatedAt, schema.UserAccount.ID,
	)

	if _, err := repository.pool.Exec(context, query, id, permissions); err != nil {
		return dberr.Wrap(err, "set_account_permissions")
	}
	return nil
}

// # Seeding

/*
UpsertAdmin creates the administrator or, when an active account already
owns the e-mail, restores its role, permissions, branches and ACTIVE status.
The stored password of an existing account is kept.

Parameters:
  - context: context.Context
  - tx: pgx.Tx
  - user: *auth.User (ID, CreatedAt and UpdatedAt are filled back)

Returns:
  - error: Write failures
*/
func UpsertAdmin(context context.Context, tx pgx.Tx, user *auth.User) error {
	table := schema.UserAccount
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, '', '', '{}')
		ON CONFLICT (lower(%s)) WHERE NOT %s DO UPDATE SET
			%s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = now()
		RETURNING %s, %s, %s`,
		table.Table,
		table.ID, table.Name, table.Email, table.Password, table.Role, table.Permissions,
		table.Branches, table.Status, table.Phone, table.Document, table.Files,
		table.Email, table.IsDeleted,
		table.Role, table.Role, table.Permissions, table.Permissions,
		table.Branches, table.Branches, table.Status, table.Status, table.UpdatedAt,
		table.ID, table.CreatedAt, table.UpdatedAt,
	)

	err := tx.QueryRow(context, query,
		user.ID, user.Name, user.Email, user.Password, user.Role, user.Permissions, user.Branches, user.Status,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "upsert_admin")
	}
	return nil
}

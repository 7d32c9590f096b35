// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/johnvilela/motolink/internal/platform/database/schema"
	"github.com/johnvilela/motolink/internal/platform/dberr"
)

// # Row Mapping

// UserColumns is the SELECT list matching [ScanUser].
var UserColumns = strings.Join(schema.UserAccount.Columns(), ", ")

// ScanUser hydrates a [User] from a row selected with [UserColumns].
// Extra destinations are scanned after the user columns (e.g. a window total).
func ScanUser(row pgx.Row, extra ...any) (*User, error) {
	user := &User{}
	destinations := []any{
		&user.ID, &user.Name, &user.Email, &user.Password, &user.Role, &user.Permissions,
		&user.Branches, &user.Status, &user.Phone, &user.Document, &user.BirthDate,
		&user.Files, &user.IsDeleted, &user.CreatedAt, &user.UpdatedAt,
	}
	if err := row.Scan(append(destinations, extra...)...); err != nil {
		return nil, err
	}
	return user, nil
}

// # Repository Implementations

// PostgresUserRepository implements [UserRepository] using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new Postgres implementation of [UserRepository].
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// PostgresSessionRepository implements [SessionRepository] using pgx.
type PostgresSessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new Postgres implementation of [SessionRepository].
func NewSessionRepository(pool *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{pool: pool}
}

// # UserRepository Methods

/*
FindByID retrieves a user record from the users.account table.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *User: Hydrated identity entity
  - error: dberr.ErrNotFound or database execution failure
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		UserColumns, schema.UserAccount.Table, schema.UserAccount.ID,
	)

	user, err := ScanUser(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "find_user_by_id")
	}
	return user, nil
}

/*
FindByEmail retrieves the non-deleted account owning the e-mail.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Hydrated identity entity
  - error: dberr.ErrNotFound or database execution failure
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE lower(%s) = lower($1) AND NOT %s`,
		UserColumns, schema.UserAccount.Table, schema.UserAccount.Email, schema.UserAccount.IsDeleted,
	)

	user, err := ScanUser(repository.pool.QueryRow(context, query, email))
	if err != nil {
		return nil, dberr.Wrap(err, "find_user_by_email")
	}
	return user, nil
}

/*
UpdatePassword overwrites the stored hash for a user.

Parameters:
  - context: context.Context
  - userID: string
  - passwordHash: string

Returns:
  - error: Write failures
*/
func (repository *PostgresUserRepository) UpdatePassword(context context.Context, userID, passwordHash string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = now() WHERE %s = $1 AND NOT %s`,
		schema.UserAccount.Table, schema.UserAccount.Password, schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID, schema.UserAccount.IsDeleted,
	)

	tag, err := repository.pool.Exec(context, query, userID, passwordHash)
	if err != nil {
		return dberr.Wrap(err, "update_user_password")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

/*
Activate stores the first password and sets the status to ACTIVE. Only a
PENDING, non-deleted row is updated.

Parameters:
  - context: context.Context
  - userID: string
  - passwordHash: string

Returns:
  - error: dberr.ErrNotFound when no pending row matched
*/
func (repository *PostgresUserRepository) Activate(context context.Context, userID, passwordHash string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = now() WHERE %s = $1 AND NOT %s AND %s = $4`,
		schema.UserAccount.Table, schema.UserAccount.Password, schema.UserAccount.Status,
		schema.UserAccount.UpdatedAt, schema.UserAccount.ID, schema.UserAccount.IsDeleted,
		schema.UserAccount.Status,
	)

	tag, err := repository.pool.Exec(context, query, userID, passwordHash, StatusActive, StatusPending)
	if err != nil {
		return dberr.Wrap(err, "activate_user")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// # SessionRepository Methods

/*
Create persists a new session row.

Parameters:
  - context: context.Context
  - session: *Session

Returns:
  - error: Write failures
*/
func (repository *PostgresSessionRepository) Create(context context.Context, session *Session) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s`,
		schema.UserSession.Table,
		schema.UserSession.ID, schema.UserSession.UserID, schema.UserSession.TokenHash,
		schema.UserSession.UserAgent, schema.UserSession.IPAddress, schema.UserSession.ExpiresAt,
		schema.UserSession.CreatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		session.ID,
		session.UserID,
		session.TokenHash,
		session.UserAgent,
		session.IPAddress,
		session.ExpiresAt,
	).Scan(&session.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_session")
	}
	return nil
}

/*
FindByTokenHash looks a session up by the digest of its token.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - *Session: Hydrated entity
  - error: dberr.ErrNotFound or database failures
*/
func (repository *PostgresSessionRepository) FindByTokenHash(context context.Context, tokenHash string) (*Session, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		strings.Join(schema.UserSession.Columns(), ", "),
		schema.UserSession.Table, schema.UserSession.TokenHash,
	)

	session := &Session{}
	err := repository.pool.QueryRow(context, query, tokenHash).Scan(
		&session.ID,
		&session.UserID,
		&session.TokenHash,
		&session.UserAgent,
		&session.IPAddress,
		&session.ExpiresAt,
		&session.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_session_by_token")
	}
	return session, nil
}

/*
DeleteByTokenHash removes a session; a missing row is not an error.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - error: Write failures
*/
func (repository *PostgresSessionRepository) DeleteByTokenHash(context context.Context, tokenHash string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.UserSession.Table, schema.UserSession.TokenHash)

	if _, err := repository.pool.Exec(context, query, tokenHash); err != nil {
		return dberr.Wrap(err, "delete_session")
	}
	return nil
}

/*
DeleteByUser removes every session owned by userID.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - int64: Rows removed
  - error: Write failures
*/
func (repository *PostgresSessionRepository) DeleteByUser(context context.Context, userID string) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.UserSession.Table, schema.UserSession.UserID)

	tag, err := repository.pool.Exec(context, query, userID)
	if err != nil {
		return 0, dberr.Wrap(err, "delete_user_sessions")
	}
	return tag.RowsAffected(), nil
}

/*
DeleteOthers removes the user's sessions except the one being kept.

Parameters:
  - context: context.Context
  - userID: string
  - keepSessionID: string

Returns:
  - error: Write failures
*/
func (repository *PostgresSessionRepository) DeleteOthers(context context.Context, userID, keepSessionID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s <> $2`,
		schema.UserSession.Table, schema.UserSession.UserID, schema.UserSession.ID,
	)

	if _, err := repository.pool.Exec(context, query, userID, keepSessionID); err != nil {
		return dberr.Wrap(err, "delete_other_sessions")
	}
	return nil
}

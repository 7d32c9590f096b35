// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository is the slice of account storage the session layer needs.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID, deleted or not.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: dberr.ErrNotFound or database failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the non-deleted account with the given e-mail.
		The comparison is case-insensitive.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: dberr.ErrNotFound or database failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	// UpdatePassword replaces only the password hash.
	UpdatePassword(context context.Context, userID, passwordHash string) error

	// Activate stores the first password and moves the account to ACTIVE.
	Activate(context context.Context, userID, passwordHash string) error
}

// # Session Data Access

// SessionRepository persists sessions keyed by the digest of their token.
type SessionRepository interface {

	/*
		Create persists a new session.

		Parameters:
		  - context: context.Context
		  - session: *Session

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, session *Session) error

	/*
		FindByTokenHash returns the session matching the given digest,
		expired or not.

		Parameters:
		  - context: context.Context
		  - tokenHash: string

		Returns:
		  - *Session: Hydrated entity
		  - error: dberr.ErrNotFound or database failures
	*/
	FindByTokenHash(context context.Context, tokenHash string) (*Session, error)

	// DeleteByTokenHash removes a session. A missing session is not an error.
	DeleteByTokenHash(context context.Context, tokenHash string) error

	/*
		DeleteByUser removes every session of the user.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - int64: Number of sessions removed
		  - error: Persistence failures
	*/
	DeleteByUser(context context.Context, userID string) (int64, error)

	// DeleteOthers removes every session of userID except keepSessionID.
	DeleteOthers(context context.Context, userID, keepSessionID string) error
}

// # Volatile Data Access

// InviteTokenRepository stores first-access invitation tokens.
type InviteTokenRepository interface {

	// Set stores token for userID until ttl elapses.
	Set(context context.Context, token string, userID string, ttl time.Duration) error

	/*
		Claim returns the userID of an invitation token and removes the token
		in the same step, so only one caller ever receives it.

		Parameters:
		  - context: context.Context
		  - token: string

		Returns:
		  - string: UserID
		  - error: apperr.NotFound when absent, expired or already claimed
	*/
	Claim(context context.Context, token string) (string, error)
}

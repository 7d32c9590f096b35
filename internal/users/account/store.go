// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package account

import (
	"context"
	"time"

	"github.com/johnvilela/motolink/internal/platform/sec"
	"github.com/johnvilela/motolink/internal/users/auth"
)

// # Repository Contracts

// Repository defines the persistence contract for collaborators.
type Repository interface {

	/*
		FindByID retrieves a user, deleted ones included.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *auth.User: Loaded account entity
		  - error: dberr.ErrNotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*auth.User, error)

	/*
		FindByEmail retrieves the non-deleted user owning the e-mail.

		Parameters:
		  - context: context.Context
		  - email: string (case-insensitive)

		Returns:
		  - *auth.User: Loaded account entity
		  - error: dberr.ErrNotFound or storage failures
	*/
	FindByEmail(context context.Context, email string) (*auth.User, error)

	/*
		List returns non-deleted users matching filter, newest first.

		Parameters:
		  - context: context.Context
		  - filter: Filter
		  - limit: int
		  - offset: int (ignored when filter.Cursor is set)

		Returns:
		  - []*auth.User: Page of users
		  - int: Total matching count
		  - error: Retrieval failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*auth.User, int, error)

	// ListByRole returns every non-deleted user of role.
	ListByRole(context context.Context, role sec.UserRole) ([]*auth.User, error)

	// Create inserts a user and fills its timestamps.
	Create(context context.Context, user *auth.User) error

	// Update overwrites the mutable columns and refreshes UpdatedAt.
	Update(context context.Context, user *auth.User) error

	// SoftDelete flags the user as deleted.
	SoftDelete(context context.Context, id string) error

	// SetPermissions replaces the permission list of a user.
	SetPermissions(context context.Context, id string, permissions []string) error
}

// SessionRevoker removes every session of a user.
type SessionRevoker interface {
	DeleteByUser(context context.Context, userID string) (int64, error)
}

// InviteStore keeps first-access tokens.
type InviteStore interface {
	Set(context context.Context, token string, userID string, ttl time.Duration) error
}

// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package group

import "context"

// Repository defines persistence for client groups.
//
// branchID arguments scope the lookup; an empty value matches any branch.
type Repository interface {
	List(context context.Context, filter Filter, limit, offset int) ([]*Group, int, error)
	FindByID(context context.Context, id, branchID string) (*Group, error)
	Create(context context.Context, group *Group) error
	Update(context context.Context, group *Group) error

	// Delete removes the row or fails with [ErrReferenced].
	Delete(context context.Context, id string) error
}

// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package region

import "context"

// Repository defines persistence for regions.
//
// branchID arguments scope the lookup; an empty value matches any branch.
type Repository interface {
	List(context context.Context, filter Filter, limit, offset int) ([]*Region, int, error)
	FindByID(context context.Context, id, branchID string) (*Region, error)
	Create(context context.Context, region *Region) error
	Update(context context.Context, region *Region) error

	// Delete removes the row or fails with [ErrReferenced].
	Delete(context context.Context, id string) error
}

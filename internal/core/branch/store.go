// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package branch

import "context"

// Repository defines persistence for branches.
type Repository interface {
	List(context context.Context, filter Filter, limit, offset int) ([]*Branch, int, error)
	FindByID(context context.Context, id string) (*Branch, error)
	FindByCode(context context.Context, code string) (*Branch, error)
	Create(context context.Context, branch *Branch) error
	Update(context context.Context, branch *Branch) error
}

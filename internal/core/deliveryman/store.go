// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package deliveryman

import (
	"context"

	"github.com/johnvilela/motolink/internal/core/region"
)

// Repository defines persistence for couriers.
type Repository interface {
	List(context context.Context, filter Filter, limit, offset int) ([]*Deliveryman, int, error)

	// FindByID includes soft-deleted rows; branchID "" matches any branch.
	FindByID(context context.Context, id, branchID string) (*Deliveryman, error)

	Create(context context.Context, deliveryman *Deliveryman) error
	Update(context context.Context, deliveryman *Deliveryman) error
	SoftDelete(context context.Context, id string) error

	// SetBlocked stores the flag and refreshes UpdatedAt.
	SetBlocked(context context.Context, deliveryman *Deliveryman) error
}

// RegionFinder resolves a region inside a branch. Satisfied by [region.Service].
type RegionFinder interface {
	GetRegion(context context.Context, id, branchID string) (*region.Region, error)
}

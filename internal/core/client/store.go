// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package client

import (
	"context"

	"github.com/johnvilela/motolink/internal/core/group"
	"github.com/johnvilela/motolink/internal/core/region"
)

// Repository defines persistence for clients.
type Repository interface {
	List(context context.Context, filter Filter, limit, offset int) ([]*Client, int, error)

	// Options returns every matching client ordered by name.
	Options(context context.Context, filter Filter) ([]*Option, error)

	// FindByID includes soft-deleted rows; branchID "" matches any branch.
	FindByID(context context.Context, id, branchID string) (*Client, error)

	// FindByCNPJ returns the active client owning cnpj.
	FindByCNPJ(context context.Context, cnpj string) (*Client, error)

	Create(context context.Context, client *Client) error
	Update(context context.Context, client *Client) error
	SoftDelete(context context.Context, id string) error
}

// RegionFinder resolves a region inside a branch.
type RegionFinder interface {
	GetRegion(context context.Context, id, branchID string) (*region.Region, error)
}

// GroupFinder resolves a client group inside a branch.
type GroupFinder interface {
	GetGroup(context context.Context, id, branchID string) (*group.Group, error)
}

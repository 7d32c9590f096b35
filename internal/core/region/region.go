// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

/*
Package region manages the delivery regions of each branch.

Deliverymen and clients point at a region, so a region can only be removed
while nothing references it.
*/
package region

import (
	"errors"
	"time"
)

// # Core Entities

// Region is a delivery area inside a branch.
type Region struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	BranchID    string    `json:"branchId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Input holds the mutable fields of a region.
type Input struct {
	Name        string
	Description string
	BranchID    string
}

// # Search & Filtering

// Filter narrows region listings.
type Filter struct {
	Search   string
	BranchID string
}

// ErrReferenced is returned by [Repository.Delete] while deliverymen or
// clients still point at the region.
var ErrReferenced = errors.New("region_referenced")

// # Field Identifiers

const (
	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
)

const (
	msgNotFound   = "Região não encontrada"
	msgReferenced = "Não é possível excluir a região pois existem entregadores ou clientes vinculados"
)

// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

/*
Package group manages client groups.

A group bundles the clients of one branch that share billing or commercial
rules (for example every store of a restaurant chain).

# Architecture

  - Entities: [Group]
  - Persistence: [Repository] over core.clientgroup
  - Logic: [Service], which refuses to delete a group still holding clients
*/
package group

import (
	"errors"
	"time"
)

// # Core Entities

// Group is a named set of clients inside a branch.
type Group struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	BranchID    string    `json:"branchId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Input holds the writable fields of a group.
type Input struct {
	Name        string
	Description string
	BranchID    string
}

// # Search & Filtering

// Filter defines the criteria for listing groups.
type Filter struct {
	// Query matches the group name, case-insensitive.
	Query string

	// BranchID restricts the listing to one branch.
	BranchID string
}

// ErrReferenced signals that clients still belong to the group.
var ErrReferenced = errors.New("group_referenced")

// # Field Identifiers

const (
	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldBranchID    = "branchId"
)

const (
	msgNotFound   = "Grupo não encontrado"
	msgReferenced = "Não é possível excluir o grupo pois existem clientes vinculados"
)

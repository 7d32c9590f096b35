// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

// Package scope applies the branch scope of a request to records that
// belong to a branch (regions, groups, deliverymen and clients).
package scope

import (
	"github.com/johnvilela/motolink/internal/platform/apperr"
	"github.com/johnvilela/motolink/internal/platform/sec"
	"github.com/johnvilela/motolink/internal/platform/validate"
)

// FieldBranchID is the payload field that names the owning branch.
const FieldBranchID = "branchId"

const (
	msgBranchRequired = "Filial é obrigatória"
	msgForeignBranch  = "Você não pode atribuir filiais que não são suas"
)

/*
Assign decides the branch a record is written to.

Description: The requested branch wins; without one the branch selected for
the request is used. The actor must be allowed to operate on the result.

Parameters:
  - actor: *sec.Principal
  - requested: string (branchId from the payload, may be empty)
  - selected: string (branch resolved by the route guard)

Returns:
  - string: The branch to persist
  - error: 400 when no branch can be decided, 403 for a foreign branch
*/
func Assign(actor *sec.Principal, requested, selected string) (string, error) {
	branchID := requested
	if branchID == "" {
		branchID = selected
	}

	if branchID == "" {
		return "", validate.RequiredError(FieldBranchID, msgBranchRequired)
	}

	if !sec.IsBranchAllowed(actor, branchID) {
		return "", apperr.Forbidden(msgForeignBranch)
	}
	return branchID, nil
}

// Visible reports whether a record of branchID is visible under the
// selected scope. An empty scope sees every branch.
func Visible(selected, branchID string) bool {
	return selected == "" || selected == branchID
}

// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package sec

// # Branch Scope

// BranchSelection is the outcome of resolving the selected-branch cookie.
type BranchSelection struct {
	// ID is the branch every branch-scoped query must filter by.
	// Empty means unscoped for ADMIN; for anyone else it means no branch could
	// be resolved and the request must be refused.
	ID string

	// Repaired is true when the cookie value was rejected and ID replaces it.
	Repaired bool
}

// IsBranchAllowed reports whether user may operate on branchID.
// ADMIN may operate on any branch.
func IsBranchAllowed(user *Principal, branchID string) bool {
	if user == nil {
		return false
	}
	if user.IsAdmin() {
		return true
	}
	return user.HasBranch(branchID)
}

/*
ResolveBranch validates the current selection and replaces it when invalid.

  - ADMIN keeps whatever is selected, an empty selection stays unscoped.
  - Others keep current only when it is one of their branches.
  - Otherwise the first assigned branch is used, then fallback.
*/
func ResolveBranch(user *Principal, current, fallback string) BranchSelection {
	if user.IsAdmin() {
		return BranchSelection{ID: current}
	}

	if current != "" && IsBranchAllowed(user, current) {
		return BranchSelection{ID: current}
	}

	replacement := fallback
	if user != nil && len(user.Branches) > 0 {
		replacement = user.Branches[0]
	}

	return BranchSelection{ID: replacement, Repaired: replacement != current}
}

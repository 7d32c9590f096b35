// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package sec

import "slices"

// # Authenticated Principal

// Principal is the identity attached to a request after the session has
// been verified. It carries everything authorization decisions need.
type Principal struct {
	UserID      string
	SessionID   string
	Name        string
	Email       string
	Role        UserRole
	Permissions []string
	Branches    []string
}

// IsAdmin reports whether the principal bypasses permission and branch checks.
func (principal *Principal) IsAdmin() bool {
	return principal != nil && IsAdmin(principal.Role)
}

// HasBranch reports whether branchID is one of the principal's branches.
func (principal *Principal) HasBranch(branchID string) bool {
	return principal != nil && slices.Contains(principal.Branches, branchID)
}

// # Authorization Guard

/*
HasPermissions answers whether user holds every key in required.

Rules, applied in order:
  - nil user: false
  - ADMIN: true, the key list is ignored
  - empty required: true
  - otherwise every required key must appear in user.Permissions

Keys are matched by exact string equality, there are no wildcards at
check time.
*/
func HasPermissions(user *Principal, required []string) bool {
	if user == nil {
		return false
	}

	if user.IsAdmin() {
		return true
	}

	if len(required) == 0 {
		return true
	}

	granted := make(map[string]struct{}, len(user.Permissions))
	for _, key := range user.Permissions {
		granted[key] = struct{}{}
	}

	for _, key := range required {
		if _, ok := granted[key]; !ok {
			return false
		}
	}

	return true
}

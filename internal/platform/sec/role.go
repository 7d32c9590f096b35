// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted access to every module and every branch
	RoleAdmin UserRole = "ADMIN"

	// Branch manager, permissions come from the account's key list
	RoleManager UserRole = "MANAGER"

	// Branch operator, permissions come from the account's key list
	RoleUser UserRole = "USER"
)

// Roles lists every assignable role.
var Roles = []UserRole{RoleAdmin, RoleManager, RoleUser}

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleUser:
		return true
	default:
		return false
	}
}

// IsAdmin is the single place that decides the administrative bypass.
func IsAdmin(role UserRole) bool {
	return role == RoleAdmin
}

// # Landing Pages

const (
	landingAdmin   = "/app/admin/dashboard"
	landingDefault = "/app/dashboard"
	landingUnknown = "/app/desconhecido"
)

// LandingPath returns the page an authenticated user is sent to when they
// open a public-only page such as the login screen.
func LandingPath(role UserRole) string {
	switch role {
	case RoleAdmin:
		return landingAdmin
	case RoleManager, RoleUser:
		return landingDefault
	default:
		return landingUnknown
	}
}

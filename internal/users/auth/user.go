// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

/*
Package auth implements the Motolink identity and session layer.

It defines the core entities (User, Session), the session store that turns
e-mail and password into an opaque bearer token, and the resolver the route
guard uses to turn that token back into a principal on every request.

# Architecture

Entities defined here are shared with the collaborator management package
(account), which owns the CRUD side of users.
*/
package auth

import (
	"time"

	"github.com/johnvilela/motolink/internal/platform/sec"
)

// # Domain Entities

// UserStatus is the lifecycle state of an account.
type UserStatus string

const (
	StatusActive   UserStatus = "ACTIVE"
	StatusPending  UserStatus = "PENDING"
	StatusInactive UserStatus = "INACTIVE"
	StatusBlocked  UserStatus = "BLOCKED"
)

// Valid reports whether s is a known status.
func (s UserStatus) Valid() bool {
	switch s {
	case StatusActive, StatusPending, StatusInactive, StatusBlocked:
		return true
	}
	return false
}

// User is a back-office collaborator.
type User struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Password    *string      `json:"-"` // argon2id PHC string, nil until the first access.
	Role        sec.UserRole `json:"role"`
	Permissions []string     `json:"permissions"`
	Branches    []string     `json:"branches"`
	Status      UserStatus   `json:"status"`
	Phone       string       `json:"phone"`
	Document    string       `json:"document"`
	BirthDate   *time.Time   `json:"birthDate,omitempty"`
	Files       []string     `json:"files"`
	IsDeleted   bool         `json:"isDeleted"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// Principal builds the request identity for an authenticated session.
func (user *User) Principal(sessionID string) *sec.Principal {
	return &sec.Principal{
		UserID:      user.ID,
		SessionID:   sessionID,
		Name:        user.Name,
		Email:       user.Email,
		Role:        user.Role,
		Permissions: user.Permissions,
		Branches:    user.Branches,
	}
}

// CanSignIn reports whether the account may hold a session.
func (user *User) CanSignIn() bool {
	return !user.IsDeleted && user.Status == StatusActive
}

// Session binds an opaque bearer token to a user until ExpiresAt.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	TokenHash string    `json:"-"` // BLAKE3 digest of the bearer token.
	UserAgent string    `json:"userAgent"`
	IPAddress string    `json:"ipAddress"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// # Field Identifiers

// Field names used in validation details.
const (
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldToken           = "token"
	FieldBranchID        = "branchId"
	FieldCurrentPassword = "currentPassword"
	FieldNewPassword     = "newPassword"
)

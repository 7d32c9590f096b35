// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

/*
Package account manages back-office collaborators.

It owns the CRUD side of [auth.User]: creation with an invitation or an
initial password, partial updates, soft deletion with session revocation and
the branch-scoped listing used by the collaborators screen.

# Architecture

  - Entities: reused from the auth package.
  - Invitations: token in Redis, message on the invitation queue.
  - Auditing: every mutation records a history trace.
*/
package account

import (
	"time"

	"github.com/johnvilela/motolink/internal/platform/sec"
)

// # Inputs

// CreateInput holds the fields of a new collaborator.
//
// Without Password the account starts PENDING and an invitation is sent.
type CreateInput struct {
	Name        string
	Email       string
	Password    *string
	Role        sec.UserRole
	Permissions []string
	Branches    []string
	Phone       string
	Document    string
	BirthDate   *time.Time
	Files       []string
}

// UpdateInput is a partial update; nil fields are left unchanged.
type UpdateInput struct {
	Name        *string
	Email       *string
	Password    *string
	Role        *sec.UserRole
	Permissions *[]string
	Branches    *[]string
	Phone       *string
	Document    *string
	BirthDate   *time.Time
	Files       *[]string
}

// # Search & Filtering

// Filter narrows collaborator listings. Empty fields are ignored.
type Filter struct {
	// Search matches name or e-mail, case-insensitive.
	Search string

	// BranchID keeps users assigned to the branch.
	BranchID string

	// Cursor is the id of the last user already returned (keyset pagination).
	Cursor string
}

// # Field Identifiers

const (
	FieldName        = "name"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldRole        = "role"
	FieldPermissions = "permissions"
	FieldBranches    = "branches"
	FieldDocument    = "document"
	FieldID          = "id"
)

// # Client Messages

const (
	msgUserNotFound      = "Usuário não encontrado"
	msgUserDeleted       = "Usuário já foi excluído"
	msgEmailTaken        = "E-mail já está em uso por outro usuário"
	msgNotPending        = "Usuário já realizou o primeiro acesso"
	msgAdminOnly         = "Apenas administradores podem conceder o cargo de administrador"
	msgAdminTarget       = "Apenas administradores podem alterar outro administrador"
	msgForeignBranch     = "Você não pode atribuir filiais que não são suas"
	msgUnknownPermission = "Permissões desconhecidas: "
)

// Length bounds of the document after the mask is stripped (CPF/RG).
const (
	minDocumentLength = 9
	maxDocumentLength = 14
)

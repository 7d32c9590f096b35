// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

/*
Package branch manages the company branches (filiais).

Every other back-office record is owned by a branch, and collaborators are
assigned to one or more of them.
*/
package branch

import "time"

// Branch is an operating unit identified by a short code (e.g. "RJ").
type Branch struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Input holds the writable fields of a branch. An empty Code is derived
// from the name.
type Input struct {
	Code string
	Name string
}

// Filter narrows branch listings.
type Filter struct {
	Search string

	// IDs restricts the listing to the given branches. Nil means all.
	IDs []string
}

const (
	FieldID   = "id"
	FieldCode = "code"
	FieldName = "name"
)

const (
	msgNotFound  = "Filial não encontrada"
	msgCodeTaken = "Já existe uma filial com este código"
)

// Code bounds. Derived codes use defaultCodeSize characters.
const (
	defaultCodeSize = 3
	minCodeLength   = 2
	maxCodeLength   = 10
)

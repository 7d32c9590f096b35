// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

/*
Package client manages the companies Motolink delivers for.

# Architecture

  - Entities: [Client], its [CommercialCondition] and the [Option] projection
  - Persistence: [Repository] over core.client (commercial terms in JSONB)
  - Logic: [Service], which keeps the CNPJ unique among active clients
*/
package client

import "time"

// # Core Entities

// Client is a customer company attached to a branch.
type Client struct {
	ID                  string               `json:"id"`
	Name                string               `json:"name"`
	CNPJ                string               `json:"cnpj"`
	CEP                 string               `json:"cep"`
	Street              string               `json:"street"`
	Number              string               `json:"number"`
	Complement          string               `json:"complement"`
	City                string               `json:"city"`
	Neighborhood        string               `json:"neighborhood"`
	UF                  string               `json:"uf"`
	Observations        string               `json:"observations"`
	RegionID            *string              `json:"regionId"`
	GroupID             *string              `json:"groupId"`
	ContactName         string               `json:"contactName"`
	ContactPhone        string               `json:"contactPhone"`
	ProvideMeal         bool                 `json:"provideMeal"`
	CommercialCondition *CommercialCondition `json:"commercialCondition"`
	BranchID            string               `json:"branchId"`
	IsDeleted           bool                 `json:"isDeleted"`
	CreatedAt           time.Time            `json:"createdAt"`
	UpdatedAt           time.Time            `json:"updatedAt"`
}

// Option is the light projection used by selects.
type Option struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	CNPJ string `json:"cnpj"`
}

// Input holds the writable fields of a client.
type Input struct {
	Name                string
	CNPJ                string
	CEP                 string
	Street              string
	Number              string
	Complement          string
	City                string
	Neighborhood        string
	UF                  string
	Observations        string
	RegionID            *string
	GroupID             *string
	ContactName         string
	ContactPhone        string
	ProvideMeal         bool
	CommercialCondition *CommercialCondition
	BranchID            string
}

// # Search & Filtering

// Filter narrows client listings and options. Deleted clients never match.
type Filter struct {
	// Search matches the name, or the CNPJ by digits.
	Search string

	BranchID string
	RegionID string
	GroupID  string
}

// # Field Identifiers

const (
	FieldID           = "id"
	FieldName         = "name"
	FieldCNPJ         = "cnpj"
	FieldCEP          = "cep"
	FieldStreet       = "street"
	FieldNumber       = "number"
	FieldCity         = "city"
	FieldNeighborhood = "neighborhood"
	FieldUF           = "uf"
	FieldContactName  = "contactName"
	FieldRegionID     = "regionId"
	FieldGroupID      = "groupId"
)

const (
	msgNotFound      = "Cliente não encontrado"
	msgDeleted       = "Cliente já foi excluído"
	msgCNPJTaken     = "Já existe um cliente com este CNPJ"
	msgRegionInvalid = "Região não pertence à filial do cliente"
	msgGroupInvalid  = "Grupo não pertence à filial do cliente"
)

// states lists the accepted UF codes.
var states = []string{
	"AC", "AL", "AP", "AM", "BA", "CE", "DF", "ES", "GO", "MA", "MT", "MS", "MG", "PA",
	"PB", "PR", "PE", "PI", "RJ", "RN", "RS", "RO", "RR", "SC", "SP", "SE", "TO",
}

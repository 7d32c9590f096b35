// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

/*
Package deliveryman manages the couriers registered in each branch.

Couriers carry contract, payment (PIX and bank) and vehicle data. They are
soft deleted and can be blocked from new assignments without losing history.
*/
package deliveryman

import "time"

// # Core Entities

// Deliveryman is a courier working for a branch.
type Deliveryman struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Document     string    `json:"document"`
	Phone        string    `json:"phone"`
	ContractType string    `json:"contractType"`
	MainPixKey   string    `json:"mainPixKey"`
	SecondPixKey string    `json:"secondPixKey"`
	ThirdPixKey  string    `json:"thirdPixKey"`
	Agency       string    `json:"agency"`
	Account      string    `json:"account"`
	VehicleModel string    `json:"vehicleModel"`
	VehiclePlate string    `json:"vehiclePlate"`
	VehicleColor string    `json:"vehicleColor"`
	Files        []string  `json:"files"`
	RegionID     *string   `json:"regionId"`
	BranchID     string    `json:"branchId"`
	IsBlocked    bool      `json:"isBlocked"`
	IsDeleted    bool      `json:"isDeleted"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Input holds the writable fields of a courier. It is used for both
// creation and full updates.
type Input struct {
	Name         string
	Document     string
	Phone        string
	ContractType string
	MainPixKey   string
	SecondPixKey string
	ThirdPixKey  string
	Agency       string
	Account      string
	VehicleModel string
	VehiclePlate string
	VehicleColor string
	Files        []string
	RegionID     *string
	BranchID     string
}

// # Search & Filtering

// Filter narrows courier listings. Deleted couriers are never listed.
type Filter struct {
	// Search matches name, or document and phone by digits.
	Search string

	BranchID  string
	RegionID  string
	IsBlocked *bool
}

// # Field Identifiers

const (
	FieldID           = "id"
	FieldName         = "name"
	FieldDocument     = "document"
	FieldPhone        = "phone"
	FieldContractType = "contractType"
	FieldMainPixKey   = "mainPixKey"
	FieldVehiclePlate = "vehiclePlate"
	FieldRegionID     = "regionId"
)

const (
	msgNotFound      = "Entregador não encontrado"
	msgDeleted       = "Entregador já foi excluído"
	msgRegionInvalid = "Região não pertence à filial do entregador"
)

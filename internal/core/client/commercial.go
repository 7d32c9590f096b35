// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package client

import "github.com/johnvilela/motolink/internal/platform/validate"

// CommercialCondition holds the negotiated terms of a client: bags, payment,
// guaranteed couriers per period and the client/courier price tables.
//
// Every field is optional. Amounts are in BRL.
type CommercialCondition struct {
	BagsStatus        *string  `json:"bagsStatus,omitempty"`
	BagsAllocated     *int     `json:"bagsAllocated,omitempty"`
	PaymentForm       []string `json:"paymentForm,omitempty"`
	DailyPeriods      []string `json:"dailyPeriods,omitempty"`
	GuaranteedPeriods []string `json:"guaranteedPeriods,omitempty"`
	DeliveryAreaKm    *float64 `json:"deliveryAreaKm,omitempty"`
	IsMotolinkCovered *bool    `json:"isMotolinkCovered,omitempty"`

	// Guaranteed couriers per period.
	GuaranteedDay          *int `json:"guaranteedDay,omitempty"`
	GuaranteedDayWeekend   *int `json:"guaranteedDayWeekend,omitempty"`
	GuaranteedNight        *int `json:"guaranteedNight,omitempty"`
	GuaranteedNightWeekend *int `json:"guaranteedNightWeekend,omitempty"`

	// Charged to the client.
	ClientDailyDay       *float64 `json:"clientDailyDay,omitempty"`
	ClientDailyDayWknd   *float64 `json:"clientDailyDayWknd,omitempty"`
	ClientDailyNight     *float64 `json:"clientDailyNight,omitempty"`
	ClientDailyNightWknd *float64 `json:"clientDailyNightWknd,omitempty"`
	ClientPerDelivery    *float64 `json:"clientPerDelivery,omitempty"`
	ClientAdditionalKm   *float64 `json:"clientAdditionalKm,omitempty"`

	// Paid to the courier.
	DeliverymanDailyDay       *float64 `json:"deliverymanDailyDay,omitempty"`
	DeliverymanDailyDayWknd   *float64 `json:"deliverymanDailyDayWknd,omitempty"`
	DeliverymanDailyNight     *float64 `json:"deliverymanDailyNight,omitempty"`
	DeliverymanDailyNightWknd *float64 `json:"deliverymanDailyNightWknd,omitempty"`
	DeliverymanPerDelivery    *float64 `json:"deliverymanPerDelivery,omitempty"`
	DeliverymanAdditionalKm   *float64 `json:"deliverymanAdditionalKm,omitempty"`
}

// validate rejects negative counts and amounts.
func (condition *CommercialCondition) validate(validator *validate.Validator) {
	if condition == nil {
		return
	}

	const prefix = "commercialCondition."
	nonNegative := func(field string, negative bool) {
		validator.Custom(prefix+field, negative, "Não pode ser negativo")
	}

	for field, value := range map[string]*int{
		"bagsAllocated":          condition.BagsAllocated,
		"guaranteedDay":          condition.GuaranteedDay,
		"guaranteedDayWeekend":   condition.GuaranteedDayWeekend,
		"guaranteedNight":        condition.GuaranteedNight,
		"guaranteedNightWeekend": condition.GuaranteedNightWeekend,
	} {
		nonNegative(field, value != nil && *value < 0)
	}

	for field, value := range map[string]*float64{
		"deliveryAreaKm":            condition.DeliveryAreaKm,
		"clientDailyDay":            condition.ClientDailyDay,
		"clientDailyDayWknd":        condition.ClientDailyDayWknd,
		"clientDailyNight":          condition.ClientDailyNight,
		"clientDailyNightWknd":      condition.ClientDailyNightWknd,
		"clientPerDelivery":         condition.ClientPerDelivery,
		"clientAdditionalKm":        condition.ClientAdditionalKm,
		"deliverymanDailyDay":       condition.DeliverymanDailyDay,
		"deliverymanDailyDayWknd":   condition.DeliverymanDailyDayWknd,
		"deliverymanDailyNight":     condition.DeliverymanDailyNight,
		"deliverymanDailyNightWknd": condition.DeliverymanDailyNightWknd,
		"deliverymanPerDelivery":    condition.DeliverymanPerDelivery,
		"deliverymanAdditionalKm":   condition.DeliverymanAdditionalKm,
	} {
		nonNegative(field, value != nil && *value < 0)
	}
}

// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package deliveryman

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/johnvilela/motolink/internal/platform/apperr"
	"github.com/johnvilela/motolink/internal/platform/dberr"
	"github.com/johnvilela/motolink/internal/platform/scope"
	"github.com/johnvilela/motolink/internal/platform/sec"
	"github.com/johnvilela/motolink/internal/platform/validate"
	"github.com/johnvilela/motolink/internal/system/audit"
	"github.com/johnvilela/motolink/pkg/mask"
	"github.com/johnvilela/motolink/pkg/uuid"
)

// # Service Layer

// Service orchestrates courier management.
type Service struct {
	repository Repository
	regions    RegionFinder
	recorder   audit.Recorder
	logger     *slog.Logger
}

// NewService constructs a new deliveryman [Service].
func NewService(repository Repository, regions RegionFinder, recorder audit.Recorder, logger *slog.Logger) *Service {
	return &Service{repository: repository, regions: regions, recorder: recorder, logger: logger}
}

// # Queries

// ListDeliverymen returns a page of non-deleted couriers.
func (service *Service) ListDeliverymen(context context.Context, filter Filter, limit, offset int) ([]*Deliveryman, int, error) {
	filter.Search = strings.TrimSpace(filter.Search)

	deliverymen, total, err := service.repository.List(context, filter, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("deliveryman_service_list_failed: %w", err)
	}
	return deliverymen, total, nil
}

// GetDeliveryman retrieves a non-deleted courier inside the branch scope.
func (service *Service) GetDeliveryman(context context.Context, id, branchID string) (*Deliveryman, error) {
	deliveryman, err := service.find(context, id, branchID)
	if err != nil {
		return nil, err
	}
	if deliveryman.IsDeleted {
		return nil, apperr.NotFound(msgNotFound)
	}
	return deliveryman, nil
}

// # Mutations

/*
CreateDeliveryman registers a courier.

Description: Document and phone masks are stripped, the plate is upper
cased and a region, when given, must belong to the same branch.

Parameters:
  - context: context.Context
  - actor: *sec.Principal
  - selected: string (branch scope used when input names none)
  - input: Input

Returns:
  - *Deliveryman: The persisted courier
  - error: Validation, branch or storage failures
*/
func (service *Service) CreateDeliveryman(context context.Context, actor *sec.Principal, selected string, input Input) (*Deliveryman, error) {
	input = normalize(input)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	branchID, err := scope.Assign(actor, input.BranchID, selected)
	if err != nil {
		return nil, err
	}
	if err := service.checkRegion(context, input.RegionID, branchID); err != nil {
		return nil, err
	}

	deliveryman := &Deliveryman{ID: uuid.New(), BranchID: branchID}
	apply(deliveryman, input)

	if err := service.repository.Create(context, deliveryman); err != nil {
		return nil, fmt.Errorf("deliveryman_service_create_failed: %w", err)
	}

	service.logger.InfoContext(context, "deliveryman_created",
		slog.String("deliveryman_id", deliveryman.ID),
		slog.String("branch_id", branchID),
	)

	service.recorder.Record(context, audit.Entry{
		Actor:      actor,
		Action:     audit.ActionCreated,
		EntityType: audit.EntityDeliveryman,
		EntityID:   deliveryman.ID,
		New:        deliveryman,
	})

	return deliveryman, nil
}

/*
UpdateDeliveryman replaces the writable fields of a courier.

Returns:
  - *Deliveryman: The updated courier
  - error: 404 unknown, 400 deleted, validation failures
*/
func (service *Service) UpdateDeliveryman(context context.Context, actor *sec.Principal, id, selected string, input Input) (*Deliveryman, error) {
	existing, err := service.findActive(context, id, selected)
	if err != nil {
		return nil, err
	}

	input = normalize(input)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	branchID, err := scope.Assign(actor, input.BranchID, existing.BranchID)
	if err != nil {
		return nil, err
	}
	if err := service.checkRegion(context, input.RegionID, branchID); err != nil {
		return nil, err
	}

	updated := *existing
	updated.BranchID = branchID
	apply(&updated, input)

	if err := service.repository.Update(context, &updated); err != nil {
		return nil, fmt.Errorf("deliveryman_service_update_failed: %w", err)
	}

	service.logger.InfoContext(context, "deliveryman_updated", slog.String("deliveryman_id", id))
	service.record(context, actor, audit.ActionUpdated, &updated, existing)

	return &updated, nil
}

// DeleteDeliveryman soft deletes a courier.
func (service *Service) DeleteDeliveryman(context context.Context, actor *sec.Principal, id, selected string) error {
	existing, err := service.findActive(context, id, selected)
	if err != nil {
		return err
	}

	if err := service.repository.SoftDelete(context, id); err != nil {
		if dberr.IsNotFound(err) {
			return apperr.BadRequest(msgDeleted)
		}
		return fmt.Errorf("deliveryman_service_delete_failed: %w", err)
	}

	deleted := *existing
	deleted.IsDeleted = true

	service.logger.InfoContext(context, "deliveryman_deleted", slog.String("deliveryman_id", id))
	service.record(context, actor, audit.ActionDeleted, &deleted, existing)

	return nil
}

// ToggleBlock flips the blocked flag of a courier and returns the result.
func (service *Service) ToggleBlock(context context.Context, actor *sec.Principal, id, selected string) (*Deliveryman, error) {
	existing, err := service.findActive(context, id, selected)
	if err != nil {
		return nil, err
	}

	updated := *existing
	updated.IsBlocked = !existing.IsBlocked

	if err := service.repository.SetBlocked(context, &updated); err != nil {
		return nil, fmt.Errorf("deliveryman_service_toggle_block_failed: %w", err)
	}

	service.logger.InfoContext(context, "deliveryman_block_toggled",
		slog.String("deliveryman_id", id),
		slog.Bool("is_blocked", updated.IsBlocked),
	)
	service.record(context, actor, audit.ActionUpdated, &updated, existing)

	return &updated, nil
}

// # Helpers

func (service *Service) find(context context.Context, id, branchID string) (*Deliveryman, error) {
	deliveryman, err := service.repository.FindByID(context, id, branchID)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.NotFound(msgNotFound)
		}
		return nil, fmt.Errorf("deliveryman_service_lookup_failed: %w", err)
	}
	return deliveryman, nil
}

// findActive is find plus the 400 for soft-deleted couriers.
func (service *Service) findActive(context context.Context, id, branchID string) (*Deliveryman, error) {
	deliveryman, err := service.find(context, id, branchID)
	if err != nil {
		return nil, err
	}
	if deliveryman.IsDeleted {
		return nil, apperr.BadRequest(msgDeleted)
	}
	return deliveryman, nil
}

func (service *Service) checkRegion(context context.Context, regionID *string, branchID string) error {
	if regionID == nil {
		return nil
	}
	if _, err := service.regions.GetRegion(context, *regionID, branchID); err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return validate.RequiredError(FieldRegionID, msgRegionInvalid)
		}
		return err
	}
	return nil
}

func (service *Service) record(context context.Context, actor *sec.Principal, action audit.Action, updated, existing *Deliveryman) {
	service.recorder.Record(context, audit.Entry{
		Actor:      actor,
		Action:     action,
		EntityType: audit.EntityDeliveryman,
		EntityID:   existing.ID,
		New:        updated,
		Old:        existing,
	})
}

func normalize(input Input) Input {
	input.Name = strings.TrimSpace(input.Name)
	input.Document = mask.Clean(input.Document)
	input.Phone = mask.Clean(input.Phone)
	input.ContractType = strings.TrimSpace(input.ContractType)
	input.MainPixKey = strings.TrimSpace(input.MainPixKey)
	input.SecondPixKey = strings.TrimSpace(input.SecondPixKey)
	input.ThirdPixKey = strings.TrimSpace(input.ThirdPixKey)
	input.VehiclePlate = strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(input.VehiclePlate), "-", ""))
	if input.RegionID != nil && strings.TrimSpace(*input.RegionID) == "" {
		input.RegionID = nil
	}
	if input.Files == nil {
		input.Files = []string{}
	}
	return input
}

func validateInput(input Input) error {
	validator := new(validate.Validator)
	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, 150)
	validator.Required(FieldDocument, input.Document).MaxLen(FieldDocument, input.Document, 14)
	validator.Required(FieldPhone, input.Phone).LenBetween(FieldPhone, input.Phone, 10, 13)
	validator.Required(FieldContractType, input.ContractType).MaxLen(FieldContractType, input.ContractType, 50)
	validator.Required(FieldMainPixKey, input.MainPixKey).MaxLen(FieldMainPixKey, input.MainPixKey, 140)
	validator.MaxLen(FieldVehiclePlate, input.VehiclePlate, 8)
	if input.RegionID != nil {
		validator.UUID(FieldRegionID, *input.RegionID)
	}
	if input.BranchID != "" {
		validator.UUID(scope.FieldBranchID, input.BranchID)
	}
	return validator.Err()
}

// apply copies the writable fields of input onto deliveryman.
func apply(deliveryman *Deliveryman, input Input) {
	deliveryman.Name = input.Name
	deliveryman.Document = input.Document
	deliveryman.Phone = input.Phone
	deliveryman.ContractType = input.ContractType
	deliveryman.MainPixKey = input.MainPixKey
	deliveryman.SecondPixKey = input.SecondPixKey
	deliveryman.ThirdPixKey = input.ThirdPixKey
	deliveryman.Agency = strings.TrimSpace(input.Agency)
	deliveryman.Account = strings.TrimSpace(input.Account)
	deliveryman.VehicleModel = strings.TrimSpace(input.VehicleModel)
	deliveryman.VehiclePlate = input.VehiclePlate
	deliveryman.VehicleColor = strings.TrimSpace(input.VehicleColor)
	deliveryman.Files = input.Files
	deliveryman.RegionID = input.RegionID
}

// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package client

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

// Service orchestrates client management.
type Service struct {
	repository Repository
	regions    RegionFinder
	groups     GroupFinder
	recorder   audit.Recorder
	logger     *slog.Logger
}

// NewService constructs a new client [Service].
func NewService(repository Repository, regions RegionFinder, groups GroupFinder, recorder audit.Recorder, logger *slog.Logger) *Service {
	return &Service{repository: repository, regions: regions, groups: groups, recorder: recorder, logger: logger}
}

// # Queries

// ListClients returns a page of active clients.
func (service *Service) ListClients(context context.Context, filter Filter, limit, offset int) ([]*Client, int, error) {
	filter.Search = strings.TrimSpace(filter.Search)

	clients, total, err := service.repository.List(context, filter, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("client_service_list_failed: %w", err)
	}
	return clients, total, nil
}

// ListOptions returns the select projection of active clients.
func (service *Service) ListOptions(context context.Context, filter Filter) ([]*Option, error) {
	filter.Search = strings.TrimSpace(filter.Search)

	options, err := service.repository.Options(context, filter)
	if err != nil {
		return nil, fmt.Errorf("client_service_options_failed: %w", err)
	}
	return options, nil
}

// GetClient retrieves an active client inside the branch scope.
func (service *Service) GetClient(context context.Context, id, branchID string) (*Client, error) {
	client, err := service.find(context, id, branchID)
	if err != nil {
		return nil, err
	}
	if client.IsDeleted {
		return nil, apperr.NotFound(msgNotFound)
	}
	return client, nil
}

// # Mutations

/*
CreateClient registers a client.

Description: CNPJ, CEP and contact phone masks are stripped and the UF is
upper cased. The CNPJ must be valid and unused by any active client;
region and group, when given, must belong to the same branch.

Parameters:
  - context: context.Context
  - actor: *sec.Principal
  - selected: string (branch scope used when input names none)
  - input: Input

Returns:
  - *Client: The persisted client
  - error: Validation, branch, duplicate CNPJ or storage failures
*/
func (service *Service) CreateClient(context context.Context, actor *sec.Principal, selected string, input Input) (*Client, error) {
	input = normalize(input)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	branchID, err := scope.Assign(actor, input.BranchID, selected)
	if err != nil {
		return nil, err
	}
	if err := service.checkCNPJ(context, input.CNPJ, ""); err != nil {
		return nil, err
	}
	if err := service.checkLinks(context, input, branchID); err != nil {
		return nil, err
	}

	client := &Client{ID: uuid.New(), BranchID: branchID}
	apply(client, input)

	if err := service.repository.Create(context, client); err != nil {
		return nil, fmt.Errorf("client_service_create_failed: %w", err)
	}

	service.logger.InfoContext(context, "client_created",
		slog.String("client_id", client.ID),
		slog.String("branch_id", branchID),
	)

	service.recorder.Record(context, audit.Entry{
		Actor:      actor,
		Action:     audit.ActionCreated,
		EntityType: audit.EntityClient,
		EntityID:   client.ID,
		New:        client,
	})

	return client, nil
}

/*
UpdateClient replaces the writable fields of a client.

Returns:
  - *Client: The updated client
  - error: 404 unknown, 400 deleted or CNPJ in use, validation failures
*/
func (service *Service) UpdateClient(context context.Context, actor *sec.Principal, id, selected string, input Input) (*Client, error) {
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
	if input.CNPJ != existing.CNPJ {
		if err := service.checkCNPJ(context, input.CNPJ, id); err != nil {
			return nil, err
		}
	}
	if err := service.checkLinks(context, input, branchID); err != nil {
		return nil, err
	}

	updated := *existing
	updated.BranchID = branchID
	apply(&updated, input)

	if err := service.repository.Update(context, &updated); err != nil {
		return nil, fmt.Errorf("client_service_update_failed: %w", err)
	}

	service.logger.InfoContext(context, "client_updated", slog.String("client_id", id))
	service.record(context, actor, audit.ActionUpdated, &updated, existing)

	return &updated, nil
}

// DeleteClient soft deletes a client, freeing its CNPJ.
func (service *Service) DeleteClient(context context.Context, actor *sec.Principal, id, selected string) error {
	existing, err := service.findActive(context, id, selected)
	if err != nil {
		return err
	}

	if err := service.repository.SoftDelete(context, id); err != nil {
		if dberr.IsNotFound(err) {
			return apperr.BadRequest(msgDeleted)
		}
		return fmt.Errorf("client_service_delete_failed: %w", err)
	}

	deleted := *existing
	deleted.IsDeleted = true

	service.logger.InfoContext(context, "client_deleted", slog.String("client_id", id))
	service.record(context, actor, audit.ActionDeleted, &deleted, existing)

	return nil
}

// # Helpers

func (service *Service) find(context context.Context, id, branchID string) (*Client, error) {
	client, err := service.repository.FindByID(context, id, branchID)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.NotFound(msgNotFound)
		}
		return nil, fmt.Errorf("client_service_lookup_failed: %w", err)
	}
	return client, nil
}

func (service *Service) findActive(context context.Context, id, branchID string) (*Client, error) {
	client, err := service.find(context, id, branchID)
	if err != nil {
		return nil, err
	}
	if client.IsDeleted {
		return nil, apperr.BadRequest(msgDeleted)
	}
	return client, nil
}

// checkCNPJ fails when an active client other than selfID owns cnpj.
func (service *Service) checkCNPJ(context context.Context, cnpj, selfID string) error {
	owner, err := service.repository.FindByCNPJ(context, cnpj)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("client_service_cnpj_lookup_failed: %w", err)
	}
	if owner.ID == selfID {
		return nil
	}
	return apperr.BadRequest(msgCNPJTaken)
}

// checkLinks verifies region and group belong to branchID.
func (service *Service) checkLinks(context context.Context, input Input, branchID string) error {
	if input.RegionID != nil {
		if _, err := service.regions.GetRegion(context, *input.RegionID, branchID); err != nil {
			if apperr.HasCode(err, apperr.CodeNotFound) {
				return validate.RequiredError(FieldRegionID, msgRegionInvalid)
			}
			return err
		}
	}
	if input.GroupID != nil {
		if _, err := service.groups.GetGroup(context, *input.GroupID, branchID); err != nil {
			if apperr.HasCode(err, apperr.CodeNotFound) {
				return validate.RequiredError(FieldGroupID, msgGroupInvalid)
			}
			return err
		}
	}
	return nil
}

func (service *Service) record(context context.Context, actor *sec.Principal, action audit.Action, updated, existing *Client) {
	service.recorder.Record(context, audit.Entry{
		Actor:      actor,
		Action:     action,
		EntityType: audit.EntityClient,
		EntityID:   existing.ID,
		New:        updated,
		Old:        existing,
	})
}

func normalize(input Input) Input {
	input.Name = strings.TrimSpace(input.Name)
	input.CNPJ = mask.Clean(input.CNPJ)
	input.CEP = mask.Clean(input.CEP)
	input.ContactPhone = mask.Clean(input.ContactPhone)
	input.UF = strings.ToUpper(strings.TrimSpace(input.UF))
	input.Street = strings.TrimSpace(input.Street)
	input.Number = strings.TrimSpace(input.Number)
	input.City = strings.TrimSpace(input.City)
	input.Neighborhood = strings.TrimSpace(input.Neighborhood)
	input.ContactName = strings.TrimSpace(input.ContactName)
	if input.RegionID != nil && strings.TrimSpace(*input.RegionID) == "" {
		input.RegionID = nil
	}
	if input.GroupID != nil && strings.TrimSpace(*input.GroupID) == "" {
		input.GroupID = nil
	}
	return input
}

func validateInput(input Input) error {
	validator := new(validate.Validator)
	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, 150)
	validator.Required(FieldCNPJ, input.CNPJ)
	if input.CNPJ != "" {
		validator.CNPJ(FieldCNPJ, input.CNPJ)
	}
	validator.Required(FieldCEP, input.CEP)
	validator.Custom(FieldCEP, input.CEP != "" && len(input.CEP) != 8, "CEP deve ter 8 dígitos")
	validator.Required(FieldStreet, input.Street).MaxLen(FieldStreet, input.Street, 200)
	validator.Required(FieldNumber, input.Number).MaxLen(FieldNumber, input.Number, 20)
	validator.Required(FieldCity, input.City).MaxLen(FieldCity, input.City, 100)
	validator.Required(FieldNeighborhood, input.Neighborhood).MaxLen(FieldNeighborhood, input.Neighborhood, 100)
	validator.Required(FieldUF, input.UF)
	if input.UF != "" {
		validator.OneOf(FieldUF, input.UF, states...)
	}
	validator.MaxLen(FieldContactName, input.ContactName, 150)
	if input.RegionID != nil {
		validator.UUID(FieldRegionID, *input.RegionID)
	}
	if input.GroupID != nil {
		validator.UUID(FieldGroupID, *input.GroupID)
	}
	if input.BranchID != "" {
		validator.UUID(scope.FieldBranchID, input.BranchID)
	}
	input.CommercialCondition.validate(validator)
	return validator.Err()
}

// apply copies the writable fields of input onto client.
func apply(client *Client, input Input) {
	client.Name = input.Name
	client.CNPJ = input.CNPJ
	client.CEP = input.CEP
	client.Street = input.Street
	client.Number = input.Number
	client.Complement = strings.TrimSpace(input.Complement)
	client.City = input.City
	client.Neighborhood = input.Neighborhood
	client.UF = input.UF
	client.Observations = strings.TrimSpace(input.Observations)
	client.RegionID = input.RegionID
	client.GroupID = input.GroupID
	client.ContactName = input.ContactName
	client.ContactPhone = input.ContactPhone
	client.ProvideMeal = input.ProvideMeal
	client.CommercialCondition = input.CommercialCondition
}

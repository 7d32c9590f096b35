// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package region

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/johnvilela/motolink/internal/platform/apperr"
	"github.com/johnvilela/motolink/internal/platform/dberr"
	"github.com/johnvilela/motolink/internal/platform/scope"
	"github.com/johnvilela/motolink/internal/platform/sec"
	"github.com/johnvilela/motolink/internal/platform/validate"
	"github.com/johnvilela/motolink/internal/system/audit"
	"github.com/johnvilela/motolink/pkg/uuid"
)

// Service orchestrates region management.
type Service struct {
	repository Repository
	recorder   audit.Recorder
	logger     *slog.Logger
}

// NewService constructs a new region [Service].
func NewService(repository Repository, recorder audit.Recorder, logger *slog.Logger) *Service {
	return &Service{repository: repository, recorder: recorder, logger: logger}
}

// ListRegions returns a page of regions of the selected branch.
func (service *Service) ListRegions(context context.Context, filter Filter, limit, offset int) ([]*Region, int, error) {
	filter.Search = strings.TrimSpace(filter.Search)

	regions, total, err := service.repository.List(context, filter, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("region_service_list_failed: %w", err)
	}
	return regions, total, nil
}

// GetRegion retrieves a region visible under branchID.
func (service *Service) GetRegion(context context.Context, id, branchID string) (*Region, error) {
	region, err := service.repository.FindByID(context, id, branchID)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.NotFound(msgNotFound)
		}
		return nil, fmt.Errorf("region_service_get_failed: %w", err)
	}
	return region, nil
}

/*
CreateRegion registers a region.

Parameters:
  - context: context.Context
  - actor: *sec.Principal
  - selected: string (branch scope of the request, used when input has none)
  - input: Input

Returns:
  - *Region: The persisted region
  - error: Validation, branch or storage failures
*/
func (service *Service) CreateRegion(context context.Context, actor *sec.Principal, selected string, input Input) (*Region, error) {
	input = normalize(input)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	branchID, err := scope.Assign(actor, input.BranchID, selected)
	if err != nil {
		return nil, err
	}

	region := &Region{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		BranchID:    branchID,
	}
	if err := service.repository.Create(context, region); err != nil {
		return nil, fmt.Errorf("region_service_create_failed: %w", err)
	}

	service.logger.InfoContext(context, "region_created",
		slog.String("region_id", region.ID),
		slog.String("branch_id", region.BranchID),
	)

	service.recorder.Record(context, audit.Entry{
		Actor:      actor,
		Action:     audit.ActionCreated,
		EntityType: audit.EntityRegion,
		EntityID:   region.ID,
		New:        region,
	})

	return region, nil
}

/*
UpdateRegion replaces the fields of a region. An empty BranchID keeps the
current branch.

Parameters:
  - context: context.Context
  - actor: *sec.Principal
  - id: string
  - selected: string (branch scope of the request)
  - input: Input

Returns:
  - *Region: The updated region
  - error: 404 when unknown or outside the scope, validation failures
*/
func (service *Service) UpdateRegion(context context.Context, actor *sec.Principal, id, selected string, input Input) (*Region, error) {
	input = normalize(input)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	existing, err := service.GetRegion(context, id, selected)
	if err != nil {
		return nil, err
	}

	branchID, err := scope.Assign(actor, input.BranchID, existing.BranchID)
	if err != nil {
		return nil, err
	}

	updated := *existing
	updated.Name = input.Name
	updated.Description = input.Description
	updated.BranchID = branchID

	if err := service.repository.Update(context, &updated); err != nil {
		return nil, fmt.Errorf("region_service_update_failed: %w", err)
	}

	service.logger.InfoContext(context, "region_updated", slog.String("region_id", id))

	service.recorder.Record(context, audit.Entry{
		Actor:      actor,
		Action:     audit.ActionUpdated,
		EntityType: audit.EntityRegion,
		EntityID:   id,
		New:        &updated,
		Old:        existing,
	})

	return &updated, nil
}

/*
DeleteRegion removes a region nothing references.

Returns:
  - error: 404 when unknown, 400 while deliverymen or clients reference it
*/
func (service *Service) DeleteRegion(context context.Context, actor *sec.Principal, id, selected string) error {
	existing, err := service.GetRegion(context, id, selected)
	if err != nil {
		return err
	}

	if err := service.repository.Delete(context, id); err != nil {
		switch {
		case errors.Is(err, ErrReferenced):
			return apperr.BadRequest(msgReferenced)
		case dberr.IsNotFound(err):
			return apperr.NotFound(msgNotFound)
		}
		return fmt.Errorf("region_service_delete_failed: %w", err)
	}

	service.logger.InfoContext(context, "region_deleted", slog.String("region_id", id))

	service.recorder.Record(context, audit.Entry{
		Actor:      actor,
		Action:     audit.ActionDeleted,
		EntityType: audit.EntityRegion,
		EntityID:   id,
		New:        existing,
		Old:        existing,
	})

	return nil
}

// # Helpers

func normalize(input Input) Input {
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)
	input.BranchID = strings.TrimSpace(input.BranchID)
	return input
}

func validateInput(input Input) error {
	validator := new(validate.Validator)
	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, 120)
	validator.MaxLen(FieldDescription, input.Description, 500)
	if input.BranchID != "" {
		validator.UUID(scope.FieldBranchID, input.BranchID)
	}
	return validator.Err()
}

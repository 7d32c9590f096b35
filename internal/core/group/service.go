// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package group

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

// # Service Layer

// Service orchestrates client group management.
type Service struct {
	repo     Repository
	recorder audit.Recorder
	logger   *slog.Logger
}

// NewService constructs a new group [Service].
func NewService(repo Repository, recorder audit.Recorder, logger *slog.Logger) *Service {
	return &Service{repo: repo, recorder: recorder, logger: logger}
}

// # Group Discovery

// ListGroups returns a paginated list of groups.
func (service *Service) ListGroups(context context.Context, filter Filter, limit, offset int) ([]*Group, int, error) {
	filter.Query = strings.TrimSpace(filter.Query)

	groups, total, err := service.repo.List(context, filter, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("group_service_list_failed: %w", err)
	}
	return groups, total, nil
}

/*
GetGroup retrieves a group by id inside the branch scope.

Parameters:
  - context: context.Context
  - id: string
  - branchID: string (empty for unscoped administrators)

Returns:
  - *Group: The group
  - error: 404 "Grupo não encontrado"
*/
func (service *Service) GetGroup(context context.Context, id, branchID string) (*Group, error) {
	group, err := service.repo.FindByID(context, id, branchID)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.NotFound(msgNotFound)
		}
		return nil, err
	}
	return group, nil
}

// # Group Management

/*
CreateGroup registers a new client group.

Parameters:
  - context: context.Context
  - actor: *sec.Principal
  - selected: string (branch scope used when input names none)
  - input: Input

Returns:
  - *Group: The persisted group
  - error: Validation, branch or persistence failures
*/
func (service *Service) CreateGroup(context context.Context, actor *sec.Principal, selected string, input Input) (*Group, error) {

	// 1. Validation
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	branchID, err := scope.Assign(actor, input.BranchID, selected)
	if err != nil {
		return nil, err
	}

	// 2. Persistence
	group := &Group{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		BranchID:    branchID,
	}
	if err := service.repo.Create(context, group); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "group_created", slog.String("id", group.ID), slog.String("name", group.Name))

	// 3. Trace
	service.recorder.Record(context, audit.Entry{
		Actor:      actor,
		Action:     audit.ActionCreated,
		EntityType: audit.EntityGroup,
		EntityID:   group.ID,
		New:        group,
	})

	return group, nil
}

// UpdateGroup replaces a group's fields. An empty BranchID keeps the branch.
func (service *Service) UpdateGroup(context context.Context, actor *sec.Principal, id, selected string, input Input) (*Group, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	existing, err := service.GetGroup(context, id, selected)
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

	if err := service.repo.Update(context, &updated); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "group_updated", slog.String("id", id))

	service.recorder.Record(context, audit.Entry{
		Actor:      actor,
		Action:     audit.ActionUpdated,
		EntityType: audit.EntityGroup,
		EntityID:   id,
		New:        &updated,
		Old:        existing,
	})

	return &updated, nil
}

// DeleteGroup removes a group that no client belongs to.
func (service *Service) DeleteGroup(context context.Context, actor *sec.Principal, id, selected string) error {
	existing, err := service.GetGroup(context, id, selected)
	if err != nil {
		return err
	}

	if err := service.repo.Delete(context, id); err != nil {
		if errors.Is(err, ErrReferenced) {
			return apperr.BadRequest(msgReferenced)
		}
		if dberr.IsNotFound(err) {
			return apperr.NotFound(msgNotFound)
		}
		return err
	}

	service.logger.InfoContext(context, "group_deleted", slog.String("id", id))

	service.recorder.Record(context, audit.Entry{
		Actor:      actor,
		Action:     audit.ActionDeleted,
		EntityType: audit.EntityGroup,
		EntityID:   id,
		New:        existing,
		Old:        existing,
	})

	return nil
}

func validateInput(input Input) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, 120)
	validator.MaxLen(FieldDescription, input.Description, 500)
	if input.BranchID != "" {
		validator.UUID(FieldBranchID, input.BranchID)
	}
	return validator.Err()
}

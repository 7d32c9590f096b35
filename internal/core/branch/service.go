// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package branch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/johnvilela/motolink/internal/platform/apperr"
	"github.com/johnvilela/motolink/internal/platform/dberr"
	"github.com/johnvilela/motolink/internal/platform/sec"
	"github.com/johnvilela/motolink/internal/platform/validate"
	"github.com/johnvilela/motolink/internal/system/audit"
	"github.com/johnvilela/motolink/pkg/slug"
	"github.com/johnvilela/motolink/pkg/uuid"
)

// Service orchestrates branch management.
type Service struct {
	repository Repository
	recorder   audit.Recorder
	logger     *slog.Logger
}

// NewService constructs a new branch [Service].
func NewService(repository Repository, recorder audit.Recorder, logger *slog.Logger) *Service {
	return &Service{repository: repository, recorder: recorder, logger: logger}
}

// # Queries

/*
ListBranches returns the branches actor may see.

Description: Administrators see every branch; everyone else only the
branches assigned to them.

Parameters:
  - context: context.Context
  - actor: *sec.Principal
  - search: string (name or code)
  - limit, offset: int

Returns:
  - []*Branch: Page of branches
  - int: Total matching count
  - error: Retrieval failures
*/
func (service *Service) ListBranches(context context.Context, actor *sec.Principal, search string, limit, offset int) ([]*Branch, int, error) {
	filter := Filter{Search: strings.TrimSpace(search)}
	if !actor.IsAdmin() {
		filter.IDs = []string{}
		if actor != nil {
			filter.IDs = append(filter.IDs, actor.Branches...)
		}
	}

	branches, total, err := service.repository.List(context, filter, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("branch_service_list_failed: %w", err)
	}
	return branches, total, nil
}

// GetBranch retrieves a branch visible to actor.
func (service *Service) GetBranch(context context.Context, actor *sec.Principal, id string) (*Branch, error) {
	if !sec.IsBranchAllowed(actor, id) {
		return nil, apperr.NotFound(msgNotFound)
	}
	return service.find(context, id)
}

// # Mutations

/*
CreateBranch registers a branch.

Parameters:
  - context: context.Context
  - actor: *sec.Principal
  - input: Input (Code derived from Name when empty)

Returns:
  - *Branch: The created branch
  - error: Validation failure or 409 on a duplicated code
*/
func (service *Service) CreateBranch(context context.Context, actor *sec.Principal, input Input) (*Branch, error) {
	input = normalize(input)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	if err := service.ensureCodeAvailable(context, input.Code, ""); err != nil {
		return nil, err
	}

	branch := &Branch{ID: uuid.New(), Code: input.Code, Name: input.Name}
	if err := service.repository.Create(context, branch); err != nil {
		return nil, fmt.Errorf("branch_service_create_failed: %w", err)
	}

	service.logger.InfoContext(context, "branch_created",
		slog.String("branch_id", branch.ID),
		slog.String("code", branch.Code),
	)

	service.recorder.Record(context, audit.Entry{
		Actor:      actor,
		Action:     audit.ActionCreated,
		EntityType: audit.EntityBranch,
		EntityID:   branch.ID,
		New:        branch,
	})

	return branch, nil
}

// UpdateBranch renames a branch or changes its code.
func (service *Service) UpdateBranch(context context.Context, actor *sec.Principal, id string, input Input) (*Branch, error) {
	existing, err := service.find(context, id)
	if err != nil {
		return nil, err
	}

	input = normalize(input)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	if input.Code != existing.Code {
		if err := service.ensureCodeAvailable(context, input.Code, id); err != nil {
			return nil, err
		}
	}

	updated := *existing
	updated.Code = input.Code
	updated.Name = input.Name
	if err := service.repository.Update(context, &updated); err != nil {
		return nil, fmt.Errorf("branch_service_update_failed: %w", err)
	}

	service.logger.InfoContext(context, "branch_updated", slog.String("branch_id", id))

	service.recorder.Record(context, audit.Entry{
		Actor:      actor,
		Action:     audit.ActionUpdated,
		EntityType: audit.EntityBranch,
		EntityID:   id,
		New:        &updated,
		Old:        existing,
	})

	return &updated, nil
}

// # Helpers

func (service *Service) find(context context.Context, id string) (*Branch, error) {
	branch, err := service.repository.FindByID(context, id)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.NotFound(msgNotFound)
		}
		return nil, fmt.Errorf("branch_service_lookup_failed: %w", err)
	}
	return branch, nil
}

func (service *Service) ensureCodeAvailable(context context.Context, code, selfID string) error {
	owner, err := service.repository.FindByCode(context, code)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("branch_service_code_lookup_failed: %w", err)
	}
	if owner.ID != selfID {
		return apperr.Conflict(msgCodeTaken)
	}
	return nil
}

// normalize trims the input and derives a missing code from the name.
func normalize(input Input) Input {
	input.Name = strings.TrimSpace(input.Name)
	input.Code = strings.ToUpper(strings.TrimSpace(input.Code))
	if input.Code == "" {
		input.Code = slug.Code(input.Name, defaultCodeSize)
	}
	return input
}

func validateInput(input Input) error {
	validator := new(validate.Validator)
	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, 120)
	validator.LenBetween(FieldCode, input.Code, minCodeLength, maxCodeLength)
	validator.Custom(FieldCode, strings.ContainsFunc(input.Code, func(r rune) bool {
		return !unicode.IsUpper(r) && !unicode.IsDigit(r)
	}), "Use apenas letras e números")
	return validator.Err()
}

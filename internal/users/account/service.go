// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package account

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/johnvilela/motolink/internal/platform/apperr"
	"github.com/johnvilela/motolink/internal/platform/dberr"
	"github.com/johnvilela/motolink/internal/platform/sec"
	"github.com/johnvilela/motolink/internal/platform/validate"
	"github.com/johnvilela/motolink/internal/system/audit"
	"github.com/johnvilela/motolink/internal/users/auth"
	"github.com/johnvilela/motolink/internal/users/invite"
	"github.com/johnvilela/motolink/pkg/mask"
	"github.com/johnvilela/motolink/pkg/pointer"
	"github.com/johnvilela/motolink/pkg/slice"
	"github.com/johnvilela/motolink/pkg/uuid"
)

// # Service Layer

// Dependencies groups the collaborators of [Service].
type Dependencies struct {
	Repository Repository
	Sessions   SessionRevoker
	Invites    InviteStore
	Publisher  invite.Publisher
	Hasher     auth.PasswordHasher
	Recorder   audit.Recorder
	Catalog    *sec.Catalog
	AppBaseURL string
	Logger     *slog.Logger
}

// Service orchestrates collaborator management.
type Service struct {
	repository Repository
	sessions   SessionRevoker
	invites    InviteStore
	publisher  invite.Publisher
	hasher     auth.PasswordHasher
	recorder   audit.Recorder
	catalog    *sec.Catalog
	appBaseURL string
	logger     *slog.Logger
}

// NewService constructs a new account [Service].
func NewService(deps Dependencies) *Service {
	return &Service{
		repository: deps.Repository,
		sessions:   deps.Sessions,
		invites:    deps.Invites,
		publisher:  deps.Publisher,
		hasher:     deps.Hasher,
		recorder:   deps.Recorder,
		catalog:    deps.Catalog,
		appBaseURL: deps.AppBaseURL,
		logger:     deps.Logger,
	}
}

// # Queries

/*
GetUser retrieves a collaborator by id.

Description: Non-administrators only see users of the selected branch.

Parameters:
  - context: context.Context
  - actor: *sec.Principal
  - selected: string (branch resolved by the route guard)
  - id: string

Returns:
  - *auth.User: The user without password
  - error: 404 "Usuário não encontrado", also for users out of scope
*/
func (service *Service) GetUser(context context.Context, actor *sec.Principal, selected, id string) (*auth.User, error) {
	user, err := service.findScoped(context, actor, selected, id)
	if err != nil {
		return nil, err
	}
	user.Password = nil
	return user, nil
}

/*
ListUsers returns a page of non-deleted collaborators.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit, offset: int

Returns:
  - []*auth.User: Page of users without passwords
  - int: Total matching count
  - error: Retrieval failures
*/
func (service *Service) ListUsers(context context.Context, filter Filter, limit, offset int) ([]*auth.User, int, error) {
	filter.Search = strings.TrimSpace(filter.Search)

	users, total, err := service.repository.List(context, filter, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("account_service_list_failed: %w", err)
	}

	for _, user := range users {
		user.Password = nil
	}
	return users, total, nil
}

// # Mutations

/*
CreateUser registers a collaborator.

Description: With a password the account is ACTIVE at once. Without one it
starts PENDING: a 24h invitation token is stored and the activation link is
published to the mail worker. A failed publish is logged, not returned.

Parameters:
  - context: context.Context
  - actor: *sec.Principal (nil for provisioning callers)
  - input: CreateInput

Returns:
  - *auth.User: The created user without password
  - error: Validation, e-mail conflict or storage failures
*/
func (service *Service) CreateUser(context context.Context, actor *sec.Principal, input CreateInput) (*auth.User, error) {

	// ── 1. Normalization ──────────────────────────────────────────────────
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Phone = mask.Clean(input.Phone)
	input.Document = mask.Clean(input.Document)
	input.Branches = slice.Unique(input.Branches)

	if len(input.Permissions) == 0 {
		input.Permissions = service.catalog.DefaultsFor(input.Role)
	}
	input.Permissions = slice.Unique(input.Permissions)

	// ── 2. Validation ─────────────────────────────────────────────────────
	validator := new(validate.Validator)
	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, 150)
	validator.Email(FieldEmail, input.Email)
	validator.Custom(FieldRole, !input.Role.Valid(), "Cargo inválido")
	validator.NotEmpty(FieldBranches, len(input.Branches))
	if input.Password != nil {
		validator.StrongPassword(FieldPassword, *input.Password)
	}
	service.validateDocument(validator, input.Document)
	service.validatePermissions(validator, input.Permissions)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := authorizeGrant(actor, input.Role, input.Branches); err != nil {
		return nil, err
	}

	if err := service.ensureEmailAvailable(context, input.Email, ""); err != nil {
		return nil, err
	}

	// ── 3. Persistence ────────────────────────────────────────────────────
	user := &auth.User{
		ID:          uuid.New(),
		Name:        input.Name,
		Email:       input.Email,
		Role:        input.Role,
		Permissions: input.Permissions,
		Branches:    input.Branches,
		Status:      auth.StatusPending,
		Phone:       input.Phone,
		Document:    input.Document,
		BirthDate:   input.BirthDate,
		Files:       nonNil(input.Files),
	}

	if input.Password != nil {
		passwordHash, err := service.hasher.Hash(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("account_service_hash_failed: %w", err)
		}
		user.Password = &passwordHash
		user.Status = auth.StatusActive
	}

	if err := service.repository.Create(context, user); err != nil {
		return nil, fmt.Errorf("account_service_create_failed: %w", err)
	}
	user.Password = nil

	// ── 4. Invitation ─────────────────────────────────────────────────────
	if user.Status == auth.StatusPending {
		if err := service.sendInvite(context, user); err != nil {
			return nil, err
		}
	}

	service.logger.InfoContext(context, "user_created",
		slog.String("user_id", user.ID),
		slog.String("status", string(user.Status)),
	)

	service.recorder.Record(context, audit.Entry{
		Actor:      actor,
		Action:     audit.ActionCreated,
		EntityType: audit.EntityUser,
		EntityID:   user.ID,
		New:        user,
	})

	return user, nil
}

/*
UpdateUser applies a partial update.

Parameters:
  - context: context.Context
  - actor: *sec.Principal
  - selected: string
  - id: string
  - input: UpdateInput

Returns:
  - *auth.User: The updated user without password
  - error: 404 unknown or out of scope, 400 deleted or e-mail taken,
    403 for a non-administrator editing an administrator
*/
func (service *Service) UpdateUser(context context.Context, actor *sec.Principal, selected, id string, input UpdateInput) (*auth.User, error) {
	existing, err := service.findScoped(context, actor, selected, id)
	if err != nil {
		return nil, err
	}
	if existing.IsDeleted {
		return nil, apperr.BadRequest(msgUserDeleted)
	}
	if err := authorizeTarget(actor, existing); err != nil {
		return nil, err
	}

	updated := *existing
	pointer.Apply(&updated.Name, input.Name)
	pointer.Apply(&updated.Role, input.Role)
	pointer.Apply(&updated.Permissions, input.Permissions)
	pointer.Apply(&updated.Branches, input.Branches)
	pointer.Apply(&updated.Files, input.Files)
	if input.Email != nil {
		updated.Email = strings.ToLower(strings.TrimSpace(*input.Email))
	}
	if input.Phone != nil {
		updated.Phone = mask.Clean(*input.Phone)
	}
	if input.Document != nil {
		updated.Document = mask.Clean(*input.Document)
	}
	if input.BirthDate != nil {
		updated.BirthDate = input.BirthDate
	}
	updated.Name = strings.TrimSpace(updated.Name)
	updated.Branches = slice.Unique(updated.Branches)
	updated.Permissions = slice.Unique(updated.Permissions)
	updated.Files = nonNil(updated.Files)

	validator := new(validate.Validator)
	validator.Required(FieldName, updated.Name).MaxLen(FieldName, updated.Name, 150)
	validator.Email(FieldEmail, updated.Email)
	validator.Custom(FieldRole, !updated.Role.Valid(), "Cargo inválido")
	validator.NotEmpty(FieldBranches, len(updated.Branches))
	if input.Password != nil {
		validator.StrongPassword(FieldPassword, *input.Password)
	}
	service.validateDocument(validator, updated.Document)
	service.validatePermissions(validator, updated.Permissions)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if input.Role != nil || input.Branches != nil {
		if err := authorizeGrant(actor, updated.Role, updated.Branches); err != nil {
			return nil, err
		}
	}

	if !strings.EqualFold(updated.Email, existing.Email) {
		if err := service.ensureEmailAvailable(context, updated.Email, id); err != nil {
			return nil, err
		}
	}

	if input.Password != nil {
		passwordHash, err := service.hasher.Hash(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("account_service_hash_failed: %w", err)
		}
		updated.Password = &passwordHash
	}

	if err := service.repository.Update(context, &updated); err != nil {
		return nil, fmt.Errorf("account_service_update_failed: %w", err)
	}

	existing.Password = nil
	updated.Password = nil

	service.logger.InfoContext(context, "user_updated", slog.String("user_id", id))

	service.recorder.Record(context, audit.Entry{
		Actor:      actor,
		Action:     audit.ActionUpdated,
		EntityType: audit.EntityUser,
		EntityID:   id,
		New:        &updated,
		Old:        existing,
	})

	return &updated, nil
}

/*
DeleteUser soft deletes a collaborator and revokes all of their sessions.

Parameters:
  - context: context.Context
  - actor: *sec.Principal
  - selected: string
  - id: string

Returns:
  - error: 404 unknown or out of scope, 400 already deleted, 403 for a
    non-administrator deleting an administrator, storage failures
*/
func (service *Service) DeleteUser(context context.Context, actor *sec.Principal, selected, id string) error {
	existing, err := service.findScoped(context, actor, selected, id)
	if err != nil {
		return err
	}
	if existing.IsDeleted {
		return apperr.BadRequest(msgUserDeleted)
	}
	if err := authorizeTarget(actor, existing); err != nil {
		return err
	}

	if err := service.repository.SoftDelete(context, id); err != nil {
		return fmt.Errorf("account_service_delete_failed: %w", err)
	}

	revoked, err := service.sessions.DeleteByUser(context, id)
	if err != nil {
		return fmt.Errorf("account_service_revoke_sessions_failed: %w", err)
	}

	service.logger.InfoContext(context, "user_deleted",
		slog.String("user_id", id),
		slog.Int64("sessions_revoked", revoked),
	)

	existing.Password = nil
	deleted := *existing
	deleted.IsDeleted = true

	service.recorder.Record(context, audit.Entry{
		Actor:      actor,
		Action:     audit.ActionDeleted,
		EntityType: audit.EntityUser,
		EntityID:   id,
		New:        &deleted,
		Old:        existing,
	})

	return nil
}

/*
ResendInvite issues a fresh invitation for a PENDING collaborator.

Parameters:
  - context: context.Context
  - actor: *sec.Principal
  - selected: string
  - id: string

Returns:
  - error: 404 unknown or out of scope, 400 deleted or already activated
*/
func (service *Service) ResendInvite(context context.Context, actor *sec.Principal, selected, id string) error {
	user, err := service.findScoped(context, actor, selected, id)
	if err != nil {
		return err
	}
	if user.IsDeleted {
		return apperr.BadRequest(msgUserDeleted)
	}
	if user.Status != auth.StatusPending {
		return apperr.BadRequest(msgNotPending)
	}
	return service.sendInvite(context, user)
}

/*
GrantDefaultsSince adds to every user of role the default keys introduced
after catalog version. Used by the seed backfill.

Parameters:
  - context: context.Context
  - role: sec.UserRole
  - version: int

Returns:
  - int: Users updated
  - error: Storage failures
*/
func (service *Service) GrantDefaultsSince(context context.Context, role sec.UserRole, version int) (int, error) {
	added := service.catalog.DefaultsSince(role, version)
	if len(added) == 0 {
		return 0, nil
	}

	users, err := service.repository.ListByRole(context, role)
	if err != nil {
		return 0, fmt.Errorf("account_service_backfill_list_failed: %w", err)
	}

	updated := 0
	for _, user := range users {
		permissions := slice.Unique(append(slices.Clone(user.Permissions), added...))
		if len(permissions) == len(user.Permissions) {
			continue
		}

		if err := service.repository.SetPermissions(context, user.ID, permissions); err != nil {
			return updated, fmt.Errorf("account_service_backfill_update_failed: %w", err)
		}
		updated++
	}

	service.logger.InfoContext(context, "permissions_backfilled",
		slog.String("role", string(role)),
		slog.Int("since_version", version),
		slog.Int("users_updated", updated),
	)
	return updated, nil
}

// # Helpers

func (service *Service) find(context context.Context, id string) (*auth.User, error) {
	user, err := service.repository.FindByID(context, id)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.NotFound(msgUserNotFound)
		}
		return nil, fmt.Errorf("account_service_lookup_failed: %w", err)
	}
	return user, nil
}

// findScoped hides users outside the branch scope of actor behind a 404.
func (service *Service) findScoped(context context.Context, actor *sec.Principal, selected, id string) (*auth.User, error) {
	user, err := service.find(context, id)
	if err != nil {
		return nil, err
	}
	if !inScope(actor, selected, user) {
		return nil, apperr.NotFound(msgUserNotFound)
	}
	return user, nil
}

// inScope reports whether actor may reach user. Administrators reach every
// user; anyone else only users of the selected branch, which must be theirs.
func inScope(actor *sec.Principal, selected string, user *auth.User) bool {
	if actor.IsAdmin() {
		return true
	}
	if actor == nil || selected == "" || !actor.HasBranch(selected) {
		return false
	}
	return slices.Contains(user.Branches, selected)
}

func (service *Service) ensureEmailAvailable(context context.Context, email, selfID string) error {
	owner, err := service.repository.FindByEmail(context, email)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("account_service_email_lookup_failed: %w", err)
	}
	if owner.ID != selfID {
		return apperr.BadRequest(msgEmailTaken)
	}
	return nil
}

func (service *Service) validateDocument(validator *validate.Validator, document string) {
	if document != "" {
		validator.LenBetween(FieldDocument, document, minDocumentLength, maxDocumentLength)
	}
}

func (service *Service) validatePermissions(validator *validate.Validator, permissions []string) {
	unknown := service.catalog.Unknown(permissions)
	validator.Custom(FieldPermissions, len(unknown) > 0, msgUnknownPermission+strings.Join(unknown, ", "))
}

// sendInvite stores a fresh token and publishes the activation link.
func (service *Service) sendInvite(context context.Context, user *auth.User) error {
	token, err := sec.GenerateSecureToken(auth.InviteTokenLength)
	if err != nil {
		return fmt.Errorf("account_service_invite_token_failed: %w", err)
	}

	if err := service.invites.Set(context, token, user.ID, auth.InviteTokenTTL); err != nil {
		return fmt.Errorf("account_service_invite_store_failed: %w", err)
	}

	message := invite.Message{
		UserID:        user.ID,
		Name:          user.Name,
		Email:         user.Email,
		Token:         token,
		ActivationURL: invite.ActivationURL(service.appBaseURL, token),
	}
	if err := service.publisher.Publish(context, message); err != nil {
		service.logger.WarnContext(context, "invite_publish_failed",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
	}
	return nil
}

// authorizeGrant keeps non-administrators from granting ADMIN or branches
// they do not hold. A nil actor is a provisioning caller and may grant all.
func authorizeGrant(actor *sec.Principal, role sec.UserRole, branches []string) error {
	if actor == nil || actor.IsAdmin() {
		return nil
	}
	if role == sec.RoleAdmin {
		return apperr.Forbidden(msgAdminOnly)
	}
	for _, branchID := range branches {
		if !actor.HasBranch(branchID) {
			return apperr.Forbidden(msgForeignBranch)
		}
	}
	return nil
}

// authorizeTarget refuses changes to an administrator by anyone else.
func authorizeTarget(actor *sec.Principal, target *auth.User) error {
	if target.Role == sec.RoleAdmin && !actor.IsAdmin() {
		return apperr.Forbidden(msgAdminTarget)
	}
	return nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

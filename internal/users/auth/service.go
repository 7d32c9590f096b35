// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/johnvilela/motolink/internal/platform/apperr"
	"github.com/johnvilela/motolink/internal/platform/dberr"
	"github.com/johnvilela/motolink/internal/platform/sec"
	"github.com/johnvilela/motolink/pkg/uuid"
)

// # Contracts & Types

// PasswordHasher hashes and verifies peppered passwords. [*sec.Hasher]
// satisfies it.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, stored string) bool
}

// Service implements the session store and first-access flows.
//
// # Review Process
//
// Changes to credential checks or token handling must keep the status codes
// stable: the login form and the route guard both depend on them.
type Service struct {
	userRepository        UserRepository
	sessionRepository     SessionRepository
	inviteTokenRepository InviteTokenRepository
	hasher                PasswordHasher
	sessionTTL            time.Duration
	logger                *slog.Logger
	now                   func() time.Time
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	sessionRepo SessionRepository,
	inviteRepo InviteTokenRepository,
	hasher PasswordHasher,
	sessionTTL time.Duration,
	logger *slog.Logger,
) *Service {
	return &Service{
		userRepository:        userRepo,
		sessionRepository:     sessionRepo,
		inviteTokenRepository: inviteRepo,
		hasher:                hasher,
		sessionTTL:            sessionTTL,
		logger:                logger,
		now:                   time.Now,
	}
}

// # Session Creation

// CreateSessionInput defines credentials for an authentication attempt.
type CreateSessionInput struct {
	Email     string
	Password  string
	UserAgent string
	IPAddress string
}

// LoginSession is a successfully established session. Token is the only
// copy of the bearer value; the store keeps its digest.
type LoginSession struct {
	Token     string
	ExpiresAt time.Time
	SessionID string
	User      *User
}

/*
CreateSession verifies credentials and opens a new session.

Description: Unknown e-mail, missing password and wrong password all fail
with the same 401 so the response does not reveal which accounts exist. A
correct password on an account that is not ACTIVE fails with 403.

Parameters:
  - context: context.Context
  - input: CreateSessionInput

Returns:
  - *LoginSession: Token, expiry and the user without its password
  - error: Unauthorized, Forbidden or storage failures
*/
func (service *Service) CreateSession(context context.Context, input CreateSessionInput) (*LoginSession, error) {
	email := strings.TrimSpace(input.Email)

	user, err := service.userRepository.FindByEmail(context, email)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.Unauthorized(msgInvalidCredentials)
		}
		return nil, fmt.Errorf("auth_service_find_user_failed: %w", err)
	}

	if user.Password == nil || !service.hasher.Verify(input.Password, *user.Password) {
		return nil, apperr.Unauthorized(msgInvalidCredentials)
	}

	if user.Status != StatusActive {
		return nil, apperr.Forbidden(msgInactiveUser)
	}

	token, err := sec.GenerateSecureToken(SessionTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	session := &Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: sec.HashToken(token),
		UserAgent: input.UserAgent,
		IPAddress: input.IPAddress,
		ExpiresAt: service.now().Add(service.sessionTTL),
	}

	if err := service.sessionRepository.Create(context, session); err != nil {
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	service.logger.InfoContext(context, "session_created",
		slog.String("user_id", user.ID),
		slog.String("session_id", session.ID),
	)

	user.Password = nil
	return &LoginSession{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		SessionID: session.ID,
		User:      user,
	}, nil
}

// # Session Lookup

// CurrentSession is a verified session with its owner.
type CurrentSession struct {
	Session *Session
	User    *User
}

/*
GetByToken resolves a bearer token into its session and owner.

Description: Fails with 401 when the token is unknown, with 401
SESSION_EXPIRED once expiresAt has passed, and with 401 when the owner was
deleted or is no longer ACTIVE.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - *CurrentSession: Session and user without password
  - error: Unauthorized variants or storage failures
*/
func (service *Service) GetByToken(context context.Context, token string) (*CurrentSession, error) {
	if token == "" {
		return nil, apperr.Unauthorized(msgInvalidSession)
	}

	session, err := service.sessionRepository.FindByTokenHash(context, sec.HashToken(token))
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.Unauthorized(msgInvalidSession)
		}
		return nil, fmt.Errorf("auth_service_find_session_failed: %w", err)
	}

	if service.now().After(session.ExpiresAt) {
		return nil, apperr.SessionExpired()
	}

	user, err := service.userRepository.FindByID(context, session.UserID)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.Unauthorized(msgInvalidSession)
		}
		return nil, fmt.Errorf("auth_service_find_session_user_failed: %w", err)
	}

	if !user.CanSignIn() {
		return nil, apperr.Unauthorized(msgInvalidSession)
	}

	user.Password = nil
	return &CurrentSession{Session: session, User: user}, nil
}

/*
Resolve implements the route guard's session resolver.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - *sec.Principal: Identity for authorization decisions
  - error: Same failures as [Service.GetByToken]
*/
func (service *Service) Resolve(context context.Context, token string) (*sec.Principal, error) {
	current, err := service.GetByToken(context, token)
	if err != nil {
		return nil, err
	}
	return current.User.Principal(current.Session.ID), nil
}

// # Session Termination

/*
DeleteSession removes the session owning token.

Description: Idempotent. Deleting an unknown or already removed token succeeds.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - error: Storage failures only
*/
func (service *Service) DeleteSession(context context.Context, token string) error {
	if token == "" {
		return nil
	}

	if err := service.sessionRepository.DeleteByTokenHash(context, sec.HashToken(token)); err != nil {
		return fmt.Errorf("auth_service_delete_session_failed: %w", err)
	}
	return nil
}

// # Branch Selection

/*
SelectBranch checks that the principal may switch to branchID.

Parameters:
  - principal: *sec.Principal
  - branchID: string

Returns:
  - error: Forbidden when the branch is not one of the principal's
*/
func (service *Service) SelectBranch(principal *sec.Principal, branchID string) error {
	if !sec.IsBranchAllowed(principal, branchID) {
		return apperr.Forbidden(msgBranchNotAllowed)
	}
	return nil
}

// # First Access

// ActivateInput carries the invitation token and the chosen password.
type ActivateInput struct {
	Token    string
	Password string
}

/*
Activate completes the first access of an invited user.

Description: Exchanges a valid invitation token for the user's first password
and moves the account from PENDING to ACTIVE. The token is single use.

Parameters:
  - context: context.Context
  - input: ActivateInput

Returns:
  - *User: The activated user without password
  - error: BadRequest for invalid tokens or already active users
*/
func (service *Service) Activate(context context.Context, input ActivateInput) (*User, error) {
	userID, err := service.inviteTokenRepository.Claim(context, input.Token)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.BadRequest(msgInvalidInvite)
		}
		return nil, fmt.Errorf("auth_service_invite_lookup_failed: %w", err)
	}

	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.BadRequest(msgInvalidInvite)
		}
		return nil, fmt.Errorf("auth_service_invite_user_failed: %w", err)
	}

	if user.IsDeleted {
		return nil, apperr.BadRequest(msgInvalidInvite)
	}
	if user.Status != StatusPending {
		return nil, apperr.BadRequest(msgAlreadyActivated)
	}

	passwordHash, err := service.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Only a PENDING row is updated; losing a race reads as already active.
	if err := service.userRepository.Activate(context, user.ID, passwordHash); err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.BadRequest(msgAlreadyActivated)
		}
		return nil, fmt.Errorf("auth_service_activate_failed: %w", err)
	}

	service.logger.InfoContext(context, "user_activated", slog.String("user_id", user.ID))

	user.Status = StatusActive
	user.Password = nil
	return user, nil
}

// # Password Management

// ChangePasswordInput holds the current and the new password.
type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
}

/*
ChangePassword replaces the principal's password and revokes every other
session of the account.

Parameters:
  - context: context.Context
  - principal: *sec.Principal
  - input: ChangePasswordInput

Returns:
  - error: BadRequest when the current password is wrong, storage failures
*/
func (service *Service) ChangePassword(context context.Context, principal *sec.Principal, input ChangePasswordInput) error {
	user, err := service.userRepository.FindByID(context, principal.UserID)
	if err != nil {
		return fmt.Errorf("auth_service_change_password_lookup_failed: %w", err)
	}

	if user.Password == nil || !service.hasher.Verify(input.CurrentPassword, *user.Password) {
		return apperr.ValidationError(msgWrongPassword, apperr.FieldError{
			Field:   FieldCurrentPassword,
			Message: msgWrongPassword,
		})
	}

	passwordHash, err := service.hasher.Hash(input.NewPassword)
	if err != nil {
		return fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	if err := service.userRepository.UpdatePassword(context, user.ID, passwordHash); err != nil {
		return fmt.Errorf("auth_service_update_password_failed: %w", err)
	}

	if err := service.sessionRepository.DeleteOthers(context, user.ID, principal.SessionID); err != nil {
		return fmt.Errorf("auth_service_revoke_sessions_failed: %w", err)
	}

	service.logger.InfoContext(context, "password_changed", slog.String("user_id", user.ID))
	return nil
}

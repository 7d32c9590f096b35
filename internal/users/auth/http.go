// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package auth

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/johnvilela/motolink/internal/platform/ctxutil"
	"github.com/johnvilela/motolink/internal/platform/middleware"
	requestutil "github.com/johnvilela/motolink/internal/platform/request"
	"github.com/johnvilela/motolink/internal/platform/respond"
	"github.com/johnvilela/motolink/internal/platform/sec"
)

// # Definitions & Constructors

// Handler implements the /api/sessions endpoints.
//
// # Scope
//
// Login, logout, the current session, branch selection and the first-access
// and password-change flows.
type Handler struct {
	authService   *Service
	secureCookies bool
}

// NewHandler constructs a new [Handler]. secureCookies sets the Secure
// attribute on every cookie written.
func NewHandler(service *Service, secureCookies bool) *Handler {
	return &Handler{authService: service, secureCookies: secureCookies}
}

// Routes returns a [chi.Router] configured with session routes.
//
// # Endpoints
//   - POST   /          : Opens a session (public).
//   - GET    /          : Returns the current session.
//   - DELETE /          : Closes the current session (public, always 204).
//   - PUT    /branch    : Switches the selected branch.
//   - POST   /activate  : First access with an invitation token (public).
//   - POST   /password  : Changes the password.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.login)
	router.Post("/activate", handler.activate)
	router.Delete("/", handler.logout)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", handler.current)
		r.Put("/branch", handler.selectBranch)
		r.Post("/password", handler.changePassword)
	})

	return router
}

// # Request Payloads

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type activateRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,strongpassword"`
}

type selectBranchRequest struct {
	BranchID string `json:"branchId" validate:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,strongpassword"`
}

// # Response Payloads

type loginResponse struct {
	User       *User     `json:"user"`
	ExpiresAt  time.Time `json:"expiresAt"`
	RedirectTo string    `json:"redirectTo"`
}

type currentSessionResponse struct {
	User           *User     `json:"user"`
	SessionID      string    `json:"sessionId"`
	ExpiresAt      time.Time `json:"expiresAt"`
	SelectedBranch string    `json:"selectedBranch"`
}

/*
Login authenticates a collaborator and establishes a session.

POST /api/sessions

Request:
  - Body: loginRequest (email, password)

Response:
  - 200: loginResponse with the session cookies set
  - 400: Validation failure
  - 401: Invalid credentials
  - 403: Account not active
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeAndValidate(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.CreateSession(request.Context(), CreateSessionInput{
		Email:     input.Email,
		Password:  input.Password,
		UserAgent: request.UserAgent(),
		IPAddress: middleware.RealIP(request),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	cookie := middleware.SessionCookie{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		UserID:    session.User.ID,
	}
	if len(session.User.Branches) > 0 {
		cookie.BranchID = session.User.Branches[0]
	}
	middleware.SetSessionCookies(writer, cookie, handler.secureCookies)

	respond.OK(writer, loginResponse{
		User:       session.User,
		ExpiresAt:  session.ExpiresAt,
		RedirectTo: sec.LandingPath(session.User.Role),
	})
}

/*
Current returns the session the request was authenticated with.

GET /api/sessions

Response:
  - 200: currentSessionResponse
  - 401: Missing, expired or revoked session
*/
func (handler *Handler) current(writer http.ResponseWriter, request *http.Request) {
	current, err := handler.authService.GetByToken(request.Context(), middleware.SessionToken(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, currentSessionResponse{
		User:           current.User,
		SessionID:      current.Session.ID,
		ExpiresAt:      current.Session.ExpiresAt,
		SelectedBranch: requestutil.Branch(request),
	})
}

/*
Logout terminates the current session.

DELETE /api/sessions

Description: Always succeeds for the client. A failed deletion is logged and
the cookies are cleared regardless.

Response:
  - 204: No Content
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	if err := handler.authService.DeleteSession(request.Context(), middleware.SessionToken(request)); err != nil {
		ctxutil.GetLogger(request.Context()).WarnContext(request.Context(), "logout_session_delete_failed",
			slog.Any("error", err),
		)
	}

	middleware.ClearSessionCookies(writer, handler.secureCookies)
	respond.NoContent(writer)
}

/*
SelectBranch switches the branch the following requests are scoped to.

PUT /api/sessions/branch

Request:
  - Body: selectBranchRequest (branchId)

Response:
  - 200: The selected branch id
  - 403: Branch not assigned to the user
*/
func (handler *Handler) selectBranch(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input selectBranchRequest
	if err := requestutil.DecodeAndValidate(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.SelectBranch(principal, input.BranchID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	middleware.SetSelectedBranch(writer, input.BranchID, handler.secureCookies)
	respond.OK(writer, map[string]string{FieldBranchID: input.BranchID})
}

/*
Activate completes the first access of an invited collaborator.

POST /api/sessions/activate

Request:
  - Body: activateRequest (token, password)

Response:
  - 200: The activated user
  - 400: Invalid token, weak password or already active user
*/
func (handler *Handler) activate(writer http.ResponseWriter, request *http.Request) {
	var input activateRequest
	if err := requestutil.DecodeAndValidate(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Activate(request.Context(), ActivateInput{
		Token:    input.Token,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
ChangePassword replaces the password of the signed-in collaborator.

POST /api/sessions/password

Description: Every other session of the account is revoked; the current one
stays valid.

Response:
  - 204: No Content
  - 400: Wrong current password or weak new password
*/
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changePasswordRequest
	if err := requestutil.DecodeAndValidate(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.authService.ChangePassword(request.Context(), principal, ChangePasswordInput{
		CurrentPassword: input.CurrentPassword,
		NewPassword:     input.NewPassword,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

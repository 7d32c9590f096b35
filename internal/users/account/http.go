// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package account

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/johnvilela/motolink/internal/platform/apperr"
	"github.com/johnvilela/motolink/internal/platform/middleware"
	requestutil "github.com/johnvilela/motolink/internal/platform/request"
	"github.com/johnvilela/motolink/internal/platform/respond"
	"github.com/johnvilela/motolink/internal/platform/sec"
	"github.com/johnvilela/motolink/internal/platform/validate"
	"github.com/johnvilela/motolink/pkg/pagination"
	"github.com/johnvilela/motolink/pkg/query"
)

// moduleLabel is shown on the unauthorized page.
const moduleLabel = "Colaboradores"

// Handler implements the /api/users endpoints.
type Handler struct {
	accountService *Service
	verifier       middleware.ProvisioningVerifier
}

// NewHandler constructs a new account [Handler]. verifier checks the
// service token of the provisioning endpoint.
func NewHandler(service *Service, verifier middleware.ProvisioningVerifier) *Handler {
	return &Handler{accountService: service, verifier: verifier}
}

// Routes returns a [chi.Router] configured with collaborator endpoints.
//
// # Endpoints
//   - GET    /              : Lists collaborators (users.view).
//   - POST   /              : Creates a collaborator (users.create).
//   - DELETE /              : Deletes the collaborator named in the body (users.delete).
//   - POST   /provision     : Creates a collaborator with a service token.
//   - GET    /{id}          : Returns a collaborator (users.view).
//   - PUT    /{id}          : Updates a collaborator (users.edit).
//   - DELETE /{id}          : Deletes a collaborator (users.delete).
//   - POST   /{id}/invite   : Sends a new invitation (users.edit).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.With(middleware.RequireServiceToken(handler.verifier)).Post("/provision", handler.provisionUser)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.With(middleware.RequirePermissions(moduleLabel, "users.view")).Get("/", handler.listUsers)
		r.With(middleware.RequirePermissions(moduleLabel, "users.create")).Post("/", handler.createUser)
		r.With(middleware.RequirePermissions(moduleLabel, "users.delete")).Delete("/", handler.deleteUserByBody)

		r.With(middleware.RequirePermissions(moduleLabel, "users.view")).Get("/{id}", handler.getUser)
		r.With(middleware.RequirePermissions(moduleLabel, "users.edit")).Put("/{id}", handler.updateUser)
		r.With(middleware.RequirePermissions(moduleLabel, "users.delete")).Delete("/{id}", handler.deleteUser)
		r.With(middleware.RequirePermissions(moduleLabel, "users.edit")).Post("/{id}/invite", handler.resendInvite)
	})

	return router
}

// # Request Payloads

type createUserRequest struct {
	Name        string   `json:"name" validate:"required,max=150"`
	Email       string   `json:"email" validate:"required,email"`
	Password    *string  `json:"password" validate:"omitempty,strongpassword"`
	Role        string   `json:"role" validate:"required,oneof=ADMIN MANAGER USER"`
	Permissions []string `json:"permissions"`
	Branches    []string `json:"branches" validate:"required,min=1,dive,required"`
	Phone       string   `json:"phone"`
	Document    string   `json:"document"`
	BirthDate   string   `json:"birthDate"`
	Files       []string `json:"files"`
}

type updateUserRequest struct {
	Name        *string   `json:"name" validate:"omitempty,max=150"`
	Email       *string   `json:"email" validate:"omitempty,email"`
	Password    *string   `json:"password" validate:"omitempty,strongpassword"`
	Role        *string   `json:"role" validate:"omitempty,oneof=ADMIN MANAGER USER"`
	Permissions *[]string `json:"permissions"`
	Branches    *[]string `json:"branches" validate:"omitempty,min=1"`
	Phone       *string   `json:"phone"`
	Document    *string   `json:"document"`
	BirthDate   *string   `json:"birthDate"`
	Files       *[]string `json:"files"`
}

type deleteUserRequest struct {
	ID string `json:"id" validate:"required,uuid"`
}

// # Handlers

/*
GET /api/users.

Query: page, pageSize | cursor, limit, search, branchId (administrators only).

Response:
  - 200: Paginated list of users
*/
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	filter := Filter{
		Search:   query.Search(request.URL.Query()),
		BranchID: requestutil.Branch(request),
		Cursor:   params.Cursor,
	}
	if requested := request.URL.Query().Get("branchId"); requested != "" && requestutil.Principal(request).IsAdmin() {
		filter.BranchID = requested
	}

	users, total, err := handler.accountService.ListUsers(request.Context(), filter, params.PageSize, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	meta := pagination.NewMeta(params.Page, params.PageSize, total)
	if len(users) > 0 {
		meta = meta.WithCursor(users[len(users)-1].ID, len(users))
	}
	respond.Paginated(writer, users, meta)
}

/*
POST /api/users.

Response:
  - 201: The created user
  - 400: Validation failure or e-mail in use
  - 403: Role or branch not grantable by the caller
*/
func (handler *Handler) createUser(writer http.ResponseWriter, request *http.Request) {
	handler.create(writer, request, requestutil.Principal(request))
}

/*
POST /api/users/provision.

Description: Machine-to-machine creation guarded by a provisioning token.
No history trace is recorded since there is no acting user.
*/
func (handler *Handler) provisionUser(writer http.ResponseWriter, request *http.Request) {
	handler.create(writer, request, nil)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request, actor *sec.Principal) {
	var input createUserRequest
	if err := requestutil.DecodeAndValidate(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	birthDate, err := parseBirthDate(input.BirthDate)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.CreateUser(request.Context(), actor, CreateInput{
		Name:        input.Name,
		Email:       input.Email,
		Password:    input.Password,
		Role:        sec.UserRole(input.Role),
		Permissions: input.Permissions,
		Branches:    input.Branches,
		Phone:       input.Phone,
		Document:    input.Document,
		BirthDate:   birthDate,
		Files:       input.Files,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
GET /api/users/{id}.

Response:
  - 200: The user
  - 404: Unknown user
*/
func (handler *Handler) getUser(writer http.ResponseWriter, request *http.Request) {
	id, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetUser(request.Context(), requestutil.Principal(request), requestutil.Branch(request), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
PUT /api/users/{id}.

Response:
  - 200: The updated user
  - 400: Deleted user, e-mail in use or validation failure
  - 403: Administrator edited by a non-administrator
  - 404: Unknown user or outside the selected branch
*/
func (handler *Handler) updateUser(writer http.ResponseWriter, request *http.Request) {
	id, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateUserRequest
	if err := requestutil.DecodeAndValidate(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	update := UpdateInput{
		Name:        input.Name,
		Email:       input.Email,
		Password:    input.Password,
		Permissions: input.Permissions,
		Branches:    input.Branches,
		Phone:       input.Phone,
		Document:    input.Document,
		Files:       input.Files,
	}
	if input.Role != nil {
		role := sec.UserRole(*input.Role)
		update.Role = &role
	}
	if input.BirthDate != nil {
		if update.BirthDate, err = parseBirthDate(*input.BirthDate); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	user, err := handler.accountService.UpdateUser(request.Context(), requestutil.Principal(request), requestutil.Branch(request), id, update)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
DELETE /api/users/{id}.

Response:
  - 204: No Content
  - 400: Already deleted
  - 404: Unknown user
*/
func (handler *Handler) deleteUser(writer http.ResponseWriter, request *http.Request) {
	id, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	handler.delete(writer, request, id)
}

// DELETE /api/users with body {"id": "..."}.
func (handler *Handler) deleteUserByBody(writer http.ResponseWriter, request *http.Request) {
	var input deleteUserRequest
	if err := requestutil.DecodeAndValidate(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	handler.delete(writer, request, input.ID)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request, id string) {
	if err := handler.accountService.DeleteUser(request.Context(), requestutil.Principal(request), requestutil.Branch(request), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// POST /api/users/{id}/invite.
func (handler *Handler) resendInvite(writer http.ResponseWriter, request *http.Request) {
	id, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.ResendInvite(request.Context(), requestutil.Principal(request), requestutil.Branch(request), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Helpers

func pathID(request *http.Request) (string, error) {
	id := requestutil.ID(request, FieldID)
	if err := new(validate.Validator).UUID(FieldID, id).Err(); err != nil {
		return "", err
	}
	return id, nil
}

// parseBirthDate accepts the DD/MM/YYYY form of the back-office forms.
// An empty value yields nil.
func parseBirthDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(validate.BirthDateLayout, raw)
	if err != nil {
		return nil, apperr.ValidationError("Dados inválidos", apperr.FieldError{Field: "birthDate", Message: "Data inválida"})
	}
	return &parsed, nil
}

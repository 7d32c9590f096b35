// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package group

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/johnvilela/motolink/internal/platform/middleware"
	requestutil "github.com/johnvilela/motolink/internal/platform/request"
	"github.com/johnvilela/motolink/internal/platform/respond"
	"github.com/johnvilela/motolink/internal/platform/validate"
	"github.com/johnvilela/motolink/pkg/pagination"
	"github.com/johnvilela/motolink/pkg/query"
)

// # Handler Implementation

// Handler implements the HTTP layer for client group operations.
type Handler struct {
	service *Service
}

// NewHandler constructs a new group [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with group-related endpoints.
//
// Every route requires a session and the matching "groups.*" permission.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	can := func(action string) func(http.Handler) http.Handler {
		return middleware.RequirePermissions("Grupos", "groups."+action)
	}

	router.With(can("view")).Get("/", handler.listGroups)
	router.With(can("create")).Post("/", handler.createGroup)

	router.Route("/{id}", func(subRouter chi.Router) {
		subRouter.With(can("view")).Get("/", handler.getGroup)
		subRouter.With(can("edit")).Put("/", handler.updateGroup)
		subRouter.With(can("delete")).Delete("/", handler.deleteGroup)
	})

	return router
}

type groupRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description" validate:"max=500"`
	BranchID    string `json:"branchId" validate:"omitempty,uuid"`
}

// # Group Endpoints

/*
GET /api/groups.

Description: Retrieves a paginated list of client groups of the selected branch.

Request:
  - search: string (Name search)
  - page: int
  - pageSize: int

Response:
  - 200: []Group: Paginated list
*/
func (handler *Handler) listGroups(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Query:    query.Search(request.URL.Query()),
		BranchID: requestutil.Branch(request),
	}

	groups, total, err := handler.service.ListGroups(request.Context(), filter, paginationParams.PageSize, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, groups, pagination.NewMeta(paginationParams.Page, paginationParams.PageSize, total))
}

/*
GET /api/groups/{id}.

Response:
  - 200: Group: Success
  - 400: Invalid identifier format
  - 404: Group not found
*/
func (handler *Handler) getGroup(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, FieldID)
	if err := new(validate.Validator).UUID(FieldID, id).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	group, err := handler.service.GetGroup(request.Context(), id, requestutil.Branch(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, group)
}

/*
POST /api/groups.

Request (Body):
  - name, description, branchId (defaults to the selected branch)

Response:
  - 201: Group: Created object
*/
func (handler *Handler) createGroup(writer http.ResponseWriter, request *http.Request) {
	var body groupRequest
	if err := requestutil.DecodeAndValidate(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	input := Input{Name: body.Name, Description: body.Description, BranchID: body.BranchID}
	group, err := handler.service.CreateGroup(request.Context(), requestutil.Principal(request), requestutil.Branch(request), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, group)
}

// PUT /api/groups/{id}.
func (handler *Handler) updateGroup(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, FieldID)
	if err := new(validate.Validator).UUID(FieldID, id).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body groupRequest
	if err := requestutil.DecodeAndValidate(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	input := Input{Name: body.Name, Description: body.Description, BranchID: body.BranchID}
	group, err := handler.service.UpdateGroup(request.Context(), requestutil.Principal(request), id, requestutil.Branch(request), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, group)
}

/*
DELETE /api/groups/{id}.

Response:
  - 204: No Content
  - 400: Clients still belong to the group
*/
func (handler *Handler) deleteGroup(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, FieldID)
	if err := new(validate.Validator).UUID(FieldID, id).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteGroup(request.Context(), requestutil.Principal(request), id, requestutil.Branch(request)); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

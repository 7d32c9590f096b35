// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package region

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

const moduleLabel = "Regiões"

// Handler implements the HTTP layer for regions.
type Handler struct {
	service *Service
}

// NewHandler constructs a new region [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with region endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.With(middleware.RequirePermissions(moduleLabel, "regions.view")).Get("/", handler.listRegions)
	router.With(middleware.RequirePermissions(moduleLabel, "regions.create")).Post("/", handler.createRegion)
	router.With(middleware.RequirePermissions(moduleLabel, "regions.view")).Get("/{id}", handler.getRegion)
	router.With(middleware.RequirePermissions(moduleLabel, "regions.edit")).Put("/{id}", handler.updateRegion)
	router.With(middleware.RequirePermissions(moduleLabel, "regions.delete")).Delete("/{id}", handler.deleteRegion)

	return router
}

type regionRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description" validate:"max=500"`
	BranchID    string `json:"branchId" validate:"omitempty,uuid"`
}

func (payload regionRequest) input() Input {
	return Input{Name: payload.Name, Description: payload.Description, BranchID: payload.BranchID}
}

/*
GET /api/regions.

Request:
  - search: string (name, case-insensitive)
  - page, pageSize: int

Response:
  - 200: []Region: Paginated list
*/
func (handler *Handler) listRegions(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	filter := Filter{
		Search:   query.Search(request.URL.Query()),
		BranchID: requestutil.Branch(request),
	}

	regions, total, err := handler.service.ListRegions(request.Context(), filter, params.PageSize, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, regions, pagination.NewMeta(params.Page, params.PageSize, total))
}

/*
GET /api/regions/{id}.

Response:
  - 200: Region
  - 404: Not found in the selected branch
*/
func (handler *Handler) getRegion(writer http.ResponseWriter, request *http.Request) {
	id, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	region, err := handler.service.GetRegion(request.Context(), id, requestutil.Branch(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, region)
}

/*
POST /api/regions.

Response:
  - 201: Region: Created object
  - 400: Validation failure
  - 403: Branch not assigned to the caller
*/
func (handler *Handler) createRegion(writer http.ResponseWriter, request *http.Request) {
	var payload regionRequest
	if err := requestutil.DecodeAndValidate(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	region, err := handler.service.CreateRegion(request.Context(), requestutil.Principal(request), requestutil.Branch(request), payload.input())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, region)
}

// PUT /api/regions/{id}.
func (handler *Handler) updateRegion(writer http.ResponseWriter, request *http.Request) {
	id, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload regionRequest
	if err := requestutil.DecodeAndValidate(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	region, err := handler.service.UpdateRegion(request.Context(), requestutil.Principal(request), id, requestutil.Branch(request), payload.input())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, region)
}

/*
DELETE /api/regions/{id}.

Response:
  - 204: No Content
  - 400: Region still referenced
  - 404: Not found
*/
func (handler *Handler) deleteRegion(writer http.ResponseWriter, request *http.Request) {
	id, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteRegion(request.Context(), requestutil.Principal(request), id, requestutil.Branch(request)); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

func pathID(request *http.Request) (string, error) {
	id := requestutil.ID(request, FieldID)
	if err := new(validate.Validator).UUID(FieldID, id).Err(); err != nil {
		return "", err
	}
	return id, nil
}

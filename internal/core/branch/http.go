// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package branch

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

// Handler implements the /api/branches endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new branch [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with branch endpoints.
//
// Listing and reading only need a session, since the branch switcher of
// every collaborator depends on them. Writes need "branches.*".
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.listBranches)
	router.Get("/{id}", handler.getBranch)
	router.With(middleware.RequirePermissions("Filiais", "branches.create")).Post("/", handler.createBranch)
	router.With(middleware.RequirePermissions("Filiais", "branches.edit")).Put("/{id}", handler.updateBranch)

	return router
}

type branchRequest struct {
	Code string `json:"code" validate:"omitempty,max=10"`
	Name string `json:"name" validate:"required,max=120"`
}

// GET /api/branches.
func (handler *Handler) listBranches(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	branches, total, err := handler.service.ListBranches(request.Context(), requestutil.Principal(request),
		query.Search(request.URL.Query()), params.PageSize, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, branches, pagination.NewMeta(params.Page, params.PageSize, total))
}

// GET /api/branches/{id}.
func (handler *Handler) getBranch(writer http.ResponseWriter, request *http.Request) {
	id, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	branch, err := handler.service.GetBranch(request.Context(), requestutil.Principal(request), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, branch)
}

/*
POST /api/branches.

Response:
  - 201: Branch
  - 409: Code already in use
*/
func (handler *Handler) createBranch(writer http.ResponseWriter, request *http.Request) {
	var body branchRequest
	if err := requestutil.DecodeAndValidate(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	branch, err := handler.service.CreateBranch(request.Context(), requestutil.Principal(request), Input{Code: body.Code, Name: body.Name})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, branch)
}

// PUT /api/branches/{id}.
func (handler *Handler) updateBranch(writer http.ResponseWriter, request *http.Request) {
	id, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body branchRequest
	if err := requestutil.DecodeAndValidate(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	branch, err := handler.service.UpdateBranch(request.Context(), requestutil.Principal(request), id, Input{Code: body.Code, Name: body.Name})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, branch)
}

func pathID(request *http.Request) (string, error) {
	id := requestutil.ID(request, FieldID)
	if err := new(validate.Validator).UUID(FieldID, id).Err(); err != nil {
		return "", err
	}
	return id, nil
}

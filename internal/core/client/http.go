// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package client

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

// Handler implements the /api/clients endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new client [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func can(action string) func(http.Handler) http.Handler {
	return middleware.RequirePermissions("Clientes", "clients."+action)
}

// Routes returns a [chi.Router] configured with client endpoints.
//
// # Endpoints
//   - GET    /         : Lists clients (clients.view).
//   - GET    /options  : Id, name and CNPJ of every client (clients.view).
//   - POST   /         : Registers a client (clients.create).
//   - GET    /{id}     : Returns a client (clients.view).
//   - PUT    /{id}     : Updates a client (clients.edit).
//   - DELETE /{id}     : Soft deletes a client (clients.delete).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.With(can("view")).Get("/", handler.listClients)
	router.With(can("view")).Get("/options", handler.listOptions)
	router.With(can("create")).Post("/", handler.createClient)

	router.Route("/{id}", func(router chi.Router) {
		router.With(can("view")).Get("/", handler.getClient)
		router.With(can("edit")).Put("/", handler.updateClient)
		router.With(can("delete")).Delete("/", handler.deleteClient)
	})

	return router
}

// # Request Payloads

type clientRequest struct {
	Name                string               `json:"name" validate:"required,max=150"`
	CNPJ                string               `json:"cnpj" validate:"required"`
	CEP                 string               `json:"cep" validate:"required"`
	Street              string               `json:"street" validate:"required,max=200"`
	Number              string               `json:"number" validate:"required,max=20"`
	Complement          string               `json:"complement"`
	City                string               `json:"city" validate:"required,max=100"`
	Neighborhood        string               `json:"neighborhood" validate:"required,max=100"`
	UF                  string               `json:"uf" validate:"required,len=2"`
	Observations        string               `json:"observations"`
	RegionID            *string              `json:"regionId"`
	GroupID             *string              `json:"groupId"`
	ContactName         string               `json:"contactName" validate:"max=150"`
	ContactPhone        string               `json:"contactPhone"`
	ProvideMeal         bool                 `json:"provideMeal"`
	CommercialCondition *CommercialCondition `json:"commercialCondition"`
	BranchID            string               `json:"branchId" validate:"omitempty,uuid"`
}

func (payload clientRequest) input() Input {
	return Input{
		Name:                payload.Name,
		CNPJ:                payload.CNPJ,
		CEP:                 payload.CEP,
		Street:              payload.Street,
		Number:              payload.Number,
		Complement:          payload.Complement,
		City:                payload.City,
		Neighborhood:        payload.Neighborhood,
		UF:                  payload.UF,
		Observations:        payload.Observations,
		RegionID:            payload.RegionID,
		GroupID:             payload.GroupID,
		ContactName:         payload.ContactName,
		ContactPhone:        payload.ContactPhone,
		ProvideMeal:         payload.ProvideMeal,
		CommercialCondition: payload.CommercialCondition,
		BranchID:            payload.BranchID,
	}
}

// # Handlers

// filterFrom reads the listing filters shared by list and options.
func filterFrom(request *http.Request) (Filter, error) {
	values := request.URL.Query()
	filter := Filter{
		Search:   query.Search(values),
		BranchID: requestutil.Branch(request),
		RegionID: values.Get(FieldRegionID),
		GroupID:  values.Get(FieldGroupID),
	}

	validator := new(validate.Validator)
	if filter.RegionID != "" {
		validator.UUID(FieldRegionID, filter.RegionID)
	}
	if filter.GroupID != "" {
		validator.UUID(FieldGroupID, filter.GroupID)
	}
	return filter, validator.Err()
}

/*
GET /api/clients.

Request:
  - search: string (name or CNPJ digits)
  - regionId, groupId: string
  - page, pageSize: int

Response:
  - 200: []Client: Paginated list
*/
func (handler *Handler) listClients(writer http.ResponseWriter, request *http.Request) {
	filter, err := filterFrom(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	params := pagination.FromRequest(request)

	clients, total, err := handler.service.ListClients(request.Context(), filter, params.PageSize, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, clients, pagination.NewMeta(params.Page, params.PageSize, total))
}

// GET /api/clients/options.
func (handler *Handler) listOptions(writer http.ResponseWriter, request *http.Request) {
	filter, err := filterFrom(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	options, err := handler.service.ListOptions(request.Context(), filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, options)
}

// GET /api/clients/{id}.
func (handler *Handler) getClient(writer http.ResponseWriter, request *http.Request) {
	id, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	client, err := handler.service.GetClient(request.Context(), id, requestutil.Branch(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, client)
}

/*
POST /api/clients.

Response:
  - 201: Client: Created object
  - 400: Validation failure, CNPJ in use or region/group of another branch
  - 403: Branch not assigned to the caller
*/
func (handler *Handler) createClient(writer http.ResponseWriter, request *http.Request) {
	var payload clientRequest
	if err := requestutil.DecodeAndValidate(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	client, err := handler.service.CreateClient(request.Context(), requestutil.Principal(request), requestutil.Branch(request), payload.input())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, client)
}

// PUT /api/clients/{id}.
func (handler *Handler) updateClient(writer http.ResponseWriter, request *http.Request) {
	id, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload clientRequest
	if err := requestutil.DecodeAndValidate(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	client, err := handler.service.UpdateClient(request.Context(), requestutil.Principal(request), id, requestutil.Branch(request), payload.input())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, client)
}

// DELETE /api/clients/{id}.
func (handler *Handler) deleteClient(writer http.ResponseWriter, request *http.Request) {
	id, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteClient(request.Context(), requestutil.Principal(request), id, requestutil.Branch(request)); err != nil {
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

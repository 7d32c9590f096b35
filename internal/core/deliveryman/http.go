// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package deliveryman

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

const moduleLabel = "Entregadores"

// Handler implements the /api/deliverymen endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new deliveryman [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with courier endpoints.
//
// # Endpoints
//   - GET    /            : Lists couriers (deliverymen.view).
//   - POST   /            : Registers a courier (deliverymen.create).
//   - GET    /{id}        : Returns a courier (deliverymen.view).
//   - PUT    /{id}        : Updates a courier (deliverymen.edit).
//   - DELETE /{id}        : Soft deletes a courier (deliverymen.delete).
//   - PATCH  /{id}/block  : Toggles the blocked flag (deliverymen.edit).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.With(middleware.RequirePermissions(moduleLabel, "deliverymen.view")).Get("/", handler.listDeliverymen)
	router.With(middleware.RequirePermissions(moduleLabel, "deliverymen.create")).Post("/", handler.createDeliveryman)
	router.With(middleware.RequirePermissions(moduleLabel, "deliverymen.view")).Get("/{id}", handler.getDeliveryman)
	router.With(middleware.RequirePermissions(moduleLabel, "deliverymen.edit")).Put("/{id}", handler.updateDeliveryman)
	router.With(middleware.RequirePermissions(moduleLabel, "deliverymen.delete")).Delete("/{id}", handler.deleteDeliveryman)
	router.With(middleware.RequirePermissions(moduleLabel, "deliverymen.edit")).Patch("/{id}/block", handler.toggleBlock)

	return router
}

// # Request Payloads

type deliverymanRequest struct {
	Name         string   `json:"name" validate:"required,max=150"`
	Document     string   `json:"document" validate:"required"`
	Phone        string   `json:"phone" validate:"required"`
	ContractType string   `json:"contractType" validate:"required,max=50"`
	MainPixKey   string   `json:"mainPixKey" validate:"required,max=140"`
	SecondPixKey string   `json:"secondPixKey" validate:"max=140"`
	ThirdPixKey  string   `json:"thirdPixKey" validate:"max=140"`
	Agency       string   `json:"agency"`
	Account      string   `json:"account"`
	VehicleModel string   `json:"vehicleModel"`
	VehiclePlate string   `json:"vehiclePlate"`
	VehicleColor string   `json:"vehicleColor"`
	Files        []string `json:"files"`
	RegionID     *string  `json:"regionId"`
	BranchID     string   `json:"branchId" validate:"omitempty,uuid"`
}

func (payload deliverymanRequest) input() Input {
	return Input{
		Name:         payload.Name,
		Document:     payload.Document,
		Phone:        payload.Phone,
		ContractType: payload.ContractType,
		MainPixKey:   payload.MainPixKey,
		SecondPixKey: payload.SecondPixKey,
		ThirdPixKey:  payload.ThirdPixKey,
		Agency:       payload.Agency,
		Account:      payload.Account,
		VehicleModel: payload.VehicleModel,
		VehiclePlate: payload.VehiclePlate,
		VehicleColor: payload.VehicleColor,
		Files:        payload.Files,
		RegionID:     payload.RegionID,
		BranchID:     payload.BranchID,
	}
}

// # Handlers

/*
GET /api/deliverymen.

Request:
  - search: string (name, document or phone)
  - regionId: string
  - isBlocked: bool
  - page, pageSize: int

Response:
  - 200: []Deliveryman: Paginated list
*/
func (handler *Handler) listDeliverymen(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	values := request.URL.Query()

	filter := Filter{
		Search:    query.Search(values),
		BranchID:  requestutil.Branch(request),
		RegionID:  values.Get("regionId"),
		IsBlocked: query.Bool(values, "isBlocked"),
	}
	if filter.RegionID != "" {
		if err := new(validate.Validator).UUID(FieldRegionID, filter.RegionID).Err(); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	deliverymen, total, err := handler.service.ListDeliverymen(request.Context(), filter, params.PageSize, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, deliverymen, pagination.NewMeta(params.Page, params.PageSize, total))
}

// GET /api/deliverymen/{id}.
func (handler *Handler) getDeliveryman(writer http.ResponseWriter, request *http.Request) {
	id, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	deliveryman, err := handler.service.GetDeliveryman(request.Context(), id, requestutil.Branch(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, deliveryman)
}

/*
POST /api/deliverymen.

Response:
  - 201: Deliveryman: Created object
  - 400: Validation failure or region of another branch
  - 403: Branch not assigned to the caller
*/
func (handler *Handler) createDeliveryman(writer http.ResponseWriter, request *http.Request) {
	var payload deliverymanRequest
	if err := requestutil.DecodeAndValidate(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	deliveryman, err := handler.service.CreateDeliveryman(request.Context(), requestutil.Principal(request), requestutil.Branch(request), payload.input())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, deliveryman)
}

// PUT /api/deliverymen/{id}.
func (handler *Handler) updateDeliveryman(writer http.ResponseWriter, request *http.Request) {
	id, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload deliverymanRequest
	if err := requestutil.DecodeAndValidate(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	deliveryman, err := handler.service.UpdateDeliveryman(request.Context(), requestutil.Principal(request), id, requestutil.Branch(request), payload.input())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, deliveryman)
}

// DELETE /api/deliverymen/{id}.
func (handler *Handler) deleteDeliveryman(writer http.ResponseWriter, request *http.Request) {
	id, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteDeliveryman(request.Context(), requestutil.Principal(request), id, requestutil.Branch(request)); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

/*
PATCH /api/deliverymen/{id}/block.

Response:
  - 200: Deliveryman: With the flipped isBlocked flag
  - 400: Courier deleted
*/
func (handler *Handler) toggleBlock(writer http.ResponseWriter, request *http.Request) {
	id, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	deliveryman, err := handler.service.ToggleBlock(request.Context(), requestutil.Principal(request), id, requestutil.Branch(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, deliveryman)
}

func pathID(request *http.Request) (string, error) {
	id := requestutil.ID(request, FieldID)
	if err := new(validate.Validator).UUID(FieldID, id).Err(); err != nil {
		return "", err
	}
	return id, nil
}

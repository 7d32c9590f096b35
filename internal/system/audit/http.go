// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package audit

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/johnvilela/motolink/internal/platform/middleware"
	requestutil "github.com/johnvilela/motolink/internal/platform/request"
	"github.com/johnvilela/motolink/internal/platform/respond"
	"github.com/johnvilela/motolink/internal/platform/sec"
	"github.com/johnvilela/motolink/internal/platform/validate"
	"github.com/johnvilela/motolink/pkg/pagination"
	"github.com/johnvilela/motolink/pkg/slice"
)

// Handler implements the /api/history-traces endpoints.
type Handler struct {
	auditService *Service
}

// NewHandler constructs a new audit [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{auditService: service}
}

// Routes returns a [chi.Router] restricted to administrators.
//
// # Endpoints
//   - GET /      : Lists traces (filters entityType, userId, entityId, action).
//   - GET /{id}  : Returns a single trace.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(sec.RoleAdmin))

	router.Get("/", handler.listTraces)
	router.Get("/{id}", handler.getTrace)

	return router
}

func (handler *Handler) listTraces(writer http.ResponseWriter, request *http.Request) {
	filter, err := parseFilter(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	traces, total, err := handler.auditService.ListTraces(request.Context(), filter, params.PageSize, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, traces, pagination.NewMeta(params.Page, params.PageSize, total))
}

func (handler *Handler) getTrace(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")
	if err := new(validate.Validator).UUID("id", id).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	trace, err := handler.auditService.GetTrace(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, trace)
}

// parseFilter reads and validates the list query parameters.
func parseFilter(request *http.Request) (Filter, error) {
	query := request.URL.Query()
	filter := Filter{
		EntityType: EntityType(query.Get(FieldEntityType)),
		UserID:     query.Get(FieldUserID),
		EntityID:   query.Get(FieldEntityID),
		Action:     Action(query.Get(FieldAction)),
	}

	validator := new(validate.Validator)
	if filter.EntityType != "" {
		validator.OneOf(FieldEntityType, string(filter.EntityType), entityTypeNames()...)
	}
	if filter.Action != "" {
		validator.OneOf(FieldAction, string(filter.Action), actionNames()...)
	}
	if filter.UserID != "" {
		validator.UUID(FieldUserID, filter.UserID)
	}

	return filter, validator.Err()
}

func entityTypeNames() []string {
	return slice.Map(EntityTypes, func(entityType EntityType) string { return string(entityType) })
}

func actionNames() []string {
	return slice.Map(Actions, func(action Action) string { return string(action) })
}

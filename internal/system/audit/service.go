// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package audit

import (
	"context"
	"log/slog"

	"github.com/johnvilela/motolink/internal/platform/apperr"
	"github.com/johnvilela/motolink/internal/platform/dberr"
	"github.com/johnvilela/motolink/pkg/uuid"
)

// Recorder is implemented by [*Service]; domain services depend on it.
type Recorder interface {
	Record(context context.Context, entry Entry)
}

// # Service Layer

// Service stores and lists history traces.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new audit [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

/*
Record stores a trace for entry.

Description: Failures are logged and swallowed so the calling operation
still succeeds.

Parameters:
  - context: context.Context
  - entry: Entry
*/
func (service *Service) Record(context context.Context, entry Entry) {
	logger := service.logger.With(
		slog.String("action", string(entry.Action)),
		slog.String("entity_type", string(entry.EntityType)),
		slog.String("entity_id", entry.EntityID),
	)

	if entry.Actor == nil {
		logger.WarnContext(context, "history_trace_skipped_without_actor")
		return
	}

	changes, err := Diff(entry.New, entry.Old)
	if err != nil {
		logger.ErrorContext(context, "history_trace_diff_failed", slog.Any("error", err))
		return
	}

	trace := &Trace{
		ID:         uuid.New(),
		UserID:     entry.Actor.UserID,
		User:       ActorFrom(entry.Actor),
		Action:     entry.Action,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Changes:    changes,
	}

	if err := service.repo.Create(context, trace); err != nil {
		logger.ErrorContext(context, "history_trace_record_failed", slog.Any("error", err))
		return
	}

	logger.DebugContext(context, "history_trace_recorded", slog.Int("changed_fields", len(changes)))
}

/*
ListTraces returns a filtered page of traces.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit, offset: int

Returns:
  - []*Trace: Page of traces
  - int: Total matching count
  - error: Retrieval errors
*/
func (service *Service) ListTraces(context context.Context, filter Filter, limit, offset int) ([]*Trace, int, error) {
	return service.repo.List(context, filter, limit, offset)
}

/*
GetTrace returns a single trace.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Trace: Hydrated entity
  - error: 404 "Registro não encontrado" if missing
*/
func (service *Service) GetTrace(context context.Context, id string) (*Trace, error) {
	trace, err := service.repo.FindByID(context, id)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.NotFound("Registro não encontrado")
		}
		return nil, err
	}
	return trace, nil
}

// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package audit

import "context"

// # Repository Contract

// Repository persists history traces.
type Repository interface {

	/*
		Create stores a trace.

		Parameters:
		  - context: context.Context
		  - trace: *Trace

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, trace *Trace) error

	/*
		List returns traces matching filter, newest first.

		Parameters:
		  - context: context.Context
		  - filter: Filter
		  - limit: int
		  - offset: int

		Returns:
		  - []*Trace: Page of traces
		  - int: Total matching count
		  - error: Retrieval failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Trace, int, error)

	/*
		FindByID returns a single trace.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Trace: Hydrated entity
		  - error: dberr.ErrNotFound or retrieval failures
	*/
	FindByID(context context.Context, id string) (*Trace, error)
}

// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

/*
Package audit records who changed what in the back office.

Every create, update and delete of a collaborator, branch, group, region,
deliveryman or client stores a history trace: a snapshot of the acting user
plus a field-level diff between the old and the new JSON form of the entity.

# Guarantees

Recording is best effort. A failed write is logged and never fails the
business operation that triggered it.
*/
package audit

import (
	"time"

	"github.com/johnvilela/motolink/internal/platform/sec"
)

// # Enums

// Action is the kind of mutation a trace describes.
type Action string

const (
	ActionCreated Action = "CREATED"
	ActionUpdated Action = "UPDATED"
	ActionDeleted Action = "DELETED"
)

// Actions lists every known action.
var Actions = []Action{ActionCreated, ActionUpdated, ActionDeleted}

// EntityType names the mutated aggregate.
type EntityType string

const (
	EntityUser        EntityType = "USER"
	EntityBranch      EntityType = "BRANCH"
	EntityGroup       EntityType = "GROUP"
	EntityRegion      EntityType = "REGION"
	EntityDeliveryman EntityType = "DELIVERYMAN"
	EntityClient      EntityType = "CLIENT"
)

// EntityTypes lists every known entity type.
var EntityTypes = []EntityType{EntityUser, EntityBranch, EntityGroup, EntityRegion, EntityDeliveryman, EntityClient}

// # Core Entities

// Actor is the snapshot of the user who performed the change.
type Actor struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Email string       `json:"email"`
	Role  sec.UserRole `json:"role"`
}

// ActorFrom snapshots a principal.
func ActorFrom(principal *sec.Principal) Actor {
	if principal == nil {
		return Actor{}
	}
	return Actor{ID: principal.UserID, Name: principal.Name, Email: principal.Email, Role: principal.Role}
}

// Change holds the old and new value of one field.
type Change struct {
	Old any `json:"old"`
	New any `json:"new"`
}

// Trace is one stored history entry.
type Trace struct {
	ID         string            `json:"id"`
	UserID     string            `json:"userId"`
	User       Actor             `json:"user"`
	Action     Action            `json:"action"`
	EntityType EntityType        `json:"entityType"`
	EntityID   string            `json:"entityId"`
	Changes    map[string]Change `json:"changes"`
	CreatedAt  time.Time         `json:"createdAt"`
}

// Entry is what callers hand to [Service.Record].
type Entry struct {
	Actor      *sec.Principal
	Action     Action
	EntityType EntityType
	EntityID   string
	New        any
	Old        any
}

// # Search & Filtering

// Filter narrows trace listings. Empty fields are ignored.
type Filter struct {
	EntityType EntityType
	UserID     string
	EntityID   string
	Action     Action
}

// # Field Identifiers

const (
	FieldEntityType = "entityType"
	FieldUserID     = "userId"
	FieldEntityID   = "entityId"
	FieldAction     = "action"
)

// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

/*
Package uuid generates the primary keys of every Motolink table.

Identifiers are UUIDv7: time ordered, so the keyset cursor of list endpoints
can compare them directly and B-tree inserts stay append-only.
*/
package uuid

import "github.com/google/uuid"

// New generates a new UUIDv7 string.
func New() string {
	id, err := uuid.NewV7()

	// entropy failure is an unrecoverable system-level error
	if err != nil {
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}

	return id.String()
}

// Valid reports whether s parses as a UUID of any version.
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}

// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

/*
Package pointer helps with the optional fields of partial update payloads.

A nil pointer means "leave unchanged"; [Apply] copies a provided value onto
the stored entity.
*/
package pointer

// To returns a pointer to the provided value.
func To[T any](v T) *T {
	return &v
}

// Val safely dereferences a pointer, returning the zero value if nil.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Apply stores *src into dst when src is set.
func Apply[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

// Package mask strips the display masks of Brazilian phone numbers,
// CPF/CNPJ documents and CEPs before they are stored.
package mask

import "strings"

// Clean keeps only the ASCII digits of s ("(21) 99999-0000" gives "21999990000").
func Clean(s string) string {
	var builder strings.Builder
	builder.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			builder.WriteRune(r)
		}
	}
	return builder.String()
}

// CleanPtr applies [Clean] to an optional value; nil stays nil.
func CleanPtr(s *string) *string {
	if s == nil {
		return nil
	}
	cleaned := Clean(*s)
	return &cleaned
}

// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/johnvilela/motolink/pkg/slug"
)

/*
TestFrom checks accent folding and hyphenation.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"São Paulo", "sao-paulo"},
		{"  Região   Norte!! ", "regiao-norte"},
		{"Açaí & Cia", "acai-cia"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, slug.From(tt.input))
		})
	}
}

/*
TestCode checks the derived branch codes.
*/
func TestCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Campinas", "CAM"},
		{"Rio de Janeiro", "RDJ"},
		{"São Paulo", "SP"},
		{"RJ", "RJ"},
		{"Belo Horizonte Centro Sul", "BHC"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, slug.Code(tt.input, 3))
		})
	}
}

/*
TestFold lowercases and strips accents without touching separators.
*/
func TestFold(t *testing.T) {
	assert.Equal(t, "joao da silva", slug.Fold("JOÃO da Silva"))
	assert.Equal(t, "regiao-sul", slug.Fold("Região-Sul"))
}

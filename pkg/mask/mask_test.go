// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package mask_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/johnvilela/motolink/pkg/mask"
)

/*
TestClean removes every non-digit character.
*/
func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"phone", "(21) 99999-0000", "21999990000"},
		{"cpf", "123.456.789-09", "12345678909"},
		{"cnpj", "12.345.678/0001-95", "12345678000195"},
		{"cep", "20040-020", "20040020"},
		{"already_clean", "12345", "12345"},
		{"empty", "", ""},
		{"non_ascii_digits", "١٢٣-45", "45"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, mask.Clean(tt.input))
		})
	}
}

/*
TestCleanPtr keeps nil values untouched.
*/
func TestCleanPtr(t *testing.T) {
	assert.Nil(t, mask.CleanPtr(nil))

	value := "(11) 3333-4444"
	assert.Equal(t, "1133334444", *mask.CleanPtr(&value))
}

// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package audit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnvilela/motolink/internal/system/audit"
)

type region struct {
	Name        string            `json:"name"`
	Description *string           `json:"description"`
	Tags        []string          `json:"tags,omitempty"`
	Meta        map[string]string `json:"meta,omitempty"`
}

func strPtr(value string) *string { return &value }

/*
TestDiff covers creation, updates, unchanged objects and nested values.
*/
func TestDiff(t *testing.T) {
	tests := []struct {
		name     string
		newValue any
		oldValue any
		expected map[string]audit.Change
	}{
		{
			name:     "creation_lists_non_null_fields",
			newValue: region{Name: "Centro"},
			oldValue: nil,
			expected: map[string]audit.Change{"name": {Old: nil, New: "Centro"}},
		},
		{
			name:     "deletion_lists_old_fields",
			newValue: nil,
			oldValue: region{Name: "Centro", Description: strPtr("Zona sul")},
			expected: map[string]audit.Change{
				"name":        {Old: "Centro", New: nil},
				"description": {Old: "Zona sul", New: nil},
			},
		},
		{
			name:     "changed_field_only",
			newValue: region{Name: "Centro", Description: strPtr("Novo")},
			oldValue: region{Name: "Centro", Description: strPtr("Antigo")},
			expected: map[string]audit.Change{"description": {Old: "Antigo", New: "Novo"}},
		},
		{
			name:     "unchanged",
			newValue: region{Name: "Centro", Tags: []string{"a"}},
			oldValue: region{Name: "Centro", Tags: []string{"a"}},
			expected: map[string]audit.Change{},
		},
		{
			name:     "omitted_equals_null",
			newValue: map[string]any{"name": "Centro", "description": nil},
			oldValue: map[string]any{"name": "Centro"},
			expected: map[string]audit.Change{},
		},
		{
			name:     "nested_key_order_ignored",
			newValue: map[string]any{"meta": map[string]any{"a": 1, "b": 2}},
			oldValue: map[string]any{"meta": map[string]any{"b": 2, "a": 1}},
			expected: map[string]audit.Change{},
		},
		{
			name:     "slice_change",
			newValue: region{Name: "Centro", Tags: []string{"a", "b"}},
			oldValue: region{Name: "Centro", Tags: []string{"a"}},
			expected: map[string]audit.Change{"tags": {Old: []any{"a"}, New: []any{"a", "b"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changes, err := audit.Diff(tt.newValue, tt.oldValue)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, changes)
		})
	}
}

/*
TestDiff_NonObject rejects values that do not encode to a JSON object.
*/
func TestDiff_NonObject(t *testing.T) {
	_, err := audit.Diff([]string{"a"}, nil)
	assert.Error(t, err)
}

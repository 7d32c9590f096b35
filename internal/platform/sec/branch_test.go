// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/johnvilela/motolink/internal/platform/sec"
)

/*
TestResolveBranch covers selection validation and fallback.
*/
func TestResolveBranch(t *testing.T) {
	user := &sec.Principal{Role: sec.RoleUser, Branches: []string{"b1", "b2"}}
	orphan := &sec.Principal{Role: sec.RoleManager}
	admin := &sec.Principal{Role: sec.RoleAdmin}

	tests := []struct {
		name     string
		user     *sec.Principal
		current  string
		fallback string
		want     sec.BranchSelection
	}{
		{"valid_selection", user, "b2", "def", sec.BranchSelection{ID: "b2"}},
		{"foreign_branch_falls_back_to_first", user, "b3", "def", sec.BranchSelection{ID: "b1", Repaired: true}},
		{"empty_selection", user, "", "def", sec.BranchSelection{ID: "b1", Repaired: true}},
		{"no_branches_uses_default", orphan, "b3", "def", sec.BranchSelection{ID: "def", Repaired: true}},
		{"no_branches_no_default", orphan, "", "", sec.BranchSelection{}},
		{"admin_any_branch", admin, "b9", "def", sec.BranchSelection{ID: "b9"}},
		{"admin_unscoped", admin, "", "def", sec.BranchSelection{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sec.ResolveBranch(tt.user, tt.current, tt.fallback))
		})
	}
}

/*
TestIsBranchAllowed checks membership and the admin bypass.
*/
func TestIsBranchAllowed(t *testing.T) {
	user := &sec.Principal{Role: sec.RoleUser, Branches: []string{"b1"}}

	assert.True(t, sec.IsBranchAllowed(user, "b1"))
	assert.False(t, sec.IsBranchAllowed(user, "b2"))
	assert.True(t, sec.IsBranchAllowed(&sec.Principal{Role: sec.RoleAdmin}, "b2"))
	assert.False(t, sec.IsBranchAllowed(nil, "b1"))
}

// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/johnvilela/motolink/internal/platform/sec"
)

/*
TestHasPermissions covers the decision table of the authorization guard.
*/
func TestHasPermissions(t *testing.T) {
	manager := &sec.Principal{
		UserID:      "u1",
		Role:        sec.RoleManager,
		Permissions: []string{"users.view", "users.create", "users.edit", "users.delete"},
	}

	tests := []struct {
		name     string
		user     *sec.Principal
		required []string
		want     bool
	}{
		{"nil_user", nil, []string{"users.view"}, false},
		{"nil_user_empty_required", nil, nil, false},
		{"admin_without_keys", &sec.Principal{Role: sec.RoleAdmin}, []string{"branches.delete"}, true},
		{"admin_unknown_key", &sec.Principal{Role: sec.RoleAdmin}, []string{"anything.at.all"}, true},
		{"empty_required", &sec.Principal{Role: sec.RoleUser}, nil, true},
		{"single_granted", manager, []string{"users.view"}, true},
		{"all_granted", manager, []string{"users.view", "users.delete"}, true},
		{"one_missing", manager, []string{"users.view", "branches.view"}, false},
		{"missing_only", manager, []string{"branches.delete"}, false},
		{"no_wildcards", &sec.Principal{Role: sec.RoleUser, Permissions: []string{"users.*"}}, []string{"users.view"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sec.HasPermissions(tt.user, tt.required))
		})
	}
}

/*
TestHasPermissions_Monotonic checks that adding required keys can only turn
a grant into a denial, never the other way around.
*/
func TestHasPermissions_Monotonic(t *testing.T) {
	user := &sec.Principal{Role: sec.RoleUser, Permissions: []string{"groups.view", "regions.view"}}
	base := []string{"groups.view"}

	assert.True(t, sec.HasPermissions(user, base))

	extended := append(append([]string(nil), base...), "clients.view")
	assert.False(t, sec.HasPermissions(user, extended))

	subset := []string{}
	assert.True(t, sec.HasPermissions(user, subset))
}

/*
TestLandingPath maps roles to their landing pages.
*/
func TestLandingPath(t *testing.T) {
	assert.Equal(t, "/app/admin/dashboard", sec.LandingPath(sec.RoleAdmin))
	assert.Equal(t, "/app/dashboard", sec.LandingPath(sec.RoleManager))
	assert.Equal(t, "/app/dashboard", sec.LandingPath(sec.RoleUser))
	assert.Equal(t, "/app/desconhecido", sec.LandingPath(sec.UserRole("GUEST")))
}

// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnvilela/motolink/internal/platform/sec"
)

/*
TestDefaultCatalog_Vocabulary checks the embedded catalog contents.
*/
func TestDefaultCatalog_Vocabulary(t *testing.T) {
	catalog := sec.DefaultCatalog()

	assert.Equal(t, 2, catalog.Version())
	assert.Equal(t, "Colaboradores", catalog.Label(sec.ModuleUsers))
	assert.Equal(t, "Filiais", catalog.Label(sec.ModuleBranches))
	assert.Equal(t, "unknown", catalog.Label("unknown"))

	assert.Len(t, catalog.Keys(), len(catalog.Modules())*len(catalog.Actions()))
	assert.True(t, catalog.IsKnown("users.delete"))
	assert.False(t, catalog.IsKnown("users.archive"))
	assert.Equal(t, "users.delete", sec.Key(sec.ModuleUsers, sec.ActionDelete))
}

/*
TestDefaultCatalog_RoleDefaults checks wildcard expansion of role grants.
*/
func TestDefaultCatalog_RoleDefaults(t *testing.T) {
	catalog := sec.DefaultCatalog()

	manager := catalog.DefaultsFor(sec.RoleManager)
	assert.Contains(t, manager, "users.view")
	assert.Contains(t, manager, "users.delete")
	assert.NotContains(t, manager, "branches.create")

	user := catalog.DefaultsFor(sec.RoleUser)
	assert.Equal(t, []string{"groups.view", "regions.view", "deliverymen.view", "clients.view"}, user)

	admin := catalog.DefaultsFor(sec.RoleAdmin)
	assert.ElementsMatch(t, catalog.Keys(), admin)
}

/*
TestDefaultCatalog_DefaultsSince lists the grants introduced after a version.
*/
func TestDefaultCatalog_DefaultsSince(t *testing.T) {
	catalog := sec.DefaultCatalog()

	added := catalog.DefaultsSince(sec.RoleManager, 1)
	assert.NotContains(t, added, "users.view")
	assert.Contains(t, added, "regions.edit")

	assert.Empty(t, catalog.DefaultsSince(sec.RoleManager, catalog.Version()))
}

/*
TestCatalog_Unknown returns rejected keys sorted.
*/
func TestCatalog_Unknown(t *testing.T) {
	catalog := sec.DefaultCatalog()

	assert.Empty(t, catalog.Unknown([]string{"users.view", "clients.edit"}))
	assert.Equal(t, []string{"a.b", "users.fly"}, catalog.Unknown([]string{"users.view", "users.fly", "a.b"}))
}

/*
TestLoadCatalog_Rejects covers malformed catalogs.
*/
func TestLoadCatalog_Rejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no_version", "actions: [{key: view}]\nmodules: [{key: users, since: 1}]\n"},
		{"no_modules", "version: 1\nactions: [{key: view}]\n"},
		{"since_beyond_version", "version: 1\nactions: [{key: view}]\nmodules: [{key: users, since: 2}]\n"},
		{"unknown_role", "version: 1\nactions: [{key: view}]\nmodules: [{key: users, since: 1}]\nroles: {ROOT: [users.view]}\n"},
		{"unknown_grant", "version: 1\nactions: [{key: view}]\nmodules: [{key: users, since: 1}]\nroles: {USER: [users.edit]}\n"},
		{"unknown_module_wildcard", "version: 1\nactions: [{key: view}]\nmodules: [{key: users, since: 1}]\nroles: {USER: [clients.*]}\n"},
		{"malformed_grant", "version: 1\nactions: [{key: view}]\nmodules: [{key: users, since: 1}]\nroles: {USER: [users]}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sec.LoadCatalog([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

/*
TestLoadCatalog_Minimal loads a small valid catalog.
*/
func TestLoadCatalog_Minimal(t *testing.T) {
	catalog, err := sec.LoadCatalog([]byte("version: 1\nactions: [{key: view, label: Ver}]\nmodules: [{key: users, label: Pessoas, since: 1}]\nroles: {USER: [users.*]}\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"users.view"}, catalog.Keys())
	assert.Equal(t, []string{"users.view"}, catalog.DefaultsFor(sec.RoleUser))
	assert.Empty(t, catalog.DefaultsFor(sec.RoleManager))
}

// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package sec

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// # Catalog Vocabulary

// Module identifiers. They must match the keys of catalog.yaml.
const (
	ModuleUsers       = "users"
	ModuleBranches    = "branches"
	ModuleGroups      = "groups"
	ModuleRegions     = "regions"
	ModuleDeliverymen = "deliverymen"
	ModuleClients     = "clients"
)

// Action identifiers.
const (
	ActionView   = "view"
	ActionCreate = "create"
	ActionEdit   = "edit"
	ActionDelete = "delete"
)

// wildcard expands to every action of a module in role defaults.
const wildcard = "*"

// Module is a named area of the back office guarded by permission keys.
type Module struct {
	Key   string `yaml:"key"   json:"key"`
	Label string `yaml:"label" json:"label"`
	Since int    `yaml:"since" json:"since"`
}

// Action is an operation that can be granted on a module.
type Action struct {
	Key   string `yaml:"key"   json:"key"`
	Label string `yaml:"label" json:"label"`
}

type catalogFile struct {
	Version int                 `yaml:"version"`
	Actions []Action            `yaml:"actions"`
	Modules []Module            `yaml:"modules"`
	Roles   map[string][]string `yaml:"roles"`
}

// Catalog is the single source of truth for modules, actions, the keys
// derived from them and the default grants of every role.
type Catalog struct {
	version  int
	modules  []Module
	actions  []Action
	keys     []string
	since    map[string]int
	defaults map[UserRole][]string
}

// Key builds a permission key from a module and an action.
func Key(module, action string) string {
	return module + "." + action
}

// LoadCatalog parses and checks a YAML catalog.
//
// Role grants may use "<module>.*" which expands to every action. Any grant
// naming a module or action absent from the catalog is rejected.
func LoadCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("sec: failed to parse catalog: %w", err)
	}

	if file.Version < 1 {
		return nil, fmt.Errorf("sec: catalog version must be positive")
	}
	if len(file.Modules) == 0 || len(file.Actions) == 0 {
		return nil, fmt.Errorf("sec: catalog needs at least one module and one action")
	}

	catalog := &Catalog{
		version:  file.Version,
		modules:  file.Modules,
		actions:  file.Actions,
		since:    make(map[string]int),
		defaults: make(map[UserRole][]string),
	}

	for _, module := range file.Modules {
		if module.Since < 1 || module.Since > file.Version {
			return nil, fmt.Errorf("sec: module %q has since=%d outside 1..%d", module.Key, module.Since, file.Version)
		}
		for _, action := range file.Actions {
			key := Key(module.Key, action.Key)
			if _, dup := catalog.since[key]; dup {
				return nil, fmt.Errorf("sec: duplicated permission key %q", key)
			}
			catalog.since[key] = module.Since
			catalog.keys = append(catalog.keys, key)
		}
	}

	for roleName, grants := range file.Roles {
		role := UserRole(roleName)
		if !role.Valid() {
			return nil, fmt.Errorf("sec: catalog grants unknown role %q", roleName)
		}

		expanded, err := catalog.expand(grants)
		if err != nil {
			return nil, fmt.Errorf("sec: role %s: %w", roleName, err)
		}
		catalog.defaults[role] = expanded
	}

	return catalog, nil
}

var (
	defaultCatalog     *Catalog
	defaultCatalogOnce sync.Once
)

// DefaultCatalog returns the embedded catalog. The embedded file is part of
// the binary, a parse failure is a build defect and panics.
func DefaultCatalog() *Catalog {
	defaultCatalogOnce.Do(func() {
		catalog, err := LoadCatalog(catalogYAML)
		if err != nil {
			panic(err)
		}
		defaultCatalog = catalog
	})
	return defaultCatalog
}

// expand resolves wildcard grants into concrete keys, preserving catalog order.
func (catalog *Catalog) expand(grants []string) ([]string, error) {
	wanted := make(map[string]struct{})
	for _, grant := range grants {
		module, action, found := strings.Cut(grant, ".")
		if !found {
			return nil, fmt.Errorf("malformed grant %q", grant)
		}

		if action == wildcard {
			if catalog.Module(module) == nil {
				return nil, fmt.Errorf("unknown module %q", module)
			}
			for _, a := range catalog.actions {
				wanted[Key(module, a.Key)] = struct{}{}
			}
			continue
		}

		if !catalog.IsKnown(grant) {
			return nil, fmt.Errorf("unknown permission %q", grant)
		}
		wanted[grant] = struct{}{}
	}

	result := make([]string, 0, len(wanted))
	for _, key := range catalog.keys {
		if _, ok := wanted[key]; ok {
			result = append(result, key)
		}
	}
	return result, nil
}

// # Queries

// Version returns the catalog revision.
func (catalog *Catalog) Version() int { return catalog.version }

// Modules returns the catalog modules in declaration order.
func (catalog *Catalog) Modules() []Module {
	return append([]Module(nil), catalog.modules...)
}

// Actions returns the catalog actions in declaration order.
func (catalog *Catalog) Actions() []Action {
	return append([]Action(nil), catalog.actions...)
}

// Module looks a module up by key. It returns nil when unknown.
func (catalog *Catalog) Module(key string) *Module {
	for i := range catalog.modules {
		if catalog.modules[i].Key == key {
			return &catalog.modules[i]
		}
	}
	return nil
}

// Label returns the display label of a module, or the key itself when unknown.
func (catalog *Catalog) Label(module string) string {
	if m := catalog.Module(module); m != nil {
		return m.Label
	}
	return module
}

// Keys returns every permission key of the catalog.
func (catalog *Catalog) Keys() []string {
	return append([]string(nil), catalog.keys...)
}

// IsKnown reports whether key belongs to the catalog.
func (catalog *Catalog) IsKnown(key string) bool {
	_, ok := catalog.since[key]
	return ok
}

// Unknown returns the keys not present in the catalog, sorted.
func (catalog *Catalog) Unknown(keys []string) []string {
	var unknown []string
	for _, key := range keys {
		if !catalog.IsKnown(key) {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	return unknown
}

// DefaultsFor returns the keys granted to role when an account is created
// without an explicit permission list.
func (catalog *Catalog) DefaultsFor(role UserRole) []string {
	return append([]string(nil), catalog.defaults[role]...)
}

// DefaultsSince returns the default keys of role introduced after version.
func (catalog *Catalog) DefaultsSince(role UserRole, version int) []string {
	var keys []string
	for _, key := range catalog.defaults[role] {
		if catalog.since[key] > version {
			keys = append(keys, key)
		}
	}
	return keys
}

// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package region_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnvilela/motolink/internal/core/region"
	"github.com/johnvilela/motolink/internal/platform/apperr"
	"github.com/johnvilela/motolink/internal/platform/dberr"
	"github.com/johnvilela/motolink/internal/platform/sec"
	"github.com/johnvilela/motolink/internal/system/audit"
)

const (
	branchRJ = "0190a000-0000-7000-8000-000000000001"
	branchSP = "0190a000-0000-7000-8000-000000000002"
)

type fakeRepository struct {
	regions    map[string]*region.Region
	referenced map[string]bool
}

func (repository *fakeRepository) List(_ context.Context, filter region.Filter, limit, offset int) ([]*region.Region, int, error) {
	matched := []*region.Region{}
	for _, item := range repository.regions {
		if filter.BranchID == "" || item.BranchID == filter.BranchID {
			matched = append(matched, item)
		}
	}
	return matched, len(matched), nil
}

func (repository *fakeRepository) FindByID(_ context.Context, id, branchID string) (*region.Region, error) {
	item, ok := repository.regions[id]
	if !ok || (branchID != "" && item.BranchID != branchID) {
		return nil, dberr.ErrNotFound
	}
	copied := *item
	return &copied, nil
}

func (repository *fakeRepository) Create(_ context.Context, item *region.Region) error {
	repository.regions[item.ID] = item
	return nil
}

func (repository *fakeRepository) Update(_ context.Context, item *region.Region) error {
	repository.regions[item.ID] = item
	return nil
}

func (repository *fakeRepository) Delete(_ context.Context, id string) error {
	if repository.referenced[id] {
		return region.ErrReferenced
	}
	delete(repository.regions, id)
	return nil
}

type fakeRecorder struct{ entries []audit.Entry }

func (fake *fakeRecorder) Record(_ context.Context, entry audit.Entry) {
	fake.entries = append(fake.entries, entry)
}

var (
	admin   = &sec.Principal{UserID: "admin", Role: sec.RoleAdmin}
	manager = &sec.Principal{UserID: "manager", Role: sec.RoleManager, Branches: []string{branchRJ}}
)

func newService() (*region.Service, *fakeRepository, *fakeRecorder) {
	repository := &fakeRepository{
		regions: map[string]*region.Region{
			"zona-sul": {ID: "zona-sul", Name: "Zona Sul", BranchID: branchRJ},
			"centro":   {ID: "centro", Name: "Centro", BranchID: branchSP},
		},
		referenced: map[string]bool{"zona-sul": true},
	}
	recorder := &fakeRecorder{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return region.NewService(repository, recorder, logger), repository, recorder
}

/*
TestCreateRegion checks branch assignment, validation and auditing.
*/
func TestCreateRegion(t *testing.T) {
	tests := []struct {
		name     string
		actor    *sec.Principal
		selected string
		input    region.Input
		branch   string
		code     string
	}{
		{"uses_selected_branch", manager, branchRJ, region.Input{Name: "  Barra  "}, branchRJ, ""},
		{"admin_explicit_branch", admin, "", region.Input{Name: "Moema", BranchID: branchSP}, branchSP, ""},
		{"foreign_branch", manager, branchRJ, region.Input{Name: "Moema", BranchID: branchSP}, "", apperr.CodeForbidden},
		{"missing_name", manager, branchRJ, region.Input{Name: " "}, "", apperr.CodeValidation},
		{"invalid_branch_id", admin, "", region.Input{Name: "Moema", BranchID: "sp"}, "", apperr.CodeValidation},
		{"no_branch_at_all", admin, "", region.Input{Name: "Moema"}, "", apperr.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repository, recorder := newService()

			created, err := service.CreateRegion(context.Background(), tt.actor, tt.selected, tt.input)
			if tt.code != "" {
				require.Error(t, err)
				assert.True(t, apperr.HasCode(err, tt.code))
				assert.Empty(t, recorder.entries)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.branch, created.BranchID)
			assert.NotEmpty(t, created.ID)
			assert.Contains(t, repository.regions, created.ID)

			require.Len(t, recorder.entries, 1)
			assert.Equal(t, audit.ActionCreated, recorder.entries[0].Action)
			assert.Equal(t, audit.EntityRegion, recorder.entries[0].EntityType)
		})
	}

	t.Run("trims_name", func(t *testing.T) {
		service, _, _ := newService()
		created, err := service.CreateRegion(context.Background(), manager, branchRJ, region.Input{Name: "  Barra  "})
		require.NoError(t, err)
		assert.Equal(t, "Barra", created.Name)
	})
}

/*
TestUpdateRegion checks scoping and the old/new snapshot of the trace.
*/
func TestUpdateRegion(t *testing.T) {
	t.Run("outside_scope_is_not_found", func(t *testing.T) {
		service, _, _ := newService()
		_, err := service.UpdateRegion(context.Background(), manager, "centro", branchRJ, region.Input{Name: "Centro"})
		assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
	})

	t.Run("keeps_branch_when_omitted", func(t *testing.T) {
		service, repository, recorder := newService()

		updated, err := service.UpdateRegion(context.Background(), manager, "zona-sul", branchRJ, region.Input{Name: "Zona Sul 2", Description: "Praias"})
		require.NoError(t, err)
		assert.Equal(t, branchRJ, updated.BranchID)
		assert.Equal(t, "Zona Sul 2", repository.regions["zona-sul"].Name)

		require.Len(t, recorder.entries, 1)
		old := recorder.entries[0].Old.(*region.Region)
		assert.Equal(t, "Zona Sul", old.Name)
	})

	t.Run("cannot_move_to_foreign_branch", func(t *testing.T) {
		service, _, _ := newService()
		_, err := service.UpdateRegion(context.Background(), manager, "zona-sul", branchRJ, region.Input{Name: "Zona Sul", BranchID: branchSP})
		assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))
	})
}

/*
TestDeleteRegion checks the reference guard.
*/
func TestDeleteRegion(t *testing.T) {
	service, repository, recorder := newService()

	err := service.DeleteRegion(context.Background(), admin, "zona-sul", "")
	assert.True(t, apperr.HasCode(err, apperr.CodeBadRequest))
	assert.Contains(t, repository.regions, "zona-sul")

	require.NoError(t, service.DeleteRegion(context.Background(), admin, "centro", ""))
	assert.NotContains(t, repository.regions, "centro")

	err = service.DeleteRegion(context.Background(), admin, "centro", "")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	require.Len(t, recorder.entries, 1)
	assert.Equal(t, audit.ActionDeleted, recorder.entries[0].Action)
}

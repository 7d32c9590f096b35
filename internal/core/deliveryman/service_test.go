// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package deliveryman_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnvilela/motolink/internal/core/deliveryman"
	"github.com/johnvilela/motolink/internal/core/region"
	"github.com/johnvilela/motolink/internal/platform/apperr"
	"github.com/johnvilela/motolink/internal/platform/dberr"
	"github.com/johnvilela/motolink/internal/platform/sec"
	"github.com/johnvilela/motolink/internal/system/audit"
	"github.com/johnvilela/motolink/pkg/pointer"
)

const (
	branchRJ   = "0190a000-0000-7000-8000-000000000001"
	branchSP   = "0190a000-0000-7000-8000-000000000002"
	regionSul  = "0190a000-0000-7000-8000-0000000000a1"
	regionMoem = "0190a000-0000-7000-8000-0000000000a2"
)

// # Fakes

type fakeRepository struct {
	items map[string]*deliveryman.Deliveryman
}

func (repository *fakeRepository) List(_ context.Context, filter deliveryman.Filter, _, _ int) ([]*deliveryman.Deliveryman, int, error) {
	result := []*deliveryman.Deliveryman{}
	for _, item := range repository.items {
		if item.IsDeleted || (filter.BranchID != "" && item.BranchID != filter.BranchID) {
			continue
		}
		if filter.IsBlocked != nil && item.IsBlocked != *filter.IsBlocked {
			continue
		}
		result = append(result, item)
	}
	return result, len(result), nil
}

func (repository *fakeRepository) FindByID(_ context.Context, id, branchID string) (*deliveryman.Deliveryman, error) {
	item, ok := repository.items[id]
	if !ok || (branchID != "" && item.BranchID != branchID) {
		return nil, dberr.ErrNotFound
	}
	copied := *item
	return &copied, nil
}

func (repository *fakeRepository) Create(_ context.Context, item *deliveryman.Deliveryman) error {
	repository.items[item.ID] = item
	return nil
}

func (repository *fakeRepository) Update(_ context.Context, item *deliveryman.Deliveryman) error {
	repository.items[item.ID] = item
	return nil
}

func (repository *fakeRepository) SoftDelete(_ context.Context, id string) error {
	repository.items[id].IsDeleted = true
	return nil
}

func (repository *fakeRepository) SetBlocked(_ context.Context, item *deliveryman.Deliveryman) error {
	repository.items[item.ID].IsBlocked = item.IsBlocked
	return nil
}

type fakeRegions map[string]string

func (regions fakeRegions) GetRegion(_ context.Context, id, branchID string) (*region.Region, error) {
	owner, ok := regions[id]
	if !ok || (branchID != "" && owner != branchID) {
		return nil, apperr.NotFound("Região não encontrada")
	}
	return &region.Region{ID: id, BranchID: owner}, nil
}

type fakeRecorder struct{ entries []audit.Entry }

func (fake *fakeRecorder) Record(_ context.Context, entry audit.Entry) {
	fake.entries = append(fake.entries, entry)
}

// # Fixture

var manager = &sec.Principal{UserID: "m1", Role: sec.RoleManager, Branches: []string{branchRJ}}

func newService() (*deliveryman.Service, *fakeRepository, *fakeRecorder) {
	repository := &fakeRepository{items: map[string]*deliveryman.Deliveryman{
		"joao":  {ID: "joao", Name: "João", BranchID: branchRJ},
		"gone":  {ID: "gone", Name: "Carlos", BranchID: branchRJ, IsDeleted: true},
		"paulo": {ID: "paulo", Name: "Paulo", BranchID: branchSP},
	}}
	regions := fakeRegions{regionSul: branchRJ, regionMoem: branchSP}
	recorder := &fakeRecorder{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return deliveryman.NewService(repository, regions, recorder, logger), repository, recorder
}

func validInput() deliveryman.Input {
	return deliveryman.Input{
		Name:         "Marcos Lima",
		Document:     "123.456.789-09",
		Phone:        "(21) 99876-5432",
		ContractType: "CLT",
		MainPixKey:   "marcos@pix.com",
		VehiclePlate: "abc-1d23",
	}
}

// # Tests

/*
TestCreateDeliveryman checks normalization and the region/branch rules.
*/
func TestCreateDeliveryman(t *testing.T) {
	t.Run("normalizes_fields", func(t *testing.T) {
		service, _, recorder := newService()

		input := validInput()
		input.RegionID = pointer.To(regionSul)

		created, err := service.CreateDeliveryman(context.Background(), manager, branchRJ, input)
		require.NoError(t, err)
		assert.Equal(t, "12345678909", created.Document)
		assert.Equal(t, "21998765432", created.Phone)
		assert.Equal(t, "ABC1D23", created.VehiclePlate)
		assert.Equal(t, []string{}, created.Files)
		assert.Equal(t, branchRJ, created.BranchID)

		require.Len(t, recorder.entries, 1)
		assert.Equal(t, audit.EntityDeliveryman, recorder.entries[0].EntityType)
	})

	tests := []struct {
		name   string
		mutate func(*deliveryman.Input)
		code   string
	}{
		{"region_of_other_branch", func(input *deliveryman.Input) { input.RegionID = pointer.To(regionMoem) }, apperr.CodeValidation},
		{"foreign_branch", func(input *deliveryman.Input) { input.BranchID = branchSP }, apperr.CodeForbidden},
		{"missing_pix", func(input *deliveryman.Input) { input.MainPixKey = "" }, apperr.CodeValidation},
		{"short_phone", func(input *deliveryman.Input) { input.Phone = "9999" }, apperr.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, recorder := newService()
			input := validInput()
			tt.mutate(&input)

			_, err := service.CreateDeliveryman(context.Background(), manager, branchRJ, input)
			assert.True(t, apperr.HasCode(err, tt.code), "got %v", err)
			assert.Empty(t, recorder.entries)
		})
	}

	t.Run("blank_region_is_cleared", func(t *testing.T) {
		service, _, _ := newService()
		input := validInput()
		input.RegionID = pointer.To(" ")

		created, err := service.CreateDeliveryman(context.Background(), manager, branchRJ, input)
		require.NoError(t, err)
		assert.Nil(t, created.RegionID)
	})
}

/*
TestGetDeliveryman checks that deleted and foreign couriers are hidden.
*/
func TestGetDeliveryman(t *testing.T) {
	service, _, _ := newService()

	_, err := service.GetDeliveryman(context.Background(), "joao", branchRJ)
	require.NoError(t, err)

	for _, id := range []string{"gone", "paulo", "missing"} {
		_, err := service.GetDeliveryman(context.Background(), id, branchRJ)
		assert.True(t, apperr.HasCode(err, apperr.CodeNotFound), id)
	}
}

/*
TestUpdateAndDeleteDeliveryman checks the deleted-courier rejections.
*/
func TestUpdateAndDeleteDeliveryman(t *testing.T) {
	service, repository, recorder := newService()

	_, err := service.UpdateDeliveryman(context.Background(), manager, "gone", branchRJ, validInput())
	assert.True(t, apperr.HasCode(err, apperr.CodeBadRequest))

	updated, err := service.UpdateDeliveryman(context.Background(), manager, "joao", branchRJ, validInput())
	require.NoError(t, err)
	assert.Equal(t, "Marcos Lima", updated.Name)

	require.NoError(t, service.DeleteDeliveryman(context.Background(), manager, "joao", branchRJ))
	assert.True(t, repository.items["joao"].IsDeleted)

	err = service.DeleteDeliveryman(context.Background(), manager, "joao", branchRJ)
	assert.True(t, apperr.HasCode(err, apperr.CodeBadRequest))

	require.Len(t, recorder.entries, 2)
	assert.Equal(t, audit.ActionDeleted, recorder.entries[1].Action)
	assert.False(t, recorder.entries[1].Old.(*deliveryman.Deliveryman).IsDeleted)
}

/*
TestToggleBlock checks that the flag flips on every call.
*/
func TestToggleBlock(t *testing.T) {
	service, repository, recorder := newService()

	blocked, err := service.ToggleBlock(context.Background(), manager, "joao", branchRJ)
	require.NoError(t, err)
	assert.True(t, blocked.IsBlocked)
	assert.True(t, repository.items["joao"].IsBlocked)

	unblocked, err := service.ToggleBlock(context.Background(), manager, "joao", branchRJ)
	require.NoError(t, err)
	assert.False(t, unblocked.IsBlocked)

	require.Len(t, recorder.entries, 2)
	assert.Equal(t, audit.ActionUpdated, recorder.entries[0].Action)

	_, err = service.ToggleBlock(context.Background(), manager, "gone", branchRJ)
	assert.True(t, apperr.HasCode(err, apperr.CodeBadRequest))
}

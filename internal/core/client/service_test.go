// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package client_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnvilela/motolink/internal/core/client"
	"github.com/johnvilela/motolink/internal/core/group"
	"github.com/johnvilela/motolink/internal/core/region"
	"github.com/johnvilela/motolink/internal/platform/apperr"
	"github.com/johnvilela/motolink/internal/platform/dberr"
	"github.com/johnvilela/motolink/internal/platform/sec"
	"github.com/johnvilela/motolink/internal/system/audit"
	"github.com/johnvilela/motolink/pkg/pointer"
)

const (
	branchRJ    = "0190a000-0000-7000-8000-000000000001"
	branchSP    = "0190a000-0000-7000-8000-000000000002"
	regionSul   = "0190a000-0000-7000-8000-0000000000a1"
	regionMoema = "0190a000-0000-7000-8000-0000000000a2"
	groupRede   = "0190a000-0000-7000-8000-0000000000b1"
	groupSP     = "0190a000-0000-7000-8000-0000000000b2"

	cnpjPadaria = "11222333000181"
	cnpjMercado = "45678901000175"
)

// # Fakes

type fakeRepository struct {
	items map[string]*client.Client
}

func (repository *fakeRepository) List(_ context.Context, filter client.Filter, _, _ int) ([]*client.Client, int, error) {
	result := []*client.Client{}
	for _, item := range repository.items {
		if item.IsDeleted || (filter.BranchID != "" && item.BranchID != filter.BranchID) {
			continue
		}
		result = append(result, item)
	}
	return result, len(result), nil
}

func (repository *fakeRepository) Options(context context.Context, filter client.Filter) ([]*client.Option, error) {
	items, _, _ := repository.List(context, filter, 0, 0)
	options := make([]*client.Option, 0, len(items))
	for _, item := range items {
		options = append(options, &client.Option{ID: item.ID, Name: item.Name, CNPJ: item.CNPJ})
	}
	return options, nil
}

func (repository *fakeRepository) FindByID(_ context.Context, id, branchID string) (*client.Client, error) {
	item, ok := repository.items[id]
	if !ok || (branchID != "" && item.BranchID != branchID) {
		return nil, dberr.ErrNotFound
	}
	copied := *item
	return &copied, nil
}

func (repository *fakeRepository) FindByCNPJ(_ context.Context, cnpj string) (*client.Client, error) {
	for _, item := range repository.items {
		if !item.IsDeleted && item.CNPJ == cnpj {
			copied := *item
			return &copied, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (repository *fakeRepository) Create(_ context.Context, item *client.Client) error {
	repository.items[item.ID] = item
	return nil
}

func (repository *fakeRepository) Update(_ context.Context, item *client.Client) error {
	repository.items[item.ID] = item
	return nil
}

func (repository *fakeRepository) SoftDelete(_ context.Context, id string) error {
	repository.items[id].IsDeleted = true
	return nil
}

// fakeLinks maps region and group IDs to their branch.
type fakeLinks map[string]string

func (links fakeLinks) owner(id, branchID string) (string, bool) {
	owner, ok := links[id]
	return owner, ok && (branchID == "" || owner == branchID)
}

func (links fakeLinks) GetRegion(_ context.Context, id, branchID string) (*region.Region, error) {
	owner, ok := links.owner(id, branchID)
	if !ok {
		return nil, apperr.NotFound("Região não encontrada")
	}
	return &region.Region{ID: id, BranchID: owner}, nil
}

func (links fakeLinks) GetGroup(_ context.Context, id, branchID string) (*group.Group, error) {
	owner, ok := links.owner(id, branchID)
	if !ok {
		return nil, apperr.NotFound("Grupo não encontrado")
	}
	return &group.Group{ID: id, BranchID: owner}, nil
}

type fakeRecorder struct{ entries []audit.Entry }

func (fake *fakeRecorder) Record(_ context.Context, entry audit.Entry) {
	fake.entries = append(fake.entries, entry)
}

// # Fixture

var manager = &sec.Principal{UserID: "m1", Role: sec.RoleManager, Branches: []string{branchRJ}}

func newService() (*client.Service, *fakeRepository, *fakeRecorder) {
	repository := &fakeRepository{items: map[string]*client.Client{
		"padaria":  {ID: "padaria", Name: "Padaria Central", CNPJ: cnpjPadaria, BranchID: branchRJ},
		"gone":     {ID: "gone", Name: "Bar Antigo", CNPJ: cnpjMercado, BranchID: branchRJ, IsDeleted: true},
		"paulista": {ID: "paulista", Name: "Pizzaria Paulista", BranchID: branchSP},
	}}
	links := fakeLinks{regionSul: branchRJ, regionMoema: branchSP, groupRede: branchRJ, groupSP: branchSP}
	recorder := &fakeRecorder{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return client.NewService(repository, links, links, recorder, logger), repository, recorder
}

func validInput() client.Input {
	return client.Input{
		Name:         "Mercado Bom Preço",
		CNPJ:         "45.678.901/0001-75",
		CEP:          "20040-020",
		Street:       "Rua da Assembleia",
		Number:       "10",
		City:         "Rio de Janeiro",
		Neighborhood: "Centro",
		UF:           "rj",
		ContactPhone: "(21) 3333-4444",
	}
}

// # Tests

/*
TestCreateClient checks normalization, CNPJ reuse after soft delete and the
validation rules.
*/
func TestCreateClient(t *testing.T) {
	t.Run("normalizes_fields", func(t *testing.T) {
		service, _, recorder := newService()

		input := validInput()
		input.RegionID = pointer.To(regionSul)
		input.GroupID = pointer.To(groupRede)
		input.CommercialCondition = &client.CommercialCondition{ClientPerDelivery: pointer.To(7.5)}

		created, err := service.CreateClient(context.Background(), manager, branchRJ, input)
		require.NoError(t, err)
		assert.Equal(t, cnpjMercado, created.CNPJ)
		assert.Equal(t, "20040020", created.CEP)
		assert.Equal(t, "2133334444", created.ContactPhone)
		assert.Equal(t, "RJ", created.UF)
		assert.Equal(t, branchRJ, created.BranchID)
		require.NotNil(t, created.CommercialCondition)
		assert.Equal(t, 7.5, *created.CommercialCondition.ClientPerDelivery)

		require.Len(t, recorder.entries, 1)
		assert.Equal(t, audit.EntityClient, recorder.entries[0].EntityType)
	})

	tests := []struct {
		name   string
		mutate func(*client.Input)
		code   string
	}{
		{"cnpj_in_use", func(input *client.Input) { input.CNPJ = cnpjPadaria }, apperr.CodeBadRequest},
		{"cnpj_check_digits", func(input *client.Input) { input.CNPJ = "11222333000182" }, apperr.CodeValidation},
		{"short_cep", func(input *client.Input) { input.CEP = "2004" }, apperr.CodeValidation},
		{"unknown_uf", func(input *client.Input) { input.UF = "XX" }, apperr.CodeValidation},
		{"region_of_other_branch", func(input *client.Input) { input.RegionID = pointer.To(regionMoema) }, apperr.CodeValidation},
		{"group_of_other_branch", func(input *client.Input) { input.GroupID = pointer.To(groupSP) }, apperr.CodeValidation},
		{"foreign_branch", func(input *client.Input) { input.BranchID = branchSP }, apperr.CodeForbidden},
		{"negative_price", func(input *client.Input) {
			input.CommercialCondition = &client.CommercialCondition{DeliverymanPerDelivery: pointer.To(-1.0)}
		}, apperr.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, recorder := newService()
			input := validInput()
			tt.mutate(&input)

			_, err := service.CreateClient(context.Background(), manager, branchRJ, input)
			assert.True(t, apperr.HasCode(err, tt.code), "got %v", err)
			assert.Empty(t, recorder.entries)
		})
	}
}

/*
TestGetClient checks that deleted and foreign clients are hidden.
*/
func TestGetClient(t *testing.T) {
	service, _, _ := newService()

	_, err := service.GetClient(context.Background(), "padaria", branchRJ)
	require.NoError(t, err)

	for _, id := range []string{"gone", "paulista", "missing"} {
		_, err := service.GetClient(context.Background(), id, branchRJ)
		assert.True(t, apperr.HasCode(err, apperr.CodeNotFound), id)
	}
}

/*
TestUpdateClient checks that a client may keep its own CNPJ but not take
another active one.
*/
func TestUpdateClient(t *testing.T) {
	service, repository, _ := newService()

	input := validInput()
	input.CNPJ = cnpjPadaria
	updated, err := service.UpdateClient(context.Background(), manager, "padaria", branchRJ, input)
	require.NoError(t, err)
	assert.Equal(t, "Mercado Bom Preço", updated.Name)

	repository.items["other"] = &client.Client{ID: "other", CNPJ: cnpjMercado, BranchID: branchRJ}
	_, err = service.UpdateClient(context.Background(), manager, "padaria", branchRJ, validInput())
	assert.True(t, apperr.HasCode(err, apperr.CodeBadRequest))

	_, err = service.UpdateClient(context.Background(), manager, "gone", branchRJ, validInput())
	assert.True(t, apperr.HasCode(err, apperr.CodeBadRequest))
}

/*
TestDeleteClient checks the soft delete and its history trace.
*/
func TestDeleteClient(t *testing.T) {
	service, repository, recorder := newService()

	require.NoError(t, service.DeleteClient(context.Background(), manager, "padaria", branchRJ))
	assert.True(t, repository.items["padaria"].IsDeleted)

	err := service.DeleteClient(context.Background(), manager, "padaria", branchRJ)
	assert.True(t, apperr.HasCode(err, apperr.CodeBadRequest))

	require.Len(t, recorder.entries, 1)
	assert.Equal(t, audit.ActionDeleted, recorder.entries[0].Action)
	assert.True(t, recorder.entries[0].New.(*client.Client).IsDeleted)
}

/*
TestListOptions checks that options skip deleted clients and respect scope.
*/
func TestListOptions(t *testing.T) {
	service, _, _ := newService()

	options, err := service.ListOptions(context.Background(), client.Filter{BranchID: branchRJ})
	require.NoError(t, err)
	require.Len(t, options, 1)
	assert.Equal(t, "Padaria Central", options[0].Name)
}

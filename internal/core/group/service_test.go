// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package group_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnvilela/motolink/internal/core/group"
	"github.com/johnvilela/motolink/internal/platform/apperr"
	"github.com/johnvilela/motolink/internal/platform/dberr"
	"github.com/johnvilela/motolink/internal/platform/sec"
	"github.com/johnvilela/motolink/internal/system/audit"
)

const (
	branchRJ = "0190a000-0000-7000-8000-000000000001"
	branchSP = "0190a000-0000-7000-8000-000000000002"
)

type mockRepo struct {
	groups     map[string]*group.Group
	withClient map[string]bool
	deleteErr  error
}

func (mock *mockRepo) List(_ context.Context, filter group.Filter, _, _ int) ([]*group.Group, int, error) {
	result := []*group.Group{}
	for _, item := range mock.groups {
		if filter.BranchID == "" || filter.BranchID == item.BranchID {
			result = append(result, item)
		}
	}
	return result, len(result), nil
}

func (mock *mockRepo) FindByID(_ context.Context, id, branchID string) (*group.Group, error) {
	item, ok := mock.groups[id]
	if !ok || (branchID != "" && branchID != item.BranchID) {
		return nil, dberr.ErrNotFound
	}
	copied := *item
	return &copied, nil
}

func (mock *mockRepo) Create(_ context.Context, item *group.Group) error {
	mock.groups[item.ID] = item
	return nil
}

func (mock *mockRepo) Update(_ context.Context, item *group.Group) error {
	mock.groups[item.ID] = item
	return nil
}

func (mock *mockRepo) Delete(_ context.Context, id string) error {
	if mock.deleteErr != nil {
		return mock.deleteErr
	}
	if mock.withClient[id] {
		return group.ErrReferenced
	}
	delete(mock.groups, id)
	return nil
}

type mockRecorder struct{ entries []audit.Entry }

func (mock *mockRecorder) Record(_ context.Context, entry audit.Entry) {
	mock.entries = append(mock.entries, entry)
}

func setup() (*group.Service, *mockRepo, *mockRecorder) {
	repo := &mockRepo{
		groups: map[string]*group.Group{
			"rede-sabor": {ID: "rede-sabor", Name: "Rede Sabor", BranchID: branchRJ},
			"empty":      {ID: "empty", Name: "Sem clientes", BranchID: branchRJ},
		},
		withClient: map[string]bool{"rede-sabor": true},
	}
	recorder := &mockRecorder{}
	return group.NewService(repo, recorder, slog.New(slog.NewTextHandler(io.Discard, nil))), repo, recorder
}

var manager = &sec.Principal{UserID: "m1", Role: sec.RoleManager, Branches: []string{branchRJ}}

/*
TestService_CreateGroup validates that a group lands on the selected branch
and that foreign branches are refused.
*/
func TestService_CreateGroup(t *testing.T) {
	service, repo, recorder := setup()

	created, err := service.CreateGroup(context.Background(), manager, branchRJ, group.Input{Name: " Rede Norte ", Description: "Lojas"})
	require.NoError(t, err)
	assert.Equal(t, "Rede Norte", created.Name)
	assert.Equal(t, branchRJ, created.BranchID)
	assert.Contains(t, repo.groups, created.ID)
	require.Len(t, recorder.entries, 1)
	assert.Equal(t, audit.EntityGroup, recorder.entries[0].EntityType)

	_, err = service.CreateGroup(context.Background(), manager, branchRJ, group.Input{Name: "Rede SP", BranchID: branchSP})
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))

	_, err = service.CreateGroup(context.Background(), manager, branchRJ, group.Input{})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

/*
TestService_UpdateGroup validates the trace snapshots of an update.
*/
func TestService_UpdateGroup(t *testing.T) {
	service, _, recorder := setup()

	updated, err := service.UpdateGroup(context.Background(), manager, "empty", branchRJ, group.Input{Name: "Renomeado"})
	require.NoError(t, err)
	assert.Equal(t, "Renomeado", updated.Name)

	require.Len(t, recorder.entries, 1)
	assert.Equal(t, "Sem clientes", recorder.entries[0].Old.(*group.Group).Name)
	assert.Equal(t, "Renomeado", recorder.entries[0].New.(*group.Group).Name)

	_, err = service.UpdateGroup(context.Background(), manager, "empty", branchSP, group.Input{Name: "X"})
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

/*
TestService_DeleteGroup validates the client reference guard.
*/
func TestService_DeleteGroup(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		deleteErr error
		code      string
	}{
		{"with_clients", "rede-sabor", nil, apperr.CodeBadRequest},
		{"unknown", "missing", nil, apperr.CodeNotFound},
		{"storage_failure", "empty", errors.New("connection reset"), ""},
		{"deleted", "empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo, recorder := setup()
			repo.deleteErr = tt.deleteErr

			err := service.DeleteGroup(context.Background(), manager, tt.id, branchRJ)
			switch {
			case tt.code != "":
				assert.True(t, apperr.HasCode(err, tt.code))
				assert.Empty(t, recorder.entries)
			case tt.deleteErr != nil:
				assert.ErrorIs(t, err, tt.deleteErr)
			default:
				require.NoError(t, err)
				assert.NotContains(t, repo.groups, tt.id)
				require.Len(t, recorder.entries, 1)
				assert.Equal(t, audit.ActionDeleted, recorder.entries[0].Action)
			}
		})
	}
}

// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/johnvilela/motolink/pkg/pagination"
)

/*
TestFromRequest_Clamping parses and clamps query parameters.
*/
func TestFromRequest_Clamping(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		page     int
		pageSize int
		offset   int
	}{
		{"defaults", "", 1, 10, 0},
		{"explicit", "?page=3&pageSize=20", 3, 20, 40},
		{"limit_alias", "?page=2&limit=5", 2, 5, 5},
		{"page_size_wins_over_limit", "?pageSize=7&limit=50", 1, 7, 0},
		{"too_large", "?pageSize=500", 1, 100, 0},
		{"negative", "?page=-4&pageSize=-1", 1, 10, 0},
		{"garbage", "?page=abc&pageSize=xyz", 1, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := pagination.FromRequest(httptest.NewRequest("GET", "/api/users"+tt.query, nil))
			assert.Equal(t, tt.page, params.Page)
			assert.Equal(t, tt.pageSize, params.PageSize)
			assert.Equal(t, tt.offset, params.Offset())
		})
	}
}

/*
TestFromRequest_Cursor ignores the page offset in keyset mode.
*/
func TestFromRequest_Cursor(t *testing.T) {
	params := pagination.FromRequest(httptest.NewRequest("GET", "/api/users?cursor=abc&page=4&limit=2", nil))
	assert.Equal(t, "abc", params.Cursor)
	assert.Equal(t, 0, params.Offset())
}

/*
TestNewMeta computes the page count and the next cursor.
*/
func TestNewMeta(t *testing.T) {
	meta := pagination.NewMeta(1, 10, 21)
	assert.Equal(t, 3, meta.TotalPages)

	assert.Equal(t, 0, pagination.NewMeta(1, 10, 0).TotalPages)
	assert.Equal(t, "last", meta.WithCursor("last", 10).NextCursor)
	assert.Empty(t, meta.WithCursor("last", 4).NextCursor)
}

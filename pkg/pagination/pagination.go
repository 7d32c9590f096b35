// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how page-based navigation is requested via query parameters
// and how the resulting metadata is delivered in the API response envelope.
// A keyset cursor is also accepted for infinite-scroll style lists.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultPageSize is the number of items per page if not specified.
	DefaultPageSize = 10
	// MaxPageSize is the upper bound for items per page to prevent system abuse.
	MaxPageSize = 100
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
)

// Params holds the parsed page, page size and cursor from a request's query string.
type Params struct {
	Page     int
	PageSize int

	// Cursor is the id of the last item already seen. When set, Page is ignored.
	Cursor string
}

// Offset returns the SQL OFFSET value derived from [Page] and [PageSize].
func (p Params) Offset() int {
	if p.Cursor != "" || p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Page       int    `json:"page"`
	PageSize   int    `json:"pageSize"`
	Total      int    `json:"total"`
	TotalPages int    `json:"totalPages"`
	NextCursor string `json:"nextCursor,omitempty"`
}

// NewMeta constructs pagination metadata for a response.
//
// It automatically calculates the TotalPages based on the total count and page size.
func NewMeta(page, pageSize, total int) Meta {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}

	return Meta{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

// WithCursor sets the cursor for the next page when the current one is full.
func (m Meta) WithCursor(lastID string, returned int) Meta {
	if returned >= m.PageSize && lastID != "" {
		m.NextCursor = lastID
	}
	return m
}

// FromRequest parses "page", "pageSize" and "cursor" query parameters from an
// HTTP request. "limit" is accepted as an alias of "pageSize".
//
// # Clamping
//
// Invalid or negative values fall back to [DefaultPage] and [DefaultPageSize];
// page sizes above [MaxPageSize] are clamped to it.
func FromRequest(r *http.Request) Params {
	page := parseIntParam(r, "page", DefaultPage)

	pageSize := parseIntParam(r, "pageSize", 0)
	if pageSize == 0 {
		pageSize = parseIntParam(r, "limit", DefaultPageSize)
	}

	if page < 1 {
		page = DefaultPage
	}

	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	return Params{Page: page, PageSize: pageSize, Cursor: r.URL.Query().Get("cursor")}
}

// parseIntParam parses a single integer query parameter with a fallback default.
func parseIntParam(r *http.Request, key string, defaultVal int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}

	return n
}

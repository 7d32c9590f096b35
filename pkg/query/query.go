// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

// Package query parses list filters from URL query strings.
package query

import (
	"net/url"
	"strconv"
	"strings"
)

// StringSlice parses a single comma-separated query string
// into a trimmed slice of strings.
func StringSlice(val string) []string {
	if val == "" {
		return nil
	}

	var res []string
	for _, v := range strings.Split(val, ",") {
		clean := strings.TrimSpace(v)
		if clean != "" {
			res = append(res, clean)
		}
	}
	return res
}

// Bool parses an optional boolean filter. Absent or malformed values yield nil.
func Bool(values url.Values, key string) *bool {
	raw := values.Get(key)
	if raw == "" {
		return nil
	}

	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &parsed
}

// Search returns the trimmed "search" parameter.
func Search(values url.Values) string {
	return strings.TrimSpace(values.Get("search"))
}

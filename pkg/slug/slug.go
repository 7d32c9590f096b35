// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

// Package slug turns free text into ASCII identifiers.
//
// # Usage
//
// Branch codes ("CAM" for "Campinas") and search terms are normalized here
// so that "São Paulo" and "sao paulo" meet on the same key.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// nonAlphanumeric matches any sequence of non-alphanumeric, non-hyphen characters.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9-]+`)
	// multiHyphen collapses multiple consecutive hyphens into one.
	multiHyphen = regexp.MustCompile(`-{2,}`)
)

// Fold removes accents and lowercases s.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	result, _, _ := transform.String(t, s)
	return strings.ToLower(result)
}

// From converts an arbitrary Unicode string into a URL-safe ASCII slug.
//
// # Transformation Pipeline
//
// 1. Folds accents and case (é becomes e).
// 2. Replaces non-alphanumeric characters with hyphens.
// 3. Collapses multiple hyphens and trims leading/trailing hyphens.
func From(s string) string {
	result := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '-'
	}, Fold(s))

	result = nonAlphanumeric.ReplaceAllString(result, "-")
	result = multiHyphen.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// Code derives an upper-case branch code of at most size characters.
//
// Multi-word names use their initials ("Rio de Janeiro" gives "RDJ"), single
// words their first letters ("Campinas" gives "CAM").
func Code(s string, size int) string {
	words := strings.Split(From(s), "-")

	var code strings.Builder
	if len(words) > 1 {
		for _, word := range words {
			if word != "" && code.Len() < size {
				code.WriteByte(word[0])
			}
		}
	} else {
		word := words[0]
		if len(word) > size {
			word = word[:size]
		}
		code.WriteString(word)
	}

	return strings.ToUpper(code.String())
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}

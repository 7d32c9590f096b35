// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package slice_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/johnvilela/motolink/pkg/slice"
)

/*
TestMapAndUnique covers nil input and ordering.
*/
func TestMapAndUnique(t *testing.T) {
	assert.Nil(t, slice.Map[string, string](nil, strings.ToUpper))
	assert.Equal(t, []string{"A", "B"}, slice.Map([]string{"a", "b"}, strings.ToUpper))

	assert.Nil(t, slice.Unique[string](nil))
	assert.Equal(t, []string{"b1", "b2"}, slice.Unique([]string{"b1", "b2", "b1"}))
}

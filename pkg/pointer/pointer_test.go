// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package pointer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/johnvilela/motolink/pkg/pointer"
)

/*
TestApply only overwrites when a value is provided.
*/
func TestApply(t *testing.T) {
	name := "Centro"
	pointer.Apply(&name, nil)
	assert.Equal(t, "Centro", name)

	pointer.Apply(&name, pointer.To("Zona Sul"))
	assert.Equal(t, "Zona Sul", name)

	assert.Equal(t, 0, pointer.Val[int](nil))
	assert.Equal(t, 3, pointer.Val(pointer.To(3)))
}

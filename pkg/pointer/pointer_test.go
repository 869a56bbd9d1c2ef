// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pointer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tellnab/tellnab/pkg/pointer"
)

func TestToVal(t *testing.T) {
	status := "OPEN"
	p := pointer.To(status)
	status = "CLOSED"

	assert.Equal(t, "OPEN", pointer.Val(p))
	assert.Equal(t, "", pointer.Val[string](nil))
	assert.Equal(t, 0, pointer.Val[int](nil))
}

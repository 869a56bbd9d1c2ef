// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tellnab/tellnab/pkg/slice"
)

func TestMapFilter(t *testing.T) {
	roles := []string{"agent", "admin", "customer"}

	assert.Equal(t, []string{"AGENT", "ADMIN", "CUSTOMER"}, slice.Map(roles, strings.ToUpper))
	assert.Nil(t, slice.Map[string, string](nil, strings.ToUpper))

	staff := slice.Filter(roles, func(role string) bool { return role != "customer" })
	assert.Equal(t, []string{"agent", "admin"}, staff)
	assert.Empty(t, slice.Filter(roles, func(string) bool { return false }))
}

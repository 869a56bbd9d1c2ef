// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tellnab/tellnab/pkg/slug"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Billing & Refunds", "billing-refunds"},
		{"  Tier-2 Support  ", "tier-2-support"},
		{"Café Réseau", "cafe-reseau"},
		{"---", ""},
		{"サポート", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.in))
		})
	}
}

func TestFrom_Truncates(t *testing.T) {
	got := slug.From(strings.Repeat("network ", 20))
	assert.LessOrEqual(t, len(got), slug.MaxLength)
	assert.False(t, strings.HasSuffix(got, "-"))
	assert.True(t, strings.HasPrefix(got, "network-network"))
}

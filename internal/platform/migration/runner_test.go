// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tellnab/tellnab/internal/platform/migration"
)

func TestPgxDSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://u:p@db:5432/tellnab?sslmode=disable", "pgx5://u:p@db:5432/tellnab?sslmode=disable"},
		{"postgresql://db/tellnab", "pgx5://db/tellnab"},
		{"pgx5://db/tellnab", "pgx5://db/tellnab"},
		{"host=db dbname=tellnab", "host=db dbname=tellnab"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, migration.PgxDSN(tt.in))
		})
	}
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tellnab/tellnab/internal/platform/apperr"
	"github.com/tellnab/tellnab/internal/platform/dberr"
)

func TestWrap(t *testing.T) {
	pgError := func(code string) error {
		return fmt.Errorf("exec: %w", &pgconn.PgError{Code: code, Message: "detail for logs"})
	}

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"no_rows", pgx.ErrNoRows, http.StatusNotFound},
		{"duplicate_slug", pgError(pgerrcode.UniqueViolation), http.StatusConflict},
		{"unknown_department", pgError(pgerrcode.ForeignKeyViolation), http.StatusUnprocessableEntity},
		{"bad_uuid", pgError(pgerrcode.InvalidTextRepresentation), http.StatusBadRequest},
		{"check_constraint", pgError(pgerrcode.CheckViolation), http.StatusBadRequest},
		{"deadlock", pgError(pgerrcode.DeadlockDetected), http.StatusInternalServerError},
		{"network", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appError := apperr.As(dberr.Wrap(tt.err, "ticket_repo_update_failed"))
			require.NotNil(t, appError)
			assert.Equal(t, tt.wantStatus, appError.HTTPStatus)
			assert.NotContains(t, appError.Message, "detail for logs")
		})
	}

	assert.NoError(t, dberr.Wrap(nil, "noop"))
}

func TestWrap_InternalKeepsAction(t *testing.T) {
	appError := apperr.As(dberr.Wrap(errors.New("boom"), "ticket_repo_list_failed"))
	require.NotNil(t, appError)
	assert.Contains(t, appError.Cause.Error(), "ticket_repo_list_failed")
}

func TestNotFound_NamesResource(t *testing.T) {
	err := dberr.NotFound(pgx.ErrNoRows, "Ticket", "get_ticket_by_id")
	assert.Equal(t, "Ticket not found", err.Error())

	conflict := dberr.NotFound(&pgconn.PgError{Code: pgerrcode.UniqueViolation}, "Ticket", "create")
	assert.True(t, apperr.HasCode(conflict, apperr.CodeConflict))
}

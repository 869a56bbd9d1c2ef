// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tellnab/tellnab/internal/platform/apperr"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		err    *apperr.AppError
		status int
		code   string
	}{
		{apperr.NotFound("Ticket"), http.StatusNotFound, apperr.CodeNotFound},
		{apperr.Unauthorized("no token"), http.StatusUnauthorized, apperr.CodeUnauthorized},
		{apperr.Forbidden("no"), http.StatusForbidden, apperr.CodeForbidden},
		{apperr.Conflict("dup"), http.StatusConflict, apperr.CodeConflict},
		{apperr.Unprocessable("bad ref"), http.StatusUnprocessableEntity, apperr.CodeUnprocessable},
		{apperr.ValidationError("bad"), http.StatusBadRequest, apperr.CodeValidation},
		{apperr.WithCode(http.StatusForbidden, "department_scope_required", "scope"), http.StatusForbidden, "department_scope_required"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}

	assert.Equal(t, "Ticket not found", apperr.NotFound("Ticket").Error())
}

func TestRateLimited(t *testing.T) {
	err := apperr.RateLimited(3)
	assert.Equal(t, http.StatusTooManyRequests, err.HTTPStatus)
	assert.Equal(t, 3, err.RetryAfter)
	assert.Contains(t, err.Message, "3s")
}

func TestInternal_HidesCause(t *testing.T) {
	cause := errors.New("pq: relation supportticket does not exist")
	err := apperr.Internal(cause)

	assert.NotContains(t, err.Error(), "relation")
	assert.ErrorIs(t, err, cause)
}

func TestInspection(t *testing.T) {
	wrapped := fmt.Errorf("ticket_service: %w", apperr.NotFound("Ticket"))

	require.NotNil(t, apperr.As(wrapped))
	assert.True(t, apperr.HasCode(wrapped, apperr.CodeNotFound))
	assert.False(t, apperr.HasCode(wrapped, apperr.CodeConflict))
	assert.True(t, errors.Is(wrapped, apperr.NotFound("Department")))

	assert.Nil(t, apperr.As(errors.New("plain")))
	assert.False(t, apperr.HasCode(nil, apperr.CodeNotFound))
}

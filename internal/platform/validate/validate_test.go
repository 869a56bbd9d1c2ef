// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tellnab/tellnab/internal/platform/apperr"
	"github.com/tellnab/tellnab/internal/platform/validate"
)

func TestValidator_TicketSubject(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		wantErr string
	}{
		{"ok", "Printer offline", ""},
		{"blank", "   ", "This field is required"},
		{"too_long", string(make([]rune, 201)), "Maximum 200 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			err := v.Required("subject", tt.subject).MaxLen("subject", tt.subject, 200).Err()

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, apperr.CodeValidation, ae.Code)
			assert.Equal(t, "subject", ae.Details[0].Field)
			assert.Equal(t, tt.wantErr, ae.Details[0].Message)
		})
	}
}

func TestValidator_MaxLenCountsRunes(t *testing.T) {
	v := &validate.Validator{}
	assert.NoError(t, v.MaxLen("name", "Hỗ trợ", 6).Err())
}

func TestValidator_Email(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"agent@tellnab.com", true},
		{"agent", false},
		{"agent@", false},
		{"", false},
		{"Agent <agent@tellnab.com>", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			v := &validate.Validator{}
			v.Email("email", tt.email)
			assert.Equal(t, !tt.valid, v.HasErrors())
		})
	}
}

func TestValidator_AccumulatesAcrossFields(t *testing.T) {
	v := &validate.Validator{}
	err := v.
		Required("username", "").
		MinLen("password", "short", 8).
		OneOf("priority", "CRITICAL", "LOW", "MEDIUM", "HIGH", "URGENT").
		Err()

	ae := apperr.As(err)
	require.NotNil(t, ae)
	require.Len(t, ae.Details, 3)
	assert.Equal(t, []string{"username", "password", "priority"},
		[]string{ae.Details[0].Field, ae.Details[1].Field, ae.Details[2].Field})
}

func TestValidator_UUID(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"0190f4a2-7c3e-7b1a-9d2e-0000000000f1", true},
		{"0190F4A2-7C3E-7B1A-9D2E-0000000000F1", true},
		{"0190f4a27c3e7b1a9d2e0000000000f1", false},
		{"urn:uuid:0190f4a2-7c3e-7b1a-9d2e-0000000000f1", false},
		{"billing", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			v := &validate.Validator{}
			v.UUID("department_id", tt.value)
			assert.Equal(t, !tt.valid, v.HasErrors())
		})
	}
}

func TestValidator_EachOneOf(t *testing.T) {
	v := &validate.Validator{}
	err := v.EachOneOf("status", []string{"OPEN", "LOST", "CLOSED", "GONE"}, "OPEN", "CLOSED").Err()

	ae := apperr.As(err)
	require.NotNil(t, ae)
	require.Len(t, ae.Details, 2)
	assert.Equal(t, "status", ae.Details[0].Field)
	assert.Contains(t, ae.Details[0].Message, "OPEN, CLOSED")
}

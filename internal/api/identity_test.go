// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tellnab/tellnab/internal/api"
	"github.com/tellnab/tellnab/internal/platform/apperr"
	"github.com/tellnab/tellnab/internal/platform/sec"
	"github.com/tellnab/tellnab/internal/users/auth"
)

type stubResolver map[string]auth.Identity

func (s stubResolver) ResolveIdentity(_ context.Context, token, _ string) (auth.Identity, error) {
	identity, ok := s[token]
	if !ok {
		return auth.Identity{}, apperr.Unauthorized("Invalid credential")
	}
	return identity, nil
}

func TestRelayValidator(t *testing.T) {
	validator := api.RelayValidator(stubResolver{
		"tok-agent": {UserID: "agent-1", DisplayName: "Mai", Role: sec.RoleSupport},
	})

	actor, err := validator.ValidateCredential(context.Background(), "tok-agent", "")
	require.NoError(t, err)
	assert.Equal(t, "agent-1", actor.ID)
	assert.Equal(t, "Mai", actor.Name)
	assert.Equal(t, string(sec.RoleSupport), actor.Role)

	_, err = validator.ValidateCredential(context.Background(), "bogus", "")
	assert.True(t, apperr.HasCode(err, "UNAUTHORIZED"))
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"

	"github.com/tellnab/tellnab/internal/realtime"
	"github.com/tellnab/tellnab/internal/users/auth"
)

// IdentityResolver resolves the credential carried by a relay auth frame.
type IdentityResolver interface {
	ResolveIdentity(context context.Context, token, actorID string) (auth.Identity, error)
}

// RelayValidator adapts the account identity lookup to the relay hub.
func RelayValidator(resolver IdentityResolver) realtime.CredentialValidator {
	return realtime.ValidatorFunc(func(ctx context.Context, token, actorID string) (realtime.Actor, error) {
		identity, err := resolver.ResolveIdentity(ctx, token, actorID)
		if err != nil {
			return realtime.Actor{}, err
		}
		return realtime.Actor{
			ID:   identity.UserID,
			Name: identity.DisplayName,
			Role: string(identity.Role),
		}, nil
	})
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package realtime

import "context"

// CredentialValidator resolves the credential presented in an auth frame.
//
// It may block on storage. The [Hub] calls it outside its event loop.
type CredentialValidator interface {
	ValidateCredential(ctx context.Context, token, actorID string) (Actor, error)
}

// ValidatorFunc adapts a function to [CredentialValidator].
type ValidatorFunc func(ctx context.Context, token, actorID string) (Actor, error)

// ValidateCredential calls fn.
func (fn ValidatorFunc) ValidateCredential(ctx context.Context, token, actorID string) (Actor, error) {
	return fn(ctx, token, actorID)
}

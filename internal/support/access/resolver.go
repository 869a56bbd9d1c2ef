// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package access

import (
	"context"
	"fmt"
)

// Resolver computes ACLs from stored role assignments. It holds no state
// across calls.
type Resolver struct {
	repository RoleRepository
}

// NewResolver constructs a [Resolver] over the given role lookup.
func NewResolver(repository RoleRepository) *Resolver {
	return &Resolver{repository: repository}
}

/*
ResolveACL computes the effective ACL of an actor.

Description: Unions the permissions of every assigned role. When that union
is empty, the result is exactly the fallback tier of legacyRole, with no
explicit permissions mixed in. Roles are the assigned role keys, or the tier's
synthetic role key when the actor has no assignments.

Parameters:
  - context: context.Context
  - actorID: string
  - legacyRole: string (coarse account role label)

Returns:
  - *ACL: Request-scoped, immutable result
  - error: Storage failures
*/
func (resolver *Resolver) ResolveACL(context context.Context, actorID, legacyRole string) (*ACL, error) {
	assignments, err := resolver.repository.RoleAssignments(context, actorID)
	if err != nil {
		return nil, fmt.Errorf("access_resolve_acl_failed: %w", err)
	}

	return BuildACL(assignments, ParseLegacyRole(legacyRole)), nil
}

// BuildACL applies the resolution rule to already-loaded assignments.
func BuildACL(assignments []RoleAssignment, tier FallbackTier) *ACL {
	roles := make([]string, 0, len(assignments))
	var permissions []Permission

	for _, assignment := range assignments {
		roles = append(roles, assignment.RoleKey)
		permissions = append(permissions, assignment.Permissions...)
	}

	if len(permissions) == 0 {
		fallback := FallbackACL(tier)
		if len(roles) > 0 {
			// Assigned but permission-less roles are still reported.
			fallback = NewACL(roles, tier.Permissions())
			fallback.usedFallback = true
		}
		return fallback
	}

	return NewACL(roles, permissions)
}

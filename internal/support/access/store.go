// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package access

import (
	"context"
)

// # Domain Entities

// RoleAssignment is one role held by an actor, with the permissions it maps to.
type RoleAssignment struct {
	RoleKey     string
	Permissions []Permission
}

// Role is a support role definition.
type Role struct {
	ID          string       `json:"id"`
	Key         string       `json:"key"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Permissions []Permission `json:"permissions"`
}

// # Data Access

// RoleRepository defines the role and permission lookups the resolver depends on.
type RoleRepository interface {

	/*
		RoleAssignments returns every role assigned to the actor.

		Description: A role with no mapped permissions is still returned, with
		an empty Permissions slice.

		Returns:
		  - []RoleAssignment: Possibly empty
		  - error: Storage failures
	*/
	RoleAssignments(context context.Context, actorID string) ([]RoleAssignment, error)

	// ListRoles returns every defined role with its permissions, ordered by key.
	ListRoles(context context.Context) ([]*Role, error)

	/*
		AssignRole grants a role to a user. Assigning an already-held role is a no-op.

		Returns:
		  - error: apperr.NotFound if the role key is unknown
	*/
	AssignRole(context context.Context, roleKey, userID string) error

	/*
		RevokeRole removes a role from a user.

		Returns:
		  - error: apperr.NotFound if the user did not hold the role
	*/
	RevokeRole(context context.Context, roleKey, userID string) error
}

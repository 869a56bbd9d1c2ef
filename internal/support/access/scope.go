// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package access

import "strings"

// Scope is the read tier selected for a ticket listing.
type Scope string

const (
	ScopeAll        Scope = "all"
	ScopeDepartment Scope = "department"
	ScopeAssigned   Scope = "assigned"
	ScopeOwn        Scope = "own"
)

// TicketFilter holds the caller-requested listing filters. Empty means unset.
type TicketFilter struct {
	Statuses        []string
	Priorities      []string
	DepartmentID    string
	AssignedAgentID string
	OwnerID         string
}

// ScopedFilter is a filter after mandatory narrowing.
type ScopedFilter struct {
	TicketFilter
	Scope Scope
}

/*
AuthorizeListScope narrows a listing to the caller's read tier.

Description: Tiers are tried in order and the first one held wins:

 1. ticket.read.all: the filter is kept as requested.
 2. ticket.read.department: a department filter is mandatory; without one
    the result is a [ScopeError].
 3. ticket.read.assigned: the assignee is forced to the actor.
 4. otherwise: the owner is forced to the actor.

Returns:
  - ScopedFilter: Filter to apply
  - error: [ScopeError] for a department-tier request without a department
*/
func AuthorizeListScope(acl *ACL, actorID string, requested TicketFilter) (ScopedFilter, error) {
	switch {
	case acl.HasPermission(PermTicketReadAll):
		return ScopedFilter{TicketFilter: requested, Scope: ScopeAll}, nil

	case acl.HasPermission(PermTicketReadDepartment):
		if strings.TrimSpace(requested.DepartmentID) == "" {
			return ScopedFilter{}, ScopeError()
		}
		return ScopedFilter{TicketFilter: requested, Scope: ScopeDepartment}, nil

	case acl.HasPermission(PermTicketReadAssigned):
		requested.AssignedAgentID = actorID
		return ScopedFilter{TicketFilter: requested, Scope: ScopeAssigned}, nil

	default:
		requested.OwnerID = actorID
		return ScopedFilter{TicketFilter: requested, Scope: ScopeOwn}, nil
	}
}

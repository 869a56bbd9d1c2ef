// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package access

import "fmt"

// TicketRef is the subset of a ticket the decisions depend on.
type TicketRef struct {
	OwnerID         string
	AssignedAgentID string // Empty when unassigned.
	DepartmentID    string
}

// MutationFields records which fields a mutation payload carries.
type MutationFields struct {
	AssignedAgentID bool
	Priority        bool
	Status          bool
}

// Empty reports whether no gated field is present.
func (fields MutationFields) Empty() bool {
	return !fields.AssignedAgentID && !fields.Priority && !fields.Status
}

/*
AuthorizeMutation decides whether the actor may apply the mutation.

Description: Every present field needs its permission, and a single missing
permission denies the whole mutation:

  - assignedAgentId: ticket.assign
  - priority: ticket.priority.update
  - status: ticket.status.update or ticket.status.update.assigned

An actor holding ticket.status.update.assigned without ticket.assign may only
touch tickets that are unassigned or assigned to themselves.

Returns:
  - error: [ForbiddenError] on denial, nil on permit
*/
func AuthorizeMutation(acl *ACL, ticket TicketRef, actorID string, fields MutationFields) error {
	if fields.AssignedAgentID && !acl.HasPermission(PermTicketAssign) {
		return ForbiddenError(fmt.Sprintf("Missing permission %s", PermTicketAssign))
	}

	if fields.Priority && !acl.HasPermission(PermTicketPriorityUpdate) {
		return ForbiddenError(fmt.Sprintf("Missing permission %s", PermTicketPriorityUpdate))
	}

	if fields.Status && !acl.HasAny(PermTicketStatusUpdate, PermTicketStatusUpdateAssign) {
		return ForbiddenError(fmt.Sprintf("Missing permission %s", PermTicketStatusUpdate))
	}

	narrow := acl.HasPermission(PermTicketStatusUpdateAssign) && !acl.HasPermission(PermTicketAssign)
	if narrow && ticket.AssignedAgentID != "" && ticket.AssignedAgentID != actorID {
		return ForbiddenError("Ticket is assigned to another agent")
	}

	return nil
}

/*
AuthorizeRead decides whether the actor may open a single ticket.

Description: all and department tiers read any ticket, the assigned tier reads
tickets assigned to the actor, and every actor reads the tickets they own.
*/
func AuthorizeRead(acl *ACL, ticket TicketRef, actorID string) error {
	switch {
	case ticket.OwnerID == actorID:
		return nil
	case acl.HasAny(PermTicketReadAll, PermTicketReadDepartment):
		return nil
	case acl.HasPermission(PermTicketReadAssigned) && ticket.AssignedAgentID == actorID:
		return nil
	}
	return ForbiddenError("You cannot access this ticket")
}

// Require denies unless the permission is held.
func Require(acl *ACL, permission Permission) error {
	if !acl.HasPermission(permission) {
		return ForbiddenError(fmt.Sprintf("Missing permission %s", permission))
	}
	return nil
}

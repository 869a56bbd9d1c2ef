// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package access resolves what a support actor may see and change.

An actor's effective rights are an [ACL]: the role keys assigned to them and
the union of every permission those roles carry. Actors with no mapped
permissions fall back, in full, to a fixed [FallbackTier] chosen from their
coarse account role. The ACL is computed per request and never cached.

# Decisions

  - [AuthorizeListScope] narrows a ticket listing to one of four ordered scope tiers.
  - [AuthorizeMutation] gates field-level ticket updates.
  - [AuthorizeRead] gates single-ticket reads and replies.

Denials are [apperr.AppError] values with fixed codes ([CodeDepartmentScopeRequired],
[CodeForbidden]) so clients can tell a missing filter apart from a hard refusal.
*/
package access

// Permission is a fine-grained support capability key.
type Permission string

// # Ticket Permissions

const (
	PermTicketReadAll            Permission = "ticket.read.all"
	PermTicketReadDepartment     Permission = "ticket.read.department"
	PermTicketReadAssigned       Permission = "ticket.read.assigned"
	PermTicketReadOwn            Permission = "ticket.read.own"
	PermTicketCreate             Permission = "ticket.create"
	PermTicketAssign             Permission = "ticket.assign"
	PermTicketPriorityUpdate     Permission = "ticket.priority.update"
	PermTicketStatusUpdate       Permission = "ticket.status.update"
	PermTicketStatusUpdateAssign Permission = "ticket.status.update.assigned"
	PermTicketMessageCreate      Permission = "ticket.message.create"
)

// # Administration Permissions

const (
	PermRolesManage       Permission = "support.roles.manage"
	PermDepartmentsManage Permission = "support.departments.manage"
)

// AllPermissions lists every known key in a stable order.
var AllPermissions = []Permission{
	PermTicketReadAll,
	PermTicketReadDepartment,
	PermTicketReadAssigned,
	PermTicketReadOwn,
	PermTicketCreate,
	PermTicketAssign,
	PermTicketPriorityUpdate,
	PermTicketStatusUpdate,
	PermTicketStatusUpdateAssign,
	PermTicketMessageCreate,
	PermRolesManage,
	PermDepartmentsManage,
}

// Known reports whether the key is one of [AllPermissions].
func (p Permission) Known() bool {
	for _, known := range AllPermissions {
		if p == known {
			return true
		}
	}
	return false
}

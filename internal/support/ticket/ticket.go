// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package ticket stores support tickets and their message threads.

Every read and write is gated by the access package: listings are narrowed
by [access.AuthorizeListScope], single reads by [access.AuthorizeRead] and
updates by [access.AuthorizeMutation]. Messages are persisted first and then
relayed to the ticket's live room through a [Notifier].
*/
package ticket

import (
	"time"

	"github.com/tellnab/tellnab/internal/support/access"
	"github.com/tellnab/tellnab/pkg/pointer"
)

// Status is the lifecycle state of a ticket.
//
// Transitions are not enforced; any status may follow any other.
type Status string

const (
	StatusNew      Status = "NEW"
	StatusOpen     Status = "OPEN"
	StatusPending  Status = "PENDING"
	StatusResolved Status = "RESOLVED"
	StatusClosed   Status = "CLOSED"
	StatusReopened Status = "REOPENED"
)

// Statuses lists every status value.
var Statuses = []string{
	string(StatusNew), string(StatusOpen), string(StatusPending),
	string(StatusResolved), string(StatusClosed), string(StatusReopened),
}

// Priority is the urgency of a ticket.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// Priorities lists every priority value.
var Priorities = []string{
	string(PriorityLow), string(PriorityMedium), string(PriorityHigh), string(PriorityUrgent),
}

// Ticket is a customer support request.
type Ticket struct {
	ID              string    `json:"id"`
	Subject         string    `json:"subject"`
	Description     string    `json:"description"`
	Status          Status    `json:"status"`
	Priority        Priority  `json:"priority"`
	OwnerID         string    `json:"owner_id"`
	AssignedAgentID *string   `json:"assigned_agent_id"`
	DepartmentID    *string   `json:"department_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Ref projects the fields access decisions depend on.
func (ticket *Ticket) Ref() access.TicketRef {
	return access.TicketRef{
		OwnerID:         ticket.OwnerID,
		AssignedAgentID: pointer.Val(ticket.AssignedAgentID),
		DepartmentID:    pointer.Val(ticket.DepartmentID),
	}
}

// Message is one entry of a ticket thread.
type Message struct {
	ID             string    `json:"id"`
	TicketID       string    `json:"ticket_id"`
	AuthorID       string    `json:"author_id"`
	Body           string    `json:"body"`
	AttachmentURL  *string   `json:"attachment_url,omitempty"`
	AttachmentName *string   `json:"attachment_name,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// # Field Identifiers

const (
	FieldSubject         = "subject"
	FieldDescription     = "description"
	FieldStatus          = "status"
	FieldPriority        = "priority"
	FieldAssignedAgentID = "assigned_agent_id"
	FieldDepartmentID    = "department_id"
	FieldBody            = "body"
	FieldAttachmentURL   = "attachment_url"
)

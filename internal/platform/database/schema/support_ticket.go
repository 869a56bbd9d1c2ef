// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// SupportTicketTable represents the 'support.ticket' table
type SupportTicketTable struct {
	Table           string
	ID              string
	Subject         string
	Description     string
	Status          string
	Priority        string
	OwnerID         string
	AssignedAgentID string
	DepartmentID    string
	CreatedAt       string
	UpdatedAt       string
}

// SupportTicket is the schema definition for support.ticket
var SupportTicket = SupportTicketTable{
	Table:           "support.ticket",
	ID:              "id",
	Subject:         "subject",
	Description:     "description",
	Status:          "status",
	Priority:        "priority",
	OwnerID:         "ownerid",
	AssignedAgentID: "assignedagentid",
	DepartmentID:    "departmentid",
	CreatedAt:       "createdat",
	UpdatedAt:       "updatedat",
}

// Columns returns all ticket columns in scan order.
func (t SupportTicketTable) Columns() []string {
	return []string{
		t.ID, t.Subject, t.Description, t.Status, t.Priority,
		t.OwnerID, t.AssignedAgentID, t.DepartmentID, t.CreatedAt, t.UpdatedAt,
	}
}

// SupportTicketMessageTable represents the 'support.ticketmessage' table
type SupportTicketMessageTable struct {
	Table          string
	ID             string
	TicketID       string
	AuthorID       string
	Body           string
	AttachmentURL  string
	AttachmentName string
	CreatedAt      string
}

// SupportTicketMessage is the schema definition for support.ticketmessage
var SupportTicketMessage = SupportTicketMessageTable{
	Table:          "support.ticketmessage",
	ID:             "id",
	TicketID:       "ticketid",
	AuthorID:       "authorid",
	Body:           "body",
	AttachmentURL:  "attachmenturl",
	AttachmentName: "attachmentname",
	CreatedAt:      "createdat",
}

// Columns returns all message columns in scan order.
func (t SupportTicketMessageTable) Columns() []string {
	return []string{
		t.ID, t.TicketID, t.AuthorID, t.Body, t.AttachmentURL, t.AttachmentName, t.CreatedAt,
	}
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ticket

import (
	"context"
	"log/slog"
	"strings"

	"github.com/tellnab/tellnab/internal/platform/apperr"
	"github.com/tellnab/tellnab/internal/platform/validate"
	"github.com/tellnab/tellnab/internal/realtime"
	"github.com/tellnab/tellnab/internal/support/access"
	"github.com/tellnab/tellnab/pkg/pointer"
	"github.com/tellnab/tellnab/pkg/uuid"
)

// Notifier relays a frame to everyone watching a ticket.
//
// Both the in-process hub and the Redis publisher satisfy it.
type Notifier interface {
	NotifyTicketMessage(context context.Context, ticketID string, frame any) error
}

// Caller is the authenticated principal acting on tickets.
type Caller struct {
	ACL   *access.ACL
	Actor realtime.Actor
}

// CreateInput carries the fields of a new ticket.
type CreateInput struct {
	Subject      string  `json:"subject"`
	Description  string  `json:"description"`
	Priority     string  `json:"priority"`
	DepartmentID *string `json:"department_id"`
}

// UpdateInput carries the fields present in a PATCH payload. Nil means absent.
type UpdateInput struct {
	Status          *string `json:"status"`
	Priority        *string `json:"priority"`
	AssignedAgentID *string `json:"assigned_agent_id"` // Empty string unassigns.
}

// Fields reports which gated fields the payload touches.
func (input UpdateInput) Fields() access.MutationFields {
	return access.MutationFields{
		AssignedAgentID: input.AssignedAgentID != nil,
		Priority:        input.Priority != nil,
		Status:          input.Status != nil,
	}
}

// MessageInput carries a new thread entry.
type MessageInput struct {
	Body           string `json:"body"`
	AttachmentURL  string `json:"attachment_url"`
	AttachmentName string `json:"attachment_name"`
}

// # Service Layer

// Service orchestrates ticket access decisions, storage and live relay.
type Service struct {
	repo     Repository
	notifier Notifier
	logger   *slog.Logger
}

// NewService constructs a new ticket [Service].
func NewService(repo Repository, notifier Notifier, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		logger:   logger.With(slog.String("component", "ticket")),
	}
}

/*
ListTickets returns the page of tickets visible to the caller.

Description: The requested filter is narrowed by the caller's read tier
before it reaches storage.

Returns:
  - []*Ticket: Page of tickets
  - int: Total count
  - error: [access.ScopeError] or validation errors
*/
func (service *Service) ListTickets(context context.Context, caller Caller, filter access.TicketFilter, limit, offset int) ([]*Ticket, int, error) {
	validator := &validate.Validator{}
	validator.EachOneOf(FieldStatus, filter.Statuses, Statuses...).
		EachOneOf(FieldPriority, filter.Priorities, Priorities...)
	if err := validator.Err(); err != nil {
		return nil, 0, err
	}

	scoped, err := access.AuthorizeListScope(caller.ACL, caller.Actor.ID, filter)
	if err != nil {
		return nil, 0, err
	}

	return service.repo.List(context, scoped, limit, offset)
}

// GetTicket returns a single ticket the caller may read.
func (service *Service) GetTicket(context context.Context, caller Caller, id string) (*Ticket, error) {
	ticket, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if err := access.AuthorizeRead(caller.ACL, ticket.Ref(), caller.Actor.ID); err != nil {
		return nil, err
	}
	return ticket, nil
}

/*
CreateTicket opens a new ticket owned by the caller.

Description: New tickets start as NEW. Priority defaults to MEDIUM.
*/
func (service *Service) CreateTicket(context context.Context, caller Caller, input CreateInput) (*Ticket, error) {
	if err := access.Require(caller.ACL, access.PermTicketCreate); err != nil {
		return nil, err
	}

	priority := Priority(strings.ToUpper(strings.TrimSpace(input.Priority)))
	if priority == "" {
		priority = PriorityMedium
	}

	validator := &validate.Validator{}
	validator.
		Required(FieldSubject, input.Subject).
		MaxLen(FieldSubject, input.Subject, 200).
		MaxLen(FieldDescription, input.Description, 10000).
		OneOf(FieldPriority, string(priority), Priorities...)
	if input.DepartmentID != nil {
		validator.UUID(FieldDepartmentID, *input.DepartmentID)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	ticket := &Ticket{
		ID:           uuid.New(),
		Subject:      strings.TrimSpace(input.Subject),
		Description:  input.Description,
		Status:       StatusNew,
		Priority:     priority,
		OwnerID:      caller.Actor.ID,
		DepartmentID: input.DepartmentID,
	}

	if err := service.repo.Create(context, ticket); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "ticket_created",
		slog.String("ticket_id", ticket.ID),
		slog.String("owner_id", ticket.OwnerID),
	)
	return ticket, nil
}

/*
UpdateTicket applies status, priority and assignee changes.

Description: Every field present in the payload is authorized before any is
applied. The ticket room receives a ticket_updated frame on success.

Returns:
  - *Ticket: Updated entity
  - error: validation, forbidden or not found errors
*/
func (service *Service) UpdateTicket(context context.Context, caller Caller, id string, input UpdateInput) (*Ticket, error) {
	fields := input.Fields()
	if fields.Empty() {
		return nil, apperr.ValidationError("Nothing to update")
	}

	validator := &validate.Validator{}
	if input.Status != nil {
		validator.OneOf(FieldStatus, *input.Status, Statuses...)
	}
	if input.Priority != nil {
		validator.OneOf(FieldPriority, *input.Priority, Priorities...)
	}
	if assignee := pointer.Val(input.AssignedAgentID); assignee != "" {
		validator.UUID(FieldAssignedAgentID, assignee)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	ticket, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if err := access.AuthorizeRead(caller.ACL, ticket.Ref(), caller.Actor.ID); err != nil {
		return nil, err
	}
	if err := access.AuthorizeMutation(caller.ACL, ticket.Ref(), caller.Actor.ID, fields); err != nil {
		return nil, err
	}

	if input.Status != nil {
		ticket.Status = Status(*input.Status)
	}
	if input.Priority != nil {
		ticket.Priority = Priority(*input.Priority)
	}
	if input.AssignedAgentID != nil {
		ticket.AssignedAgentID = nil
		if *input.AssignedAgentID != "" {
			ticket.AssignedAgentID = pointer.To(*input.AssignedAgentID)
		}
	}

	if err := service.repo.Update(context, ticket); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "ticket_updated",
		slog.String("ticket_id", ticket.ID),
		slog.String("actor_id", caller.Actor.ID),
		slog.String("status", string(ticket.Status)),
		slog.String("priority", string(ticket.Priority)),
	)

	service.notify(context, ticket.ID, realtime.TicketUpdated{
		Type:            realtime.TypeTicketUpdated,
		TicketID:        ticket.ID,
		Status:          string(ticket.Status),
		Priority:        string(ticket.Priority),
		AssignedAgentID: pointer.Val(ticket.AssignedAgentID),
		UpdatedBy:       caller.Actor.ID,
		UpdatedAt:       ticket.UpdatedAt.UTC(),
	})
	return ticket, nil
}

// # Messages

// ListMessages returns the thread of a ticket the caller may read.
func (service *Service) ListMessages(context context.Context, caller Caller, ticketID string) ([]*Message, error) {
	if _, err := service.GetTicket(context, caller, ticketID); err != nil {
		return nil, err
	}
	return service.repo.ListMessages(context, ticketID)
}

/*
PostMessage appends a message to a ticket thread.

Description: The message is stored first. The room relay that follows is
best effort; a relay failure is logged and the stored message is returned.
*/
func (service *Service) PostMessage(context context.Context, caller Caller, ticketID string, input MessageInput) (*Message, error) {
	validator := &validate.Validator{}
	validator.
		Required(FieldBody, input.Body).
		MaxLen(FieldBody, input.Body, 10000).
		MaxLen(FieldAttachmentURL, input.AttachmentURL, 2048)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if _, err := service.GetTicket(context, caller, ticketID); err != nil {
		return nil, err
	}
	if err := access.Require(caller.ACL, access.PermTicketMessageCreate); err != nil {
		return nil, err
	}

	message := &Message{
		ID:       uuid.New(),
		TicketID: ticketID,
		AuthorID: caller.Actor.ID,
		Body:     input.Body,
	}
	if input.AttachmentURL != "" {
		message.AttachmentURL = pointer.To(input.AttachmentURL)
		message.AttachmentName = pointer.To(input.AttachmentName)
	}

	if err := service.repo.CreateMessage(context, message); err != nil {
		return nil, err
	}

	sent := realtime.TicketMessageSentFrame{
		TicketID:       ticketID,
		MessageID:      message.ID,
		Body:           message.Body,
		AttachmentURL:  pointer.Val(message.AttachmentURL),
		AttachmentName: pointer.Val(message.AttachmentName),
	}
	service.notify(context, ticketID, realtime.NewTicketMessageReceived(sent, caller.Actor, message.CreatedAt))

	return message, nil
}

func (service *Service) notify(context context.Context, ticketID string, frame any) {
	if service.notifier == nil {
		return
	}
	if err := service.notifier.NotifyTicketMessage(context, ticketID, frame); err != nil {
		service.logger.WarnContext(context, "ticket_relay_failed",
			slog.String("ticket_id", ticketID),
			slog.Any("error", err),
		)
	}
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ticket

import (
	"context"

	"github.com/tellnab/tellnab/internal/support/access"
)

// Repository defines the storage contract for tickets and messages.
type Repository interface {

	/*
		List returns tickets matching an already scoped filter.

		Returns:
		  - []*Ticket: Page of tickets, newest activity first
		  - int: Total matching count
		  - error: Storage failures
	*/
	List(context context.Context, filter access.ScopedFilter, limit, offset int) ([]*Ticket, int, error)

	// FindByID returns apperr.NotFound when the ticket does not exist.
	FindByID(context context.Context, id string) (*Ticket, error)

	// Create persists a new ticket.
	Create(context context.Context, ticket *Ticket) error

	// Update writes status, priority, assignee and department and refreshes UpdatedAt.
	Update(context context.Context, ticket *Ticket) error

	// ListMessages returns the thread in chronological order.
	ListMessages(context context.Context, ticketID string) ([]*Message, error)

	// CreateMessage persists a message and touches the ticket's UpdatedAt.
	CreateMessage(context context.Context, message *Message) error
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ticket

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tellnab/tellnab/internal/platform/database/schema"
	"github.com/tellnab/tellnab/internal/platform/dberr"
	"github.com/tellnab/tellnab/internal/support/access"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed ticket store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var (
	tickets        = schema.SupportTicket
	ticketMessages = schema.SupportTicketMessage
	ticketColumns  = schema.List(tickets.Columns())
	messageColumns = schema.List(ticketMessages.Columns())
)

// scanTicket lists the scan targets in [schema.SupportTicketTable.Columns] order.
func scanTicket(ticket *Ticket) []any {
	return []any{
		&ticket.ID, &ticket.Subject, &ticket.Description, &ticket.Status, &ticket.Priority,
		&ticket.OwnerID, &ticket.AssignedAgentID, &ticket.DepartmentID, &ticket.CreatedAt, &ticket.UpdatedAt,
	}
}

// # Ticket Retrieval

/*
List returns a filtered and paginated list of tickets.

Description: Every non-empty field of the scoped filter becomes an AND
condition. COUNT(*) OVER() carries the total.
*/
func (repository *PostgresRepository) List(context context.Context, filter access.ScopedFilter, limit, offset int) ([]*Ticket, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total
		FROM %s
		WHERE TRUE
	`, ticketColumns, tickets.Table))

	args := []any{}
	argID := 1

	if len(filter.Statuses) > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = ANY($%d)", tickets.Status, argID))
		args = append(args, filter.Statuses)
		argID++
	}

	if len(filter.Priorities) > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = ANY($%d)", tickets.Priority, argID))
		args = append(args, filter.Priorities)
		argID++
	}

	if filter.DepartmentID != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", tickets.DepartmentID, argID))
		args = append(args, filter.DepartmentID)
		argID++
	}

	if filter.AssignedAgentID != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", tickets.AssignedAgentID, argID))
		args = append(args, filter.AssignedAgentID)
		argID++
	}

	if filter.OwnerID != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", tickets.OwnerID, argID))
		args = append(args, filter.OwnerID)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s DESC, %s DESC LIMIT $%d OFFSET $%d", tickets.UpdatedAt, tickets.ID, argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_tickets")
	}
	defer rows.Close()

	results := []*Ticket{}
	var total int
	for rows.Next() {
		ticket := &Ticket{}
		if err := rows.Scan(append(scanTicket(ticket), &total)...); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_ticket")
		}
		results = append(results, ticket)
	}

	return results, total, dberr.Wrap(rows.Err(), "iterate_tickets")
}

// FindByID retrieves a single ticket by its primary key.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Ticket, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, ticketColumns, tickets.Table, tickets.ID)

	ticket := &Ticket{}
	if err := repository.db.QueryRow(context, query, id).Scan(scanTicket(ticket)...); err != nil {
		return nil, dberr.NotFound(err, "Ticket", "get_ticket_by_id")
	}
	return ticket, nil
}

// # Ticket Mutation

// Create inserts a new ticket.
func (repository *PostgresRepository) Create(context context.Context, ticket *Ticket) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING %s, %s
	`, tickets.Table, ticketColumns, tickets.CreatedAt, tickets.UpdatedAt)
	err := repository.db.QueryRow(context, query,
		ticket.ID, ticket.Subject, ticket.Description, ticket.Status, ticket.Priority,
		ticket.OwnerID, ticket.AssignedAgentID, ticket.DepartmentID,
	).Scan(&ticket.CreatedAt, &ticket.UpdatedAt)

	return dberr.Wrap(err, "create_ticket")
}

// Update writes the mutable ticket fields.
func (repository *PostgresRepository) Update(context context.Context, ticket *Ticket) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`, tickets.Table,
		tickets.Status, tickets.Priority, tickets.AssignedAgentID, tickets.DepartmentID, tickets.UpdatedAt,
		tickets.ID, tickets.UpdatedAt)
	err := repository.db.QueryRow(context, query,
		ticket.ID, ticket.Status, ticket.Priority, ticket.AssignedAgentID, ticket.DepartmentID,
	).Scan(&ticket.UpdatedAt)

	return dberr.NotFound(err, "Ticket", "update_ticket")
}

// # Messages

// ListMessages returns a ticket's thread oldest first.
func (repository *PostgresRepository) ListMessages(context context.Context, ticketID string) ([]*Message, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC, %s ASC
	`, messageColumns, ticketMessages.Table, ticketMessages.TicketID, ticketMessages.CreatedAt, ticketMessages.ID)
	rows, err := repository.db.Query(context, query, ticketID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_ticket_messages")
	}
	defer rows.Close()

	messages := []*Message{}
	for rows.Next() {
		message := &Message{}
		err := rows.Scan(
			&message.ID, &message.TicketID, &message.AuthorID, &message.Body,
			&message.AttachmentURL, &message.AttachmentName, &message.CreatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_ticket_message")
		}
		messages = append(messages, message)
	}

	return messages, dberr.Wrap(rows.Err(), "iterate_ticket_messages")
}

// CreateMessage inserts a message and touches the parent ticket in one transaction.
func (repository *PostgresRepository) CreateMessage(context context.Context, message *Message) error {
	return pgx.BeginFunc(context, repository.db, func(tx pgx.Tx) error {
		insert := fmt.Sprintf(`
			INSERT INTO %s (%s)
			VALUES ($1, $2, $3, $4, $5, $6, NOW())
			RETURNING %s
		`, ticketMessages.Table, messageColumns, ticketMessages.CreatedAt)
		err := tx.QueryRow(context, insert,
			message.ID, message.TicketID, message.AuthorID, message.Body, message.AttachmentURL, message.AttachmentName,
		).Scan(&message.CreatedAt)
		if err != nil {
			return dberr.Wrap(err, "create_ticket_message")
		}

		touch := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1`, tickets.Table, tickets.UpdatedAt, tickets.ID)
		_, err = tx.Exec(context, touch, message.TicketID)
		return dberr.Wrap(err, "touch_ticket")
	})
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ticket

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/tellnab/tellnab/internal/platform/request"
	"github.com/tellnab/tellnab/internal/platform/respond"
	"github.com/tellnab/tellnab/internal/realtime"
	"github.com/tellnab/tellnab/internal/support/access"
	"github.com/tellnab/tellnab/pkg/pagination"
	"github.com/tellnab/tellnab/pkg/query"
)

// Handler implements the HTTP layer for tickets.
type Handler struct {
	service *Service
	access  *access.Service
}

// NewHandler constructs a new ticket [Handler].
func NewHandler(service *Service, accessService *access.Service) *Handler {
	return &Handler{service: service, access: accessService}
}

// Routes returns a [chi.Router] configured with ticket endpoints.
//
// Every route expects an authenticated caller.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listTickets)
	router.Post("/", handler.createTicket)

	router.Route("/{id}", func(r chi.Router) {
		r.Get("/", handler.getTicket)
		r.Patch("/", handler.updateTicket)
		r.Get("/messages", handler.listMessages)
		r.Post("/messages", handler.postMessage)
	})

	return router
}

// caller resolves the ACL of the authenticated request.
func (handler *Handler) caller(request *http.Request) (Caller, error) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		return Caller{}, err
	}

	acl, err := handler.access.ACLFor(request.Context(), claims)
	if err != nil {
		return Caller{}, err
	}

	return Caller{
		ACL:   acl,
		Actor: realtime.Actor{ID: claims.UserID, Name: claims.Name(), Role: claims.Role},
	}, nil
}

// # Ticket Endpoints

/*
GET /api/v1/support/tickets.

Request:
  - status: string (Comma separated)
  - priority: string (Comma separated)
  - department_id: uuid (Mandatory for department scoped agents)
  - assigned_agent_id: uuid
  - owner_id: uuid
  - limit, page: int

Response:
  - 200: []Ticket: Paginated list
  - 400: DEPARTMENT_SCOPE_REQUIRED
*/
func (handler *Handler) listTickets(writer http.ResponseWriter, request *http.Request) {
	caller, err := handler.caller(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)
	queryParams := request.URL.Query()

	filter := access.TicketFilter{
		Statuses:        query.StringSlice(queryParams.Get("status")),
		Priorities:      query.StringSlice(queryParams.Get("priority")),
		DepartmentID:    queryParams.Get("department_id"),
		AssignedAgentID: queryParams.Get("assigned_agent_id"),
		OwnerID:         queryParams.Get("owner_id"),
	}

	tickets, total, err := handler.service.ListTickets(request.Context(), caller, filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, tickets, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
POST /api/v1/support/tickets.

Response:
  - 201: Ticket
  - 403: Missing ticket.create
*/
func (handler *Handler) createTicket(writer http.ResponseWriter, request *http.Request) {
	caller, err := handler.caller(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	ticket, err := handler.service.CreateTicket(request.Context(), caller, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, ticket)
}

// GET /api/v1/support/tickets/{id}.
func (handler *Handler) getTicket(writer http.ResponseWriter, request *http.Request) {
	caller, err := handler.caller(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	ticket, err := handler.service.GetTicket(request.Context(), caller, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ticket)
}

/*
PATCH /api/v1/support/tickets/{id}.

Request (Body):
  - status, priority, assigned_agent_id: optional, only present keys are applied

Response:
  - 200: Ticket
  - 403: Missing permission or ticket assigned to another agent
*/
func (handler *Handler) updateTicket(writer http.ResponseWriter, request *http.Request) {
	caller, err := handler.caller(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	ticket, err := handler.service.UpdateTicket(request.Context(), caller, requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ticket)
}

// # Message Endpoints

// GET /api/v1/support/tickets/{id}/messages.
func (handler *Handler) listMessages(writer http.ResponseWriter, request *http.Request) {
	caller, err := handler.caller(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	messages, err := handler.service.ListMessages(request.Context(), caller, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, messages)
}

/*
POST /api/v1/support/tickets/{id}/messages.

Description: Persists the message and relays it to the ticket room.

Response:
  - 201: Message
*/
func (handler *Handler) postMessage(writer http.ResponseWriter, request *http.Request) {
	caller, err := handler.caller(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input MessageInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	message, err := handler.service.PostMessage(request.Context(), caller, requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, message)
}

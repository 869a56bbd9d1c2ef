// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package realtime

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/tellnab/tellnab/internal/platform/constants"
)

// ErrHubStopped is returned once the hub's loop has exited.
var ErrHubStopped = errors.New("realtime: hub stopped")

// Stats is a point-in-time view of the hub.
type Stats struct {
	Connections int `json:"connections"`
	Actors      int `json:"actors"`
	Rooms       int `json:"rooms"`
}

/*
Hub owns a [Registry] and a [Dispatcher] and serializes every mutation of them
through a mailbox drained by [Hub.Run].

Transport goroutines call Open, HandleFrame and Close. Credential validation
runs on the caller's goroutine before the bind is queued, so two connections
authenticating the same actor concurrently race and the last bind wins. The
loser is evicted like any superseded connection.

Presence is process-local. With several processes behind a Redis relay each
one still elects its own current connection per actor.
*/
type Hub struct {
	registry   *Registry
	dispatcher *Dispatcher
	validator  CredentialValidator
	logger     *slog.Logger
	now        func() time.Time

	mailbox chan func()
	done    chan struct{}
}

// NewHub constructs a [Hub]. Nothing is processed until [Hub.Run] is started.
func NewHub(validator CredentialValidator, logger *slog.Logger) *Hub {
	logger = logger.With(slog.String("component", "realtime"))
	registry := NewRegistry()

	return &Hub{
		registry:   registry,
		dispatcher: NewDispatcher(registry, logger),
		validator:  validator,
		logger:     logger,
		now:        time.Now,
		mailbox:    make(chan func(), constants.RealtimeMailboxSize),
		done:       make(chan struct{}),
	}
}

// # Event Loop

// Run drains the mailbox until ctx is cancelled, then closes every connection.
func (hub *Hub) Run(ctx context.Context) {
	defer close(hub.done)

	hub.logger.InfoContext(ctx, "realtime_hub_started")
	for {
		select {
		case <-ctx.Done():
			for _, conn := range hub.registry.Connections() {
				_ = conn.Close()
			}
			hub.logger.Info("realtime_hub_stopped", slog.Int("connections", hub.registry.ConnectionCount()))
			return
		case event := <-hub.mailbox:
			event()
		}
	}
}

// Done is closed when Run returns.
func (hub *Hub) Done() <-chan struct{} {
	return hub.done
}

func (hub *Hub) submit(ctx context.Context, event func()) error {
	select {
	case hub.mailbox <- event:
		return nil
	case <-hub.done:
		return ErrHubStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// query runs fn on the loop and waits for it.
func query[T any](ctx context.Context, hub *Hub, fn func() T) (T, error) {
	reply := make(chan T, 1)
	var zero T

	if err := hub.submit(ctx, func() { reply <- fn() }); err != nil {
		return zero, err
	}

	select {
	case result := <-reply:
		return result, nil
	case <-hub.done:
		return zero, ErrHubStopped
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// # Transport Entry Points

// Open registers a fresh, unauthenticated transport and sends it the current
// presence snapshot.
func (hub *Hub) Open(ctx context.Context, transport Transport) (*Connection, error) {
	return query(ctx, hub, func() *Connection {
		conn := hub.registry.Open(transport)
		hub.dispatcher.SendTo(conn, hub.dispatcher.PresenceSnapshot())
		hub.logger.Debug("connection_opened", slog.String("handle", conn.Handle))
		return conn
	})
}

// Close unregisters a connection whose transport has gone away.
func (hub *Hub) Close(ctx context.Context, conn *Connection) error {
	return hub.submit(ctx, func() {
		actor, wasCurrent := hub.registry.Unregister(conn)
		if actor == nil {
			hub.logger.Debug("connection_closed", slog.String("handle", conn.Handle))
			return
		}

		hub.logger.Info("connection_closed",
			slog.String("handle", conn.Handle),
			slog.String("actor_id", actor.ID),
			slog.Bool("was_current", wasCurrent),
		)
		hub.dispatcher.DispatchPresenceSnapshot()
	})
}

/*
HandleFrame processes one inbound frame from conn.

Description: Auth frames are validated on the caller's goroutine; everything
else is decoded and routed on the loop. Rejections are reported to the
connection as frames, never as errors.

Returns:
  - error: Only when the hub stopped or ctx ended
*/
func (hub *Hub) HandleFrame(ctx context.Context, conn *Connection, raw []byte) error {
	var envelope Envelope
	if err := decodeFrame(raw, &envelope); err != nil || envelope.Type == "" {
		return hub.submit(ctx, func() {
			hub.dispatcher.SendTo(conn, ErrorFrame{Type: TypeError, Message: "Malformed frame"})
		})
	}

	if envelope.Type != TypeAuth {
		return hub.submit(ctx, func() { hub.route(conn, envelope.Type, raw) })
	}

	var frame AuthFrame
	if err := decodeFrame(raw, &frame); err != nil {
		return hub.submit(ctx, func() { hub.rejectCredential(conn, err) })
	}

	actor, err := hub.validator.ValidateCredential(ctx, frame.Token, frame.ActorID)
	if err == nil && actor.ID == "" {
		err = errors.New("credential resolved to an empty actor")
	}
	if err != nil {
		return hub.submit(ctx, func() { hub.rejectCredential(conn, err) })
	}

	return hub.submit(ctx, func() { hub.bind(conn, actor) })
}

// NotifyTicketMessage relays an already persisted ticket event to the room.
func (hub *Hub) NotifyTicketMessage(ctx context.Context, ticketID string, frame any) error {
	encoded, err := encodeFrame(frame)
	if err != nil {
		return err
	}
	return hub.RelayEncoded(ctx, ticketID, encoded)
}

// RelayEncoded dispatches a pre-encoded frame to the ticket room.
func (hub *Hub) RelayEncoded(ctx context.Context, ticketID string, frame []byte) error {
	return hub.submit(ctx, func() {
		delivered := hub.dispatcher.DispatchEncoded(ticketID, frame)
		hub.logger.Debug("ticket_event_relayed", slog.String("ticket_id", ticketID), slog.Int("delivered", delivered))
	})
}

// Stats reports registry sizes.
func (hub *Hub) Stats(ctx context.Context) (Stats, error) {
	return query(ctx, hub, func() Stats {
		return Stats{
			Connections: hub.registry.ConnectionCount(),
			Actors:      len(hub.registry.actors),
			Rooms:       hub.registry.RoomCount(),
		}
	})
}

// # Loop Handlers

func (hub *Hub) bind(conn *Connection, actor Actor) {
	evicted, ok := hub.registry.Bind(conn, actor)
	if !ok {
		// Closed while its credential was being validated.
		return
	}

	if evicted != nil {
		hub.logger.Info("connection_evicted",
			slog.String("actor_id", actor.ID),
			slog.String("evicted_handle", evicted.Handle),
			slog.String("handle", conn.Handle),
		)
	}

	hub.logger.Info("connection_authenticated",
		slog.String("handle", conn.Handle),
		slog.String("actor_id", actor.ID),
		slog.String("role", actor.Role),
	)
	hub.dispatcher.DispatchPresenceSnapshot()
}

func (hub *Hub) rejectCredential(conn *Connection, cause error) {
	hub.logger.Info("auth_rejected", slog.String("handle", conn.Handle), slog.Any("error", cause))
	hub.dispatcher.SendTo(conn, ErrorFrame{Type: TypeAuthError, Message: "Invalid credentials"})
	_ = conn.Close()
}

func (hub *Hub) route(conn *Connection, frameType string, raw []byte) {
	actor, authenticated := hub.registry.Actor(conn)
	if !authenticated {
		hub.dispatcher.SendTo(conn, ErrorFrame{Type: TypeAuthError, Message: "Authenticate first"})
		return
	}

	switch frameType {
	case TypeJoinTicketRoom, TypeLeaveTicketRoom:
		var frame RoomFrame
		if err := decodeFrame(raw, &frame); err != nil || strings.TrimSpace(frame.TicketID) == "" {
			hub.dispatcher.SendTo(conn, ErrorFrame{Type: TypeError, Message: "ticketId is required"})
			return
		}
		if frameType == TypeJoinTicketRoom {
			hub.dispatcher.JoinRoom(conn, frame.TicketID)
		} else {
			hub.dispatcher.LeaveRoom(conn, frame.TicketID)
		}

	case TypeTicketMessageSent:
		var frame TicketMessageSentFrame
		if err := decodeFrame(raw, &frame); err != nil || frame.TicketID == "" {
			hub.dispatcher.SendTo(conn, ErrorFrame{Type: TypeError, Message: "ticketId is required"})
			return
		}
		if !hub.registry.InRoom(conn, frame.TicketID) {
			hub.dispatcher.SendTo(conn, ErrorFrame{Type: TypeError, Message: "Join the ticket room first"})
			return
		}
		hub.dispatcher.DispatchTicketMessage(frame.TicketID, NewTicketMessageReceived(frame, actor, hub.now()))

	case TypePrivateMessageSent:
		var frame PrivateMessageSentFrame
		if err := decodeFrame(raw, &frame); err != nil || frame.To == "" {
			hub.dispatcher.SendTo(conn, ErrorFrame{Type: TypeError, Message: "Recipient is required"})
			return
		}
		hub.dispatcher.DispatchDirectMessage(actor, frame.To, frame.Body)

	default:
		hub.dispatcher.SendTo(conn, ErrorFrame{Type: TypeError, Message: "Unknown frame type " + frameType})
	}
}

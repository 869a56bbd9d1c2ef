// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package realtime

import (
	"cmp"
	"log/slog"
	"slices"
	"time"

	"github.com/tellnab/tellnab/internal/support/access"
	"github.com/tellnab/tellnab/pkg/slice"
)

// Dispatcher delivers frames to the connections tracked by a [Registry].
// It holds no state of its own and shares the registry's confinement.
type Dispatcher struct {
	registry *Registry
	logger   *slog.Logger
	now      func() time.Time
}

// NewDispatcher constructs a [Dispatcher] over registry.
func NewDispatcher(registry *Registry, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{registry: registry, logger: logger, now: time.Now}
}

// JoinRoom adds conn to the ticket room. Idempotent. Callers authorize first.
func (dispatcher *Dispatcher) JoinRoom(conn *Connection, ticketID string) {
	if dispatcher.registry.Join(conn, ticketID) {
		dispatcher.logger.Debug("room_joined", slog.String("handle", conn.Handle), slog.String("ticket_id", ticketID))
	}
}

// LeaveRoom removes conn from the ticket room. Idempotent.
func (dispatcher *Dispatcher) LeaveRoom(conn *Connection, ticketID string) {
	if dispatcher.registry.Leave(conn, ticketID) {
		dispatcher.logger.Debug("room_left", slog.String("handle", conn.Handle), slog.String("ticket_id", ticketID))
	}
}

/*
DispatchTicketMessage sends message to every member of the ticket room.

Description: The frame is encoded once. An empty or unknown room is a silent
no-op.

Returns:
  - int: Number of connections the frame was handed to
*/
func (dispatcher *Dispatcher) DispatchTicketMessage(ticketID string, message any) int {
	frame, err := encodeFrame(message)
	if err != nil {
		dispatcher.logger.Error("frame_encode_failed", slog.String("ticket_id", ticketID), slog.Any("error", err))
		return 0
	}
	return dispatcher.DispatchEncoded(ticketID, frame)
}

// DispatchEncoded is [Dispatcher.DispatchTicketMessage] for an already encoded frame.
func (dispatcher *Dispatcher) DispatchEncoded(ticketID string, frame []byte) int {
	delivered := 0
	for _, conn := range dispatcher.registry.Members(ticketID) {
		if dispatcher.send(conn, frame) {
			delivered++
		}
	}
	return delivered
}

// PresenceSnapshot lists connected staff sorted by name, then id.
func (dispatcher *Dispatcher) PresenceSnapshot() PresenceUpdate {
	staff := slice.Filter(dispatcher.registry.Authenticated(), func(actor Actor) bool {
		return access.ParseLegacyRole(actor.Role).IsStaff()
	})

	agents := make([]PresenceAgent, 0, len(staff))
	for _, actor := range staff {
		agents = append(agents, PresenceAgent{ID: actor.ID, Name: actor.Name, Role: actor.Role})
	}

	slices.SortFunc(agents, func(a, b PresenceAgent) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})

	return PresenceUpdate{Type: TypePresenceUpdate, Agents: agents}
}

// DispatchPresenceSnapshot broadcasts the staff snapshot to every connection,
// authenticated or not.
func (dispatcher *Dispatcher) DispatchPresenceSnapshot() int {
	frame, err := encodeFrame(dispatcher.PresenceSnapshot())
	if err != nil {
		dispatcher.logger.Error("frame_encode_failed", slog.Any("error", err))
		return 0
	}

	delivered := 0
	for _, conn := range dispatcher.registry.Connections() {
		if dispatcher.send(conn, frame) {
			delivered++
		}
	}
	return delivered
}

/*
DispatchDirectMessage delivers body to the target actor's current connection
and echoes it to the sender's current connection.

Description: Nothing is stored. When the target has no current connection the
message is dropped and no echo is sent.

Returns:
  - bool: Whether the target received the frame
*/
func (dispatcher *Dispatcher) DispatchDirectMessage(from Actor, toActorID, body string) bool {
	target, ok := dispatcher.registry.Current(toActorID)
	if !ok {
		return false
	}

	frame, err := encodeFrame(PrivateMessageReceived{
		Type:     TypePrivateMessageReceived,
		From:     from.ID,
		FromName: from.Name,
		To:       toActorID,
		Body:     body,
		SentAt:   dispatcher.now().UTC(),
	})
	if err != nil {
		dispatcher.logger.Error("frame_encode_failed", slog.Any("error", err))
		return false
	}

	delivered := dispatcher.send(target, frame)

	if sender, ok := dispatcher.registry.Current(from.ID); ok && sender != target {
		dispatcher.send(sender, frame)
	}

	return delivered
}

// SendTo writes a single frame to one connection.
func (dispatcher *Dispatcher) SendTo(conn *Connection, message any) bool {
	frame, err := encodeFrame(message)
	if err != nil {
		dispatcher.logger.Error("frame_encode_failed", slog.Any("error", err))
		return false
	}
	return dispatcher.send(conn, frame)
}

func (dispatcher *Dispatcher) send(conn *Connection, frame []byte) bool {
	if err := conn.Send(frame); err != nil {
		dispatcher.logger.Debug("frame_dropped", slog.String("handle", conn.Handle), slog.Any("error", err))
		return false
	}
	return true
}

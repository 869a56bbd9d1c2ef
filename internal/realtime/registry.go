// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package realtime implements the live side of the helpdesk: agent presence,
ticket chat rooms and direct messages over websockets.

# Architecture

  - Registry: maps each actor to exactly one current connection and tracks room membership.
  - Dispatcher: fans frames out to rooms, actors, or every connection.
  - Hub: a single goroutine event loop that owns the Registry and Dispatcher.
  - Client: a gorilla/websocket connection with read and write pumps.

Delivery is best effort. Ticket messages are persisted before they are relayed,
so a dropped frame costs a live update, never data.
*/
package realtime

import (
	"github.com/tellnab/tellnab/pkg/uuid"
)

// session is the per-connection metadata kept by the registry.
type session struct {
	conn  *Connection
	actor *Actor
	rooms map[string]struct{}
}

// Registry indexes live connections by actor and by ticket room.
//
// A Registry is not safe for concurrent use. The [Hub] confines it to its loop
// goroutine.
type Registry struct {
	sessions map[string]*session               // handle -> session
	actors   map[string]*Connection            // actor id -> current connection
	rooms    map[string]map[string]*Connection // ticket id -> handle -> connection
}

// NewRegistry constructs an empty [Registry].
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*session),
		actors:   make(map[string]*Connection),
		rooms:    make(map[string]map[string]*Connection),
	}
}

// Open registers a new, unauthenticated connection.
func (registry *Registry) Open(transport Transport) *Connection {
	conn := &Connection{Handle: uuid.New(), transport: transport}
	registry.sessions[conn.Handle] = &session{conn: conn, rooms: make(map[string]struct{})}
	return conn
}

// Actor returns the actor bound to the connection, if any.
func (registry *Registry) Actor(conn *Connection) (Actor, bool) {
	s, ok := registry.sessions[conn.Handle]
	if !ok || s.actor == nil {
		return Actor{}, false
	}
	return *s.actor, true
}

/*
Bind installs actor on conn and makes conn the actor's current connection.

Description: When a different connection is current for the actor it is
closed, removed from every room and from the registry, and returned. Binding
an already-bound connection again overwrites its actor; if the actor changes,
the previous actor's index entry is released when it pointed at conn.

Returns:
  - *Connection: The evicted connection, or nil
  - bool: False when conn is no longer registered
*/
func (registry *Registry) Bind(conn *Connection, actor Actor) (*Connection, bool) {
	s, ok := registry.sessions[conn.Handle]
	if !ok {
		return nil, false
	}

	if s.actor != nil && s.actor.ID != actor.ID {
		if current := registry.actors[s.actor.ID]; current == conn {
			delete(registry.actors, s.actor.ID)
		}
	}

	bound := actor
	s.actor = &bound

	var evicted *Connection
	if previous, ok := registry.actors[actor.ID]; ok && previous != conn {
		registry.drop(previous)
		_ = previous.Close()
		evicted = previous
	}

	registry.actors[actor.ID] = conn
	return evicted, true
}

// Current returns the actor's current connection.
func (registry *Registry) Current(actorID string) (*Connection, bool) {
	conn, ok := registry.actors[actorID]
	return conn, ok
}

/*
Unregister forgets a closed connection.

Description: The connection leaves every room it joined. The actor index
entry is removed only if it still points at conn, so a superseded connection
never unregisters its replacement.

Returns:
  - *Actor: The actor that was bound, or nil
  - bool: Whether conn was the actor's current connection
*/
func (registry *Registry) Unregister(conn *Connection) (*Actor, bool) {
	s, ok := registry.sessions[conn.Handle]
	if !ok {
		return nil, false
	}

	registry.drop(conn)

	if s.actor == nil {
		return nil, false
	}

	wasCurrent := false
	if current, ok := registry.actors[s.actor.ID]; ok && current == conn {
		delete(registry.actors, s.actor.ID)
		wasCurrent = true
	}

	return s.actor, wasCurrent
}

// drop removes the connection from every room and from the session index.
func (registry *Registry) drop(conn *Connection) {
	s, ok := registry.sessions[conn.Handle]
	if !ok {
		return
	}
	for ticketID := range s.rooms {
		registry.removeMember(ticketID, conn.Handle)
	}
	delete(registry.sessions, conn.Handle)
}

// # Rooms

// Join adds conn to the ticket room, creating the room on first join.
// It reports whether membership changed.
func (registry *Registry) Join(conn *Connection, ticketID string) bool {
	s, ok := registry.sessions[conn.Handle]
	if !ok {
		return false
	}
	if _, member := s.rooms[ticketID]; member {
		return false
	}

	room, exists := registry.rooms[ticketID]
	if !exists {
		room = make(map[string]*Connection)
		registry.rooms[ticketID] = room
	}
	room[conn.Handle] = conn
	s.rooms[ticketID] = struct{}{}
	return true
}

// Leave removes conn from the ticket room. Empty rooms are deleted.
// It reports whether membership changed.
func (registry *Registry) Leave(conn *Connection, ticketID string) bool {
	s, ok := registry.sessions[conn.Handle]
	if !ok {
		return false
	}
	if _, member := s.rooms[ticketID]; !member {
		return false
	}

	delete(s.rooms, ticketID)
	registry.removeMember(ticketID, conn.Handle)
	return true
}

func (registry *Registry) removeMember(ticketID, handle string) {
	room, ok := registry.rooms[ticketID]
	if !ok {
		return
	}
	delete(room, handle)
	if len(room) == 0 {
		delete(registry.rooms, ticketID)
	}
}

// InRoom reports whether conn has joined the ticket room.
func (registry *Registry) InRoom(conn *Connection, ticketID string) bool {
	room, ok := registry.rooms[ticketID]
	if !ok {
		return false
	}
	_, member := room[conn.Handle]
	return member
}

// Members returns the room's connections in no particular order.
func (registry *Registry) Members(ticketID string) []*Connection {
	room := registry.rooms[ticketID]
	members := make([]*Connection, 0, len(room))
	for _, conn := range room {
		members = append(members, conn)
	}
	return members
}

// # Snapshots

// Connections returns every registered connection, authenticated or not.
func (registry *Registry) Connections() []*Connection {
	conns := make([]*Connection, 0, len(registry.sessions))
	for _, s := range registry.sessions {
		conns = append(conns, s.conn)
	}
	return conns
}

// Authenticated returns the actors that currently own a connection.
func (registry *Registry) Authenticated() []Actor {
	actors := make([]Actor, 0, len(registry.actors))
	for _, conn := range registry.actors {
		if s, ok := registry.sessions[conn.Handle]; ok && s.actor != nil {
			actors = append(actors, *s.actor)
		}
	}
	return actors
}

// RoomCount returns the number of non-empty rooms.
func (registry *Registry) RoomCount() int {
	return len(registry.rooms)
}

// ConnectionCount returns the number of registered connections.
func (registry *Registry) ConnectionCount() int {
	return len(registry.sessions)
}

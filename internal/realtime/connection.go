// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package realtime

import "errors"

// Transport is the outbound half of one duplex channel.
//
// Send must not block; implementations drop or fail when their buffer is full.
// Close must be idempotent.
type Transport interface {
	Send(frame []byte) error
	Close() error
}

// ErrTransportClosed is returned by Send after Close.
var ErrTransportClosed = errors.New("realtime: transport closed")

// ErrSendBufferFull is returned by Send when the outbound buffer is saturated.
var ErrSendBufferFull = errors.New("realtime: send buffer full")

// Actor is an authenticated identity bound to a connection.
type Actor struct {
	ID   string
	Name string
	Role string
}

// Connection is the registry's handle on one live channel.
//
// It carries no back-reference into the registry; membership and actor binding
// live in the registry's own indexes, keyed by Handle.
type Connection struct {
	Handle    string
	transport Transport
}

// Send writes an encoded frame to the underlying transport.
func (connection *Connection) Send(frame []byte) error {
	return connection.transport.Send(frame)
}

// Close closes the underlying transport.
func (connection *Connection) Close() error {
	return connection.transport.Close()
}

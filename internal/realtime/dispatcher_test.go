// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package realtime_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tellnab/tellnab/internal/realtime"
)

func newDispatcher() (*realtime.Registry, *realtime.Dispatcher) {
	registry := realtime.NewRegistry()
	return registry, realtime.NewDispatcher(registry, discardLogger())
}

/*
TestDispatcher_FanOutCompleteness delivers to exactly the room members.
*/
func TestDispatcher_FanOutCompleteness(t *testing.T) {
	registry, dispatcher := newDispatcher()

	members := []*fakeTransport{{}, {}, {}}
	for _, transport := range members {
		dispatcher.JoinRoom(registry.Open(transport), "T")
	}
	outsider := &fakeTransport{}
	dispatcher.JoinRoom(registry.Open(outsider), "other")

	delivered := dispatcher.DispatchTicketMessage("T", map[string]string{"type": "ticket_message_received", "body": "hi"})
	assert.Equal(t, 3, delivered)

	for _, transport := range members {
		assert.Len(t, transport.framesOf(t, "ticket_message_received"), 1)
	}
	assert.Zero(t, outsider.count())
}

/*
TestDispatcher_EmptyRoom is a silent no-op.
*/
func TestDispatcher_EmptyRoom(t *testing.T) {
	registry, dispatcher := newDispatcher()
	bystander := &fakeTransport{}
	registry.Open(bystander)

	assert.Zero(t, dispatcher.DispatchTicketMessage("ticket-404", map[string]string{"body": "hello"}))
	assert.Zero(t, bystander.count())
}

/*
TestDispatcher_PresenceSnapshot lists staff only, sorted, and reaches every connection.
*/
func TestDispatcher_PresenceSnapshot(t *testing.T) {
	registry, dispatcher := newDispatcher()

	anonymous := &fakeTransport{}
	registry.Open(anonymous)

	bind := func(actor realtime.Actor) *fakeTransport {
		transport := &fakeTransport{}
		registry.Bind(registry.Open(transport), actor)
		return transport
	}
	customer := bind(realtime.Actor{ID: "u1", Name: "Carol", Role: "member"})
	bind(realtime.Actor{ID: "s2", Name: "Zed", Role: "support"})
	bind(realtime.Actor{ID: "s1", Name: "Amy", Role: "admin"})
	bind(realtime.Actor{ID: "s0", Name: "Amy", Role: "moderator"})

	snapshot := dispatcher.PresenceSnapshot()
	require.Len(t, snapshot.Agents, 3)
	assert.Equal(t, []string{"s0", "s1", "s2"}, []string{snapshot.Agents[0].ID, snapshot.Agents[1].ID, snapshot.Agents[2].ID})

	assert.Equal(t, 5, dispatcher.DispatchPresenceSnapshot())
	assert.Len(t, anonymous.framesOf(t, "presence_update"), 1)

	frames := customer.framesOf(t, "presence_update")
	require.Len(t, frames, 1)
	assert.Len(t, frames[0]["agents"], 3)
}

/*
TestDispatcher_DirectMessage targets the current connection and echoes to the sender.
*/
func TestDispatcher_DirectMessage(t *testing.T) {
	registry, dispatcher := newDispatcher()

	senderTransport, targetTransport := &fakeTransport{}, &fakeTransport{}
	sender := realtime.Actor{ID: "s1", Name: "Sam", Role: "support"}
	registry.Bind(registry.Open(senderTransport), sender)
	registry.Bind(registry.Open(targetTransport), realtime.Actor{ID: "u1", Role: "member"})

	assert.True(t, dispatcher.DispatchDirectMessage(sender, "u1", "hello"))

	received := targetTransport.framesOf(t, "private_message_received")
	require.Len(t, received, 1)
	assert.Equal(t, "s1", received[0]["from"])
	assert.Equal(t, "Sam", received[0]["fromName"])
	assert.Equal(t, "hello", received[0]["body"])
	assert.Len(t, senderTransport.framesOf(t, "private_message_received"), 1)

	assert.False(t, dispatcher.DispatchDirectMessage(sender, "offline", "ping"))
	assert.Len(t, senderTransport.framesOf(t, "private_message_received"), 1)
}

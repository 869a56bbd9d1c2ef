// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package realtime_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tellnab/tellnab/internal/realtime"
)

/*
TestRegistry_EvictionOnReconnect checks the at-most-one-current-connection rule.
*/
func TestRegistry_EvictionOnReconnect(t *testing.T) {
	registry := realtime.NewRegistry()
	t1, t2, t3 := &fakeTransport{}, &fakeTransport{}, &fakeTransport{}
	c1, c2, c3 := registry.Open(t1), registry.Open(t2), registry.Open(t3)
	actor := realtime.Actor{ID: "A1", Name: "Alice", Role: "support"}

	evicted, ok := registry.Bind(c1, actor)
	require.True(t, ok)
	assert.Nil(t, evicted)
	registry.Join(c1, "ticket-1")

	evicted, ok = registry.Bind(c2, actor)
	require.True(t, ok)
	assert.Same(t, c1, evicted)
	assert.True(t, t1.isClosed())
	assert.False(t, t2.isClosed())

	current, ok := registry.Current("A1")
	require.True(t, ok)
	assert.Same(t, c2, current)
	assert.Empty(t, registry.Members("ticket-1"))
	assert.Equal(t, 0, registry.RoomCount())

	evicted, _ = registry.Bind(c3, actor)
	assert.Same(t, c2, evicted)
	current, _ = registry.Current("A1")
	assert.Same(t, c3, current)
	assert.Len(t, registry.Authenticated(), 1)
}

/*
TestRegistry_RebindSameConnection keeps last-write-wins without evicting others.
*/
func TestRegistry_RebindSameConnection(t *testing.T) {
	registry := realtime.NewRegistry()
	c1 := registry.Open(&fakeTransport{})
	c2 := registry.Open(&fakeTransport{})

	registry.Bind(c2, realtime.Actor{ID: "B"})
	registry.Bind(c1, realtime.Actor{ID: "A", Name: "First"})

	evicted, ok := registry.Bind(c1, realtime.Actor{ID: "A", Name: "Second"})
	require.True(t, ok)
	assert.Nil(t, evicted)

	actor, _ := registry.Actor(c1)
	assert.Equal(t, "Second", actor.Name)

	// Switching actor releases the old index entry.
	registry.Bind(c1, realtime.Actor{ID: "C"})
	_, ok = registry.Current("A")
	assert.False(t, ok)
	current, _ := registry.Current("B")
	assert.Same(t, c2, current)
}

/*
TestRegistry_UnregisterSuperseded must not remove the replacement connection.
*/
func TestRegistry_UnregisterSuperseded(t *testing.T) {
	registry := realtime.NewRegistry()
	c1 := registry.Open(&fakeTransport{})
	c2 := registry.Open(&fakeTransport{})
	actor := realtime.Actor{ID: "A1"}

	registry.Bind(c1, actor)
	registry.Bind(c2, actor)

	gone, wasCurrent := registry.Unregister(c1)
	assert.Nil(t, gone)
	assert.False(t, wasCurrent)

	current, ok := registry.Current("A1")
	require.True(t, ok)
	assert.Same(t, c2, current)

	gone, wasCurrent = registry.Unregister(c2)
	require.NotNil(t, gone)
	assert.Equal(t, "A1", gone.ID)
	assert.True(t, wasCurrent)
	_, ok = registry.Current("A1")
	assert.False(t, ok)
	assert.Equal(t, 0, registry.ConnectionCount())
}

/*
TestRegistry_RoomCleanup deletes rooms once their last member leaves or disconnects.
*/
func TestRegistry_RoomCleanup(t *testing.T) {
	registry := realtime.NewRegistry()
	c1 := registry.Open(&fakeTransport{})
	c2 := registry.Open(&fakeTransport{})

	assert.True(t, registry.Join(c1, "t1"))
	assert.False(t, registry.Join(c1, "t1"))
	registry.Join(c2, "t1")
	registry.Join(c2, "t2")
	assert.Equal(t, 2, registry.RoomCount())

	assert.True(t, registry.Leave(c1, "t1"))
	assert.False(t, registry.Leave(c1, "t1"))
	assert.Len(t, registry.Members("t1"), 1)

	registry.Unregister(c2)
	assert.Equal(t, 0, registry.RoomCount())
	assert.Empty(t, registry.Members("t1"))
	assert.Empty(t, registry.Members("t2"))

	// Unknown connections are ignored.
	assert.False(t, registry.Join(c2, "t3"))
	_, ok := registry.Bind(c2, realtime.Actor{ID: "late"})
	assert.False(t, ok)
}

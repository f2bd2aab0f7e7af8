package websocket

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	version atomic.Int64
}

func (f *fakeSource) Version(context.Context) (int64, error) {
	return f.version.Load(), nil
}

func receive(t *testing.T, c *Client) VersionUpdate {
	t.Helper()
	select {
	case msg := <-c.send:
		var update VersionUpdate
		require.NoError(t, json.Unmarshal(msg, &update))
		return update
	case <-time.After(time.Second):
		t.Fatal("no message received")
		return VersionUpdate{}
	}
}

func TestHubBroadcastsVersionChanges(t *testing.T) {
	source := &fakeSource{}
	source.version.Store(3)

	hub := NewHub(source)
	hub.pollInterval = 5 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	client := &Client{hub: hub, send: make(chan []byte, 4)}
	hub.register <- client

	initial := receive(t, client)
	assert.Equal(t, MessageTypeVersion, initial.Type)
	assert.Equal(t, int64(3), initial.Version)
	assert.Equal(t, 1, hub.ClientCount())

	source.version.Store(4)
	assert.Equal(t, int64(4), receive(t, client).Version)

	hub.unregister <- client
	assert.Equal(t, 0, hub.ClientCount())
	_, open := <-client.send
	assert.False(t, open, "send channel must be closed on unregister")
}

func TestHubSkipsFullClients(t *testing.T) {
	source := &fakeSource{}
	hub := NewHub(source)
	hub.pollInterval = 5 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	slow := &Client{hub: hub, send: make(chan []byte)} // unbuffered, never read
	hub.register <- slow

	source.version.Store(1)
	// the hub must stay responsive despite the stuck client
	assert.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)
}

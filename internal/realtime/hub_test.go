package realtime

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubBroadcast(t *testing.T) {
	hub := NewHub()
	go hub.Run(t.Context())

	a := NewClient(uuid.New(), nil)
	b := NewClient(uuid.New(), nil)
	hub.RegisterClient(a)
	hub.RegisterClient(b)
	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, time.Second, 5*time.Millisecond)

	LocalPublisher{Hub: hub}.Publish(t.Context(), []byte(`{"event_name":"cta_click"}`))

	for _, c := range []*Client{a, b} {
		select {
		case msg := <-c.Send:
			assert.JSONEq(t, `{"event_name":"cta_click"}`, string(msg))
		case <-time.After(time.Second):
			t.Fatal("no message delivered")
		}
	}

	hub.UnregisterClient(a)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)
	_, open := <-a.Send
	assert.False(t, open)
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := NewHub()
	go hub.Run(t.Context())

	c := NewClient(uuid.New(), nil)
	hub.RegisterClient(c)
	for i := 0; i < cap(c.Send)+1; i++ {
		hub.BroadcastJSON(map[string]int{"n": i})
	}
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
}

func TestHubStopClosesClients(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	c := NewClient(uuid.New(), nil)
	hub.RegisterClient(c)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	<-stopped
	_, open := <-c.Send
	assert.False(t, open)

	// none of these may block once the hub is gone
	hub.Broadcast([]byte("late"))
	hub.UnregisterClient(c)
	late := NewClient(uuid.New(), nil)
	hub.RegisterClient(late)
	_, open = <-late.Send
	assert.False(t, open)
}

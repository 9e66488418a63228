package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// wsPair upgrades one connection through a throwaway server and returns both
// ends of it.
func wsPair(t *testing.T) (server, client *websocket.Conn) {
	t.Helper()
	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	conns := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Error(err)
			return
		}
		conns <- conn
	}))
	t.Cleanup(srv.Close)

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return <-conns, client
}

func subscriberCount(h *Hub, channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels[channel])
}

func subscribe(t *testing.T, client *websocket.Conn, channel string) {
	t.Helper()
	require.NoError(t, client.WriteJSON(subscribeRequest{Action: "subscribe", Channel: channel}))
}

func TestPublishDeliversEventsInOrder(t *testing.T) {
	hub := NewHub(zap.NewNop())
	server, client := wsPair(t)
	NewClient(hub, server, zap.NewNop(), nil)

	subscribe(t, client, JobChannel("j1"))
	require.Eventually(t, func() bool { return subscriberCount(hub, "job:j1") == 1 },
		time.Second, 10*time.Millisecond)

	hub.Publish(JobChannel("j1"), EventUpdate, "job", "j1")
	hub.Publish(JobChannel("j1"), EventInsert, "message", "m1")

	client.SetReadDeadline(time.Now().Add(time.Second))
	var first, second Event
	require.NoError(t, client.ReadJSON(&first))
	require.NoError(t, client.ReadJSON(&second))

	assert.Equal(t, EventUpdate, first.Kind)
	assert.Equal(t, "job", first.Entity)
	assert.Equal(t, "j1", first.EntityID)
	assert.Equal(t, EventInsert, second.Kind)
	assert.Equal(t, "m1", second.EntityID)
}

func TestSubscribeRespectsChannelGate(t *testing.T) {
	hub := NewHub(zap.NewNop())
	server, client := wsPair(t)
	NewClient(hub, server, zap.NewNop(), func(channel string) bool {
		return channel == UserChannel("u1")
	})

	subscribe(t, client, JobChannel("someone-elses-job"))
	subscribe(t, client, UserChannel("u1"))
	require.Eventually(t, func() bool { return subscriberCount(hub, "user:u1") == 1 },
		time.Second, 10*time.Millisecond)
	assert.Zero(t, subscriberCount(hub, "job:someone-elses-job"))

	hub.Publish(UserChannel("u1"), EventInsert, "notification", "n1")

	client.SetReadDeadline(time.Now().Add(time.Second))
	var ev Event
	require.NoError(t, client.ReadJSON(&ev))
	assert.Equal(t, "user:u1", ev.Channel)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	hub := NewHub(zap.NewNop())
	server, client := wsPair(t)
	NewClient(hub, server, zap.NewNop(), nil)

	subscribe(t, client, JobChannel("j1"))
	require.Eventually(t, func() bool { return subscriberCount(hub, "job:j1") == 1 },
		time.Second, 10*time.Millisecond)

	require.NoError(t, client.WriteJSON(subscribeRequest{Action: "unsubscribe", Channel: JobChannel("j1")}))
	require.Eventually(t, func() bool { return subscriberCount(hub, "job:j1") == 0 },
		time.Second, 10*time.Millisecond)

	hub.Publish(JobChannel("j1"), EventUpdate, "job", "j1")

	client.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	var ev Event
	assert.Error(t, client.ReadJSON(&ev))
}

func TestPublishToClosedClientDoesNotPanic(t *testing.T) {
	hub := NewHub(zap.NewNop())
	server, _ := wsPair(t)

	c := &Client{hub: hub, conn: server, send: make(chan Event, 1)}
	hub.Subscribe(JobChannel("j1"), c)
	c.Close()

	// A publisher may have snapshotted the subscriber list before the close
	// dropped this client; the send must be refused, not panic.
	hub.Subscribe(JobChannel("j1"), c)
	hub.Publish(JobChannel("j1"), EventUpdate, "job", "j1")

	assert.Zero(t, subscriberCount(hub, "job:j1"))
}

func TestPublishCloseRace(t *testing.T) {
	hub := NewHub(zap.NewNop())

	for i := 0; i < 200; i++ {
		server, _ := wsPair(t)
		c := &Client{hub: hub, conn: server, send: make(chan Event, 1)}
		hub.Subscribe(JobChannel("j1"), c)

		done := make(chan struct{})
		go func() {
			c.Close()
			close(done)
		}()
		hub.Publish(JobChannel("j1"), EventUpdate, "job", "j1")
		<-done
	}
}

func TestSlowSubscriberIsDropped(t *testing.T) {
	hub := NewHub(zap.NewNop())
	server, _ := wsPair(t)

	// No pumps and an unbuffered send channel: the first publish cannot be
	// delivered and must evict the client instead of blocking the hub.
	c := &Client{hub: hub, conn: server, send: make(chan Event)}
	hub.Subscribe(JobChannel("j1"), c)

	hub.Publish(JobChannel("j1"), EventUpdate, "job", "j1")
	assert.Zero(t, subscriberCount(hub, "job:j1"))
}

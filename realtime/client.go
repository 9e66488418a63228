package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 32
)

// subscribeRequest is the only message a client may send: channel
// subscription management.
type subscribeRequest struct {
	Action  string `json:"action"` // "subscribe" or "unsubscribe"
	Channel string `json:"channel"`
}

// Client is one connected websocket subscriber.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan Event
	logger *zap.Logger

	// mu guards closed and fences sends against close: a publisher holding
	// a stale snapshot of this client must never hit a closed channel.
	mu        sync.Mutex
	closed    bool
	closeOnce sync.Once
	// allowed restricts the channels this client may join: its own user
	// channel plus job channels it participates in are decided upstream.
	allowed func(channel string) bool
}

// NewClient wraps an upgraded websocket connection and starts its pumps.
func NewClient(hub *Hub, conn *websocket.Conn, logger *zap.Logger, allowed func(string) bool) *Client {
	c := &Client{
		hub:     hub,
		conn:    conn,
		send:    make(chan Event, sendBuffer),
		logger:  logger,
		allowed: allowed,
	}
	go c.writePump()
	go c.readPump()
	return c
}

// Close tears the connection down and detaches the client from the hub.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.hub.Drop(c)
		c.mu.Lock()
		c.closed = true
		close(c.send)
		c.mu.Unlock()
		c.conn.Close()
	})
}

// trySend hands the event to the write pump without blocking. It reports
// false when the client is closed or its buffer is full.
func (c *Client) trySend(ev Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- ev:
		return true
	default:
		return false
	}
}

// readPump consumes subscription requests until the connection dies.
func (c *Client) readPump() {
	defer c.Close()
	c.conn.SetReadLimit(1 << 10)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("websocket read error", zap.Error(err))
			}
			return
		}
		var req subscribeRequest
		if err := json.Unmarshal(data, &req); err != nil {
			continue
		}
		switch req.Action {
		case "subscribe":
			if c.allowed == nil || c.allowed(req.Channel) {
				c.hub.Subscribe(req.Channel, c)
			}
		case "unsubscribe":
			c.hub.Unsubscribe(req.Channel, c)
		}
	}
}

// writePump serializes events to the socket and keeps the connection alive.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case ev, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

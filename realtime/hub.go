package realtime

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Publisher is the side of the hub exposed to services: fire-and-forget
// change notifications onto named channels.
type Publisher interface {
	Publish(channel string, kind EventKind, entity, entityID string)
}

// Hub fans events out to websocket subscribers. Delivery is in-order per
// channel and best effort: a subscriber that cannot keep up is dropped.
type Hub struct {
	mu       sync.RWMutex
	channels map[string]map[*Client]struct{}
	logger   *zap.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		channels: make(map[string]map[*Client]struct{}),
		logger:   logger,
	}
}

// Subscribe registers a client on a channel.
func (h *Hub) Subscribe(channel string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs, ok := h.channels[channel]
	if !ok {
		subs = make(map[*Client]struct{})
		h.channels[channel] = subs
	}
	subs[c] = struct{}{}
}

// Unsubscribe removes a client from a channel.
func (h *Hub) Unsubscribe(channel string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if subs, ok := h.channels[channel]; ok {
		delete(subs, c)
		if len(subs) == 0 {
			delete(h.channels, channel)
		}
	}
}

// Drop removes a client from every channel it is subscribed to.
func (h *Hub) Drop(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for channel, subs := range h.channels {
		delete(subs, c)
		if len(subs) == 0 {
			delete(h.channels, channel)
		}
	}
}

// Publish delivers an event to every subscriber of the channel. Slow
// subscribers are disconnected rather than allowed to block the rest.
func (h *Hub) Publish(channel string, kind EventKind, entity, entityID string) {
	ev := Event{
		Channel:  channel,
		Kind:     kind,
		Entity:   entity,
		EntityID: entityID,
		At:       time.Now(),
	}

	h.mu.RLock()
	subs := make([]*Client, 0, len(h.channels[channel]))
	for c := range h.channels[channel] {
		subs = append(subs, c)
	}
	h.mu.RUnlock()

	for _, c := range subs {
		if c.trySend(ev) {
			continue
		}
		h.logger.Warn("realtime subscriber unreachable, dropping",
			zap.String("channel", channel))
		c.Close()
		// Close only drops once; an already-closed client that is still
		// registered on this channel comes off here.
		h.Unsubscribe(channel, c)
	}
}

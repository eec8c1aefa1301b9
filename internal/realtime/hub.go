// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package realtime

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/MKhiriev/go-fleed/internal/config"
	"github.com/MKhiriev/go-fleed/internal/logger"
	"github.com/MKhiriev/go-fleed/models"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 4096
)

// privateTables may only be subscribed to filtered by the subscriber's own id.
var privateTables = map[string]string{
	models.Notification{}.TableName(): "receiver_id",
}

// Hub fans mutation events out to websocket subscribers.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
	closed  bool

	upgrader     websocket.Upgrader
	pingInterval time.Duration
	sendBuffer   int

	logger *logger.Logger
}

func NewHub(cfg config.Realtime, logger *logger.Logger) *Hub {
	logger.Debug().Msg("creating realtime hub")
	return &Hub{
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The TUI client is not a browser; there is no origin to check.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		pingInterval: cfg.PingInterval,
		sendBuffer:   cfg.SendBuffer,
		logger:       logger,
	}
}

// Run blocks until ctx is done and then closes every connection.
func (h *Hub) Run(ctx context.Context) {
	<-ctx.Done()

	h.mu.Lock()
	h.closed = true
	clients := h.clients
	h.clients = make(map[*client]struct{})
	h.mu.Unlock()

	for c := range clients {
		c.close()
	}
	h.logger.Info().Int("connections", len(clients)).Msg("realtime hub stopped")
}

// Publish delivers event to every subscription whose topic matches it.
// It never blocks: connections with a full send buffer are dropped.
func (h *Hub) Publish(event models.MutationEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		for _, topic := range c.matching(event) {
			msg := models.RealtimeMessage{Type: models.MessageEvent, Topic: topic, Event: &event}
			if !c.enqueue(msg) {
				h.logger.Warn().Str("func", "*Hub.Publish").Int64("user_id", c.userID).Msg("dropping slow realtime connection")
				go h.unregister(c)
				break
			}
		}
	}
}

// Connections returns the number of open connections.
func (h *Hub) Connections() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeWS upgrades the request to a websocket connection for userID and
// serves it until either side closes it.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, userID int64) {
	log := logger.FromRequest(r)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Err(err).Str("func", "*Hub.ServeWS").Msg("websocket upgrade failed")
		return
	}

	c := newClient(conn, userID, h.sendBuffer)
	if !h.register(c) {
		c.close()
		return
	}
	log.Debug().Int64("user_id", userID).Msg("realtime connection opened")

	go h.writePump(c)
	h.readPump(c)

	h.unregister(c)
	log.Debug().Int64("user_id", userID).Msg("realtime connection closed")
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	return true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()

	c.close()
}

// readPump handles the control frames of a connection.
func (h *Hub) readPump(c *client) {
	pongWait := 2 * h.pingInterval

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg models.RealtimeMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn().Err(err).Int64("user_id", c.userID).Msg("realtime connection read failed")
			}
			return
		}

		if !c.enqueue(h.handleControl(c, msg)) {
			return
		}
	}
}

func (h *Hub) handleControl(c *client, msg models.RealtimeMessage) models.RealtimeMessage {
	reply := models.RealtimeMessage{Topic: msg.Topic}

	topic, err := models.ParseTopic(msg.Topic)
	if err == nil && msg.Type == models.MessageSubscribe {
		err = authorizeTopic(topic, c.userID)
	}
	if err != nil {
		reply.Type, reply.Error = models.MessageError, err.Error()
		return reply
	}

	switch msg.Type {
	case models.MessageSubscribe:
		c.subscribe(topic)
		reply.Type = models.MessageSubscribed
	case models.MessageUnsubscribe:
		c.unsubscribe(topic)
		reply.Type = models.MessageUnsubscribed
	default:
		reply.Type, reply.Error = models.MessageError, fmt.Errorf("%w: %q", ErrUnknownMessage, msg.Type).Error()
	}

	return reply
}

// writePump writes queued frames and pings the peer every ping interval.
func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(h.pingInterval)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

func authorizeTopic(topic models.Topic, userID int64) error {
	column, private := privateTables[topic.Table]
	if !private {
		return nil
	}
	if topic.Column != column || topic.Value != strconv.FormatInt(userID, 10) {
		return fmt.Errorf("%w: %s", ErrForbiddenTopic, topic)
	}
	return nil
}

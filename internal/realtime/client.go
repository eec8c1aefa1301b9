// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package realtime

import (
	"sync"

	"github.com/MKhiriev/go-fleed/models"
	"github.com/gorilla/websocket"
)

// client is a single websocket connection and its subscriptions.
type client struct {
	conn   *websocket.Conn
	userID int64

	mu     sync.RWMutex
	topics map[string]models.Topic

	send      chan models.RealtimeMessage
	done      chan struct{}
	closeOnce sync.Once
}

func newClient(conn *websocket.Conn, userID int64, buffer int) *client {
	return &client{
		conn:   conn,
		userID: userID,
		topics: make(map[string]models.Topic),
		send:   make(chan models.RealtimeMessage, buffer),
		done:   make(chan struct{}),
	}
}

func (c *client) subscribe(topic models.Topic) {
	c.mu.Lock()
	c.topics[topic.String()] = topic
	c.mu.Unlock()
}

func (c *client) unsubscribe(topic models.Topic) {
	c.mu.Lock()
	delete(c.topics, topic.String())
	c.mu.Unlock()
}

// matching returns the subscribed topics event matches.
func (c *client) matching(event models.MutationEvent) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var matched []string
	for key, topic := range c.topics {
		if topic.Matches(event) {
			matched = append(matched, key)
		}
	}
	return matched
}

// enqueue queues msg without blocking. It reports false when the connection
// is closed or its buffer is full.
func (c *client) enqueue(msg models.RealtimeMessage) bool {
	select {
	case <-c.done:
		return false
	default:
	}

	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

func (c *client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

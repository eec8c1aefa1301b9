// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-fleed/internal/logger"
	"github.com/MKhiriev/go-fleed/models"
	"github.com/gorilla/websocket"
)

const (
	realtimePath      = "/realtime/v1/websocket"
	realtimeWriteWait = 10 * time.Second
)

// wsRealtime multiplexes topic subscriptions over one websocket connection.
type wsRealtime struct {
	url    string
	token  func() string
	dialer *websocket.Dialer

	mu      sync.Mutex
	conn    *websocket.Conn
	subs    map[string]map[*subscription]struct{}
	pending map[string]*pendingAck

	// writeMu serialises frame writes; gorilla allows one concurrent writer.
	writeMu sync.Mutex

	logger *logger.Logger
}

// NewRealtime creates the push channel client for the server behind adapter.
// The bearer token is read from the adapter on every Connect.
func NewRealtime(server ServerAdapter, baseURL string, logger *logger.Logger) (Realtime, error) {
	u, err := normalizeBaseURL(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid realtime address: %w", err)
	}

	switch {
	case strings.HasPrefix(u, "https://"):
		u = "wss://" + strings.TrimPrefix(u, "https://")
	case strings.HasPrefix(u, "http://"):
		u = "ws://" + strings.TrimPrefix(u, "http://")
	}

	return &wsRealtime{
		url:     u + realtimePath,
		token:   server.Token,
		dialer:  &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
		subs:    make(map[string]map[*subscription]struct{}),
		pending: make(map[string]*pendingAck),
		logger:  logger,
	}, nil
}

func (r *wsRealtime) Connect(ctx context.Context) error {
	r.mu.Lock()
	if r.conn != nil {
		r.mu.Unlock()
		return nil
	}
	r.mu.Unlock()

	header := http.Header{}
	if token := r.token(); token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	conn, resp, err := r.dialer.DialContext(ctx, r.url, header)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnauthorized {
			return fmt.Errorf("%w: %w", ErrUnauthorized, err)
		}
		return fmt.Errorf("dial push channel: %w", err)
	}

	r.mu.Lock()
	if r.conn != nil {
		r.mu.Unlock()
		conn.Close()
		return nil
	}
	r.conn = conn
	r.mu.Unlock()

	go r.readLoop(conn)

	r.logger.Info().Str("url", r.url).Msg("push channel connected")
	return nil
}

func (r *wsRealtime) Subscribe(ctx context.Context, topic models.Topic, onEvent func(models.MutationEvent)) (Subscription, error) {
	key := topic.String()
	sub := &subscription{topic: topic, onEvent: onEvent, realtime: r}

	r.mu.Lock()
	conn := r.conn
	if conn == nil {
		r.mu.Unlock()
		return nil, ErrNotConnected
	}

	subs, exists := r.subs[key]
	if !exists {
		subs = make(map[*subscription]struct{})
		r.subs[key] = subs
	}
	subs[sub] = struct{}{}

	ack, waiting := r.pending[key]
	if exists && !waiting {
		r.mu.Unlock()
		return sub, nil
	}
	if !exists {
		ack = &pendingAck{done: make(chan struct{})}
		r.pending[key] = ack
	}
	r.mu.Unlock()

	if !exists {
		if err := r.write(conn, models.RealtimeMessage{Type: models.MessageSubscribe, Topic: key}); err != nil {
			r.drop(sub)
			return nil, fmt.Errorf("send subscribe frame: %w", err)
		}
	}

	select {
	case <-ack.done:
		if ack.err != nil {
			r.drop(sub)
			return nil, ack.err
		}
		return sub, nil
	case <-ctx.Done():
		r.drop(sub)
		return nil, ctx.Err()
	}
}

func (r *wsRealtime) Close() error {
	r.mu.Lock()
	conn := r.conn
	r.mu.Unlock()

	if conn == nil {
		return nil
	}
	return conn.Close()
}

func (r *wsRealtime) readLoop(conn *websocket.Conn) {
	defer r.disconnect(conn)

	for {
		var msg models.RealtimeMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if !errors.Is(err, net.ErrClosed) && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				r.logger.Warn().Err(err).Msg("push channel read failed")
			}
			return
		}

		switch msg.Type {
		case models.MessageEvent:
			if msg.Event != nil {
				r.dispatch(msg.Topic, *msg.Event)
			}
		case models.MessageSubscribed:
			r.resolve(msg.Topic, nil)
		case models.MessageError:
			r.logger.Warn().Str("topic", msg.Topic).Str("error", msg.Error).Msg("push channel error frame")
			r.resolve(msg.Topic, fmt.Errorf("%w: %s", ErrSubscriptionRejected, msg.Error))
		}
	}
}

func (r *wsRealtime) dispatch(topic string, event models.MutationEvent) {
	r.mu.Lock()
	handlers := make([]func(models.MutationEvent), 0, len(r.subs[topic]))
	for sub := range r.subs[topic] {
		handlers = append(handlers, sub.onEvent)
	}
	r.mu.Unlock()

	for _, onEvent := range handlers {
		onEvent(event)
	}
}

// resolve answers every Subscribe waiting on topic. A rejected topic loses
// all of its registrations at once.
func (r *wsRealtime) resolve(topic string, err error) {
	r.mu.Lock()
	ack, ok := r.pending[topic]
	delete(r.pending, topic)
	if ok && err != nil {
		delete(r.subs, topic)
	}
	r.mu.Unlock()

	if ok {
		ack.finish(err)
	}
}

// disconnect forgets conn and fails every pending subscribe. Live
// subscriptions stop receiving events and must be renewed after Connect.
func (r *wsRealtime) disconnect(conn *websocket.Conn) {
	conn.Close()

	r.mu.Lock()
	if r.conn == conn {
		r.conn = nil
	}
	pending := r.pending
	r.pending = make(map[string]*pendingAck)
	r.subs = make(map[string]map[*subscription]struct{})
	r.mu.Unlock()

	for _, ack := range pending {
		ack.finish(ErrNotConnected)
	}
	r.logger.Info().Msg("push channel disconnected")
}

// drop removes sub and sends an unsubscribe frame when it was the last one
// of its topic.
func (r *wsRealtime) drop(sub *subscription) {
	key := sub.topic.String()

	r.mu.Lock()
	subs, ok := r.subs[key]
	if !ok {
		r.mu.Unlock()
		return
	}
	if _, held := subs[sub]; !held {
		r.mu.Unlock()
		return
	}
	delete(subs, sub)

	last := len(subs) == 0
	if last {
		delete(r.subs, key)
		delete(r.pending, key)
	}
	conn := r.conn
	r.mu.Unlock()

	if last && conn != nil {
		if err := r.write(conn, models.RealtimeMessage{Type: models.MessageUnsubscribe, Topic: key}); err != nil {
			r.logger.Debug().Err(err).Str("topic", key).Msg("unsubscribe frame not sent")
		}
	}
}

func (r *wsRealtime) write(conn *websocket.Conn, msg models.RealtimeMessage) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	if err := conn.SetWriteDeadline(time.Now().Add(realtimeWriteWait)); err != nil {
		return err
	}
	return conn.WriteJSON(msg)
}

// pendingAck is the outstanding answer to a subscribe frame, shared by every
// Subscribe call for the topic made before the answer arrived.
type pendingAck struct {
	done chan struct{}
	err  error
}

// finish must be called once, after the ack was removed from pending.
func (a *pendingAck) finish(err error) {
	a.err = err
	close(a.done)
}

type subscription struct {
	topic    models.Topic
	onEvent  func(models.MutationEvent)
	realtime *wsRealtime
}

func (s *subscription) Topic() models.Topic {
	return s.topic
}

func (s *subscription) Unsubscribe() {
	s.realtime.drop(s)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package realtime

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-fleed/internal/config"
	"github.com/MKhiriev/go-fleed/internal/logger"
	"github.com/MKhiriev/go-fleed/models"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUserID = 7

func newTestHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()

	hub := NewHub(config.Realtime{PingInterval: time.Second, SendBuffer: 16}, logger.Nop())
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWS(w, r, testUserID)
	}))
	t.Cleanup(srv.Close)

	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn
}

func send(t *testing.T, conn *websocket.Conn, msgType, topic string) models.RealtimeMessage {
	t.Helper()

	require.NoError(t, conn.WriteJSON(models.RealtimeMessage{Type: msgType, Topic: topic}))
	return read(t, conn)
}

func read(t *testing.T, conn *websocket.Conn) models.RealtimeMessage {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg models.RealtimeMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func commentEvent(t *testing.T, id, postID int64) models.MutationEvent {
	t.Helper()

	event, err := models.NewMutationEvent("comments", models.EventInsert, id, map[string]any{"id": id, "post_id": postID})
	require.NoError(t, err)
	return event
}

func TestHub_SubscribeAndPublish(t *testing.T) {
	hub, srv := newTestHub(t)
	conn := dial(t, srv)

	reply := send(t, conn, models.MessageSubscribe, "comments:post_id=eq.12")
	require.Equal(t, models.MessageSubscribed, reply.Type)
	assert.Equal(t, 1, hub.Connections())

	hub.Publish(commentEvent(t, 1, 13))
	hub.Publish(commentEvent(t, 2, 12))

	msg := read(t, conn)
	assert.Equal(t, models.MessageEvent, msg.Type)
	assert.Equal(t, "comments:post_id=eq.12", msg.Topic)
	require.NotNil(t, msg.Event)
	assert.Equal(t, int64(2), msg.Event.ID)
}

func TestHub_Unsubscribe(t *testing.T) {
	hub, srv := newTestHub(t)
	conn := dial(t, srv)

	require.Equal(t, models.MessageSubscribed, send(t, conn, models.MessageSubscribe, "comments").Type)
	require.Equal(t, models.MessageUnsubscribed, send(t, conn, models.MessageUnsubscribe, "comments").Type)
	require.Equal(t, models.MessageSubscribed, send(t, conn, models.MessageSubscribe, "posts").Type)

	hub.Publish(commentEvent(t, 1, 12))
	postEvent, err := models.NewMutationEvent("posts", models.EventDelete, 4, map[string]any{"id": 4})
	require.NoError(t, err)
	hub.Publish(postEvent)

	msg := read(t, conn)
	assert.Equal(t, "posts", msg.Topic)
}

func TestHub_ControlErrors(t *testing.T) {
	_, srv := newTestHub(t)
	conn := dial(t, srv)

	tests := []struct {
		name    string
		msgType string
		topic   string
	}{
		{name: "malformed topic", msgType: models.MessageSubscribe, topic: "posts:user_id"},
		{name: "other user's notifications", msgType: models.MessageSubscribe, topic: "notifications:receiver_id=eq.8"},
		{name: "unfiltered notifications", msgType: models.MessageSubscribe, topic: "notifications"},
		{name: "unknown type", msgType: "shout", topic: "posts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := send(t, conn, tt.msgType, tt.topic)
			assert.Equal(t, models.MessageError, reply.Type)
			assert.NotEmpty(t, reply.Error)
		})
	}

	reply := send(t, conn, models.MessageSubscribe, "notifications:receiver_id=eq.7")
	assert.Equal(t, models.MessageSubscribed, reply.Type)
}

func TestHub_RunClosesConnections(t *testing.T) {
	hub, srv := newTestHub(t)
	conn := dial(t, srv)
	require.Equal(t, models.MessageSubscribed, send(t, conn, models.MessageSubscribe, "posts").Type)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("hub did not stop")
	}

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
	assert.Zero(t, hub.Connections())
}

func TestClient_EnqueueFullBuffer(t *testing.T) {
	c := newClient(nil, testUserID, 1)

	assert.True(t, c.enqueue(models.RealtimeMessage{Type: models.MessageEvent}))
	assert.False(t, c.enqueue(models.RealtimeMessage{Type: models.MessageEvent}))
}

func TestClient_Matching(t *testing.T) {
	c := newClient(nil, testUserID, 1)
	c.subscribe(models.FilteredTopic("comments", "post_id", 12))
	c.subscribe(models.TableTopic("comments"))

	assert.ElementsMatch(t, []string{"comments:post_id=eq.12", "comments"}, c.matching(commentEvent(t, 1, 12)))
	assert.Equal(t, []string{"comments"}, c.matching(commentEvent(t, 2, 99)))

	c.unsubscribe(models.TableTopic("comments"))
	assert.Empty(t, c.matching(commentEvent(t, 2, 99)))
}

func TestAuthorizeTopic(t *testing.T) {
	assert.NoError(t, authorizeTopic(models.TableTopic("posts"), 1))
	assert.NoError(t, authorizeTopic(models.FilteredTopic("notifications", "receiver_id", 1), 1))
	assert.ErrorIs(t, authorizeTopic(models.FilteredTopic("notifications", "receiver_id", 2), 1), ErrForbiddenTopic)
	assert.ErrorIs(t, authorizeTopic(models.FilteredTopic("notifications", "sender_id", 1), 1), ErrForbiddenTopic)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-fleed/internal/config"
	"github.com/MKhiriev/go-fleed/internal/logger"
	"github.com/MKhiriev/go-fleed/internal/realtime"
	"github.com/MKhiriev/go-fleed/models"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const realtimeTestUser = 7

func newTestRealtime(t *testing.T) (*realtime.Hub, *wsRealtime, chan string) {
	t.Helper()

	hub := realtime.NewHub(config.Realtime{PingInterval: time.Second, SendBuffer: 16}, logger.Nop())
	auth := make(chan string, 4)

	mux := http.NewServeMux()
	mux.HandleFunc(realtimePath, func(w http.ResponseWriter, r *http.Request) {
		auth <- r.Header.Get("Authorization")
		hub.ServeWS(w, r, realtimeTestUser)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	server := newTestAdapter(t, srv.URL)
	server.SetToken("tok")

	rt, err := NewRealtime(server, srv.URL, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = rt.Close() })

	return hub, rt.(*wsRealtime), auth
}

func commentEvent(t *testing.T, id, postID int64) models.MutationEvent {
	t.Helper()
	event, err := models.NewMutationEvent("comments", models.EventInsert, id, map[string]any{"id": id, "post_id": postID})
	require.NoError(t, err)
	return event
}

func receive(t *testing.T, events <-chan models.MutationEvent) models.MutationEvent {
	t.Helper()
	select {
	case event := <-events:
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("no event delivered")
		return models.MutationEvent{}
	}
}

func TestRealtime_SubscribeReceivesEvents(t *testing.T) {
	hub, rt, auth := newTestRealtime(t)
	ctx := context.Background()

	require.NoError(t, rt.Connect(ctx))
	assert.Equal(t, "Bearer tok", <-auth)

	events := make(chan models.MutationEvent, 4)
	sub, err := rt.Subscribe(ctx, models.FilteredTopic("comments", "post_id", 12), func(e models.MutationEvent) { events <- e })
	require.NoError(t, err)
	assert.Equal(t, "comments", sub.Topic().Table)

	hub.Publish(commentEvent(t, 1, 13))
	hub.Publish(commentEvent(t, 2, 12))

	got := receive(t, events)
	assert.Equal(t, int64(2), got.ID)
}

func TestRealtime_SharedTopic(t *testing.T) {
	hub, rt, _ := newTestRealtime(t)
	ctx := context.Background()
	require.NoError(t, rt.Connect(ctx))

	first := make(chan models.MutationEvent, 4)
	second := make(chan models.MutationEvent, 4)
	topic := models.TableTopic("comments")

	subA, err := rt.Subscribe(ctx, topic, func(e models.MutationEvent) { first <- e })
	require.NoError(t, err)
	_, err = rt.Subscribe(ctx, topic, func(e models.MutationEvent) { second <- e })
	require.NoError(t, err)

	hub.Publish(commentEvent(t, 1, 1))
	receive(t, first)
	receive(t, second)

	subA.Unsubscribe()
	subA.Unsubscribe()

	hub.Publish(commentEvent(t, 2, 1))
	assert.Equal(t, int64(2), receive(t, second).ID)
	assert.Empty(t, first)
}

func TestRealtime_ForbiddenTopic(t *testing.T) {
	_, rt, _ := newTestRealtime(t)
	ctx := context.Background()
	require.NoError(t, rt.Connect(ctx))

	_, err := rt.Subscribe(ctx, models.FilteredTopic("notifications", "receiver_id", realtimeTestUser+1), func(models.MutationEvent) {})
	assert.ErrorIs(t, err, ErrSubscriptionRejected)

	_, err = rt.Subscribe(ctx, models.FilteredTopic("notifications", "receiver_id", realtimeTestUser), func(models.MutationEvent) {})
	assert.NoError(t, err)
}

func TestRealtime_RejectionReachesEveryPendingSubscriber(t *testing.T) {
	frames := make(chan models.RealtimeMessage, 4)
	answer := make(chan struct{})

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		var msg models.RealtimeMessage
		if err = conn.ReadJSON(&msg); err != nil {
			return
		}
		frames <- msg

		<-answer
		_ = conn.WriteJSON(models.RealtimeMessage{Type: models.MessageError, Topic: msg.Topic, Error: "forbidden"})

		for {
			if err = conn.ReadJSON(&msg); err != nil {
				return
			}
			frames <- msg
		}
	}))
	t.Cleanup(srv.Close)

	rtI, err := NewRealtime(newTestAdapter(t, srv.URL), srv.URL, logger.Nop())
	require.NoError(t, err)
	rt := rtI.(*wsRealtime)
	t.Cleanup(func() { _ = rt.Close() })
	require.NoError(t, rt.Connect(context.Background()))

	topic := models.TableTopic("posts")
	errs := make(chan error, 2)
	subscribe := func() {
		_, err := rt.Subscribe(context.Background(), topic, func(models.MutationEvent) {})
		errs <- err
	}

	go subscribe()
	first := <-frames
	assert.Equal(t, models.MessageSubscribe, first.Type)

	go subscribe()
	require.Eventually(t, func() bool {
		rt.mu.Lock()
		defer rt.mu.Unlock()
		return len(rt.subs[topic.String()]) == 2
	}, 2*time.Second, 10*time.Millisecond)
	close(answer)

	for range 2 {
		select {
		case err := <-errs:
			assert.ErrorIs(t, err, ErrSubscriptionRejected)
		case <-time.After(2 * time.Second):
			t.Fatal("subscribe did not return")
		}
	}

	rt.mu.Lock()
	_, registered := rt.subs[topic.String()]
	rt.mu.Unlock()
	assert.False(t, registered)
	assert.Empty(t, frames)
}

func TestRealtime_NotConnected(t *testing.T) {
	_, rt, _ := newTestRealtime(t)

	_, err := rt.Subscribe(context.Background(), models.TableTopic("posts"), func(models.MutationEvent) {})
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestRealtime_ServerShutdownDropsConnection(t *testing.T) {
	hub, rt, _ := newTestRealtime(t)
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, rt.Connect(context.Background()))

	go hub.Run(ctx)
	cancel()

	require.Eventually(t, func() bool {
		rt.mu.Lock()
		defer rt.mu.Unlock()
		return rt.conn == nil
	}, 2*time.Second, 10*time.Millisecond)

	_, err := rt.Subscribe(context.Background(), models.TableTopic("posts"), func(models.MutationEvent) {})
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestNewRealtime_URL(t *testing.T) {
	server := newTestAdapter(t, "https://fleed.example.com")

	rt, err := NewRealtime(server, "https://fleed.example.com", logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, "wss://fleed.example.com/realtime/v1/websocket", rt.(*wsRealtime).url)

	_, err = NewRealtime(server, "", logger.Nop())
	assert.Error(t, err)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"net"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-fleed/internal/config"
	"github.com/MKhiriev/go-fleed/internal/handler"
	myGRPC "github.com/MKhiriev/go-fleed/internal/handler/grpc"
	myHTTP "github.com/MKhiriev/go-fleed/internal/handler/http"
	"github.com/MKhiriev/go-fleed/internal/logger"
	"github.com/MKhiriev/go-fleed/internal/workers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freeAddress(t *testing.T) string {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	return addr
}

type stopRecorder struct {
	stopped atomic.Bool
}

func (r *stopRecorder) Run(ctx context.Context) {
	<-ctx.Done()
	r.stopped.Store(true)
}

func TestNewServer_NoHandlers(t *testing.T) {
	s, err := NewServer(&handler.Handlers{}, nil, config.Server{}, logger.Nop())

	require.ErrorIs(t, err, errNoServersAreCreated)
	assert.Nil(t, s)
}

func TestServer_Run_GracefulShutdown(t *testing.T) {
	cfg := config.Server{
		HTTPAddress:     freeAddress(t),
		GRPCAddress:     freeAddress(t),
		ShutdownTimeout: time.Second,
	}
	handlers := &handler.Handlers{
		HTTP: myHTTP.NewHandler(nil, nil, cfg, logger.Nop()),
		GRPC: myGRPC.NewHandler(logger.Nop()),
	}
	hub := &stopRecorder{}

	s, err := NewServer(handlers, []workers.Worker{hub}, cfg, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + cfg.HTTPAddress + "/no-such-route")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusNotFound
	}, 2*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
	assert.True(t, hub.stopped.Load(), "background worker must be stopped")
}

func TestServer_Run_ListenerFailure(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	cfg := config.Server{
		HTTPAddress:     busy.Addr().String(),
		ShutdownTimeout: time.Second,
	}
	handlers := &handler.Handlers{HTTP: myHTTP.NewHandler(nil, nil, cfg, logger.Nop())}
	hub := &stopRecorder{}

	s, err := NewServer(handlers, []workers.Worker{hub}, cfg, logger.Nop())
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- s.Run(context.Background()) }()

	select {
	case err := <-done:
		require.Error(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("listener failure did not stop the server")
	}
	assert.True(t, hub.stopped.Load())
}

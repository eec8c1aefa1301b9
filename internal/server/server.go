// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"time"

	"github.com/MKhiriev/go-fleed/internal/config"
	"github.com/MKhiriev/go-fleed/internal/handler"
	"github.com/MKhiriev/go-fleed/internal/logger"
	"github.com/MKhiriev/go-fleed/internal/workers"
)

type server struct {
	httpServer *httpServer
	gRPCServer *grpcServer

	workers         *workers.Workers
	shutdownTimeout time.Duration

	logger *logger.Logger
}

// NewServer creates a server per handler. background workers run for the
// whole life of the server and are stopped after the listeners.
func NewServer(handlers *handler.Handlers, background []workers.Worker, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	servers := &server{
		workers:         workers.NewWorkers(background...),
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          logger,
	}

	if handlers.HTTP != nil {
		servers.httpServer = newHTTPServer(handlers.HTTP.Init(), cfg, logger)
	}
	if handlers.GRPC != nil {
		servers.gRPCServer = newGRPCServer(handlers.GRPC, cfg, logger)
	}

	if servers.httpServer == nil && servers.gRPCServer == nil {
		return nil, errNoServersAreCreated
	}

	return servers, nil
}

func (s *server) Run(ctx context.Context) error {
	workersCtx, stopWorkers := context.WithCancel(context.WithoutCancel(ctx))
	defer stopWorkers()
	s.workers.Run(workersCtx)

	errCh := make(chan error, 2)

	// launch all created servers
	if s.httpServer != nil {
		s.logger.Info().Str("address", s.httpServer.address()).Msg("launching HTTP server")
		go func() {
			if err := s.httpServer.RunServer(); err != nil {
				errCh <- err
			}
		}()
	}
	if s.gRPCServer != nil {
		s.logger.Info().Str("address", s.gRPCServer.address).Msg("launching gRPC server")
		go func() {
			if err := s.gRPCServer.RunServer(); err != nil {
				errCh <- err
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		s.logger.Info().Msg("shutdown requested")
	case runErr = <-errCh:
		s.logger.Error().Err(runErr).Msg("server stopped unexpectedly")
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
	defer cancel()
	s.shutdown(shutdownCtx)

	// hijacked push channel connections are not tracked by http.Server and
	// close with the hub
	stopWorkers()
	s.workers.Wait()

	s.logger.Info().Msg("server shut down gracefully")
	return runErr
}

func (s *server) shutdown(ctx context.Context) {
	// report NOT_SERVING first so health checkers stop routing traffic
	if s.gRPCServer != nil {
		s.gRPCServer.handler.Shutdown()
	}

	if s.httpServer != nil {
		s.httpServer.Shutdown(ctx)
	}
	if s.gRPCServer != nil {
		s.gRPCServer.Shutdown(ctx)
	}
}

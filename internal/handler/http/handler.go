// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-fleed/internal/config"
	"github.com/MKhiriev/go-fleed/internal/logger"
	"github.com/MKhiriev/go-fleed/internal/service"
)

// RealtimeServer serves push channel connections.
type RealtimeServer interface {
	ServeWS(w http.ResponseWriter, r *http.Request, userID int64)
}

type Handler struct {
	services *service.Services
	realtime RealtimeServer

	requestTimeout time.Duration
	maxUploadSize  int64

	logger *logger.Logger
}

func NewHandler(services *service.Services, realtime RealtimeServer, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		realtime:       realtime,
		requestTimeout: cfg.RequestTimeout,
		maxUploadSize:  cfg.MaxUploadSize,
		logger:         logger,
	}
}

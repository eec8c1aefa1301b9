// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-fleed/internal/adapter"
	"github.com/MKhiriev/go-fleed/internal/config"
	"github.com/MKhiriev/go-fleed/internal/logger"
	"github.com/MKhiriev/go-fleed/internal/store"
	"github.com/MKhiriev/go-fleed/models"
)

// ClientServices bundles the services of one client process. They share the
// session and the author cache.
type ClientServices struct {
	AuthService         ClientAuthService
	FeedService         ClientFeedService
	PostService         ClientPostService
	ProfileService      ClientProfileService
	NotificationService ClientNotificationService
	InfoService         ClientInfoService
}

func NewClientServices(
	sessions store.SessionRepository,
	serverAdapter adapter.ServerAdapter,
	realtime adapter.Realtime,
	cfg config.ClientFeed,
	buildInfo models.AppBuildInfo,
	logger *logger.Logger,
) *ClientServices {
	session := &sessionState{}
	authors := newAuthorCache(serverAdapter)

	return &ClientServices{
		AuthService:         newClientAuthService(sessions, serverAdapter, session, logger),
		FeedService:         newClientFeedService(serverAdapter, realtime, session, authors, cfg, logger),
		PostService:         newClientPostService(serverAdapter, session, logger),
		ProfileService:      newClientProfileService(serverAdapter, session, authors, logger),
		NotificationService: newClientNotificationService(serverAdapter, realtime, session, logger),
		InfoService:         &clientInfoService{adapter: serverAdapter, buildInfo: buildInfo},
	}
}

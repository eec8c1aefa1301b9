// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"

	"github.com/MKhiriev/go-fleed/internal/config"
	"github.com/MKhiriev/go-fleed/internal/logger"
	"github.com/MKhiriev/go-fleed/internal/store"
	"github.com/MKhiriev/go-fleed/models"
)

// Services groups the server services used by the transport handlers.
type Services struct {
	AuthService         AuthService
	PostService         PostService
	CommentService      CommentService
	LikeService         LikeService
	UserService         UserService
	NotificationService NotificationService
	MediaService        MediaService
	AppInfoService      AppInfoService
}

// NewServices wires the services to the storages. Mutations are published
// through publisher.
func NewServices(storages *store.Storages, publisher EventPublisher, cfg *config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, buildInfo, logger)
	if err != nil {
		return nil, fmt.Errorf("app info service: %w", err)
	}

	return &Services{
		AuthService:         NewAuthService(storages.UserRepository, cfg.App, logger),
		PostService:         NewPostService(storages.PostRepository, storages.CommentRepository, publisher, logger),
		CommentService:      NewCommentService(storages.CommentRepository, storages.PostRepository, storages.NotificationRepository, publisher, logger),
		LikeService:         NewLikeService(storages.LikeRepository, publisher, logger),
		UserService:         NewUserService(storages.UserRepository, storages.FollowRepository, logger),
		NotificationService: NewNotificationService(storages.NotificationRepository, logger),
		MediaService:        NewMediaService(storages.MediaStorage, logger),
		AppInfoService:      appInfo,
	}, nil
}

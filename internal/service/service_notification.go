// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-fleed/internal/logger"
	"github.com/MKhiriev/go-fleed/internal/store"
	"github.com/MKhiriev/go-fleed/models"
)

// defaultNotificationLimit is used when a request does not name a limit.
const defaultNotificationLimit = 50

type notificationService struct {
	notifications store.NotificationRepository
	logger        *logger.Logger
}

func NewNotificationService(notifications store.NotificationRepository, logger *logger.Logger) NotificationService {
	return &notificationService{
		notifications: notifications,
		logger:        logger,
	}
}

func (s *notificationService) ListNotifications(ctx context.Context, receiverID int64, limit int) ([]models.Notification, error) {
	if limit <= 0 || limit > maxFeedLimit {
		limit = defaultNotificationLimit
	}

	list, err := s.notifications.ListNotifications(ctx, receiverID, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return list, nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, receiverID int64) (int64, error) {
	n, err := s.notifications.MarkAllRead(ctx, receiverID)
	if err != nil {
		return 0, fmt.Errorf("mark notifications read: %w", err)
	}
	return n, nil
}

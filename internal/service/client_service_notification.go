// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/MKhiriev/go-fleed/internal/adapter"
	"github.com/MKhiriev/go-fleed/internal/logger"
	"github.com/MKhiriev/go-fleed/models"
)

// notificationPageSize is the number of notifications Open lists.
const notificationPageSize = 50

type clientNotificationService struct {
	adapter  adapter.ServerAdapter
	realtime adapter.Realtime
	session  *sessionState

	unread atomic.Int64

	mu  sync.Mutex
	sub adapter.Subscription

	logger *logger.Logger
}

func newClientNotificationService(serverAdapter adapter.ServerAdapter, realtime adapter.Realtime, session *sessionState, logger *logger.Logger) *clientNotificationService {
	return &clientNotificationService{adapter: serverAdapter, realtime: realtime, session: session, logger: logger}
}

// Watch replaces a previous subscription. onChange runs on the push channel
// reader and must not block.
func (s *clientNotificationService) Watch(ctx context.Context, onChange func()) error {
	session, ok := s.session.current()
	if !ok {
		return ErrNotLoggedIn
	}

	s.Stop()

	if err := s.realtime.Connect(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrSubscriptionFailed, err)
	}

	topic := models.FilteredTopic(models.Notification{}.TableName(), "receiver_id", session.UserID)
	sub, err := s.realtime.Subscribe(ctx, topic, func(event models.MutationEvent) {
		if event.Kind != models.EventInsert {
			return
		}
		s.unread.Add(1)
		if onChange != nil {
			onChange()
		}
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSubscriptionFailed, topic, err)
	}

	s.mu.Lock()
	s.sub = sub
	s.mu.Unlock()
	return nil
}

func (s *clientNotificationService) Unread() int {
	return int(s.unread.Load())
}

func (s *clientNotificationService) Open(ctx context.Context) ([]models.Notification, error) {
	if _, ok := s.session.current(); !ok {
		return nil, ErrNotLoggedIn
	}

	notifications, err := s.adapter.ListNotifications(ctx, notificationPageSize)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", mapAdapterError(err))
	}

	if err = s.adapter.MarkNotificationsRead(ctx); err != nil {
		s.logger.Warn().Err(mapAdapterError(err)).Msg("notifications were not marked read")
	}
	s.unread.Store(0)

	return notifications, nil
}

func (s *clientNotificationService) Stop() {
	s.mu.Lock()
	sub := s.sub
	s.sub = nil
	s.mu.Unlock()

	if sub != nil {
		sub.Unsubscribe()
	}
}

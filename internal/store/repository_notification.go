// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-fleed/internal/logger"
	"github.com/MKhiriev/go-fleed/models"
)

type notificationRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewNotificationRepository(db *DB, logger *logger.Logger) NotificationRepository {
	logger.Debug().Msg("creating notification repository")
	return &notificationRepository{
		db:     db,
		logger: logger,
	}
}

func (r *notificationRepository) CreateNotification(ctx context.Context, n models.Notification) (models.Notification, error) {
	log := logger.FromContext(ctx)

	var created models.Notification
	err := scanNotification(r.db.QueryRowContext(ctx, createNotification, n.SenderID, n.ReceiverID, n.Title, n.Data), &created)
	if err != nil {
		log.Err(err).Str("func", "*notificationRepository.CreateNotification").Msg("error creating notification")
		return models.Notification{}, r.db.queryError(err)
	}

	return created, nil
}

// ListNotifications returns the newest notifications of a receiver.
func (r *notificationRepository) ListNotifications(ctx context.Context, receiverID int64, limit int) ([]models.Notification, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListNotificationsQuery(ctx, receiverID, limit)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*notificationRepository.ListNotifications").Msg("error listing notifications")
		return nil, r.db.queryError(err)
	}
	defer rows.Close()

	notifications := make([]models.Notification, 0)
	for rows.Next() {
		var n models.Notification
		if err = scanNotification(rows, &n); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		notifications = append(notifications, n)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return notifications, nil
}

// MarkAllRead marks every unread notification of the receiver as read and
// returns how many were changed.
func (r *notificationRepository) MarkAllRead(ctx context.Context, receiverID int64) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, markNotificationsRead, receiverID)
	if err != nil {
		log.Err(err).Str("func", "*notificationRepository.MarkAllRead").Msg("error marking notifications")
		return 0, r.db.queryError(err)
	}

	return result.RowsAffected()
}

func scanNotification(s scanner, n *models.Notification) error {
	return s.Scan(&n.ID, &n.CreatedAt, &n.SenderID, &n.ReceiverID, &n.Title, &n.Data, &n.IsRead)
}

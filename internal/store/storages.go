// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-fleed/internal/config"
	"github.com/MKhiriev/go-fleed/internal/logger"
)

// Storages groups the server repositories and the media file store.
type Storages struct {
	UserRepository         UserRepository
	PostRepository         PostRepository
	CommentRepository      CommentRepository
	LikeRepository         LikeRepository
	FollowRepository       FollowRepository
	NotificationRepository NotificationRepository
	MediaStorage           MediaStorage

	db *DB
}

// NewStorages connects to PostgreSQL, applies pending migrations and opens
// the media directory.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectPostgres(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	media, err := NewMediaFileStorage(cfg.Files, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Storages{
		UserRepository:         NewUserRepository(db, logger),
		PostRepository:         NewPostRepository(db, logger),
		CommentRepository:      NewCommentRepository(db, logger),
		LikeRepository:         NewLikeRepository(db, logger),
		FollowRepository:       NewFollowRepository(db, logger),
		NotificationRepository: NewNotificationRepository(db, logger),
		MediaStorage:           media,
		db:                     db,
	}, nil
}

// Close closes the database connection pool.
func (s *Storages) Close() error {
	return s.db.Close()
}

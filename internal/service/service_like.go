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

// likeService toggles likes. Liking twice or unliking a post that was not
// liked succeeds without publishing anything.
type likeService struct {
	likes     store.LikeRepository
	publisher EventPublisher

	logger *logger.Logger
}

func NewLikeService(likes store.LikeRepository, publisher EventPublisher, logger *logger.Logger) LikeService {
	return &likeService{
		likes:     likes,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *likeService) LikePost(ctx context.Context, postID, userID int64) error {
	if postID <= 0 || userID <= 0 {
		return ErrInvalidDataProvided
	}

	like, created, err := s.likes.Like(ctx, postID, userID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("post_id", postID).Msg("error liking post")
		return fmt.Errorf("like post: %w", err)
	}
	if created {
		publish(ctx, s.publisher, models.Like{}.TableName(), models.EventInsert, like.PostID, like)
	}

	return nil
}

func (s *likeService) UnlikePost(ctx context.Context, postID, userID int64) error {
	if postID <= 0 || userID <= 0 {
		return ErrInvalidDataProvided
	}

	like, removed, err := s.likes.Unlike(ctx, postID, userID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("post_id", postID).Msg("error unliking post")
		return fmt.Errorf("unlike post: %w", err)
	}
	if removed {
		publish(ctx, s.publisher, models.Like{}.TableName(), models.EventDelete, like.PostID, like)
	}

	return nil
}

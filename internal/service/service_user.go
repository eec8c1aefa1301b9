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

// userService serves public profiles and the follow graph.
type userService struct {
	users   store.UserRepository
	follows store.FollowRepository

	logger *logger.Logger
}

func NewUserService(users store.UserRepository, follows store.FollowRepository, logger *logger.Logger) UserService {
	return &userService{
		users:   users,
		follows: follows,
		logger:  logger,
	}
}

func (s *userService) GetUser(ctx context.Context, userID int64) (models.UserSummary, error) {
	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		return models.UserSummary{}, fmt.Errorf("find user: %w", err)
	}
	return user.Summary(), nil
}

func (s *userService) Follow(ctx context.Context, followerID, followingID int64) error {
	if followerID <= 0 || followingID <= 0 {
		return ErrInvalidDataProvided
	}
	if followerID == followingID {
		return store.ErrSelfFollow
	}

	if err := s.follows.Follow(ctx, followerID, followingID); err != nil {
		logger.FromContext(ctx).Err(err).Int64("following_id", followingID).Msg("error following user")
		return fmt.Errorf("follow: %w", err)
	}
	return nil
}

func (s *userService) Unfollow(ctx context.Context, followerID, followingID int64) error {
	if err := s.follows.Unfollow(ctx, followerID, followingID); err != nil {
		return fmt.Errorf("unfollow: %w", err)
	}
	return nil
}

func (s *userService) FollowStatus(ctx context.Context, followerID, followingID int64) (models.FollowStatus, error) {
	following, err := s.follows.IsFollowing(ctx, followerID, followingID)
	if err != nil {
		return models.FollowStatus{}, fmt.Errorf("follow status: %w", err)
	}
	return models.FollowStatus{Following: following}, nil
}

func (s *userService) FollowCounts(ctx context.Context, userID int64) (models.FollowCounts, error) {
	counts, err := s.follows.Counts(ctx, userID)
	if err != nil {
		return models.FollowCounts{}, fmt.Errorf("follow counts: %w", err)
	}
	return counts, nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/MKhiriev/go-fleed/internal/logger"
	"github.com/MKhiriev/go-fleed/models"
	"github.com/jackc/pgerrcode"
)

type followRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewFollowRepository(db *DB, logger *logger.Logger) FollowRepository {
	logger.Debug().Msg("creating follow repository")
	return &followRepository{
		db:     db,
		logger: logger,
	}
}

// Follow makes followerID follow followingID. Following twice is not an
// error.
func (r *followRepository) Follow(ctx context.Context, followerID, followingID int64) error {
	log := logger.FromContext(ctx)

	var f models.Follow
	err := r.db.QueryRowContext(ctx, followUser, followerID, followingID).Scan(&f.FollowerID, &f.FollowingID, &f.CreatedAt)
	if err == nil || errors.Is(err, sql.ErrNoRows) {
		return nil
	}

	log.Err(err).Str("func", "*followRepository.Follow").Msg("error following user")
	switch postgresError(err) {
	case pgerrcode.CheckViolation:
		return ErrSelfFollow
	case pgerrcode.ForeignKeyViolation:
		return ErrNoUserWasFound
	default:
		return r.db.queryError(err)
	}
}

func (r *followRepository) Unfollow(ctx context.Context, followerID, followingID int64) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, unfollowUser, followerID, followingID); err != nil {
		log.Err(err).Str("func", "*followRepository.Unfollow").Msg("error unfollowing user")
		return r.db.queryError(err)
	}

	return nil
}

func (r *followRepository) IsFollowing(ctx context.Context, followerID, followingID int64) (bool, error) {
	log := logger.FromContext(ctx)

	var following bool
	if err := r.db.QueryRowContext(ctx, isFollowing, followerID, followingID).Scan(&following); err != nil {
		log.Err(err).Str("func", "*followRepository.IsFollowing").Msg("error checking follow")
		return false, r.db.queryError(err)
	}

	return following, nil
}

// Counts returns how many users follow userID and how many userID follows.
func (r *followRepository) Counts(ctx context.Context, userID int64) (models.FollowCounts, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFollowCountsQuery(ctx, userID)
	if err != nil {
		return models.FollowCounts{}, err
	}

	var counts models.FollowCounts
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&counts.Followers, &counts.Following); err != nil {
		log.Err(err).Str("func", "*followRepository.Counts").Msg("error counting follows")
		return models.FollowCounts{}, r.db.queryError(err)
	}

	return counts, nil
}

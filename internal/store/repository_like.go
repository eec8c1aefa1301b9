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

type likeRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewLikeRepository(db *DB, logger *logger.Logger) LikeRepository {
	logger.Debug().Msg("creating like repository")
	return &likeRepository{
		db:     db,
		logger: logger,
	}
}

// Like records that userID likes postID. The boolean is false when the like
// already existed, in which case the returned like is zero.
func (r *likeRepository) Like(ctx context.Context, postID, userID int64) (models.Like, bool, error) {
	log := logger.FromContext(ctx)

	var like models.Like
	err := r.db.QueryRowContext(ctx, likePost, postID, userID).Scan(&like.PostID, &like.UserID, &like.CreatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Like{}, false, nil
	case err != nil:
		log.Err(err).Str("func", "*likeRepository.Like").Msg("error liking post")

		if postgresError(err) == pgerrcode.ForeignKeyViolation {
			return models.Like{}, false, ErrPostNotFound
		}
		return models.Like{}, false, r.db.queryError(err)
	}

	return like, true, nil
}

// Unlike removes a like. The boolean is false when there was none.
func (r *likeRepository) Unlike(ctx context.Context, postID, userID int64) (models.Like, bool, error) {
	log := logger.FromContext(ctx)

	var like models.Like
	err := r.db.QueryRowContext(ctx, unlikePost, postID, userID).Scan(&like.PostID, &like.UserID, &like.CreatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Like{}, false, nil
	case err != nil:
		log.Err(err).Str("func", "*likeRepository.Unlike").Msg("error unliking post")
		return models.Like{}, false, r.db.queryError(err)
	}

	return like, true, nil
}

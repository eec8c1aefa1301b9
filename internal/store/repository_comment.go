// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-fleed/internal/logger"
	"github.com/MKhiriev/go-fleed/models"
	"github.com/jackc/pgerrcode"
)

type commentRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewCommentRepository(db *DB, logger *logger.Logger) CommentRepository {
	logger.Debug().Msg("creating comment repository")
	return &commentRepository{
		db:     db,
		logger: logger,
	}
}

// ListComments returns the comments of a post with their authors, newest
// first. A zero limit returns all of them.
func (r *commentRepository) ListComments(ctx context.Context, postID int64, limit int) ([]models.Comment, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListCommentsQuery(ctx, postID, limit)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*commentRepository.ListComments").Msg("error listing comments")
		return nil, r.db.queryError(err)
	}
	defer rows.Close()

	comments := make([]models.Comment, 0)
	for rows.Next() {
		var c models.Comment
		if err = rows.Scan(&c.ID, &c.CreatedAt, &c.PostID, &c.UserID, &c.Text, &c.Author.Name, &c.Author.Image); err != nil {
			log.Err(err).Str("func", "*commentRepository.ListComments").Msg("error scanning comment")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		c.Author.ID = c.UserID
		comments = append(comments, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return comments, nil
}

// CreateComment inserts a comment. [ErrReferenceNotFound] is returned when
// the post does not exist.
func (r *commentRepository) CreateComment(ctx context.Context, comment models.Comment) (models.Comment, error) {
	log := logger.FromContext(ctx)

	var created models.Comment
	err := scanComment(r.db.QueryRowContext(ctx, createComment, comment.PostID, comment.UserID, comment.Text), &created)
	if err != nil {
		log.Err(err).Str("func", "*commentRepository.CreateComment").Msg("error creating comment")

		if postgresError(err) == pgerrcode.ForeignKeyViolation {
			return models.Comment{}, ErrReferenceNotFound
		}
		return models.Comment{}, r.db.queryError(err)
	}

	return created, nil
}

// GetComment returns a comment together with the id of the owner of the
// post it belongs to.
func (r *commentRepository) GetComment(ctx context.Context, commentID int64) (models.Comment, int64, error) {
	log := logger.FromContext(ctx)

	var (
		c           models.Comment
		postOwnerID int64
	)
	err := r.db.QueryRowContext(ctx, findCommentWithPostOwner, commentID).
		Scan(&c.ID, &c.CreatedAt, &c.PostID, &c.UserID, &c.Text, &postOwnerID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Comment{}, 0, ErrCommentNotFound
	case err != nil:
		log.Err(err).Str("func", "*commentRepository.GetComment").Msg("error getting comment")
		return models.Comment{}, 0, r.db.queryError(err)
	}

	return c, postOwnerID, nil
}

// DeleteComment removes a comment and returns the deleted row.
func (r *commentRepository) DeleteComment(ctx context.Context, commentID int64) (models.Comment, error) {
	log := logger.FromContext(ctx)

	var deleted models.Comment
	err := scanComment(r.db.QueryRowContext(ctx, deleteComment, commentID), &deleted)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Comment{}, ErrCommentNotFound
	case err != nil:
		log.Err(err).Str("func", "*commentRepository.DeleteComment").Msg("error deleting comment")
		return models.Comment{}, r.db.queryError(err)
	}

	return deleted, nil
}

func scanComment(s scanner, c *models.Comment) error {
	return s.Scan(&c.ID, &c.CreatedAt, &c.PostID, &c.UserID, &c.Text)
}

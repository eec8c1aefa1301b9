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

// postRepository is the PostgreSQL-backed implementation of [PostRepository].
// Feed rows are read with the author summary and comment count joined in;
// likes are loaded with a second query for the whole page.
type postRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewPostRepository(db *DB, logger *logger.Logger) PostRepository {
	logger.Debug().Msg("creating post repository")
	return &postRepository{
		db:     db,
		logger: logger,
	}
}

// ListPosts returns the newest req.Limit posts of the requested scope,
// newest first.
func (r *postRepository) ListPosts(ctx context.Context, req models.FeedRequest) ([]models.Post, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListPostsQuery(ctx, req)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*postRepository.ListPosts").Msg("error listing posts")
		return nil, r.db.queryError(err)
	}
	defer rows.Close()

	posts := make([]models.Post, 0, max(req.Limit, 0))
	for rows.Next() {
		var post models.Post
		if err = scanPost(rows, &post); err != nil {
			log.Err(err).Str("func", "*postRepository.ListPosts").Msg("error scanning post")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		posts = append(posts, post)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*postRepository.ListPosts").Msg("error iterating posts")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	if err = r.attachLikes(ctx, posts); err != nil {
		return nil, err
	}

	return posts, nil
}

// GetPost returns a single feed row. [ErrPostNotFound] is returned for an
// unknown id.
func (r *postRepository) GetPost(ctx context.Context, postID int64) (models.Post, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetPostQuery(ctx, postID)
	if err != nil {
		return models.Post{}, err
	}

	var post models.Post
	err = scanPost(r.db.QueryRowContext(ctx, query, args...), &post)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Post{}, ErrPostNotFound
	case err != nil:
		log.Err(err).Str("func", "*postRepository.GetPost").Msg("error getting post")
		return models.Post{}, r.db.queryError(err)
	}

	posts := []models.Post{post}
	if err = r.attachLikes(ctx, posts); err != nil {
		return models.Post{}, err
	}

	return posts[0], nil
}

// CreatePost inserts a post and returns the stored row. Likes and comment
// count of a new post are empty.
func (r *postRepository) CreatePost(ctx context.Context, post models.PostUpsert) (models.Post, error) {
	log := logger.FromContext(ctx)

	var created models.Post
	err := scanPostRow(r.db.QueryRowContext(ctx, createPost, post.UserID, post.Body, post.File), &created)
	if err != nil {
		log.Err(err).Str("func", "*postRepository.CreatePost").Msg("error creating post")

		if postgresError(err) == pgerrcode.ForeignKeyViolation {
			return models.Post{}, ErrReferenceNotFound
		}
		return models.Post{}, r.db.queryError(err)
	}
	created.Likes = []models.Like{}

	return created, nil
}

// UpdatePost changes the body (and the file, when set) of a post owned by
// post.UserID. [ErrPostNotFound] is returned when no such post exists.
func (r *postRepository) UpdatePost(ctx context.Context, post models.PostUpsert) (models.Post, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdatePostQuery(ctx, post)
	if err != nil {
		return models.Post{}, err
	}

	var updated models.Post
	err = scanPostRow(r.db.QueryRowContext(ctx, query, args...), &updated)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Post{}, ErrPostNotFound
	case err != nil:
		log.Err(err).Str("func", "*postRepository.UpdatePost").Msg("error updating post")
		return models.Post{}, r.db.queryError(err)
	}

	return updated, nil
}

// DeletePost removes a post, together with its comments and likes, and
// returns the deleted row.
func (r *postRepository) DeletePost(ctx context.Context, postID int64) (models.Post, error) {
	log := logger.FromContext(ctx)

	var deleted models.Post
	err := scanPostRow(r.db.QueryRowContext(ctx, deletePost, postID), &deleted)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Post{}, ErrPostNotFound
	case err != nil:
		log.Err(err).Str("func", "*postRepository.DeletePost").Msg("error deleting post")
		return models.Post{}, r.db.queryError(err)
	}

	return deleted, nil
}

// attachLikes loads the likes of all posts in one query and sets them in
// place. Posts without likes get an empty, non-nil list.
func (r *postRepository) attachLikes(ctx context.Context, posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	log := logger.FromContext(ctx)

	ids := make([]int64, len(posts))
	index := make(map[int64]int, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID
		index[posts[i].ID] = i
		posts[i].Likes = []models.Like{}
	}

	query, args, err := buildListLikesQuery(ctx, ids)
	if err != nil {
		return err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*postRepository.attachLikes").Msg("error listing likes")
		return r.db.queryError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var like models.Like
		if err = rows.Scan(&like.PostID, &like.UserID, &like.CreatedAt); err != nil {
			log.Err(err).Str("func", "*postRepository.attachLikes").Msg("error scanning like")
			return fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		if i, ok := index[like.PostID]; ok {
			posts[i].Likes = append(posts[i].Likes, like)
		}
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

// scanPost scans a feed row produced by selectPosts.
func scanPost(s scanner, post *models.Post) error {
	err := s.Scan(&post.ID, &post.CreatedAt, &post.UserID, &post.Body, &post.File, &post.Author.Name, &post.Author.Image, &post.CommentCount)
	post.Author.ID = post.UserID
	return err
}

// scanPostRow scans a bare posts row as returned by RETURNING clauses.
func scanPostRow(s scanner, post *models.Post) error {
	return s.Scan(&post.ID, &post.CreatedAt, &post.UserID, &post.Body, &post.File)
}

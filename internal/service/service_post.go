// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-fleed/internal/logger"
	"github.com/MKhiriev/go-fleed/internal/store"
	"github.com/MKhiriev/go-fleed/internal/utils"
	"github.com/MKhiriev/go-fleed/internal/validators"
	"github.com/MKhiriev/go-fleed/models"
)

// maxFeedLimit caps a single feed request.
const maxFeedLimit = 1000

type postService struct {
	posts     store.PostRepository
	comments  store.CommentRepository
	publisher EventPublisher
	validator validators.Validator

	logger *logger.Logger
}

func NewPostService(posts store.PostRepository, comments store.CommentRepository, publisher EventPublisher, logger *logger.Logger) PostService {
	return &postService{
		posts:     posts,
		comments:  comments,
		publisher: publisher,
		validator: validators.NewContentValidator(),
		logger:    logger,
	}
}

// ListPosts returns the newest req.Limit posts of a scope.
func (s *postService) ListPosts(ctx context.Context, req models.FeedRequest) ([]models.Post, error) {
	if req.Limit <= 0 || req.Limit > maxFeedLimit || req.UserID < 0 {
		return nil, fmt.Errorf("%w: limit must be in 1..%d", ErrInvalidDataProvided, maxFeedLimit)
	}

	posts, err := s.posts.ListPosts(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// GetPostDetails returns a post with all of its comments, newest first.
func (s *postService) GetPostDetails(ctx context.Context, postID int64) (models.PostDetails, error) {
	post, err := s.posts.GetPost(ctx, postID)
	if err != nil {
		return models.PostDetails{}, fmt.Errorf("get post: %w", err)
	}

	comments, err := s.comments.ListComments(ctx, postID, 0)
	if err != nil {
		return models.PostDetails{}, fmt.Errorf("list comments: %w", err)
	}

	return models.PostDetails{Post: post, Comments: comments}, nil
}

func (s *postService) SavePost(ctx context.Context, post models.PostUpsert) (models.Post, bool, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, post); err != nil {
		return models.Post{}, false, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	if post.File != "" {
		cleaned, ok := utils.CleanMediaPath(post.File)
		if !ok {
			return models.Post{}, false, fmt.Errorf("%w: %q", store.ErrInvalidMediaPath, post.File)
		}
		post.File = cleaned
	}
	if post.ID == 0 && strings.TrimSpace(post.Body) == "" && post.File == "" {
		return models.Post{}, false, ErrEmptyPost
	}

	if post.ID == 0 {
		created, err := s.posts.CreatePost(ctx, post)
		if err != nil {
			log.Err(err).Int64("user_id", post.UserID).Msg("error creating post")
			return models.Post{}, false, fmt.Errorf("create post: %w", err)
		}

		publish(ctx, s.publisher, models.Post{}.TableName(), models.EventInsert, created.ID, newPostRow(created))
		return created, true, nil
	}

	if err := s.checkOwner(ctx, post.ID, post.UserID); err != nil {
		return models.Post{}, false, err
	}

	updated, err := s.posts.UpdatePost(ctx, post)
	if err != nil {
		log.Err(err).Int64("post_id", post.ID).Msg("error updating post")
		return models.Post{}, false, fmt.Errorf("update post: %w", err)
	}

	publish(ctx, s.publisher, models.Post{}.TableName(), models.EventUpdate, updated.ID, newPostRow(updated))
	return updated, false, nil
}

func (s *postService) DeletePost(ctx context.Context, userID, postID int64) error {
	if err := s.checkOwner(ctx, postID, userID); err != nil {
		return err
	}

	deleted, err := s.posts.DeletePost(ctx, postID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("post_id", postID).Msg("error deleting post")
		return fmt.Errorf("delete post: %w", err)
	}

	publish(ctx, s.publisher, models.Post{}.TableName(), models.EventDelete, deleted.ID, newPostRow(deleted))
	return nil
}

func (s *postService) checkOwner(ctx context.Context, postID, userID int64) error {
	existing, err := s.posts.GetPost(ctx, postID)
	if err != nil {
		return fmt.Errorf("get post: %w", err)
	}
	if existing.UserID != userID {
		logger.FromContext(ctx).Warn().Int64("post_id", postID).Int64("user_id", userID).Msg("post belongs to another user")
		return ErrForbidden
	}
	return nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-fleed/internal/logger"
	"github.com/MKhiriev/go-fleed/internal/store"
	"github.com/MKhiriev/go-fleed/internal/validators"
	"github.com/MKhiriev/go-fleed/models"
)

// notificationTitleComment is the title of the notification a post owner
// gets when someone else comments.
const notificationTitleComment = "New comment on your post"

type commentService struct {
	comments      store.CommentRepository
	posts         store.PostRepository
	notifications store.NotificationRepository
	publisher     EventPublisher
	validator     validators.Validator

	logger *logger.Logger
}

func NewCommentService(
	comments store.CommentRepository,
	posts store.PostRepository,
	notifications store.NotificationRepository,
	publisher EventPublisher,
	logger *logger.Logger,
) CommentService {
	return &commentService{
		comments:      comments,
		posts:         posts,
		notifications: notifications,
		publisher:     publisher,
		validator:     validators.NewContentValidator(),
		logger:        logger,
	}
}

// CreateComment stores a comment and, when the commenter is not the post
// owner, notifies the owner. A failed notification does not fail the
// comment.
func (s *commentService) CreateComment(ctx context.Context, comment models.Comment) (models.Comment, error) {
	log := logger.FromContext(ctx)

	comment.Text = strings.TrimSpace(comment.Text)
	if err := s.validator.Validate(ctx, comment); err != nil {
		return models.Comment{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	if comment.Text == "" {
		return models.Comment{}, ErrEmptyComment
	}

	post, err := s.posts.GetPost(ctx, comment.PostID)
	if err != nil {
		return models.Comment{}, fmt.Errorf("get post: %w", err)
	}

	created, err := s.comments.CreateComment(ctx, comment)
	if err != nil {
		log.Err(err).Int64("post_id", comment.PostID).Msg("error creating comment")
		return models.Comment{}, fmt.Errorf("create comment: %w", err)
	}
	publish(ctx, s.publisher, models.Comment{}.TableName(), models.EventInsert, created.ID, newCommentRow(created))

	if post.UserID != created.UserID {
		s.notifyOwner(ctx, post, created)
	}

	return created, nil
}

// DeleteComment removes a comment. Its author and the owner of the post may
// delete it.
func (s *commentService) DeleteComment(ctx context.Context, userID, commentID int64) error {
	log := logger.FromContext(ctx)

	comment, postOwnerID, err := s.comments.GetComment(ctx, commentID)
	if err != nil {
		return fmt.Errorf("get comment: %w", err)
	}
	if comment.UserID != userID && postOwnerID != userID {
		log.Warn().Int64("comment_id", commentID).Int64("user_id", userID).Msg("comment belongs to another user")
		return ErrForbidden
	}

	deleted, err := s.comments.DeleteComment(ctx, commentID)
	if err != nil {
		log.Err(err).Int64("comment_id", commentID).Msg("error deleting comment")
		return fmt.Errorf("delete comment: %w", err)
	}

	publish(ctx, s.publisher, models.Comment{}.TableName(), models.EventDelete, deleted.ID, newCommentRow(deleted))
	return nil
}

func (s *commentService) notifyOwner(ctx context.Context, post models.Post, comment models.Comment) {
	log := logger.FromContext(ctx)

	data, err := json.Marshal(models.NotificationData{PostID: post.ID, CommentID: comment.ID})
	if err != nil {
		log.Err(err).Msg("error encoding notification data")
		return
	}

	notification, err := s.notifications.CreateNotification(ctx, models.Notification{
		SenderID:   comment.UserID,
		ReceiverID: post.UserID,
		Title:      notificationTitleComment,
		Data:       string(data),
	})
	if err != nil {
		log.Err(err).Int64("receiver_id", post.UserID).Msg("error creating notification")
		return
	}

	publish(ctx, s.publisher, models.Notification{}.TableName(), models.EventInsert, notification.ID, notification)
}

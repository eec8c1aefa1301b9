// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"
	"io"
	"os"

	"github.com/MKhiriev/go-fleed/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
}

type PostRepository interface {
	ListPosts(ctx context.Context, req models.FeedRequest) ([]models.Post, error)
	GetPost(ctx context.Context, postID int64) (models.Post, error)
	CreatePost(ctx context.Context, post models.PostUpsert) (models.Post, error)
	UpdatePost(ctx context.Context, post models.PostUpsert) (models.Post, error)
	DeletePost(ctx context.Context, postID int64) (models.Post, error)
}

type CommentRepository interface {
	ListComments(ctx context.Context, postID int64, limit int) ([]models.Comment, error)
	CreateComment(ctx context.Context, comment models.Comment) (models.Comment, error)
	GetComment(ctx context.Context, commentID int64) (models.Comment, int64, error)
	DeleteComment(ctx context.Context, commentID int64) (models.Comment, error)
}

type LikeRepository interface {
	Like(ctx context.Context, postID, userID int64) (models.Like, bool, error)
	Unlike(ctx context.Context, postID, userID int64) (models.Like, bool, error)
}

type FollowRepository interface {
	Follow(ctx context.Context, followerID, followingID int64) error
	Unfollow(ctx context.Context, followerID, followingID int64) error
	IsFollowing(ctx context.Context, followerID, followingID int64) (bool, error)
	Counts(ctx context.Context, userID int64) (models.FollowCounts, error)
}

type NotificationRepository interface {
	CreateNotification(ctx context.Context, n models.Notification) (models.Notification, error)
	ListNotifications(ctx context.Context, receiverID int64, limit int) ([]models.Notification, error)
	MarkAllRead(ctx context.Context, receiverID int64) (int64, error)
}

// MediaStorage stores uploaded media files by their storage path
// ("<folder>/<name>").
type MediaStorage interface {
	Save(ctx context.Context, path string, r io.Reader) error
	Open(ctx context.Context, path string) (*os.File, error)
}

// SessionRepository keeps the client's remembered login.
type SessionRepository interface {
	Save(ctx context.Context, session models.Session) error
	Load(ctx context.Context) (models.Session, error)
	Clear(ctx context.Context) error
}

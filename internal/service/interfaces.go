// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"
	"io"
	"os"

	"github.com/MKhiriev/go-fleed/models"
)

type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type PostService interface {
	ListPosts(ctx context.Context, req models.FeedRequest) ([]models.Post, error)
	GetPostDetails(ctx context.Context, postID int64) (models.PostDetails, error)
	// SavePost creates the post when post.ID is zero and updates it otherwise.
	// The boolean reports whether a post was created.
	SavePost(ctx context.Context, post models.PostUpsert) (models.Post, bool, error)
	DeletePost(ctx context.Context, userID, postID int64) error
}

type CommentService interface {
	CreateComment(ctx context.Context, comment models.Comment) (models.Comment, error)
	DeleteComment(ctx context.Context, userID, commentID int64) error
}

type LikeService interface {
	LikePost(ctx context.Context, postID, userID int64) error
	UnlikePost(ctx context.Context, postID, userID int64) error
}

type UserService interface {
	GetUser(ctx context.Context, userID int64) (models.UserSummary, error)
	Follow(ctx context.Context, followerID, followingID int64) error
	Unfollow(ctx context.Context, followerID, followingID int64) error
	FollowStatus(ctx context.Context, followerID, followingID int64) (models.FollowStatus, error)
	FollowCounts(ctx context.Context, userID int64) (models.FollowCounts, error)
}

type NotificationService interface {
	ListNotifications(ctx context.Context, receiverID int64, limit int) ([]models.Notification, error)
	MarkAllRead(ctx context.Context, receiverID int64) (int64, error)
}

type MediaService interface {
	Upload(ctx context.Context, folder string, r io.Reader) (models.UploadResult, error)
	Open(ctx context.Context, path string) (*os.File, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}

// EventPublisher delivers mutation events to push channel subscribers.
type EventPublisher interface {
	Publish(event models.MutationEvent)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating with
// the go-fleed server.
//
// [ServerAdapter] covers the REST API and is implemented over resty
// ([NewHTTPServerAdapter]). [Realtime] covers the websocket push channel and
// is implemented over gorilla/websocket ([NewRealtime]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrForbidden] for 403, [ErrUnauthorized] for 401).
package adapter

import (
	"context"
	"io"

	"github.com/MKhiriev/go-fleed/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// ServerAdapter defines communication with the go-fleed REST API.
//
// Mutating calls send the mutation id found in ctx (see
// utils.WithMutationID) as the X-Mutation-ID header, so that the server can
// tag the push events the change produces.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all subsequent
	// authenticated requests.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Register creates an account and stores the returned bearer token.
	Register(ctx context.Context, user models.User) (models.User, error)

	// Login checks the credentials and stores the returned bearer token.
	Login(ctx context.Context, user models.User) (models.User, error)

	// FetchPosts returns the newest limit posts of scope, with likes, comment
	// count and author joined.
	FetchPosts(ctx context.Context, scope models.Scope, limit int) ([]models.Post, error)

	// FetchPostDetails returns a post with its full comment list.
	FetchPostDetails(ctx context.Context, postID int64) (models.PostDetails, error)

	// CreateOrUpdatePost creates the post when post.ID is zero and updates it
	// otherwise.
	CreateOrUpdatePost(ctx context.Context, post models.PostUpsert) (models.Post, error)
	DeletePost(ctx context.Context, postID int64) error

	CreateComment(ctx context.Context, comment models.Comment) (models.Comment, error)
	DeleteComment(ctx context.Context, commentID int64) error

	LikePost(ctx context.Context, postID int64) error
	UnlikePost(ctx context.Context, postID int64) error

	GetUser(ctx context.Context, userID int64) (models.UserSummary, error)
	Follow(ctx context.Context, userID int64) error
	Unfollow(ctx context.Context, userID int64) error
	FollowStatus(ctx context.Context, userID int64) (models.FollowStatus, error)
	FollowCounts(ctx context.Context, userID int64) (models.FollowCounts, error)

	ListNotifications(ctx context.Context, limit int) ([]models.Notification, error)
	MarkNotificationsRead(ctx context.Context) error

	// UploadMedia stores the content of r in folder and returns its path.
	UploadMedia(ctx context.Context, folder string, r io.Reader) (models.UploadResult, error)

	// MediaURL returns the public URL of a stored media path.
	MediaURL(path string) string

	GetServerVersion(ctx context.Context) (string, error)
}

// Realtime is the client side of the push channel.
type Realtime interface {
	// Connect opens the channel with the token of the adapter.
	Connect(ctx context.Context) error

	// Subscribe starts delivering the events of topic to onEvent and waits
	// for the server to accept the subscription. onEvent is called from the
	// reader goroutine and must not block.
	Subscribe(ctx context.Context, topic models.Topic, onEvent func(models.MutationEvent)) (Subscription, error)

	// Close drops the channel and every subscription.
	Close() error
}

// Subscription is a live topic subscription.
type Subscription interface {
	Topic() models.Topic
	// Unsubscribe stops the delivery. It is safe to call more than once.
	Unsubscribe()
}

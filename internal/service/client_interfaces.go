// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-fleed/models"
)

// ClientAuthService defines the client-side contract for registration,
// authentication and the remembered session.
type ClientAuthService interface {
	// Register creates an account on the server, remembers the session
	// locally and returns it.
	Register(ctx context.Context, user models.User) (models.Session, error)

	// Login authenticates against the server, remembers the session locally
	// and returns it.
	Login(ctx context.Context, user models.User) (models.Session, error)

	// Restore loads the remembered session. It returns [ErrNotLoggedIn] when
	// there is none or its token has expired.
	Restore(ctx context.Context) (models.Session, error)

	// Logout forgets the session locally and in the adapter.
	Logout(ctx context.Context) error

	// Session returns the active session.
	Session() (models.Session, bool)
}

// ClientFeedService opens the lists the screens render. Every screen owns
// the list it opened and closes it when it goes away.
type ClientFeedService interface {
	// OpenPosts returns an Idle post list for scope.
	OpenPosts(scope models.Scope) (*PostFeed, error)

	// OpenComments returns an Idle comment list of a post. Its fetch also
	// refreshes the post itself.
	OpenComments(postID int64) (*CommentFeed, error)
}

// ClientPostService covers post changes made outside of a list.
type ClientPostService interface {
	// SavePost uploads localFile, when set, and creates or updates the post.
	SavePost(ctx context.Context, post models.PostUpsert, localFile string) (models.Post, error)

	// SharePost copies the plain text of the post and the public URL of its
	// media to the clipboard and returns the copied text.
	SharePost(post models.Post) (string, error)
}

// ClientProfileService serves profiles and the follow graph.
type ClientProfileService interface {
	GetProfile(ctx context.Context, userID int64) (models.Profile, error)
	// SetFollowing follows or unfollows userID.
	SetFollowing(ctx context.Context, userID int64, follow bool) error
}

// ClientNotificationService keeps the unread notification badge.
type ClientNotificationService interface {
	// Watch subscribes to the notifications of the session user. onChange is
	// called after every received notification.
	Watch(ctx context.Context, onChange func()) error

	// Unread returns the number of notifications received since the badge
	// was last reset.
	Unread() int

	// Open lists the latest notifications, marks them read and resets the
	// badge.
	Open(ctx context.Context) ([]models.Notification, error)

	// Stop ends the subscription started by Watch.
	Stop()
}

// ClientInfoService reports versions for the about screen.
type ClientInfoService interface {
	ServerVersion(ctx context.Context) (string, error)
	BuildInfo() models.AppBuildInfo
}

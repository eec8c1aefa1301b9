// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/MKhiriev/go-fleed/internal/adapter"
	"github.com/MKhiriev/go-fleed/internal/logger"
	"github.com/MKhiriev/go-fleed/internal/mock"
	"github.com/MKhiriev/go-fleed/internal/store"
	"github.com/MKhiriev/go-fleed/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func loggedIn(userID int64) *sessionState {
	s := &sessionState{}
	s.set(models.Session{UserID: userID, Name: "Me"})
	return s
}

func TestClientPostService_SavePost_UploadsMedia(t *testing.T) {
	ctrl := gomock.NewController(t)
	serverAdapter := mock.NewMockServerAdapter(ctrl)
	svc := newClientPostService(serverAdapter, loggedIn(1), logger.Nop())

	local := filepath.Join(t.TempDir(), "clip.MP4")
	require.NoError(t, os.WriteFile(local, []byte("video"), 0o600))

	gomock.InOrder(
		serverAdapter.EXPECT().UploadMedia(gomock.Any(), models.FolderPostVideos, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, r io.Reader) (models.UploadResult, error) {
				body, err := io.ReadAll(r)
				require.NoError(t, err)
				assert.Equal(t, "video", string(body))
				return models.UploadResult{Path: "postVideos/1.mp4"}, nil
			}),
		serverAdapter.EXPECT().CreateOrUpdatePost(gomock.Any(), models.PostUpsert{UserID: 1, Body: "look", File: "postVideos/1.mp4"}).
			Return(models.Post{ID: 8, UserID: 1, Body: "look", File: "postVideos/1.mp4"}, nil),
	)

	post, err := svc.SavePost(context.Background(), models.PostUpsert{Body: "look"}, local)
	require.NoError(t, err)
	assert.Equal(t, int64(8), post.ID)
}

func TestClientPostService_SavePost_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	serverAdapter := mock.NewMockServerAdapter(ctrl)
	svc := newClientPostService(serverAdapter, loggedIn(1), logger.Nop())
	ctx := context.Background()

	_, err := svc.SavePost(ctx, models.PostUpsert{Body: "  "}, "")
	assert.ErrorIs(t, err, ErrEmptyPost)

	_, err = svc.SavePost(ctx, models.PostUpsert{Body: "x"}, filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	serverAdapter.EXPECT().CreateOrUpdatePost(gomock.Any(), gomock.Any()).
		Return(models.Post{}, wrapAdapterErr(adapter.ErrForbidden, "forbidden"))
	_, err = svc.SavePost(ctx, models.PostUpsert{ID: 3, Body: "x"}, "")
	assert.ErrorIs(t, err, ErrForbidden)

	svc.session.clear()
	_, err = svc.SavePost(ctx, models.PostUpsert{Body: "x"}, "")
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestClientPostService_SharePost(t *testing.T) {
	ctrl := gomock.NewController(t)
	serverAdapter := mock.NewMockServerAdapter(ctrl)
	svc := newClientPostService(serverAdapter, loggedIn(1), logger.Nop())

	var copied string
	svc.copy = func(text string) error {
		copied = text
		return nil
	}

	serverAdapter.EXPECT().MediaURL("postImages/1.png").Return("http://host/storage/v1/object/public/uploads/postImages/1.png")

	text, err := svc.SharePost(models.Post{Body: "<p>Hello <b>world</b></p>", File: "postImages/1.png"})
	require.NoError(t, err)
	assert.Equal(t, copied, text)
	assert.Contains(t, text, "Hello world")
	assert.Contains(t, text, "/uploads/postImages/1.png")

	svc.copy = func(string) error { return errors.New("no clipboard") }
	_, err = svc.SharePost(models.Post{Body: "x"})
	assert.Error(t, err)
}

func TestMediaFolderOf(t *testing.T) {
	assert.Equal(t, models.FolderPostVideos, mediaFolderOf("/tmp/a.webm"))
	assert.Equal(t, models.FolderPostImages, mediaFolderOf("/tmp/a.jpeg"))
	assert.Equal(t, models.FolderPostImages, mediaFolderOf("noext"))
}

func TestClientProfileService_GetProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	serverAdapter := mock.NewMockServerAdapter(ctrl)
	authors := newAuthorCache(serverAdapter)
	svc := newClientProfileService(serverAdapter, loggedIn(1), authors, logger.Nop())
	ctx := context.Background()

	serverAdapter.EXPECT().GetUser(ctx, int64(4)).Return(models.UserSummary{ID: 4, Name: "Flo"}, nil)
	serverAdapter.EXPECT().FollowCounts(ctx, int64(4)).Return(models.FollowCounts{Followers: 2, Following: 3}, nil)
	serverAdapter.EXPECT().FollowStatus(ctx, int64(4)).Return(models.FollowStatus{Following: true}, nil)

	profile, err := svc.GetProfile(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, models.Profile{
		User:      models.UserSummary{ID: 4, Name: "Flo"},
		Counts:    models.FollowCounts{Followers: 2, Following: 3},
		Following: true,
	}, profile)

	assert.Equal(t, "Flo", authors.get(ctx, 4).Name, "profile load refreshes the author cache")
}

func TestClientProfileService_GetOwnProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	serverAdapter := mock.NewMockServerAdapter(ctrl)
	svc := newClientProfileService(serverAdapter, loggedIn(1), newAuthorCache(serverAdapter), logger.Nop())

	serverAdapter.EXPECT().GetUser(gomock.Any(), int64(1)).Return(models.UserSummary{ID: 1}, nil)
	serverAdapter.EXPECT().FollowCounts(gomock.Any(), int64(1)).Return(models.FollowCounts{}, nil)

	profile, err := svc.GetProfile(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, profile.Own)
}

func TestClientProfileService_GetProfile_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	serverAdapter := mock.NewMockServerAdapter(ctrl)
	svc := newClientProfileService(serverAdapter, loggedIn(1), newAuthorCache(serverAdapter), logger.Nop())

	serverAdapter.EXPECT().GetUser(gomock.Any(), int64(9)).Return(models.UserSummary{}, adapter.ErrNotFound)

	_, err := svc.GetProfile(context.Background(), 9)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClientProfileService_SetFollowing(t *testing.T) {
	ctrl := gomock.NewController(t)
	serverAdapter := mock.NewMockServerAdapter(ctrl)
	svc := newClientProfileService(serverAdapter, loggedIn(1), newAuthorCache(serverAdapter), logger.Nop())
	ctx := context.Background()

	serverAdapter.EXPECT().Follow(ctx, int64(4)).Return(nil)
	require.NoError(t, svc.SetFollowing(ctx, 4, true))

	serverAdapter.EXPECT().Unfollow(ctx, int64(4)).Return(nil)
	require.NoError(t, svc.SetFollowing(ctx, 4, false))

	serverAdapter.EXPECT().Follow(ctx, int64(1)).Return(wrapAdapterErr(adapter.ErrBadRequest, "users cannot follow themselves"))
	err := svc.SetFollowing(ctx, 1, true)
	assert.ErrorIs(t, err, ErrMutationRejected)
}

func TestClientNotificationService_Badge(t *testing.T) {
	ctrl := gomock.NewController(t)
	serverAdapter := mock.NewMockServerAdapter(ctrl)
	realtime := mock.NewMockRealtime(ctrl)
	sub := mock.NewMockSubscription(ctrl)
	svc := newClientNotificationService(serverAdapter, realtime, loggedIn(1), logger.Nop())
	ctx := context.Background()

	var onEvent func(models.MutationEvent)
	realtime.EXPECT().Connect(ctx).Return(nil)
	realtime.EXPECT().Subscribe(ctx, models.FilteredTopic("notifications", "receiver_id", 1), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ models.Topic, fn func(models.MutationEvent)) (adapter.Subscription, error) {
			onEvent = fn
			return sub, nil
		})

	changes := 0
	require.NoError(t, svc.Watch(ctx, func() { changes++ }))

	onEvent(models.MutationEvent{Table: "notifications", Kind: models.EventInsert, ID: 1})
	onEvent(models.MutationEvent{Table: "notifications", Kind: models.EventInsert, ID: 2})
	onEvent(models.MutationEvent{Table: "notifications", Kind: models.EventUpdate, ID: 2})
	assert.Equal(t, 2, svc.Unread())
	assert.Equal(t, 2, changes)

	serverAdapter.EXPECT().ListNotifications(ctx, notificationPageSize).Return([]models.Notification{{ID: 2}, {ID: 1}}, nil)
	serverAdapter.EXPECT().MarkNotificationsRead(ctx).Return(nil)

	list, err := svc.Open(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Zero(t, svc.Unread())

	sub.EXPECT().Unsubscribe()
	svc.Stop()
	svc.Stop()
}

func TestClientNotificationService_WatchErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	realtime := mock.NewMockRealtime(ctrl)
	svc := newClientNotificationService(mock.NewMockServerAdapter(ctrl), realtime, &sessionState{}, logger.Nop())

	assert.ErrorIs(t, svc.Watch(context.Background(), nil), ErrNotLoggedIn)

	svc.session.set(models.Session{UserID: 1})
	realtime.EXPECT().Connect(gomock.Any()).Return(nil)
	realtime.EXPECT().Subscribe(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, adapter.ErrSubscriptionRejected)

	err := svc.Watch(context.Background(), nil)
	assert.ErrorIs(t, err, ErrSubscriptionFailed)
	assert.ErrorIs(t, err, adapter.ErrSubscriptionRejected)
}

func TestClientInfoService(t *testing.T) {
	ctrl := gomock.NewController(t)
	serverAdapter := mock.NewMockServerAdapter(ctrl)
	info := models.NewAppBuildInfo("1.2.0", "2026-10-01", "abc")
	svc := &clientInfoService{adapter: serverAdapter, buildInfo: info}

	serverAdapter.EXPECT().GetServerVersion(gomock.Any()).Return("1.1.0", nil)
	version, err := svc.ServerVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.1.0", version)
	assert.Equal(t, info, svc.BuildInfo())

	serverAdapter.EXPECT().GetServerVersion(gomock.Any()).Return("", adapter.ErrBadGateway)
	_, err = svc.ServerVersion(context.Background())
	assert.ErrorIs(t, err, ErrServerUnavailable)
}

func TestMapAdapterError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"empty post", wrapAdapterErr(adapter.ErrBadRequest, "post must have a body or a media file"), ErrEmptyPost},
		{"other bad request", wrapAdapterErr(adapter.ErrBadRequest, "whatever"), ErrInvalidDataProvided},
		{"expired token", wrapAdapterErr(adapter.ErrUnauthorized, "token is expired or invalid"), ErrTokenIsExpiredOrInvalid},
		{"wrong password", wrapAdapterErr(adapter.ErrUnauthorized, "invalid email/password"), ErrWrongPassword},
		{"forbidden", adapter.ErrForbidden, ErrForbidden},
		{"not found", adapter.ErrNotFound, ErrNotFound},
		{"email taken", wrapAdapterErr(adapter.ErrConflict, "email already exists"), store.ErrEmailAlreadyExists},
		{"too large", adapter.ErrPayloadTooLarge, ErrMediaTooLarge},
		{"not connected", adapter.ErrNotConnected, ErrServerUnavailable},
		{"dial failure", &url.Error{Op: "Get", URL: "http://x", Err: errors.New("refused")}, ErrServerUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, mapAdapterError(tt.err), tt.want)
		})
	}

	assert.NoError(t, mapAdapterError(nil))
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-fleed/internal/logger"
	"github.com/MKhiriev/go-fleed/internal/mock"
	"github.com/MKhiriev/go-fleed/internal/store"
	"github.com/MKhiriev/go-fleed/internal/utils"
	"github.com/MKhiriev/go-fleed/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type postServiceFixture struct {
	svc       PostService
	posts     *mock.MockPostRepository
	comments  *mock.MockCommentRepository
	publisher *recordingPublisher
}

func newPostServiceFixture(t *testing.T) postServiceFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := postServiceFixture{
		posts:     mock.NewMockPostRepository(ctrl),
		comments:  mock.NewMockCommentRepository(ctrl),
		publisher: &recordingPublisher{},
	}
	f.svc = NewPostService(f.posts, f.comments, f.publisher, logger.Nop())
	return f
}

func TestPostService_ListPosts(t *testing.T) {
	f := newPostServiceFixture(t)
	req := models.FeedRequest{Limit: 10, UserID: 4}

	f.posts.EXPECT().ListPosts(gomock.Any(), req).Return([]models.Post{{ID: 2}, {ID: 1}}, nil)

	posts, err := f.svc.ListPosts(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, posts, 2)
}

func TestPostService_ListPosts_InvalidLimit(t *testing.T) {
	f := newPostServiceFixture(t)

	for _, limit := range []int{0, -1, maxFeedLimit + 1} {
		_, err := f.svc.ListPosts(context.Background(), models.FeedRequest{Limit: limit})
		assert.ErrorIs(t, err, ErrInvalidDataProvided, "limit %d", limit)
	}
}

func TestPostService_GetPostDetails(t *testing.T) {
	f := newPostServiceFixture(t)

	f.posts.EXPECT().GetPost(gomock.Any(), int64(5)).Return(models.Post{ID: 5, CommentCount: 1}, nil)
	f.comments.EXPECT().ListComments(gomock.Any(), int64(5), 0).Return([]models.Comment{{ID: 9, PostID: 5}}, nil)

	details, err := f.svc.GetPostDetails(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), details.Post.ID)
	assert.Len(t, details.Comments, 1)
}

func TestPostService_GetPostDetails_NotFound(t *testing.T) {
	f := newPostServiceFixture(t)

	f.posts.EXPECT().GetPost(gomock.Any(), int64(5)).Return(models.Post{}, store.ErrPostNotFound)

	_, err := f.svc.GetPostDetails(context.Background(), 5)
	assert.ErrorIs(t, err, store.ErrPostNotFound)
}

func TestPostService_SavePost_Create(t *testing.T) {
	f := newPostServiceFixture(t)
	ctx := utils.WithMutationID(context.Background(), "m-1")

	f.posts.EXPECT().
		CreatePost(gomock.Any(), models.PostUpsert{UserID: 3, Body: "hi", File: "postImages/1.png"}).
		Return(models.Post{ID: 10, UserID: 3, Body: "hi", File: "postImages/1.png", Likes: []models.Like{}}, nil)

	post, created, err := f.svc.SavePost(ctx, models.PostUpsert{UserID: 3, Body: "hi", File: "postImages/./1.png"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(10), post.ID)

	events := f.publisher.published()
	require.Len(t, events, 1)
	assert.Equal(t, "posts", events[0].Table)
	assert.Equal(t, models.EventInsert, events[0].Kind)
	assert.Equal(t, int64(10), events[0].ID)
	assert.Equal(t, "m-1", events[0].MutationID)
	assert.NotContains(t, events[0].New, "likes")
}

func TestPostService_SavePost_Empty(t *testing.T) {
	f := newPostServiceFixture(t)

	_, _, err := f.svc.SavePost(context.Background(), models.PostUpsert{UserID: 3, Body: "   "})
	assert.ErrorIs(t, err, ErrEmptyPost)
	assert.Empty(t, f.publisher.published())
}

func TestPostService_SavePost_BadMediaPath(t *testing.T) {
	f := newPostServiceFixture(t)

	_, _, err := f.svc.SavePost(context.Background(), models.PostUpsert{UserID: 3, File: "../etc/passwd"})
	assert.ErrorIs(t, err, store.ErrInvalidMediaPath)
}

func TestPostService_SavePost_Update(t *testing.T) {
	f := newPostServiceFixture(t)
	upsert := models.PostUpsert{ID: 10, UserID: 3, Body: "edited"}

	gomock.InOrder(
		f.posts.EXPECT().GetPost(gomock.Any(), int64(10)).Return(models.Post{ID: 10, UserID: 3}, nil),
		f.posts.EXPECT().UpdatePost(gomock.Any(), upsert).Return(models.Post{ID: 10, UserID: 3, Body: "edited"}, nil),
	)

	post, created, err := f.svc.SavePost(context.Background(), upsert)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "edited", post.Body)

	events := f.publisher.published()
	require.Len(t, events, 1)
	assert.Equal(t, models.EventUpdate, events[0].Kind)
}

func TestPostService_SavePost_UpdateForeignPost(t *testing.T) {
	f := newPostServiceFixture(t)

	f.posts.EXPECT().GetPost(gomock.Any(), int64(10)).Return(models.Post{ID: 10, UserID: 4}, nil)

	_, _, err := f.svc.SavePost(context.Background(), models.PostUpsert{ID: 10, UserID: 3, Body: "x"})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Empty(t, f.publisher.published())
}

func TestPostService_SavePost_CreateFails(t *testing.T) {
	f := newPostServiceFixture(t)

	f.posts.EXPECT().CreatePost(gomock.Any(), gomock.Any()).Return(models.Post{}, store.ErrReferenceNotFound)

	_, _, err := f.svc.SavePost(context.Background(), models.PostUpsert{UserID: 3, Body: "x"})
	assert.ErrorIs(t, err, store.ErrReferenceNotFound)
	assert.Empty(t, f.publisher.published())
}

func TestPostService_DeletePost(t *testing.T) {
	f := newPostServiceFixture(t)

	gomock.InOrder(
		f.posts.EXPECT().GetPost(gomock.Any(), int64(10)).Return(models.Post{ID: 10, UserID: 3}, nil),
		f.posts.EXPECT().DeletePost(gomock.Any(), int64(10)).Return(models.Post{ID: 10, UserID: 3, Body: "bye"}, nil),
	)

	require.NoError(t, f.svc.DeletePost(context.Background(), 3, 10))

	events := f.publisher.published()
	require.Len(t, events, 1)
	assert.Equal(t, models.EventDelete, events[0].Kind)
	assert.Empty(t, events[0].New)
	userID, ok := events[0].Int64Field("user_id")
	assert.True(t, ok)
	assert.Equal(t, int64(3), userID)
}

func TestPostService_DeletePost_Errors(t *testing.T) {
	tests := []struct {
		name    string
		owner   int64
		getErr  error
		wantErr error
	}{
		{name: "foreign post", owner: 4, wantErr: ErrForbidden},
		{name: "missing post", getErr: store.ErrPostNotFound, wantErr: store.ErrPostNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPostServiceFixture(t)
			f.posts.EXPECT().GetPost(gomock.Any(), int64(10)).Return(models.Post{ID: 10, UserID: tt.owner}, tt.getErr)

			err := f.svc.DeletePost(context.Background(), 3, 10)
			assert.True(t, errors.Is(err, tt.wantErr))
			assert.Empty(t, f.publisher.published())
		})
	}
}

func TestPostService_NilPublisher(t *testing.T) {
	ctrl := gomock.NewController(t)
	posts := mock.NewMockPostRepository(ctrl)
	svc := NewPostService(posts, mock.NewMockCommentRepository(ctrl), nil, logger.Nop())

	posts.EXPECT().CreatePost(gomock.Any(), gomock.Any()).Return(models.Post{ID: 1}, nil)

	_, created, err := svc.SavePost(context.Background(), models.PostUpsert{UserID: 1, Body: "x"})
	require.NoError(t, err)
	assert.True(t, created)
}

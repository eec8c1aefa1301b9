// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-fleed/internal/logger"
	"github.com/MKhiriev/go-fleed/models"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	feedColumns    = []string{"id", "created_at", "user_id", "body", "file", "name", "image", "comment_count"}
	likeColumns    = []string{"post_id", "user_id", "created_at"}
	postRowColumns = []string{"id", "created_at", "user_id", "body", "file"}
)

func TestListPosts_AttachesLikes(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewPostRepository(db, logger.Nop())
	now := time.Now()

	mock.ExpectQuery("FROM posts p").
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows(feedColumns).
			AddRow(2, now, 4, "second", "", "Ann", "", 3).
			AddRow(1, now.Add(-time.Minute), 4, "first", "postImages/1.png", "Ann", "", 0))
	mock.ExpectQuery("FROM post_likes").
		WithArgs(int64(2), int64(1)).
		WillReturnRows(sqlmock.NewRows(likeColumns).
			AddRow(2, 7, now).
			AddRow(2, 8, now))

	posts, err := repo.ListPosts(context.Background(), models.FeedRequest{Limit: 10, UserID: 4})
	require.NoError(t, err)
	require.Len(t, posts, 2)

	assert.Equal(t, int64(2), posts[0].ID)
	assert.Equal(t, 3, posts[0].CommentCount)
	assert.Equal(t, models.UserSummary{ID: 4, Name: "Ann"}, posts[0].Author)
	assert.True(t, posts[0].LikedBy(7))
	assert.Len(t, posts[0].Likes, 2)

	assert.NotNil(t, posts[1].Likes)
	assert.Empty(t, posts[1].Likes)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListPosts_EmptySkipsLikes(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewPostRepository(db, logger.Nop())

	mock.ExpectQuery("FROM posts p").WillReturnRows(sqlmock.NewRows(feedColumns))

	posts, err := repo.ListPosts(context.Background(), models.FeedRequest{Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, posts)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListPosts_QueryError(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewPostRepository(db, logger.Nop())

	mock.ExpectQuery("FROM posts p").WillReturnError(errors.New("boom"))

	_, err := repo.ListPosts(context.Background(), models.FeedRequest{Limit: 10})
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestListPosts_ScanError(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewPostRepository(db, logger.Nop())

	mock.ExpectQuery("FROM posts p").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	_, err := repo.ListPosts(context.Background(), models.FeedRequest{Limit: 10})
	assert.ErrorIs(t, err, ErrScanningRow)
}

func TestListPosts_LikesError(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewPostRepository(db, logger.Nop())

	mock.ExpectQuery("FROM posts p").
		WillReturnRows(sqlmock.NewRows(feedColumns).AddRow(1, time.Now(), 4, "b", "", "Ann", "", 0))
	mock.ExpectQuery("FROM post_likes").WillReturnError(pgError(pgerrcode.ConnectionFailure))

	_, err := repo.ListPosts(context.Background(), models.FeedRequest{Limit: 10})
	assert.ErrorIs(t, err, ErrDatabaseUnavailable)
}

func TestGetPost(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewPostRepository(db, logger.Nop())

	mock.ExpectQuery("FROM posts p").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(feedColumns).AddRow(5, time.Now(), 2, "b", "", "Bob", "", 1))
	mock.ExpectQuery("FROM post_likes").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(likeColumns).AddRow(5, 2, time.Now()))

	post, err := repo.GetPost(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Bob", post.Author.Name)
	assert.True(t, post.LikedBy(2))
}

func TestGetPost_NotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewPostRepository(db, logger.Nop())

	mock.ExpectQuery("FROM posts p").WillReturnRows(sqlmock.NewRows(feedColumns))

	_, err := repo.GetPost(context.Background(), 5)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestCreatePost(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewPostRepository(db, logger.Nop())
	now := time.Now()

	mock.ExpectQuery("INSERT INTO posts").
		WithArgs(int64(2), "hi", "postImages/1.png").
		WillReturnRows(sqlmock.NewRows(postRowColumns).AddRow(11, now, 2, "hi", "postImages/1.png"))

	post, err := repo.CreatePost(context.Background(), models.PostUpsert{UserID: 2, Body: "hi", File: "postImages/1.png"})
	require.NoError(t, err)
	assert.Equal(t, int64(11), post.ID)
	assert.NotNil(t, post.Likes)
	assert.Zero(t, post.CommentCount)
}

func TestCreatePost_UnknownUser(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewPostRepository(db, logger.Nop())

	mock.ExpectQuery("INSERT INTO posts").WillReturnError(pgError(pgerrcode.ForeignKeyViolation))

	_, err := repo.CreatePost(context.Background(), models.PostUpsert{UserID: 99})
	assert.ErrorIs(t, err, ErrReferenceNotFound)
}

func TestUpdatePost(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewPostRepository(db, logger.Nop())

	mock.ExpectQuery("UPDATE posts SET body").
		WithArgs("edited", int64(11), int64(2)).
		WillReturnRows(sqlmock.NewRows(postRowColumns).AddRow(11, time.Now(), 2, "edited", ""))

	post, err := repo.UpdatePost(context.Background(), models.PostUpsert{ID: 11, UserID: 2, Body: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", post.Body)
}

func TestUpdatePost_NotOwned(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewPostRepository(db, logger.Nop())

	mock.ExpectQuery("UPDATE posts").WillReturnRows(sqlmock.NewRows(postRowColumns))

	_, err := repo.UpdatePost(context.Background(), models.PostUpsert{ID: 11, UserID: 3, Body: "x"})
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestDeletePost(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewPostRepository(db, logger.Nop())

	mock.ExpectQuery("DELETE FROM posts").
		WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows(postRowColumns).AddRow(11, time.Now(), 2, "bye", ""))

	post, err := repo.DeletePost(context.Background(), 11)
	require.NoError(t, err)
	assert.Equal(t, int64(2), post.UserID)
}

func TestDeletePost_NotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewPostRepository(db, logger.Nop())

	mock.ExpectQuery("DELETE FROM posts").WillReturnError(sql.ErrNoRows)

	_, err := repo.DeletePost(context.Background(), 11)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

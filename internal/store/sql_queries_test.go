// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"strings"
	"testing"

	"github.com/MKhiriev/go-fleed/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_buildListPostsQuery(t *testing.T) {
	tests := []struct {
		name       string
		req        models.FeedRequest
		checkQuery func(t *testing.T, query string, args []any)
	}{
		{
			name: "all posts",
			req:  models.FeedRequest{Limit: 10},
			checkQuery: func(t *testing.T, query string, args []any) {
				q := strings.ToLower(query)

				require.Contains(t, q, "from posts p")
				require.Contains(t, q, "join users u on u.id = p.user_id")
				require.Contains(t, q, "comment_count")
				require.Contains(t, q, "order by p.created_at desc, p.id desc")
				require.Contains(t, q, "limit 10")
				require.NotContains(t, q, "p.user_id =")
				require.NotContains(t, q, "like")

				assert.Empty(t, args)
			},
		},
		{
			name: "posts by user",
			req:  models.FeedRequest{Limit: 20, UserID: 7},
			checkQuery: func(t *testing.T, query string, args []any) {
				require.Contains(t, query, "p.user_id = $1")
				require.Contains(t, query, "LIMIT 20")

				require.Len(t, args, 1)
				assert.Equal(t, int64(7), args[0])
			},
		},
		{
			name: "video posts",
			req:  models.FeedRequest{Limit: 5, VideoOnly: true},
			checkQuery: func(t *testing.T, query string, args []any) {
				require.Contains(t, query, "p.file ILIKE $1")

				require.Len(t, args, 1)
				assert.Equal(t, "%postVideos%", args[0])
			},
		},
		{
			name: "video posts by user",
			req:  models.FeedRequest{Limit: 5, UserID: 3, VideoOnly: true},
			checkQuery: func(t *testing.T, query string, args []any) {
				require.Contains(t, query, "p.user_id = $1")
				require.Contains(t, query, "p.file ILIKE $2")
				require.Len(t, args, 2)
			},
		},
		{
			name: "no limit",
			req:  models.FeedRequest{},
			checkQuery: func(t *testing.T, query string, args []any) {
				require.NotContains(t, strings.ToLower(query), "limit")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildListPostsQuery(context.Background(), tt.req)
			require.NoError(t, err)
			tt.checkQuery(t, query, args)
		})
	}
}

func Test_buildGetPostQuery(t *testing.T) {
	query, args, err := buildGetPostQuery(context.Background(), 12)
	require.NoError(t, err)

	require.Contains(t, query, "p.id = $1")
	require.Contains(t, query, "comment_count")
	assert.Equal(t, []any{int64(12)}, args)
}

func Test_buildListLikesQuery(t *testing.T) {
	query, args, err := buildListLikesQuery(context.Background(), []int64{3, 1})
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "from post_likes")
	require.Contains(t, query, "post_id IN ($1,$2)")
	assert.Equal(t, []any{int64(3), int64(1)}, args)
}

func Test_buildListLikesQuery_NoIDs(t *testing.T) {
	query, args, err := buildListLikesQuery(context.Background(), nil)
	require.ErrorIs(t, err, ErrBuildingSQLQuery)
	assert.Empty(t, query)
	assert.Nil(t, args)
}

func Test_buildListCommentsQuery(t *testing.T) {
	t.Run("with limit", func(t *testing.T) {
		query, args, err := buildListCommentsQuery(context.Background(), 9, 1)
		require.NoError(t, err)

		require.Contains(t, query, "JOIN users u ON u.id = c.user_id")
		require.Contains(t, query, "c.post_id = $1")
		require.Contains(t, query, "ORDER BY c.created_at DESC, c.id DESC")
		require.Contains(t, query, "LIMIT 1")
		assert.Equal(t, []any{int64(9)}, args)
	})

	t.Run("without limit", func(t *testing.T) {
		query, _, err := buildListCommentsQuery(context.Background(), 9, 0)
		require.NoError(t, err)
		require.NotContains(t, query, "LIMIT")
	})
}

func Test_buildUpdatePostQuery(t *testing.T) {
	tests := []struct {
		name     string
		post     models.PostUpsert
		contains []string
		absent   []string
		args     []any
	}{
		{
			name:     "body only",
			post:     models.PostUpsert{ID: 4, UserID: 2, Body: "hello"},
			contains: []string{"UPDATE posts SET body = $1", "id = $2", "user_id = $3", "RETURNING id, created_at, user_id, body, file"},
			absent:   []string{"file = "},
			args:     []any{"hello", int64(4), int64(2)},
		},
		{
			name:     "body and file",
			post:     models.PostUpsert{ID: 4, UserID: 2, Body: "", File: "postImages/1.png"},
			contains: []string{"body = $1", "file = $2", "id = $3", "user_id = $4"},
			args:     []any{"", "postImages/1.png", int64(4), int64(2)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildUpdatePostQuery(context.Background(), tt.post)
			require.NoError(t, err)

			for _, part := range tt.contains {
				assert.Contains(t, query, part)
			}
			for _, part := range tt.absent {
				assert.NotContains(t, query, part)
			}
			assert.Equal(t, tt.args, args)
		})
	}
}

func Test_buildFollowCountsQuery(t *testing.T) {
	query, args, err := buildFollowCountsQuery(context.Background(), 5)
	require.NoError(t, err)

	require.Contains(t, query, "following_id = $1) AS followers")
	require.Contains(t, query, "follower_id = $2) AS following")
	assert.Equal(t, []any{int64(5), int64(5)}, args)
}

func Test_buildListNotificationsQuery(t *testing.T) {
	query, args, err := buildListNotificationsQuery(context.Background(), 8, 50)
	require.NoError(t, err)

	require.Contains(t, query, "FROM notifications")
	require.Contains(t, query, "receiver_id = $1")
	require.Contains(t, query, "LIMIT 50")
	assert.Equal(t, []any{int64(8)}, args)
}

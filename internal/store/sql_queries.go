// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-fleed/internal/logger"
	"github.com/MKhiriev/go-fleed/models"
)

const (
	createUser = `INSERT INTO users (email, password_hash, name, image) 
    VALUES ($1, $2, $3, $4) 
    RETURNING id, email, password_hash, name, image, bio, address, created_at;`

	findUserByEmail = `SELECT id, email, password_hash, name, image, bio, address, created_at 
    FROM users 
    WHERE email = $1;`

	findUserByID = `SELECT id, email, password_hash, name, image, bio, address, created_at 
    FROM users 
    WHERE id = $1;`

	createPost = `INSERT INTO posts (user_id, body, file) 
    VALUES ($1, $2, $3) 
    RETURNING id, created_at, user_id, body, file;`

	deletePost = `DELETE FROM posts 
    WHERE id = $1 
    RETURNING id, created_at, user_id, body, file;`

	createComment = `INSERT INTO comments (post_id, user_id, text) 
    VALUES ($1, $2, $3) 
    RETURNING id, created_at, post_id, user_id, text;`

	findCommentWithPostOwner = `SELECT c.id, c.created_at, c.post_id, c.user_id, c.text, p.user_id 
    FROM comments c 
    JOIN posts p ON p.id = c.post_id 
    WHERE c.id = $1;`

	deleteComment = `DELETE FROM comments 
    WHERE id = $1 
    RETURNING id, created_at, post_id, user_id, text;`

	likePost = `INSERT INTO post_likes (post_id, user_id) 
    VALUES ($1, $2) 
    ON CONFLICT (post_id, user_id) DO NOTHING 
    RETURNING post_id, user_id, created_at;`

	unlikePost = `DELETE FROM post_likes 
    WHERE post_id = $1 AND user_id = $2 
    RETURNING post_id, user_id, created_at;`

	followUser = `INSERT INTO follows (follower_id, following_id) 
    VALUES ($1, $2) 
    ON CONFLICT (follower_id, following_id) DO NOTHING 
    RETURNING follower_id, following_id, created_at;`

	unfollowUser = `DELETE FROM follows 
    WHERE follower_id = $1 AND following_id = $2;`

	isFollowing = `SELECT EXISTS (
        SELECT 1 FROM follows WHERE follower_id = $1 AND following_id = $2
    );`

	createNotification = `INSERT INTO notifications (sender_id, receiver_id, title, data) 
    VALUES ($1, $2, $3, $4) 
    RETURNING id, created_at, sender_id, receiver_id, title, data, is_read;`

	markNotificationsRead = `UPDATE notifications 
    SET is_read = TRUE 
    WHERE receiver_id = $1 AND is_read = FALSE;`
)

// psql is the statement builder for PostgreSQL ($n placeholders).
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// postColumns are the columns of a feed row: the post, its author summary and
// the number of comments.
var postColumns = []string{
	"p.id",
	"p.created_at",
	"p.user_id",
	"p.body",
	"p.file",
	"u.name",
	"u.image",
	"(SELECT count(*) FROM comments c WHERE c.post_id = p.id) AS comment_count",
}

func selectPosts() sq.SelectBuilder {
	return psql.
		Select(postColumns...).
		From("posts p").
		Join("users u ON u.id = p.user_id")
}

// buildListPostsQuery selects the newest req.Limit posts of the scope the
// request describes. A zero limit selects every post.
func buildListPostsQuery(ctx context.Context, req models.FeedRequest) (string, []any, error) {
	query := selectPosts().OrderBy("p.created_at DESC", "p.id DESC")

	if req.UserID != 0 {
		query = query.Where(sq.Eq{"p.user_id": req.UserID})
	}
	if req.VideoOnly {
		query = query.Where(sq.ILike{"p.file": "%" + models.FolderPostVideos + "%"})
	}
	if req.Limit > 0 {
		query = query.Limit(uint64(req.Limit))
	}

	return toSQL(ctx, "buildListPostsQuery", query)
}

func buildGetPostQuery(ctx context.Context, postID int64) (string, []any, error) {
	return toSQL(ctx, "buildGetPostQuery", selectPosts().Where(sq.Eq{"p.id": postID}))
}

// buildListLikesQuery selects the likes of all given posts, oldest first.
func buildListLikesQuery(ctx context.Context, postIDs []int64) (string, []any, error) {
	if len(postIDs) == 0 {
		return "", nil, fmt.Errorf("%w: no post ids", ErrBuildingSQLQuery)
	}

	query := psql.
		Select("post_id", "user_id", "created_at").
		From("post_likes").
		Where(sq.Eq{"post_id": postIDs}).
		OrderBy("created_at ASC")

	return toSQL(ctx, "buildListLikesQuery", query)
}

// buildListCommentsQuery selects the comments of a post with their authors,
// newest first. A zero limit selects all of them.
func buildListCommentsQuery(ctx context.Context, postID int64, limit int) (string, []any, error) {
	query := psql.
		Select("c.id", "c.created_at", "c.post_id", "c.user_id", "c.text", "u.name", "u.image").
		From("comments c").
		Join("users u ON u.id = c.user_id").
		Where(sq.Eq{"c.post_id": postID}).
		OrderBy("c.created_at DESC", "c.id DESC")

	if limit > 0 {
		query = query.Limit(uint64(limit))
	}

	return toSQL(ctx, "buildListCommentsQuery", query)
}

// buildUpdatePostQuery updates the body of a post owned by post.UserID, and its
// media file when a new one is given.
func buildUpdatePostQuery(ctx context.Context, post models.PostUpsert) (string, []any, error) {
	query := psql.Update("posts").Set("body", post.Body)
	if post.File != "" {
		query = query.Set("file", post.File)
	}

	query = query.
		Where(sq.Eq{"id": post.ID}).
		Where(sq.Eq{"user_id": post.UserID}).
		Suffix("RETURNING id, created_at, user_id, body, file")

	return toSQL(ctx, "buildUpdatePostQuery", query)
}

func buildFollowCountsQuery(ctx context.Context, userID int64) (string, []any, error) {
	query := psql.
		Select().
		Column(sq.Expr("(SELECT count(*) FROM follows WHERE following_id = ?) AS followers", userID)).
		Column(sq.Expr("(SELECT count(*) FROM follows WHERE follower_id = ?) AS following", userID))

	return toSQL(ctx, "buildFollowCountsQuery", query)
}

func buildListNotificationsQuery(ctx context.Context, receiverID int64, limit int) (string, []any, error) {
	query := psql.
		Select("id", "created_at", "sender_id", "receiver_id", "title", "data", "is_read").
		From("notifications").
		Where(sq.Eq{"receiver_id": receiverID}).
		OrderBy("created_at DESC", "id DESC")

	if limit > 0 {
		query = query.Limit(uint64(limit))
	}

	return toSQL(ctx, "buildListNotificationsQuery", query)
}

func toSQL(ctx context.Context, funcName string, builder sq.Sqlizer) (string, []any, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", funcName).Msg("error building query")
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

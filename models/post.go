// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"strings"
	"time"
)

// Media folders used by the storage service. The folder is part of the stored
// file path and is how the feed tells images from videos.
const (
	FolderPostImages = "postImages"
	FolderPostVideos = "postVideos"
	FolderProfiles   = "profiles"
)

// Post is a single feed entry joined with its like list, comment count and
// author summary.
type Post struct {
	// ID is the server-assigned identifier.
	ID int64 `json:"id"`

	// CreatedAt drives the newest-first ordering of every feed query.
	CreatedAt time.Time `json:"created_at"`

	// UserID is the author of the post.
	UserID int64 `json:"user_id"`

	// Body is the post text, possibly containing HTML markup.
	Body string `json:"body"`

	// File is the storage path of the attached media, if any.
	File string `json:"file,omitempty"`

	// Likes lists every like the post has received.
	Likes []Like `json:"likes"`

	// CommentCount is the denormalized number of comments.
	CommentCount int `json:"comment_count"`

	// Author is the denormalized author summary.
	Author UserSummary `json:"user"`
}

// TableName returns the name of the database table
// associated with the Post model.
func (p Post) TableName() string {
	return "posts"
}

// Key implements feed.Keyed.
func (p Post) Key() int64 {
	return p.ID
}

// IsVideo reports whether the attached media is a video.
func (p Post) IsVideo() bool {
	return strings.Contains(p.File, FolderPostVideos)
}

// IsImage reports whether the attached media is an image.
func (p Post) IsImage() bool {
	return strings.Contains(p.File, FolderPostImages)
}

// LikedBy reports whether userID is among the post's likes.
func (p Post) LikedBy(userID int64) bool {
	for _, like := range p.Likes {
		if like.UserID == userID {
			return true
		}
	}
	return false
}

// PostDetails is the full detail view of a post: the post itself and its
// entire comment list, newest first.
type PostDetails struct {
	Post     Post      `json:"post"`
	Comments []Comment `json:"comments"`
}

// PostUpsert is the payload of the create-or-update endpoint. A zero ID
// creates a new post.
type PostUpsert struct {
	ID     int64  `json:"id,omitempty"`
	UserID int64  `json:"user_id"`
	Body   string `json:"body"`
	File   string `json:"file,omitempty"`
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Comment is a single comment on a post, joined with its author summary.
type Comment struct {
	ID        int64       `json:"id"`
	CreatedAt time.Time   `json:"created_at"`
	PostID    int64       `json:"post_id"`
	UserID    int64       `json:"user_id"`
	Text      string      `json:"text"`
	Author    UserSummary `json:"user"`
}

// TableName returns the name of the database table
// associated with the Comment model.
func (c Comment) TableName() string {
	return "comments"
}

// Key implements feed.Keyed.
func (c Comment) Key() int64 {
	return c.ID
}

// Like links a user to a post they liked.
type Like struct {
	PostID    int64     `json:"post_id"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Like model.
func (l Like) TableName() string {
	return "post_likes"
}

// Follow links a follower to the user they follow.
type Follow struct {
	FollowerID  int64     `json:"follower_id"`
	FollowingID int64     `json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Follow model.
func (f Follow) TableName() string {
	return "follows"
}

// FollowCounts holds profile follower statistics.
type FollowCounts struct {
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
}

// FollowStatus tells whether one user follows another.
type FollowStatus struct {
	Following bool `json:"following"`
}

// Notification is an in-app notice addressed to ReceiverID. Data carries a
// JSON document with the ids needed to open the related post or comment.
type Notification struct {
	ID         int64     `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	SenderID   int64     `json:"sender_id"`
	ReceiverID int64     `json:"receiver_id"`
	Title      string    `json:"title"`
	Data       string    `json:"data"`
	IsRead     bool      `json:"is_read"`
}

// TableName returns the name of the database table
// associated with the Notification model.
func (n Notification) TableName() string {
	return "notifications"
}

// NotificationData is the structured form of Notification.Data.
type NotificationData struct {
	PostID    int64 `json:"post_id"`
	CommentID int64 `json:"comment_id,omitempty"`
}

// Profile is the public profile view of a user as seen by the viewer.
type Profile struct {
	User      UserSummary  `json:"user"`
	Counts    FollowCounts `json:"counts"`
	Following bool         `json:"following"`
	// Own is set when the viewer looks at their own profile.
	Own bool `json:"own"`
}

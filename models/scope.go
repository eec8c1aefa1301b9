// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// ScopeKind selects which subset of a collection a list tracks.
type ScopeKind int

const (
	// ScopeAllPosts is every post, newest first.
	ScopeAllPosts ScopeKind = iota
	// ScopeUserPosts is the posts of Scope.UserID.
	ScopeUserPosts
	// ScopeVideoPosts is posts whose media is a video.
	ScopeVideoPosts
	// ScopePostComments is the comments of Scope.PostID.
	ScopePostComments
)

// Scope is the filter defining the list a synchronizer keeps.
type Scope struct {
	Kind   ScopeKind
	UserID int64
	PostID int64
}

// AllPosts returns the home feed scope.
func AllPosts() Scope { return Scope{Kind: ScopeAllPosts} }

// UserPosts returns the profile scope of userID.
func UserPosts(userID int64) Scope { return Scope{Kind: ScopeUserPosts, UserID: userID} }

// VideoPosts returns the video feed scope.
func VideoPosts() Scope { return Scope{Kind: ScopeVideoPosts} }

// PostComments returns the comment list scope of postID.
func PostComments(postID int64) Scope { return Scope{Kind: ScopePostComments, PostID: postID} }

// String implements fmt.Stringer for log fields.
func (s Scope) String() string {
	switch s.Kind {
	case ScopeAllPosts:
		return "posts"
	case ScopeUserPosts:
		return fmt.Sprintf("posts:user=%d", s.UserID)
	case ScopeVideoPosts:
		return "posts:video"
	case ScopePostComments:
		return fmt.Sprintf("comments:post=%d", s.PostID)
	default:
		return "unknown"
	}
}

// FeedRequest is the query of the post list endpoint. It asks for the top
// Limit posts of the scope, newest first.
type FeedRequest struct {
	Limit     int   `json:"limit"`
	UserID    int64 `json:"user_id,omitempty"`
	VideoOnly bool  `json:"video_only,omitempty"`
}

// FeedRequestFor translates a post scope into the list query.
func FeedRequestFor(scope Scope, limit int) FeedRequest {
	req := FeedRequest{Limit: limit}
	switch scope.Kind {
	case ScopeUserPosts:
		req.UserID = scope.UserID
	case ScopeVideoPosts:
		req.VideoOnly = true
	}
	return req
}

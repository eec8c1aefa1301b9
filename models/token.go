// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Token is an issued or parsed bearer token.
//
// SignedString holds the compact serialized form of the JWT
// (header.payload.signature) as sent in the Authorization header.
// UserID is the parsed "sub" claim.
type Token struct {
	SignedString string    `json:"-"`
	UserID       int64     `json:"-"`
	ExpiresAt    time.Time `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t Token) String() string {
	return t.SignedString
}

// Session is the authenticated state the client keeps between runs.
type Session struct {
	UserID    int64     `json:"user_id"`
	Token     string    `json:"token"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Summary returns the author view of the session user.
func (s Session) Summary() UserSummary {
	return UserSummary{ID: s.UserID, Name: s.Name, Image: s.Image}
}

// UploadResult is returned by the media storage endpoint.
type UploadResult struct {
	Path string `json:"path"`
}

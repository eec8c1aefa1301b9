// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User represents an account entity used for authentication and profile
// rendering. Credential fields never leave the server in responses.
type User struct {
	// UserID is the unique identifier of the user.
	UserID int64 `json:"id"`

	// Email is the unique login identifier.
	Email string `json:"email"`

	// Password is the plain password sent by the client on register/login.
	// It is never persisted and never written back in responses.
	Password string `json:"password,omitempty"`

	// PasswordHash is the bcrypt hash stored in the database.
	PasswordHash string `json:"-"`

	// Name is the display name shown on posts, comments and profiles.
	Name string `json:"name"`

	// Image is the storage path of the avatar, empty for the default one.
	Image string `json:"image,omitempty"`

	// Bio is a free-form profile description.
	Bio string `json:"bio,omitempty"`

	// Address is a free-form location shown under the profile name.
	Address string `json:"address,omitempty"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Summary returns the denormalized author view embedded into posts and
// comments.
func (u User) Summary() UserSummary {
	return UserSummary{ID: u.UserID, Name: u.Name, Image: u.Image}
}

// UserSummary is the author projection joined into posts and comments.
type UserSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

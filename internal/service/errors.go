// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

// Server-side service errors.
var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	// ErrForbidden is returned when a user changes content they do not own.
	ErrForbidden = errors.New("not allowed to change this content")

	ErrEmptyPost    = errors.New("post must have a body or a media file")
	ErrEmptyComment = errors.New("comment text is empty")

	ErrInvalidMediaFolder = errors.New("invalid media folder")
	ErrMediaTooLarge      = errors.New("media file is too large")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

// Client-side service errors.
var (
	// ErrFetchFailed is returned when a list page could not be loaded.
	ErrFetchFailed = errors.New("could not load items")

	// ErrMutationRejected is returned when the server refuses or fails a
	// locally initiated change. Optimistic state has been rolled back.
	ErrMutationRejected = errors.New("change was rejected")

	// ErrSubscriptionFailed is returned when the push channel could not be
	// opened. Lists keep working through pagination only.
	ErrSubscriptionFailed = errors.New("live updates are unavailable")

	// ErrNotLoggedIn is returned by operations that need a session.
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrServerUnavailable is returned when the server is unreachable or
	// temporarily unavailable.
	ErrServerUnavailable = errors.New("server is unavailable")

	// ErrNotFound is returned when the server does not know the requested
	// item.
	ErrNotFound = errors.New("not found")
)

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when registering an email that is
	// already taken.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrNoUserWasFound is returned when a user lookup produces an empty
	// result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrPostNotFound is returned when a query targets a post that does not
	// exist, or that the caller does not own for owner-scoped updates.
	ErrPostNotFound = errors.New("post was not found")

	// ErrCommentNotFound is returned when a query targets a missing comment.
	ErrCommentNotFound = errors.New("comment was not found")

	// ErrSelfFollow is returned when a user tries to follow themselves.
	ErrSelfFollow = errors.New("users cannot follow themselves")

	// ErrReferenceNotFound is returned when an insert references a post or
	// user that does not exist.
	ErrReferenceNotFound = errors.New("referenced row was not found")

	// ErrMediaNotFound is returned when a media file does not exist.
	ErrMediaNotFound = errors.New("media file was not found")

	// ErrInvalidMediaPath is returned for media paths outside the upload
	// folders.
	ErrInvalidMediaPath = errors.New("invalid media path")

	// ErrSessionNotFound is returned when the client has no remembered
	// session.
	ErrSessionNotFound = errors.New("local session not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrDatabaseUnavailable is joined to ErrExecutingQuery when the driver
	// error is transient (connection loss, serialization failure, deadlock).
	ErrDatabaseUnavailable = errors.New("database temporarily unavailable")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when iterating a multi-row result fails.
	ErrScanningRows = errors.New("failed to scan rows")
)

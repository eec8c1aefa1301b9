// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used by the
// go-fleed server handlers and by the client when it maps responses back
// to errors.
//
// All Msg* constants are human-readable message strings written into the
// "error" field of HTTP error responses. Keeping them in one place keeps the
// wording identical on both sides of the wire.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails basic validation (e.g. missing required fields).
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidEmailPassword is returned when the supplied email/password
	// combination does not match any account.
	MsgInvalidEmailPassword = "invalid email/password"

	// MsgEmailAlreadyExists is returned on registration with a taken email.
	MsgEmailAlreadyExists = "email already exists"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgServiceUnavailable is returned when the database is temporarily
	// unreachable.
	MsgServiceUnavailable = "service temporarily unavailable"

	// MsgTokenIsExpiredOrInvalid is returned when a JWT bearer token is
	// either expired or cannot be verified (e.g. wrong signature).
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgEmptyAuthorizationHeader is returned for protected routes called
	// without credentials.
	MsgEmptyAuthorizationHeader = "empty `Authorization` header"

	// MsgUserNotFound is returned when a user id does not exist.
	MsgUserNotFound = "user not found"

	// MsgPostNotFound is returned when a post id does not exist.
	MsgPostNotFound = "post not found"

	// MsgCommentNotFound is returned when a comment id does not exist.
	MsgCommentNotFound = "comment not found"

	// MsgMediaNotFound is returned when a media file does not exist.
	MsgMediaNotFound = "media file not found"

	// MsgInvalidMediaPath is returned for uploads to unknown folders and
	// for paths outside the upload folders.
	MsgInvalidMediaPath = "invalid media path"

	// MsgMediaTooLarge is returned when an upload exceeds the size limit.
	MsgMediaTooLarge = "media file is too large"

	// MsgForbidden is returned when a user changes content they do not own.
	MsgForbidden = "not allowed to change this content"

	// MsgSelfFollow is returned when a user tries to follow themselves.
	MsgSelfFollow = "users cannot follow themselves"

	// MsgEmptyPost is returned for a post with neither body nor media.
	MsgEmptyPost = "post must have a body or a media file"

	// MsgEmptyComment is returned for a blank comment.
	MsgEmptyComment = "comment text is empty"

	// MsgRouteNotFound is returned for unknown routes.
	MsgRouteNotFound = "route not found"

	// MsgMethodNotAllowed is returned when a route exists but does not
	// serve the request method.
	MsgMethodNotAllowed = "method not allowed"
)

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils holds helpers shared by the go-fleed server and client:
// request context values, JSON responses, the resty HTTP client, JWT
// handling, id generation, media paths and text helpers.
package utils

import (
	"context"
)

// contextKey keeps the keys of this package apart from string keys of other
// packages.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

var (
	userIDCtxKey     = contextKey("userID")
	mutationIDCtxKey = contextKey("mutationID")
)

// WithUserID returns a copy of ctx carrying the authenticated user id.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDCtxKey, userID)
}

// GetUserIDFromContext returns the id stored by WithUserID. ok is false when
// there is none.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDCtxKey).(int64)
	return userID, ok
}

// WithMutationID returns a copy of ctx carrying the client-chosen id of a
// write request. The id is copied into the push events the write produces.
// An empty id leaves ctx untouched.
func WithMutationID(ctx context.Context, mutationID string) context.Context {
	if mutationID == "" {
		return ctx
	}
	return context.WithValue(ctx, mutationIDCtxKey, mutationID)
}

// GetMutationIDFromContext returns the id stored by WithMutationID, or "".
func GetMutationIDFromContext(ctx context.Context) string {
	mutationID, _ := ctx.Value(mutationIDCtxKey).(string)
	return mutationID
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextKeyString(t *testing.T) {
	assert.Equal(t, "userID", userIDCtxKey.String())
	assert.Equal(t, "mutationID", mutationIDCtxKey.String())
}

func TestGetUserIDFromContext(t *testing.T) {
	tests := []struct {
		name   string
		ctx    context.Context
		wantID int64
		wantOK bool
	}{
		{name: "stored", ctx: WithUserID(context.Background(), 42), wantID: 42, wantOK: true},
		{name: "zero is still stored", ctx: WithUserID(context.Background(), 0), wantID: 0, wantOK: true},
		{name: "missing", ctx: context.Background()},
		{name: "wrong type", ctx: context.WithValue(context.Background(), userIDCtxKey, "42")},
		{name: "plain string key", ctx: context.WithValue(context.Background(), "userID", int64(42))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := GetUserIDFromContext(tt.ctx)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestWithMutationID(t *testing.T) {
	ctx := WithMutationID(context.Background(), "m-1")
	assert.Equal(t, "m-1", GetMutationIDFromContext(ctx))

	base := context.Background()
	assert.Equal(t, base, WithMutationID(base, ""))
	assert.Empty(t, GetMutationIDFromContext(base))
}

func TestContextValuesAreIndependent(t *testing.T) {
	ctx := WithMutationID(WithUserID(context.Background(), 5), "m-2")

	id, ok := GetUserIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(5), id)
	assert.Equal(t, "m-2", GetMutationIDFromContext(ctx))
}

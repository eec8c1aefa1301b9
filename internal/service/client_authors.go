// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"maps"
	"sync"

	"github.com/MKhiriev/go-fleed/internal/adapter"
	"github.com/MKhiriev/go-fleed/internal/logger"
	"github.com/MKhiriev/go-fleed/models"
)

// authorCache resolves the author summaries Insert events lack.
type authorCache struct {
	adapter adapter.ServerAdapter

	mu      sync.Mutex
	authors map[int64]models.UserSummary
}

func newAuthorCache(serverAdapter adapter.ServerAdapter) *authorCache {
	return &authorCache{adapter: serverAdapter, authors: make(map[int64]models.UserSummary)}
}

// get returns the summary of userID. A failed lookup yields a summary with
// the id only and is not cached.
func (c *authorCache) get(ctx context.Context, userID int64) models.UserSummary {
	c.mu.Lock()
	author, ok := c.authors[userID]
	c.mu.Unlock()
	if ok {
		return author
	}

	author, err := c.adapter.GetUser(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).Int64("user_id", userID).Msg("author lookup failed")
		return models.UserSummary{ID: userID}
	}

	c.mu.Lock()
	c.authors[userID] = author
	c.mu.Unlock()
	return author
}

// put refreshes the cached summary of a user loaded elsewhere.
func (c *authorCache) put(author models.UserSummary) {
	c.mu.Lock()
	c.authors[author.ID] = author
	c.mu.Unlock()
}

// enrichInsert adds the author summary and the given derived fields to an
// Insert event. Other events are returned unchanged.
func (c *authorCache) enrichInsert(ctx context.Context, event models.MutationEvent, derived map[string]any) models.MutationEvent {
	if event.Kind != models.EventInsert {
		return event
	}

	userID, ok := event.Int64Field("user_id")
	if !ok {
		return event
	}

	fields := maps.Clone(event.New)
	if fields == nil {
		fields = make(map[string]json.RawMessage)
	}

	extra := map[string]any{"user": c.get(ctx, userID)}
	maps.Copy(extra, derived)
	for column, value := range extra {
		raw, err := json.Marshal(value)
		if err != nil {
			continue
		}
		fields[column] = raw
	}

	event.New = fields
	return event
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-fleed/internal/logger"
	"github.com/MKhiriev/go-fleed/internal/utils"
	"github.com/MKhiriev/go-fleed/models"
)

// postRow is the stored part of a post. Events carry only stored columns so
// that an Update never overwrites the likes, author or comment count a
// client derived on its own.
type postRow struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    int64     `json:"user_id"`
	Body      string    `json:"body"`
	File      string    `json:"file"`
}

func newPostRow(p models.Post) postRow {
	return postRow{ID: p.ID, CreatedAt: p.CreatedAt, UserID: p.UserID, Body: p.Body, File: p.File}
}

type commentRow struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	PostID    int64     `json:"post_id"`
	UserID    int64     `json:"user_id"`
	Text      string    `json:"text"`
}

func newCommentRow(c models.Comment) commentRow {
	return commentRow{ID: c.ID, CreatedAt: c.CreatedAt, PostID: c.PostID, UserID: c.UserID, Text: c.Text}
}

// publish sends an event for row, tagged with the mutation id of the request
// in ctx. A nil publisher disables events.
func publish(ctx context.Context, publisher EventPublisher, table string, kind models.EventKind, id int64, row any) {
	if publisher == nil {
		return
	}

	event, err := models.NewMutationEvent(table, kind, id, row)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "publish").Str("table", table).Msg("error encoding mutation event")
		return
	}
	event.MutationID = utils.GetMutationIDFromContext(ctx)

	publisher.Publish(event)
}

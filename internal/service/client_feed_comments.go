// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/MKhiriev/go-fleed/internal/adapter"
	"github.com/MKhiriev/go-fleed/internal/feed"
	"github.com/MKhiriev/go-fleed/models"
)

// CommentFeed is the comment list of the post detail screen.
type CommentFeed struct {
	*feed.Synchronizer[models.Comment]

	postID  int64
	service *clientFeedService

	mu       sync.Mutex
	post     models.Post
	subs     []adapter.Subscription
	listener listener
}

// Post returns the post as of the last fetch.
func (c *CommentFeed) Post() models.Post {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.post
}

func (c *CommentFeed) setPost(post models.Post) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.post = post
}

// Subscribe starts applying comment events of the post. See
// [PostFeed.Subscribe].
func (c *CommentFeed) Subscribe(ctx context.Context, onChange func()) error {
	c.Unsubscribe()

	raw := make(chan models.MutationEvent, eventBuffer)
	topic := models.FilteredTopic(models.Comment{}.TableName(), "post_id", c.postID)

	subs, err := c.service.subscribe(ctx, raw, topic)
	if err != nil {
		c.service.logger.Warn().Err(err).Int64("post_id", c.postID).Msg("comment list runs without live updates")
		return err
	}

	c.mu.Lock()
	c.subs = subs
	c.mu.Unlock()

	enriched := make(chan models.MutationEvent)
	notify := func(models.MutationEvent) {
		if onChange != nil {
			onChange()
		}
	}

	c.listener.start(context.WithoutCancel(ctx),
		func(ctx context.Context) {
			for {
				select {
				case <-ctx.Done():
					return
				case event := <-raw:
					event = c.service.authors.enrichInsert(ctx, event, nil)
					select {
					case enriched <- event:
					case <-ctx.Done():
						return
					}
				}
			}
		},
		func(ctx context.Context) { c.Listen(ctx, enriched, notify) },
	)
	return nil
}

// AddComment posts text as the session user and prepends the created
// comment. Its push echo is dropped by id.
func (c *CommentFeed) AddComment(ctx context.Context, text string) (models.Comment, error) {
	session, ok := c.service.session.current()
	if !ok {
		return models.Comment{}, ErrNotLoggedIn
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return models.Comment{}, ErrEmptyComment
	}

	ctx, _ = c.service.mutationContext(ctx)
	created, err := c.service.adapter.CreateComment(ctx, models.Comment{PostID: c.postID, UserID: session.UserID, Text: text})
	if err != nil {
		return models.Comment{}, fmt.Errorf("%w: %w", ErrMutationRejected, mapAdapterError(err))
	}

	created.Author = session.Summary()
	c.Insert(created)
	return created, nil
}

// DeleteComment deletes a comment and removes it from the list.
func (c *CommentFeed) DeleteComment(ctx context.Context, commentID int64) error {
	ctx, mutationID := c.service.mutationContext(ctx)
	c.ExpectEcho(mutationID)

	if err := c.service.adapter.DeleteComment(ctx, commentID); err != nil {
		c.ForgetEcho(mutationID)
		return fmt.Errorf("%w: %w", ErrMutationRejected, mapAdapterError(err))
	}

	c.Remove(commentID)
	return nil
}

// Unsubscribe stops live updates.
func (c *CommentFeed) Unsubscribe() {
	c.mu.Lock()
	subs := c.subs
	c.subs = nil
	c.mu.Unlock()

	unsubscribeAll(subs)
	c.listener.stop()
}

// Close stops live updates and tears the list down.
func (c *CommentFeed) Close() {
	c.Unsubscribe()
	c.Synchronizer.Close()
}

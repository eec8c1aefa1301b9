// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/MKhiriev/go-fleed/internal/adapter"
	"github.com/MKhiriev/go-fleed/internal/feed"
	"github.com/MKhiriev/go-fleed/models"
)

// PostFeed is the post list of one screen: the home feed, a profile or the
// video feed. It adds push subscriptions, optimistic likes and deletes to
// the embedded [feed.Synchronizer].
type PostFeed struct {
	*feed.Synchronizer[models.Post]

	service *clientFeedService

	mu       sync.Mutex
	subs     []adapter.Subscription
	listener listener
}

// Subscribe starts applying push events to the list. onChange, if set, is
// called after every event that changed it. The video feed has no live
// updates and returns nil at once.
//
// The error wraps [ErrSubscriptionFailed]; the list keeps working through
// pagination.
func (f *PostFeed) Subscribe(ctx context.Context, onChange func()) error {
	f.Unsubscribe()

	scope := f.Scope()
	var postsTopic models.Topic
	switch scope.Kind {
	case models.ScopeAllPosts:
		postsTopic = models.TableTopic(models.Post{}.TableName())
	case models.ScopeUserPosts:
		postsTopic = models.FilteredTopic(models.Post{}.TableName(), "user_id", scope.UserID)
	default:
		return nil
	}

	raw := make(chan models.MutationEvent, eventBuffer)
	subs, err := f.service.subscribe(ctx, raw, postsTopic, models.TableTopic(models.Like{}.TableName()))
	if err != nil {
		f.service.logger.Warn().Err(err).Str("scope", scope.String()).Msg("post list runs without live updates")
		return err
	}

	f.mu.Lock()
	f.subs = subs
	f.mu.Unlock()

	posts := make(chan models.MutationEvent)
	notify := func(models.MutationEvent) {
		if onChange != nil {
			onChange()
		}
	}

	f.listener.start(context.WithoutCancel(ctx),
		func(ctx context.Context) { f.route(ctx, raw, posts, notify) },
		func(ctx context.Context) { f.Listen(ctx, posts, notify) },
	)
	return nil
}

// route applies like events itself and passes post events, with inserts
// enriched, on to Listen.
func (f *PostFeed) route(ctx context.Context, raw <-chan models.MutationEvent, posts chan<- models.MutationEvent, notify func(models.MutationEvent)) {
	likes := models.Like{}.TableName()
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-raw:
			if event.Table == likes {
				if f.applyLike(event) {
					notify(event)
				}
				continue
			}

			event = f.service.authors.enrichInsert(ctx, event, map[string]any{
				"likes":         []models.Like{},
				"comment_count": 0,
			})

			select {
			case posts <- event:
			case <-ctx.Done():
				return
			}
		}
	}
}

// applyLike adds or removes the like carried by a post_likes event. Echoes of
// local likes are dropped.
func (f *PostFeed) applyLike(event models.MutationEvent) bool {
	if f.ConsumeEcho(event.MutationID) {
		return false
	}

	userID, ok := event.Int64Field("user_id")
	if !ok {
		return false
	}

	switch event.Kind {
	case models.EventInsert:
		return f.Modify(event.ID, func(p models.Post) models.Post { return withLike(p, userID) })
	case models.EventDelete:
		return f.Modify(event.ID, func(p models.Post) models.Post { return withoutLike(p, userID) })
	}
	return false
}

// ToggleLike likes or unlikes postID for the session user. The list changes
// at once; a rejected change is rolled back and reported as
// [ErrMutationRejected]. It returns whether the post is now liked.
func (f *PostFeed) ToggleLike(ctx context.Context, postID int64) (bool, error) {
	session, ok := f.service.session.current()
	if !ok {
		return false, ErrNotLoggedIn
	}

	post, ok := f.Get(postID)
	if !ok {
		return false, ErrNotFound
	}
	liked := post.LikedBy(session.UserID)

	ctx, mutationID := f.service.mutationContext(ctx)
	f.ExpectEcho(mutationID)

	apply, revert := withLike, withoutLike
	call := f.service.adapter.LikePost
	if liked {
		apply, revert = withoutLike, withLike
		call = f.service.adapter.UnlikePost
	}

	f.Modify(postID, func(p models.Post) models.Post { return apply(p, session.UserID) })

	if err := call(ctx, postID); err != nil {
		f.ForgetEcho(mutationID)
		f.Modify(postID, func(p models.Post) models.Post { return revert(p, session.UserID) })

		f.service.logger.Warn().Err(err).Int64("post_id", postID).Msg("like change rejected, rolled back")
		return liked, fmt.Errorf("%w: %w", ErrMutationRejected, mapAdapterError(err))
	}

	return !liked, nil
}

// DeletePost deletes an own post and removes it from the list.
func (f *PostFeed) DeletePost(ctx context.Context, postID int64) error {
	ctx, mutationID := f.service.mutationContext(ctx)
	f.ExpectEcho(mutationID)

	if err := f.service.adapter.DeletePost(ctx, postID); err != nil {
		f.ForgetEcho(mutationID)
		return fmt.Errorf("%w: %w", ErrMutationRejected, mapAdapterError(err))
	}

	f.Remove(postID)
	return nil
}

// Reset switches the list to scope. Live updates are stopped; call Subscribe
// again for the new scope.
func (f *PostFeed) Reset(scope models.Scope) {
	f.Unsubscribe()
	f.Synchronizer.Reset(scope)
}

// Unsubscribe stops live updates.
func (f *PostFeed) Unsubscribe() {
	f.mu.Lock()
	subs := f.subs
	f.subs = nil
	f.mu.Unlock()

	unsubscribeAll(subs)
	f.listener.stop()
}

// Live reports whether push events are applied.
func (f *PostFeed) Live() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs) > 0
}

// Close stops live updates and tears the list down.
func (f *PostFeed) Close() {
	f.Unsubscribe()
	f.Synchronizer.Close()
}

func withLike(p models.Post, userID int64) models.Post {
	if p.LikedBy(userID) {
		return p
	}
	p.Likes = append(slices.Clone(p.Likes), models.Like{PostID: p.ID, UserID: userID})
	return p
}

func withoutLike(p models.Post, userID int64) models.Post {
	p.Likes = slices.DeleteFunc(slices.Clone(p.Likes), func(l models.Like) bool { return l.UserID == userID })
	return p
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-fleed/internal/adapter"
	"github.com/MKhiriev/go-fleed/internal/config"
	"github.com/MKhiriev/go-fleed/internal/feed"
	"github.com/MKhiriev/go-fleed/internal/logger"
	"github.com/MKhiriev/go-fleed/internal/utils"
	"github.com/MKhiriev/go-fleed/models"
)

// eventBuffer is the number of push events queued per list before new ones
// are dropped.
const eventBuffer = 64

type clientFeedService struct {
	adapter       adapter.ServerAdapter
	realtime      adapter.Realtime
	session       *sessionState
	authors       *authorCache
	cfg           config.ClientFeed
	newMutationID func() string

	logger *logger.Logger
}

func newClientFeedService(
	serverAdapter adapter.ServerAdapter,
	realtime adapter.Realtime,
	session *sessionState,
	authors *authorCache,
	cfg config.ClientFeed,
	logger *logger.Logger,
) *clientFeedService {
	return &clientFeedService{
		adapter:       serverAdapter,
		realtime:      realtime,
		session:       session,
		authors:       authors,
		cfg:           cfg,
		newMutationID: utils.NewUUIDGenerator().Generate,
		logger:        logger,
	}
}

func (s *clientFeedService) OpenPosts(scope models.Scope) (*PostFeed, error) {
	increment := s.cfg.PageSize
	if scope.Kind == models.ScopeVideoPosts {
		increment = s.cfg.VideoPageSize
	}

	fetcher := feed.FetchFunc[models.Post](func(ctx context.Context, scope models.Scope, limit int) ([]models.Post, error) {
		posts, err := s.adapter.FetchPosts(ctx, scope, limit)
		if err != nil {
			return nil, mapAdapterError(err)
		}
		return posts, nil
	})

	list, err := feed.New[models.Post](fetcher, scope, feed.Config{PageIncrement: increment}, s.logger)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", scope, err)
	}

	return &PostFeed{Synchronizer: list, service: s}, nil
}

func (s *clientFeedService) OpenComments(postID int64) (*CommentFeed, error) {
	comments := &CommentFeed{postID: postID, service: s}

	fetcher := feed.FetchFunc[models.Comment](func(ctx context.Context, _ models.Scope, _ int) ([]models.Comment, error) {
		details, err := s.adapter.FetchPostDetails(ctx, postID)
		if err != nil {
			return nil, mapAdapterError(err)
		}
		comments.setPost(details.Post)
		return details.Comments, nil
	})

	list, err := feed.New[models.Comment](fetcher, models.PostComments(postID), feed.Config{PageIncrement: s.cfg.CommentPageSize}, s.logger)
	if err != nil {
		return nil, fmt.Errorf("open comments of post %d: %w", postID, err)
	}

	comments.Synchronizer = list
	return comments, nil
}

// subscribe opens the push channel and subscribes every topic to events. On
// failure the subscriptions made so far are dropped and the error wraps
// [ErrSubscriptionFailed].
func (s *clientFeedService) subscribe(ctx context.Context, events chan<- models.MutationEvent, topics ...models.Topic) ([]adapter.Subscription, error) {
	if err := s.realtime.Connect(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSubscriptionFailed, err)
	}

	subs := make([]adapter.Subscription, 0, len(topics))
	for _, topic := range topics {
		sub, err := s.realtime.Subscribe(ctx, topic, s.forward(events, topic))
		if err != nil {
			unsubscribeAll(subs)
			return nil, fmt.Errorf("%w: %s: %w", ErrSubscriptionFailed, topic, err)
		}
		subs = append(subs, sub)
	}

	return subs, nil
}

// forward queues events without blocking the push channel reader.
func (s *clientFeedService) forward(events chan<- models.MutationEvent, topic models.Topic) func(models.MutationEvent) {
	return func(event models.MutationEvent) {
		select {
		case events <- event:
		default:
			s.logger.Warn().Str("topic", topic.String()).Int64("id", event.ID).Msg("event queue is full, dropping event")
		}
	}
}

func unsubscribeAll(subs []adapter.Subscription) {
	for _, sub := range subs {
		sub.Unsubscribe()
	}
}

// mutationContext returns ctx tagged with a new mutation id.
func (s *clientFeedService) mutationContext(ctx context.Context) (context.Context, string) {
	mutationID := s.newMutationID()
	return utils.WithMutationID(ctx, mutationID), mutationID
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-fleed/internal/adapter"
	"github.com/MKhiriev/go-fleed/internal/logger"
	"github.com/MKhiriev/go-fleed/models"
)

type clientProfileService struct {
	adapter adapter.ServerAdapter
	session *sessionState
	authors *authorCache

	logger *logger.Logger
}

func newClientProfileService(serverAdapter adapter.ServerAdapter, session *sessionState, authors *authorCache, logger *logger.Logger) *clientProfileService {
	return &clientProfileService{adapter: serverAdapter, session: session, authors: authors, logger: logger}
}

// GetProfile loads the summary and follow counts of userID and, for other
// users, whether the session user follows them.
func (s *clientProfileService) GetProfile(ctx context.Context, userID int64) (models.Profile, error) {
	session, ok := s.session.current()
	if !ok {
		return models.Profile{}, ErrNotLoggedIn
	}

	user, err := s.adapter.GetUser(ctx, userID)
	if err != nil {
		return models.Profile{}, fmt.Errorf("get user %d: %w", userID, mapAdapterError(err))
	}
	s.authors.put(user)

	counts, err := s.adapter.FollowCounts(ctx, userID)
	if err != nil {
		return models.Profile{}, fmt.Errorf("get follow counts of %d: %w", userID, mapAdapterError(err))
	}

	profile := models.Profile{User: user, Counts: counts, Own: userID == session.UserID}
	if profile.Own {
		return profile, nil
	}

	status, err := s.adapter.FollowStatus(ctx, userID)
	if err != nil {
		return models.Profile{}, fmt.Errorf("get follow status of %d: %w", userID, mapAdapterError(err))
	}
	profile.Following = status.Following

	return profile, nil
}

func (s *clientProfileService) SetFollowing(ctx context.Context, userID int64, follow bool) error {
	if _, ok := s.session.current(); !ok {
		return ErrNotLoggedIn
	}

	call := s.adapter.Unfollow
	if follow {
		call = s.adapter.Follow
	}

	if err := call(ctx, userID); err != nil {
		return fmt.Errorf("%w: %w", ErrMutationRejected, mapAdapterError(err))
	}

	s.logger.Debug().Int64("user_id", userID).Bool("follow", follow).Msg("follow changed")
	return nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-fleed/internal/adapter"
	"github.com/MKhiriev/go-fleed/internal/logger"
	"github.com/MKhiriev/go-fleed/internal/store"
	"github.com/MKhiriev/go-fleed/internal/utils"
	"github.com/MKhiriev/go-fleed/models"
)

type clientAuthService struct {
	sessions store.SessionRepository
	adapter  adapter.ServerAdapter
	session  *sessionState
	now      func() time.Time

	logger *logger.Logger
}

func newClientAuthService(sessions store.SessionRepository, serverAdapter adapter.ServerAdapter, session *sessionState, logger *logger.Logger) *clientAuthService {
	return &clientAuthService{
		sessions: sessions,
		adapter:  serverAdapter,
		session:  session,
		now:      time.Now,
		logger:   logger,
	}
}

func (a *clientAuthService) Register(ctx context.Context, user models.User) (models.Session, error) {
	account, err := a.adapter.Register(ctx, user)
	if err != nil {
		return models.Session{}, fmt.Errorf("register on server: %w", mapAdapterError(err))
	}

	return a.remember(ctx, account)
}

func (a *clientAuthService) Login(ctx context.Context, user models.User) (models.Session, error) {
	account, err := a.adapter.Login(ctx, user)
	if err != nil {
		return models.Session{}, fmt.Errorf("login on server: %w", mapAdapterError(err))
	}

	return a.remember(ctx, account)
}

// remember stores the session of account with the token the adapter got.
// A failed local save is logged; the session stays usable for this run.
func (a *clientAuthService) remember(ctx context.Context, account models.User) (models.Session, error) {
	token := a.adapter.Token()

	parsed, err := utils.ParseUnverifiedJWTToken(token)
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrTokenIsExpiredOrInvalid, err)
	}

	session := models.Session{
		UserID:    parsed.UserID,
		Token:     token,
		Name:      account.Name,
		Email:     account.Email,
		Image:     account.Image,
		CreatedAt: a.now().UTC(),
	}

	if err = a.sessions.Save(ctx, session); err != nil {
		a.logger.Err(err).Str("func", "*clientAuthService.remember").Msg("session was not saved locally")
	}

	a.session.set(session)
	return session, nil
}

func (a *clientAuthService) Restore(ctx context.Context) (models.Session, error) {
	session, err := a.sessions.Load(ctx)
	if errors.Is(err, store.ErrSessionNotFound) {
		return models.Session{}, ErrNotLoggedIn
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("load session: %w", err)
	}

	parsed, err := utils.ParseUnverifiedJWTToken(session.Token)
	if err != nil || !parsed.ExpiresAt.After(a.now()) {
		a.logger.Info().Int64("user_id", session.UserID).Msg("remembered session has expired")
		if clearErr := a.sessions.Clear(ctx); clearErr != nil {
			a.logger.Err(clearErr).Msg("expired session was not cleared")
		}
		return models.Session{}, ErrNotLoggedIn
	}

	a.adapter.SetToken(session.Token)
	a.session.set(session)
	return session, nil
}

func (a *clientAuthService) Logout(ctx context.Context) error {
	a.adapter.SetToken("")
	a.session.clear()

	if err := a.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (a *clientAuthService) Session() (models.Session, bool) {
	return a.session.current()
}

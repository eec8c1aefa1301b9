// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-fleed/internal/logger"
	"github.com/MKhiriev/go-fleed/internal/service"
	"github.com/MKhiriev/go-fleed/internal/tui"
	"github.com/MKhiriev/go-fleed/models"
)

// UI is the terminal front end driven by [App].
type UI interface {
	LoginFlow(ctx context.Context) (models.Session, error)
	MainLoop(ctx context.Context, session models.Session) (logout bool, err error)
}

// PushChannel is the push channel connection shared by the screens.
type PushChannel interface {
	Close() error
}

type App struct {
	auth     service.ClientAuthService
	ui       UI
	realtime PushChannel

	logger *logger.Logger
}

var _ Client = (*App)(nil)

func NewApp(services *service.ClientServices, ui UI, realtime PushChannel, logger *logger.Logger) (*App, error) {
	if services == nil || services.AuthService == nil {
		return nil, errors.New("client services are not set")
	}
	if ui == nil {
		return nil, errors.New("ui is not set")
	}

	return &App{
		auth:     services.AuthService,
		ui:       ui,
		realtime: realtime,
		logger:   logger,
	}, nil
}

// Run restores the remembered session or asks the user to log in, then runs
// the main screens. After a logout the login flow starts again.
func (a *App) Run(ctx context.Context) error {
	for {
		session, err := a.session(ctx)
		if errors.Is(err, tui.ErrUserQuit) {
			return nil
		}
		if err != nil {
			return err
		}

		logout, err := a.ui.MainLoop(ctx, session)

		// the channel was opened with the token of this session
		if a.realtime != nil {
			if closeErr := a.realtime.Close(); closeErr != nil {
				a.logger.Warn().Err(closeErr).Msg("push channel close failed")
			}
		}

		if err != nil {
			return fmt.Errorf("main loop: %w", err)
		}
		if !logout {
			return nil
		}

		if err = a.auth.Logout(ctx); err != nil {
			return fmt.Errorf("logout: %w", err)
		}
		a.logger.Info().Int64("user_id", session.UserID).Msg("user logged out")
	}
}

func (a *App) session(ctx context.Context) (models.Session, error) {
	session, err := a.auth.Restore(ctx)
	if err == nil {
		a.logger.Info().Int64("user_id", session.UserID).Msg("session restored")
		return session, nil
	}
	if !errors.Is(err, service.ErrNotLoggedIn) {
		return models.Session{}, fmt.Errorf("restore session: %w", err)
	}

	return a.ui.LoginFlow(ctx)
}

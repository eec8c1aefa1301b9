// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui implements the terminal screens of the go-fleed client with
// Bubble Tea: the login flow, the home and video feeds, profiles, the post
// detail with comments, the compose screen and notifications.
//
// Every list screen owns one list opened through the client services and
// closes it when the screen goes away. Push channel listeners redraw the
// screens through the running program.
package tui

import (
	"context"

	"github.com/MKhiriev/go-fleed/internal/logger"
	"github.com/MKhiriev/go-fleed/internal/service"
	"github.com/MKhiriev/go-fleed/models"
	tea "github.com/charmbracelet/bubbletea"
)

type TUI struct {
	services *service.ClientServices
	logger   *logger.Logger
}

func New(services *service.ClientServices, logger *logger.Logger) (*TUI, error) {
	return &TUI{services: services, logger: logger}, nil
}

// LoginFlow runs the menu, login and register pages until the user is logged
// in. It returns [ErrUserQuit] when the user leaves.
func (t *TUI) LoginFlow(ctx context.Context) (models.Session, error) {
	pages := map[string]tea.Model{
		pageMenu:     newMenuModel(),
		pageLogin:    NewLoginModel(ctx, t.services.AuthService),
		pageRegister: NewRegisterModel(ctx, t.services.AuthService),
	}

	flow := newAuthFlowModel(pages, pageMenu, t.services.InfoService.BuildInfo())
	finalModel, runErr := tea.NewProgram(flow, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if runErr != nil {
		return models.Session{}, runErr
	}

	result, ok := finalModel.(authFlowModel)
	if !ok {
		return models.Session{}, tea.ErrProgramKilled
	}
	if result.quitting || result.session.UserID == 0 {
		return models.Session{}, ErrUserQuit
	}

	t.logger.Info().Int64("user_id", result.session.UserID).Msg("user logged in")
	return result.session, nil
}

// MainLoop runs the screens of session until the user quits or logs out.
func (t *TUI) MainLoop(ctx context.Context, session models.Session) (logout bool, err error) {
	sender := &programSender{}

	model, err := newMainLoopModel(ctx, t.services, session, sender.send)
	if err != nil {
		return false, err
	}

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	sender.attach(program)
	finalModel, runErr := program.Run()
	sender.detach()

	t.services.NotificationService.Stop()

	result, ok := finalModel.(mainLoopModel)
	if !ok {
		model.closeAll()
		if runErr != nil {
			return false, runErr
		}
		return false, tea.ErrProgramKilled
	}
	result.closeAll()

	if runErr != nil {
		return false, runErr
	}
	return result.logout, nil
}

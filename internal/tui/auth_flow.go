// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"github.com/MKhiriev/go-fleed/models"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Pages of the login flow.
const (
	pageMenu     = "menu"
	pageLogin    = "login"
	pageRegister = "register"
)

// authFlowModel switches between the menu, login and register pages and
// stops the program once a [LoginResult] without error arrives.
type authFlowModel struct {
	pages   map[string]tea.Model
	current tea.Model

	session  models.Session
	quitting bool

	buildInfo     models.AppBuildInfo
	showBuildInfo bool
}

func newAuthFlowModel(pages map[string]tea.Model, start string, buildInfo models.AppBuildInfo) authFlowModel {
	return authFlowModel{
		pages:     pages,
		current:   pages[start],
		buildInfo: buildInfo,
	}
}

func (a authFlowModel) Init() tea.Cmd {
	if a.current == nil {
		return nil
	}
	return a.current.Init()
}

func (a authFlowModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			a.quitting = true
			return a, tea.Quit
		}
		if a.showBuildInfo {
			if key.Matches(msg, keys.esc, keys.buildInfo) {
				a.showBuildInfo = false
			}
			return a, nil
		}
		if key.Matches(msg, keys.buildInfo) && a.onMenu() {
			a.showBuildInfo = true
			return a, nil
		}

	case NavigateTo:
		next, ok := a.pages[msg.Page]
		if !ok {
			return a, nil
		}
		a.current = next
		if msg.Payload != nil {
			payload := msg.Payload
			return a, func() tea.Msg { return payload }
		}
		return a, a.current.Init()

	case LoginResult:
		if msg.Err == nil {
			a.session = msg.Session
			return a, tea.Quit
		}
	}

	if a.current == nil {
		return a, nil
	}

	var cmd tea.Cmd
	a.current, cmd = a.current.Update(msg)
	return a, cmd
}

func (a authFlowModel) View() string {
	switch {
	case a.showBuildInfo:
		return renderBuildInfoWindow(a.buildInfo, "")
	case a.current == nil:
		return renderPage(appTitle, "", "")
	default:
		return a.current.View()
	}
}

func (a authFlowModel) onMenu() bool {
	_, ok := a.current.(*menuModel)
	return ok
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-fleed/internal/service"
	"github.com/MKhiriev/go-fleed/models"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const statusTTL = 3 * time.Second

// mainLoopModel runs the screens of a logged-in user. It owns the screen
// stack, the notification badge and the overlays.
type mainLoopModel struct {
	ctx      context.Context
	services *service.ClientServices
	session  models.Session
	send     func(tea.Msg)

	stack  []screen
	unread int

	status    string
	statusSeq int
	errMsg    string
	confirm   *confirmModel

	showBuildInfo bool
	serverVersion string

	logout bool
}

func newMainLoopModel(ctx context.Context, services *service.ClientServices, session models.Session, send func(tea.Msg)) (mainLoopModel, error) {
	env := screenEnv{services: services, session: session, send: send}
	home, err := newPostListScreen(ctx, env, homeList, 0)
	if err != nil {
		return mainLoopModel{}, fmt.Errorf("open home feed: %w", err)
	}

	return mainLoopModel{
		ctx:      ctx,
		services: services,
		session:  session,
		send:     send,
		stack:    []screen{home},
	}, nil
}

func (m mainLoopModel) Init() tea.Cmd {
	return tea.Batch(m.top().Init(), m.cmdWatchNotifications())
}

func (m mainLoopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case pushScreenMsg:
		m.stack = append(m.stack, msg.screen)
		return m, msg.screen.Init()
	case popScreenMsg:
		if len(m.stack) > 1 {
			m.top().close()
			m.stack = m.stack[:len(m.stack)-1]
		}
		return m, nil
	case badgeChangedMsg:
		m.unread = m.services.NotificationService.Unread()
		return m, nil
	case statusMsg:
		m.status = msg.text
		m.statusSeq++
		seq := m.statusSeq
		return m, tea.Tick(statusTTL, func(time.Time) tea.Msg { return clearStatusMsg{seq: seq} })
	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil
	case errorMsg:
		if msg.err != nil {
			m.errMsg = userMessage(msg.err)
		}
		return m, nil
	case confirmMsg:
		m.confirm = &confirmModel{message: msg.prompt, onYes: msg.onYes}
		return m, nil
	case serverVersionMsg:
		if msg.err != nil {
			m.serverVersion = userMessage(msg.err)
		} else {
			m.serverVersion = msg.version
		}
		return m, nil
	case logoutMsg:
		m.logout = true
		return m, tea.Quit
	case notificationsLoadedMsg:
		m.unread = m.services.NotificationService.Unread()
	}

	return m.forward(msg)
}

func (m mainLoopModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.errMsg != "" {
		if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) {
			m.errMsg = ""
		}
		return m, nil
	}

	if m.confirm != nil {
		switch {
		case key.Matches(msg, keys.yes):
			cmd := m.confirm.onYes
			m.confirm = nil
			return m, cmd
		case key.Matches(msg, keys.no):
			m.confirm = nil
		}
		return m, nil
	}

	if m.showBuildInfo {
		if key.Matches(msg, keys.esc) || key.Matches(msg, keys.buildInfo) {
			m.showBuildInfo = false
		}
		return m, nil
	}

	if !m.top().typing() {
		switch {
		case key.Matches(msg, keys.quit):
			return m, tea.Quit
		case key.Matches(msg, keys.buildInfo):
			m.showBuildInfo = true
			return m, m.cmdServerVersion()
		}
	}

	return m.forward(msg)
}

// forward hands msg to the top screen.
func (m mainLoopModel) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.top().Update(msg)
	m.stack[len(m.stack)-1] = next
	return m, cmd
}

func (m mainLoopModel) top() screen {
	return m.stack[len(m.stack)-1]
}

// closeAll releases every screen of the stack.
func (m mainLoopModel) closeAll() {
	for _, s := range m.stack {
		s.close()
	}
}

func (m mainLoopModel) View() string {
	switch {
	case m.errMsg != "":
		return errorOverlayModel{message: m.errMsg}.View()
	case m.confirm != nil:
		return m.confirm.View()
	case m.showBuildInfo:
		return renderBuildInfoWindow(m.services.InfoService.BuildInfo(), m.serverVersion)
	}

	var b strings.Builder
	b.WriteString(helpStyle.Render(authorName(m.session.Summary())))
	if home, ok := m.top().(*postListScreen); ok && home.kind == homeList && m.unread > 0 {
		b.WriteString("  ")
		b.WriteString(badgeStyle.Render(fmt.Sprintf("уведомления: %d", m.unread)))
	}
	b.WriteString("\n\n")
	b.WriteString(m.top().View())

	if m.status != "" {
		b.WriteString("\n\n  ")
		b.WriteString(statusStyle.Render(m.status))
	}

	return b.String()
}

func (m mainLoopModel) cmdWatchNotifications() tea.Cmd {
	notifications, ctx, send := m.services.NotificationService, m.ctx, m.send
	return func() tea.Msg {
		if err := notifications.Watch(ctx, func() { send(badgeChangedMsg{}) }); err != nil {
			return statusMsg{text: "Уведомления недоступны: " + userMessage(err)}
		}
		return nil
	}
}

func (m mainLoopModel) cmdServerVersion() tea.Cmd {
	info, ctx := m.services.InfoService, m.ctx
	return func() tea.Msg {
		version, err := info.ServerVersion(ctx)
		return serverVersionMsg{version: version, err: err}
	}
}

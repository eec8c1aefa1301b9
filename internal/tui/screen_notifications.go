// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-fleed/models"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// notificationsScreen lists the latest notifications. Opening it resets the
// unread badge.
type notificationsScreen struct {
	ctx context.Context
	env screenEnv

	items   []models.Notification
	idx     int
	loading bool
	errMsg  string
}

func newNotificationsScreen(ctx context.Context, env screenEnv) *notificationsScreen {
	return &notificationsScreen{ctx: ctx, env: env, loading: true}
}

func (s *notificationsScreen) Init() tea.Cmd {
	notifications, ctx := s.env.services.NotificationService, s.ctx
	return func() tea.Msg {
		items, err := notifications.Open(ctx)
		return notificationsLoadedMsg{source: s, notifications: items, err: err}
	}
}

func (s *notificationsScreen) typing() bool { return false }

func (s *notificationsScreen) close() {}

func (s *notificationsScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case notificationsLoadedMsg:
		if msg.source != s {
			return s, nil
		}
		s.loading = false
		s.errMsg = userMessage(msg.err)
		s.items = msg.notifications
		s.idx = clampIndex(s.idx, len(s.items))
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.esc):
			return s, popCmd
		case key.Matches(msg, keys.up):
			if s.idx > 0 {
				s.idx--
			}
		case key.Matches(msg, keys.down):
			if s.idx < len(s.items)-1 {
				s.idx++
			}
		case key.Matches(msg, keys.refresh):
			s.loading = true
			return s, s.Init()
		case key.Matches(msg, keys.enter):
			if len(s.items) == 0 {
				return s, nil
			}
			postID, ok := notificationPostID(s.items[s.idx])
			if !ok {
				return s, statusCmd("Уведомление не относится к посту")
			}
			return s, openDetailCmd(s.ctx, s.env, postID)
		}
	}

	return s, nil
}

func (s *notificationsScreen) View() string {
	var b strings.Builder

	from, to := listWindow(s.idx, len(s.items), listRows)
	for i := from; i < to; i++ {
		n := s.items[i]
		mark := " "
		if !n.IsRead {
			mark = "•"
		}
		row := fmt.Sprintf("%s %s %s │ %s", cursorMark(i == s.idx), mark, formatTime(n.CreatedAt), fitText(n.Title, previewWidth))
		if i == s.idx {
			row = selectedStyle.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}

	switch {
	case s.loading:
		b.WriteString("Загрузка...\n")
	case len(s.items) == 0:
		b.WriteString("Уведомлений нет\n")
	}
	writeFooter(&b, "", s.errMsg)

	return renderPage("УВЕДОМЛЕНИЯ", strings.TrimRight(b.String(), "\n"), "↑/↓: навигация │ enter: открыть пост │ r: обновить │ esc: назад")
}

// notificationPostID extracts the post a notification refers to.
func notificationPostID(n models.Notification) (int64, bool) {
	var data models.NotificationData
	if err := json.Unmarshal([]byte(n.Data), &data); err != nil || data.PostID == 0 {
		return 0, false
	}
	return data.PostID, true
}

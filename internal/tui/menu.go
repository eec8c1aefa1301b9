// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const appTitle = "GO-FLEED"

type menuEntry struct {
	title string
	page  string
}

// menuModel is the start page of the login flow.
type menuModel struct {
	entries []menuEntry
	idx     int
}

func newMenuModel() *menuModel {
	return &menuModel{
		entries: []menuEntry{
			{title: "Войти", page: pageLogin},
			{title: "Создать аккаунт", page: pageRegister},
		},
	}
}

func (m *menuModel) Init() tea.Cmd { return nil }

func (m *menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		m.idx = clampIndex(m.idx-1, len(m.entries))
	case key.Matches(keyMsg, keys.down):
		m.idx = clampIndex(m.idx+1, len(m.entries))
	case key.Matches(keyMsg, keys.enter):
		page := m.entries[m.idx].page
		return m, func() tea.Msg { return NavigateTo{Page: page} }
	}

	return m, nil
}

func (m *menuModel) View() string {
	var b strings.Builder
	b.WriteString("Лента постов, видео и комментариев в терминале.\n\n")
	for i, entry := range m.entries {
		line := cursorMark(i == m.idx) + " " + entry.title
		if i == m.idx {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return renderPage(appTitle, strings.TrimRight(b.String(), "\n"), "enter: выбрать │ ↑/↓: навигация │ b: версия │ ctrl+c: выход")
}

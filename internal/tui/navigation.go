// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-fleed/internal/service"
	"github.com/MKhiriev/go-fleed/models"
	tea "github.com/charmbracelet/bubbletea"
)

// screen is a page of the main loop. Screens are stacked; only the top one
// receives key presses.
type screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (screen, tea.Cmd)
	View() string

	// typing reports whether key presses go to a text input, which disables
	// the global hotkeys.
	typing() bool

	// close releases the list the screen owns.
	close()
}

// screenEnv is what every screen needs to open other screens.
type screenEnv struct {
	services *service.ClientServices
	session  models.Session
	send     func(tea.Msg)
}

func popCmd() tea.Msg {
	return popScreenMsg{}
}

func pushCmd(s screen) tea.Cmd {
	return func() tea.Msg { return pushScreenMsg{screen: s} }
}

func statusCmd(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}

func errorCmd(err error) tea.Cmd {
	return func() tea.Msg { return errorMsg{err: err} }
}

func confirmCmd(prompt string, onYes tea.Cmd) tea.Cmd {
	return func() tea.Msg { return confirmMsg{prompt: prompt, onYes: onYes} }
}

func openPostListCmd(ctx context.Context, env screenEnv, kind postListKind, userID int64) tea.Cmd {
	return func() tea.Msg {
		s, err := newPostListScreen(ctx, env, kind, userID)
		if err != nil {
			return errorMsg{err: err}
		}
		return pushScreenMsg{screen: s}
	}
}

func openDetailCmd(ctx context.Context, env screenEnv, postID int64) tea.Cmd {
	return func() tea.Msg {
		s, err := newDetailScreen(ctx, env, postID)
		if err != nil {
			return errorMsg{err: err}
		}
		return pushScreenMsg{screen: s}
	}
}

func shareCmd(posts service.ClientPostService, post models.Post) tea.Cmd {
	return func() tea.Msg {
		if _, err := posts.SharePost(post); err != nil {
			return errorMsg{err: err}
		}
		return statusMsg{text: "Пост скопирован в буфер обмена"}
	}
}

// programSender delivers messages from push channel listeners to the running
// program. Messages sent before the program is attached or after it is
// detached are dropped.
type programSender struct {
	mu      sync.Mutex
	program *tea.Program
}

func (p *programSender) attach(program *tea.Program) {
	p.mu.Lock()
	p.program = program
	p.mu.Unlock()
}

func (p *programSender) detach() {
	p.attach(nil)
}

// send never blocks the caller.
func (p *programSender) send(msg tea.Msg) {
	p.mu.Lock()
	program := p.program
	p.mu.Unlock()

	if program != nil {
		go program.Send(msg)
	}
}

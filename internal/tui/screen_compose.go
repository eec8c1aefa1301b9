// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-fleed/internal/service"
	"github.com/MKhiriev/go-fleed/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	composeBody = iota
	composeFile
)

// composeScreen creates a post or edits an own one. The media file is given
// as a local path and uploaded on save.
type composeScreen struct {
	ctx   context.Context
	posts service.ClientPostService

	post   models.Post
	body   textarea.Model
	file   textinput.Model
	focus  int
	saving bool
	errMsg string
}

func newComposeScreen(ctx context.Context, env screenEnv, post models.Post) *composeScreen {
	body := textarea.New()
	body.Placeholder = "Что нового?"
	body.SetWidth(previewWidth)
	body.SetHeight(6)
	body.CharLimit = 5000
	body.SetValue(post.Body)
	body.Focus()

	file := textinput.New()
	file.Placeholder = "путь к фото или видео (необязательно)"
	file.Width = previewWidth

	return &composeScreen{
		ctx:   ctx,
		posts: env.services.PostService,
		post:  post,
		body:  body,
		file:  file,
	}
}

func (s *composeScreen) Init() tea.Cmd {
	return textarea.Blink
}

func (s *composeScreen) typing() bool { return true }

func (s *composeScreen) close() {}

func (s *composeScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	if saved, ok := msg.(postSavedMsg); ok {
		if saved.source != s {
			return s, nil
		}
		s.saving = false
		if saved.err != nil {
			s.errMsg = userMessage(saved.err)
			return s, nil
		}
		return s, tea.Sequence(popCmd, statusCmd("Пост сохранён"))
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			return s, popCmd
		case key.Matches(keyMsg, keys.tab), key.Matches(keyMsg, keys.backtab):
			s.toggleFocus()
			return s, nil
		case key.Matches(keyMsg, keys.save):
			if s.saving {
				return s, nil
			}
			s.errMsg = ""
			s.saving = true
			return s, s.cmdSave()
		}
	}

	var cmd tea.Cmd
	if s.focus == composeBody {
		s.body, cmd = s.body.Update(msg)
	} else {
		s.file, cmd = s.file.Update(msg)
	}
	return s, cmd
}

func (s *composeScreen) toggleFocus() {
	if s.focus == composeBody {
		s.focus = composeFile
		s.body.Blur()
		s.file.Focus()
		return
	}
	s.focus = composeBody
	s.file.Blur()
	s.body.Focus()
}

func (s *composeScreen) View() string {
	var b strings.Builder
	b.WriteString("Текст (HTML допускается)\n")
	b.WriteString(s.body.View())
	b.WriteString("\n\nФайл\n[")
	b.WriteString(s.file.View())
	b.WriteString("]\n")
	if s.post.File != "" {
		b.WriteString(helpStyle.Render("текущий файл: " + s.post.File))
		b.WriteString("\n")
	}

	if s.saving {
		b.WriteString("\n[Сохранение...]\n")
	}
	writeFooter(&b, "", s.errMsg)

	title := "НОВЫЙ ПОСТ"
	if s.post.ID != 0 {
		title = "ИЗМЕНЕНИЕ ПОСТА"
	}
	return renderPage(title, strings.TrimRight(b.String(), "\n"), "ctrl+s: сохранить │ tab: след. поле │ esc: отмена")
}

func (s *composeScreen) cmdSave() tea.Cmd {
	posts, ctx := s.posts, s.ctx
	upsert := models.PostUpsert{
		ID:   s.post.ID,
		Body: strings.TrimSpace(s.body.Value()),
		File: s.post.File,
	}
	localFile := strings.TrimSpace(s.file.Value())

	return func() tea.Msg {
		post, err := posts.SavePost(ctx, upsert, localFile)
		return postSavedMsg{source: s, post: post, err: err}
	}
}

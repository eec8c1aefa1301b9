// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-fleed/internal/service"
	"github.com/MKhiriev/go-fleed/internal/utils"
	"github.com/MKhiriev/go-fleed/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var postBodyStyle = lipgloss.NewStyle().Width(previewWidth + 10)

// detailScreen shows a post with its comment list and the comment input.
type detailScreen struct {
	ctx      context.Context
	services *service.ClientServices
	session  models.Session
	send     func(tea.Msg)

	feed   *service.CommentFeed
	idx    int
	errMsg string

	input      textinput.Model
	writing    bool
	submitting bool
}

func newDetailScreen(ctx context.Context, env screenEnv, postID int64) (*detailScreen, error) {
	comments, err := env.services.FeedService.OpenComments(postID)
	if err != nil {
		return nil, err
	}

	input := textinput.New()
	input.Placeholder = "комментарий"
	input.CharLimit = 1000
	input.Width = previewWidth

	return &detailScreen{
		ctx:      ctx,
		services: env.services,
		session:  env.session,
		send:     env.send,
		feed:     comments,
		input:    input,
	}, nil
}

func (s *detailScreen) Init() tea.Cmd {
	return tea.Batch(s.cmdFetch(), s.cmdSubscribe())
}

func (s *detailScreen) typing() bool { return s.writing }

func (s *detailScreen) close() {
	s.feed.Close()
}

func (s *detailScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case fetchedMsg:
		if msg.source == s {
			s.errMsg = userMessage(msg.err)
		}
		return s, nil
	case subscribedMsg:
		if msg.source == s && msg.err != nil {
			s.errMsg = userMessage(msg.err)
		}
		return s, nil
	case commentSavedMsg:
		if msg.source != s {
			return s, nil
		}
		s.submitting = false
		if msg.err != nil {
			return s, errorCmd(msg.err)
		}
		s.stopWriting()
		s.idx = 0
		return s, statusCmd("Комментарий добавлен")
	case listChangedMsg:
		s.idx = clampIndex(s.idx, len(s.feed.Items()))
		return s, nil
	case tea.KeyMsg:
		if s.writing {
			return s.handleInput(msg)
		}
		return s.handleKey(msg)
	}

	if s.writing {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *detailScreen) handleInput(msg tea.KeyMsg) (screen, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc):
		s.stopWriting()
		return s, nil
	case key.Matches(msg, keys.enter):
		if s.submitting {
			return s, nil
		}
		if strings.TrimSpace(s.input.Value()) == "" {
			return s, statusCmd("Комментарий пуст")
		}
		s.submitting = true
		return s, s.cmdAddComment(s.input.Value())
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *detailScreen) handleKey(msg tea.KeyMsg) (screen, tea.Cmd) {
	snapshot := s.feed.Snapshot()
	s.idx = clampIndex(s.idx, len(snapshot.Items))
	post := s.feed.Post()

	switch {
	case key.Matches(msg, keys.esc):
		return s, popCmd
	case key.Matches(msg, keys.up):
		if s.idx > 0 {
			s.idx--
		}
	case key.Matches(msg, keys.down):
		if s.idx < len(snapshot.Items)-1 {
			s.idx++
		}
		if s.idx >= len(snapshot.Items)-1 && snapshot.HasMore && !snapshot.Fetching {
			return s, s.cmdFetch()
		}
	case key.Matches(msg, keys.comment):
		s.writing = true
		s.input.Focus()
		return s, textinput.Blink
	case key.Matches(msg, keys.refresh):
		s.feed.Reset(s.feed.Scope())
		s.idx = 0
		s.errMsg = ""
		return s, s.cmdFetch()
	case key.Matches(msg, keys.share):
		if post.ID == 0 {
			return s, nil
		}
		return s, shareCmd(s.services.PostService, post)
	case key.Matches(msg, keys.author):
		if post.ID == 0 {
			return s, nil
		}
		return s, openPostListCmd(s.ctx, s.env(), profileList, post.UserID)
	case key.Matches(msg, keys.delete):
		if len(snapshot.Items) == 0 {
			return s, nil
		}
		comment := snapshot.Items[s.idx]
		if comment.UserID != s.session.UserID && post.UserID != s.session.UserID {
			return s, statusCmd("Можно удалить только свой комментарий или комментарий к своему посту")
		}
		return s, confirmCmd(fitText(comment.Text, 30), s.cmdDeleteComment(comment.ID))
	}

	return s, nil
}

func (s *detailScreen) stopWriting() {
	s.writing = false
	s.submitting = false
	s.input.Blur()
	s.input.SetValue("")
}

func (s *detailScreen) env() screenEnv {
	return screenEnv{services: s.services, session: s.session, send: s.send}
}

func (s *detailScreen) View() string {
	snapshot := s.feed.Snapshot()
	post := s.feed.Post()
	idx := clampIndex(s.idx, len(snapshot.Items))

	var b strings.Builder
	if post.ID == 0 {
		b.WriteString("Загрузка поста...\n")
	} else {
		b.WriteString(authorStyle.Render(authorName(post.Author)))
		b.WriteString(" │ ")
		b.WriteString(formatTime(post.CreatedAt))
		b.WriteString("\n\n")
		if label := mediaLabel(post); label != "" {
			b.WriteString(label)
			b.WriteString(post.File)
			b.WriteString("\n")
		}
		b.WriteString(postBodyStyle.Render(strings.TrimSpace(utils.StripHTMLTags(post.Body))))
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("♥ %d │ ✉ %d\n", len(post.Likes), len(snapshot.Items)))
	}
	b.WriteString(uiDivider)
	b.WriteString("\n")

	from, to := listWindow(idx, len(snapshot.Items), listRows)
	for i := from; i < to; i++ {
		comment := snapshot.Items[i]
		row := fmt.Sprintf("%s %-14s │ %s │ %s",
			cursorMark(i == idx),
			fitText(authorName(comment.Author), 14),
			formatTime(comment.CreatedAt),
			fitText(comment.Text, previewWidth),
		)
		if i == idx {
			row = selectedStyle.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}

	switch {
	case snapshot.Fetching:
		b.WriteString("\nЗагрузка...\n")
	case len(snapshot.Items) == 0:
		b.WriteString("Комментариев нет\n")
	}

	if s.writing {
		b.WriteString("\n[")
		b.WriteString(s.input.View())
		b.WriteString("]\n")
	}
	writeFooter(&b, "", s.errMsg)

	hotKeys := "↑/↓: навигация │ c: комментировать │ d: удалить │ s: поделиться │ a: автор │ r: обновить │ esc: назад"
	if s.writing {
		hotKeys = "enter: отправить │ esc: отмена"
	}
	return renderPage("ПОСТ", strings.TrimRight(b.String(), "\n"), hotKeys)
}

func (s *detailScreen) cmdFetch() tea.Cmd {
	comments, ctx := s.feed, s.ctx
	return func() tea.Msg {
		_, err := comments.RequestMore(ctx)
		return fetchedMsg{source: s, err: err}
	}
}

func (s *detailScreen) cmdSubscribe() tea.Cmd {
	comments, ctx, send := s.feed, s.ctx, s.send
	return func() tea.Msg {
		err := comments.Subscribe(ctx, func() { send(listChangedMsg{}) })
		return subscribedMsg{source: s, err: err}
	}
}

func (s *detailScreen) cmdAddComment(text string) tea.Cmd {
	comments, ctx := s.feed, s.ctx
	return func() tea.Msg {
		_, err := comments.AddComment(ctx, text)
		return commentSavedMsg{source: s, err: err}
	}
}

func (s *detailScreen) cmdDeleteComment(commentID int64) tea.Cmd {
	comments, ctx := s.feed, s.ctx
	return func() tea.Msg {
		if err := comments.DeleteComment(ctx, commentID); err != nil {
			return errorMsg{err: err}
		}
		return statusMsg{text: "Комментарий удалён"}
	}
}

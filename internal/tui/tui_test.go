// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/MKhiriev/go-fleed/internal/service"
	"github.com/MKhiriev/go-fleed/internal/store"
	"github.com/MKhiriev/go-fleed/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuth struct {
	session models.Session
	err     error
	got     models.User
}

func (f *fakeAuth) Register(_ context.Context, user models.User) (models.Session, error) {
	f.got = user
	return f.session, f.err
}

func (f *fakeAuth) Login(_ context.Context, user models.User) (models.Session, error) {
	f.got = user
	return f.session, f.err
}

func (f *fakeAuth) Restore(context.Context) (models.Session, error) {
	return models.Session{}, service.ErrNotLoggedIn
}

func (f *fakeAuth) Logout(context.Context) error { return nil }

func (f *fakeAuth) Session() (models.Session, bool) { return f.session, f.session.UserID != 0 }

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(m tea.Model, text string) tea.Model {
	for _, r := range text {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"server unavailable", service.ErrServerUnavailable, "Отсутствует сеть или Сервер недоступен"},
		{"wrong password", fmt.Errorf("login on server: %w", service.ErrWrongPassword), "Неверный email или пароль"},
		{"email taken", fmt.Errorf("register: %w", store.ErrEmailAlreadyExists), "Пользователь с таким email уже существует"},
		{"rejected with cause", fmt.Errorf("%w: %w", service.ErrMutationRejected, service.ErrForbidden), "Недостаточно прав"},
		{"fetch failed offline", fmt.Errorf("%w: %w", service.ErrFetchFailed, service.ErrServerUnavailable), "Отсутствует сеть или Сервер недоступен"},
		{"fetch failed", fmt.Errorf("%w: boom", service.ErrFetchFailed), "Не удалось загрузить данные"},
		{"dial error", errors.New("dial tcp 127.0.0.1:8080: connect: connection refused"), "Отсутствует сеть или Сервер недоступен"},
		{"unknown", errors.New("boom"), "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, userMessage(tt.err))
		})
	}
}

func TestListWindow(t *testing.T) {
	tests := []struct {
		idx, total, rows int
		from, to         int
	}{
		{0, 3, 8, 0, 3},
		{0, 20, 8, 0, 8},
		{10, 20, 8, 6, 14},
		{19, 20, 8, 12, 20},
	}

	for _, tt := range tests {
		from, to := listWindow(tt.idx, tt.total, tt.rows)
		assert.Equal(t, tt.from, from, "from for idx %d", tt.idx)
		assert.Equal(t, tt.to, to, "to for idx %d", tt.idx)
		assert.True(t, tt.idx >= from && tt.idx < to)
	}
}

func TestClampIndex(t *testing.T) {
	assert.Equal(t, 0, clampIndex(5, 0))
	assert.Equal(t, 2, clampIndex(5, 3))
	assert.Equal(t, 0, clampIndex(-1, 3))
	assert.Equal(t, 1, clampIndex(1, 3))
}

func TestTextHelpers(t *testing.T) {
	assert.Equal(t, "hello world", plainText("<p>hello</p>\n<b>world</b>"))
	assert.Equal(t, "привет", fitText("привет", 10))
	assert.Equal(t, "прив...", fitText("приветствую", 7))
	assert.Equal(t, "user#5", authorName(models.UserSummary{ID: 5}))
	assert.Equal(t, "[видео] ", mediaLabel(models.Post{File: "postVideos/1.mp4"}))
	assert.Equal(t, "", mediaLabel(models.Post{}))
}

func TestNotificationPostID(t *testing.T) {
	id, ok := notificationPostID(models.Notification{Data: `{"post_id":42,"comment_id":7}`})
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	_, ok = notificationPostID(models.Notification{Data: "not json"})
	assert.False(t, ok)
}

func TestMenu_Navigation(t *testing.T) {
	m := newMenuModel()

	_, cmd := m.Update(keyPress("enter"))
	require.NotNil(t, cmd)
	assert.Equal(t, NavigateTo{Page: "login"}, cmd())

	m.Update(keyPress("down"))
	_, cmd = m.Update(keyPress("enter"))
	require.NotNil(t, cmd)
	assert.Equal(t, NavigateTo{Page: "register"}, cmd())
}

func TestLoginModel_RequiresFields(t *testing.T) {
	m := NewLoginModel(context.Background(), &fakeAuth{})

	_, cmd := m.Update(keyPress("enter"))

	assert.Nil(t, cmd)
	assert.Equal(t, "Email и пароль обязательны", m.errMsg)
	assert.False(t, m.submitting)
}

func TestLoginModel_Submit(t *testing.T) {
	auth := &fakeAuth{session: models.Session{UserID: 3, Name: "Ann"}}
	m := NewLoginModel(context.Background(), auth)

	typeText(m, "ann@example.com")
	m.Update(keyPress("tab"))
	typeText(m, "secret")

	_, cmd := m.Update(keyPress("enter"))
	require.NotNil(t, cmd)
	assert.True(t, m.submitting)

	result, ok := cmd().(LoginResult)
	require.True(t, ok)
	assert.NoError(t, result.Err)
	assert.Equal(t, int64(3), result.Session.UserID)
	assert.Equal(t, models.User{Email: "ann@example.com", Password: "secret"}, auth.got)
}

func TestLoginModel_ShowsServerError(t *testing.T) {
	m := NewLoginModel(context.Background(), &fakeAuth{})
	m.submitting = true

	m.Update(LoginResult{Err: service.ErrWrongPassword})

	assert.False(t, m.submitting)
	assert.Equal(t, "Неверный email или пароль", m.errMsg)
}

func TestRegisterModel_Validation(t *testing.T) {
	tests := []struct {
		name   string
		fields []string
		want   string
	}{
		{"missing name", []string{"", "a@b.c", "secret1", "secret1"}, "Имя, email и пароль обязательны"},
		{"bad email", []string{"Ann", "ann", "secret1", "secret1"}, "Некорректный email"},
		{"short password", []string{"Ann", "a@b.c", "abc", "abc"}, "Пароль должен быть не короче 6 символов"},
		{"mismatch", []string{"Ann", "a@b.c", "secret1", "secret2"}, "Пароли не совпадают"},
		{"valid", []string{"Ann", "a@b.c", "secret1", "secret1"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewRegisterModel(context.Background(), &fakeAuth{})
			for i, v := range tt.fields {
				m.form.inputs[i].SetValue(v)
			}

			user, msg := m.collect()

			assert.Equal(t, tt.want, msg)
			if tt.want == "" {
				assert.Equal(t, models.User{Name: "Ann", Email: "a@b.c", Password: "secret1"}, user)
			}
		})
	}
}

func TestAuthFlow_FinishesOnLogin(t *testing.T) {
	root := newAuthFlowModel(map[string]tea.Model{"menu": newMenuModel()}, "menu", models.AppBuildInfo{})
	session := models.Session{UserID: 9}

	next, cmd := root.Update(LoginResult{Session: session})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Equal(t, session, next.(authFlowModel).session)
}

func TestAuthFlow_KeepsPageOnFailedLogin(t *testing.T) {
	login := NewLoginModel(context.Background(), &fakeAuth{})
	root := newAuthFlowModel(map[string]tea.Model{"login": login}, "login", models.AppBuildInfo{})

	next, _ := root.Update(LoginResult{Err: service.ErrServerUnavailable})

	assert.Zero(t, next.(authFlowModel).session.UserID)
	assert.Equal(t, "Отсутствует сеть или Сервер недоступен", login.errMsg)
}

func TestAuthFlow_NavigateAndQuit(t *testing.T) {
	login := NewLoginModel(context.Background(), &fakeAuth{})
	root := newAuthFlowModel(map[string]tea.Model{"menu": newMenuModel(), "login": login}, "menu", models.AppBuildInfo{})

	next, _ := root.Update(NavigateTo{Page: "login"})
	assert.Same(t, login, next.(authFlowModel).current)

	next, cmd := next.Update(keyPress("ctrl+c"))
	require.NotNil(t, cmd)
	assert.True(t, next.(authFlowModel).quitting)
}

func TestAuthFlow_BuildInfoOnMenu(t *testing.T) {
	root := newAuthFlowModel(map[string]tea.Model{"menu": newMenuModel()}, "menu", models.NewAppBuildInfo("1.2.3", "", ""))

	next, _ := root.Update(keyPress("b"))

	assert.Contains(t, next.View(), "1.2.3")
	assert.Contains(t, next.View(), "N/A")

	next, _ = next.Update(keyPress("esc"))
	assert.False(t, next.(authFlowModel).showBuildInfo)
}

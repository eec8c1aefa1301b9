// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-fleed/internal/service"
	"github.com/MKhiriev/go-fleed/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const minPasswordLength = 6

// RegisterModel is the Bubble Tea model for the registration screen. A
// successful registration logs the user in, so it ends with the same
// [LoginResult] as the login screen.
type RegisterModel struct {
	ctx  context.Context
	auth service.ClientAuthService

	form       form
	submitting bool
	errMsg     string
}

func NewRegisterModel(ctx context.Context, auth service.ClientAuthService) *RegisterModel {
	return &RegisterModel{
		ctx:  ctx,
		auth: auth,
		form: newForm(
			formField{label: "Имя", placeholder: "name", charLimit: 64},
			formField{label: "Email", placeholder: "email", charLimit: 254},
			formField{label: "Пароль", placeholder: "password", charLimit: 256, secret: true},
			formField{label: "Повтор", placeholder: "repeat password", charLimit: 256, secret: true},
		),
	}
}

func (m *RegisterModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *RegisterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(LoginResult); ok {
		m.submitting = false
		if result.Err != nil {
			m.errMsg = userMessage(result.Err)
		}
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.submitting = false
			m.errMsg = ""
			m.form.reset()
			return m, func() tea.Msg { return NavigateTo{Page: pageMenu} }
		case key.Matches(keyMsg, keys.tab):
			m.form.focusNext()
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.form.focusPrev()
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.submitting {
				return m, nil
			}

			user, errMsg := m.collect()
			if errMsg != "" {
				m.errMsg = errMsg
				return m, nil
			}

			m.errMsg = ""
			m.submitting = true
			return m, m.cmdRegister(user)
		}
	}

	return m, m.form.update(msg)
}

// collect validates the form and returns the user to register or the
// message to show.
func (m *RegisterModel) collect() (models.User, string) {
	name := strings.TrimSpace(m.form.value(0))
	email := strings.TrimSpace(m.form.value(1))
	pass := m.form.value(2)
	repeat := m.form.value(3)

	switch {
	case name == "" || email == "" || pass == "":
		return models.User{}, "Имя, email и пароль обязательны"
	case !strings.Contains(email, "@"):
		return models.User{}, "Некорректный email"
	case len([]rune(pass)) < minPasswordLength:
		return models.User{}, "Пароль должен быть не короче 6 символов"
	case pass != repeat:
		return models.User{}, "Пароли не совпадают"
	}

	return models.User{Name: name, Email: email, Password: pass}, ""
}

func (m *RegisterModel) View() string {
	var b strings.Builder
	b.WriteString(m.form.view())

	if m.submitting {
		b.WriteString("\n[Зарегистрироваться...]\n")
	} else {
		b.WriteString("\n[Зарегистрироваться]\n")
	}
	writeFooter(&b, "", m.errMsg)

	return renderPage("РЕГИСТРАЦИЯ", strings.TrimRight(b.String(), "\n"), "esc: назад │ tab: след. поле │ enter: подтвердить")
}

func (m *RegisterModel) cmdRegister(user models.User) tea.Cmd {
	ctx := m.ctx
	auth := m.auth

	return func() tea.Msg {
		session, err := auth.Register(ctx, user)
		return LoginResult{Session: session, Err: err}
	}
}

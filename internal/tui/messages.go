// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"github.com/MKhiriev/go-fleed/models"
	tea "github.com/charmbracelet/bubbletea"
)

// NavigateTo switches the page of the login flow. Payload, when set, is
// delivered to the new page instead of its Init command.
type NavigateTo struct {
	Page    string
	Payload tea.Msg
}

// LoginResult finishes the login flow when Err is nil.
type LoginResult struct {
	Session models.Session
	Err     error
}

// pushScreenMsg opens a screen on top of the current one.
type pushScreenMsg struct {
	screen screen
}

// popScreenMsg closes the current screen.
type popScreenMsg struct{}

// replaceScreenMsg closes the current screen and opens another in its place.
type replaceScreenMsg struct {
	screen screen
}

// listChangedMsg is sent by push channel listeners after a list changed.
type listChangedMsg struct{}

// badgeChangedMsg is sent after a notification arrived.
type badgeChangedMsg struct{}

type errorMsg struct {
	err error
}

type statusMsg struct {
	text string
}

// clearStatusMsg hides the status line unless a newer status replaced it.
type clearStatusMsg struct {
	seq int
}

// confirmMsg asks the user before running onYes.
type confirmMsg struct {
	prompt string
	onYes  tea.Cmd
}

type logoutMsg struct{}

type serverVersionMsg struct {
	version string
	err     error
}

// The messages below carry the screen that issued the command, so a screen
// ignores results of another one.

type fetchedMsg struct {
	source screen
	err    error
}

type subscribedMsg struct {
	source screen
	err    error
}

type profileLoadedMsg struct {
	source  screen
	profile models.Profile
	err     error
}

type likeToggledMsg struct {
	source screen
	liked  bool
	err    error
}

type followToggledMsg struct {
	source    screen
	following bool
	err       error
}

type commentSavedMsg struct {
	source screen
	err    error
}

type postSavedMsg struct {
	source screen
	post   models.Post
	err    error
}

type notificationsLoadedMsg struct {
	source        screen
	notifications []models.Notification
	err           error
}

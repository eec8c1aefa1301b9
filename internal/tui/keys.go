// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up            key.Binding
	down          key.Binding
	enter         key.Binding
	esc           key.Binding
	tab           key.Binding
	backtab       key.Binding
	quit          key.Binding
	save          key.Binding
	like          key.Binding
	delete        key.Binding
	share         key.Binding
	author        key.Binding
	newPost       key.Binding
	edit          key.Binding
	refresh       key.Binding
	videos        key.Binding
	myProfile     key.Binding
	notifications key.Binding
	follow        key.Binding
	comment       key.Binding
	buildInfo     key.Binding
	logout        key.Binding
	yes           key.Binding
	no            key.Binding
}

var keys = keyMap{
	up:            key.NewBinding(key.WithKeys("up", "k")),
	down:          key.NewBinding(key.WithKeys("down", "j")),
	enter:         key.NewBinding(key.WithKeys("enter")),
	esc:           key.NewBinding(key.WithKeys("esc")),
	tab:           key.NewBinding(key.WithKeys("tab")),
	backtab:       key.NewBinding(key.WithKeys("shift+tab")),
	quit:          key.NewBinding(key.WithKeys("q")),
	save:          key.NewBinding(key.WithKeys("ctrl+s")),
	like:          key.NewBinding(key.WithKeys("l")),
	delete:        key.NewBinding(key.WithKeys("d")),
	share:         key.NewBinding(key.WithKeys("s")),
	author:        key.NewBinding(key.WithKeys("a")),
	newPost:       key.NewBinding(key.WithKeys("n")),
	edit:          key.NewBinding(key.WithKeys("e")),
	refresh:       key.NewBinding(key.WithKeys("r")),
	videos:        key.NewBinding(key.WithKeys("v")),
	myProfile:     key.NewBinding(key.WithKeys("p")),
	notifications: key.NewBinding(key.WithKeys("i")),
	follow:        key.NewBinding(key.WithKeys("f")),
	comment:       key.NewBinding(key.WithKeys("c")),
	buildInfo:     key.NewBinding(key.WithKeys("b")),
	logout:        key.NewBinding(key.WithKeys("o")),
	yes:           key.NewBinding(key.WithKeys("y")),
	no:            key.NewBinding(key.WithKeys("n", "esc")),
}

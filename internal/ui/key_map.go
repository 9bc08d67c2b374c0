package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up       key.Binding
	down     key.Binding
	enter    key.Binding
	back     key.Binding
	feed     key.Binding
	create   key.Binding
	retry    key.Binding
	copy     key.Binding
	open     key.Binding
	download key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		feed:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "feed")),
		create:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "create")),
		retry:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry")),
		copy:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy link")),
		open:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open")),
		download: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "download")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter},
		{k.back, k.feed, k.create},
		{k.retry, k.copy, k.open},
		{k.download, k.quit},
	}
}

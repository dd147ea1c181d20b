package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the reorder view.
type keyMap struct {
	up     key.Binding
	down   key.Binding
	grab   key.Binding
	drop   key.Binding
	cancel key.Binding
	reload key.Binding
	quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		grab:   key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "grab")),
		drop:   key.NewBinding(key.WithKeys(" ", "space", "enter"), key.WithHelp("space/enter", "drop")),
		cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.grab, k.reload, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down},
		{k.grab, k.drop, k.cancel},
		{k.reload, k.quit},
	}
}

// grabbedHelp is shown while a row is held.
func (k keyMap) grabbedHelp() []key.Binding {
	return []key.Binding{k.up, k.down, k.drop, k.cancel}
}

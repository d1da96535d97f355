package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Start key.Binding
	Next  key.Binding
	Prev  key.Binding
	Share key.Binding
	Done  key.Binding
	Quit  key.Binding
}

// Wizard keys. Plain letters are left to the question inputs, except on the
// welcome and completion screens where nothing else listens.
var keys = keyMap{
	Start: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "start")),
	Next:  key.NewBinding(key.WithKeys("enter", "alt+down"), key.WithHelp("enter", "next")),
	Prev:  key.NewBinding(key.WithKeys("alt+up"), key.WithHelp("alt+↑", "back")),
	Share: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "share")),
	Done:  key.NewBinding(key.WithKeys("enter", "q"), key.WithHelp("q", "close")),
	Quit:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
}

package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Run            key.Binding
	ToggleTerminal key.Binding
	NextLesson     key.Binding
	PrevLesson     key.Binding
	ScrollUp       key.Binding
	ScrollDown     key.Binding
	SignOut        key.Binding
	Help           key.Binding
	Quit           key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Run:            key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "run")),
		ToggleTerminal: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "terminal")),
		NextLesson:     key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "next lesson")),
		PrevLesson:     key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "previous lesson")),
		ScrollUp:       key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll up")),
		ScrollDown:     key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll down")),
		SignOut:        key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "sign out")),
		Help:           key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "help")),
		Quit:           key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Run, k.ToggleTerminal, k.PrevLesson, k.NextLesson, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Run, k.ToggleTerminal, k.ScrollUp, k.ScrollDown},
		{k.PrevLesson, k.NextLesson, k.SignOut},
		{k.Help, k.Quit},
	}
}

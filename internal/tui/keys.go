package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Pause key.Binding
	Stop  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Pause: key.NewBinding(
			key.WithKeys("p", " "),
			key.WithHelp("p/space", "pause/resume"),
		),
		Stop: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "stop"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Stop}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

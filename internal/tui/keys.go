package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the dashboard key bindings
type KeyMap struct {
	Intervention key.Binding
	Segment      key.Binding
	NextSlider   key.Binding
	PrevSlider   key.Binding
	Decrease     key.Binding
	Increase     key.Binding
	Cumulation   key.Binding
	Help         key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the standard bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Intervention: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "next intervention")),
		Segment:      key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "next segment")),
		NextSlider:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next slider")),
		PrevSlider:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous slider")),
		Decrease:     key.NewBinding(key.WithKeys("left", "-"), key.WithHelp("←", "decrease")),
		Increase:     key.NewBinding(key.WithKeys("right", "+"), key.WithHelp("→", "increase")),
		Cumulation:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "toggle cumulation")),
		Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Intervention, k.Segment, k.NextSlider, k.Increase, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Intervention, k.Segment, k.Cumulation},
		{k.NextSlider, k.PrevSlider, k.Decrease, k.Increase},
		{k.Help, k.Quit},
	}
}

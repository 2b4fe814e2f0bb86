package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the viewer bindings.
type keyMap struct {
	Next      key.Binding
	Prev      key.Binding
	First     key.Binding
	Last      key.Binding
	NextFrame key.Binding
	PrevFrame key.Binding
	ScrollUp  key.Binding
	ScrollDn  key.Binding
	Menu      key.Binding
	Theta     key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next step"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev step"),
		),
		First: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "first step"),
		),
		Last: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "last step"),
		),
		NextFrame: key.NewBinding(
			key.WithKeys("tab", "]"),
			key.WithHelp("tab", "next branch"),
		),
		PrevFrame: key.NewBinding(
			key.WithKeys("shift+tab", "["),
			key.WithHelp("shift+tab", "prev branch"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll"),
		),
		ScrollDn: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll"),
		),
		Menu: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "protocols"),
		),
		Theta: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "teleport θ"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.NextFrame, k.Menu, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.First, k.Last},
		{k.NextFrame, k.PrevFrame, k.ScrollUp, k.ScrollDn},
		{k.Menu, k.Theta, k.Help, k.Quit},
	}
}

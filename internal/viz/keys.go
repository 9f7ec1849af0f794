package viz

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the live view.
type KeyMap struct {
	Start  key.Binding
	Pause  key.Binding
	Toggle key.Binding
	Reset  key.Binding
	Next   key.Binding
	Prev   key.Binding
	Inc    key.Binding
	Dec    key.Binding
	Edit   key.Binding
	Export key.Binding
	Floor  key.Binding
	Theme  key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Reset, k.Next, k.Edit, k.Export, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Pause, k.Toggle, k.Reset},
		{k.Next, k.Prev, k.Inc, k.Dec, k.Edit},
		{k.Export, k.Floor, k.Theme},
		{k.Help, k.Quit},
	}
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Start: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "start"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "start/pause"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "down", "j"),
			key.WithHelp("tab/↓", "next param"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up", "k"),
			key.WithHelp("S-tab/↑", "prev param"),
		),
		Inc: key.NewBinding(
			key.WithKeys("right", "l", "+", "="),
			key.WithHelp("→/+", "increase"),
		),
		Dec: key.NewBinding(
			key.WithKeys("left", "h", "-"),
			key.WithHelp("←/-", "decrease"),
		),
		Edit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "type value"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export plots"),
		),
		Floor: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "floor mode"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "theme"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

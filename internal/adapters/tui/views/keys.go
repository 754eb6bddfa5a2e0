package views

import "github.com/charmbracelet/bubbles/key"

// MapKeyMap defines key bindings for the map view
type MapKeyMap struct {
	Next     key.Binding
	Prev     key.Binding
	Open     key.Binding
	Edit     key.Binding
	Copy     key.Binding
	Mode     key.Binding
	Modes    key.Binding
	ZoomIn   key.Binding
	ZoomOut  key.Binding
	PanLeft  key.Binding
	PanRight key.Binding
	PanUp    key.Binding
	PanDown  key.Binding
	Rotate   key.Binding
	Reset    key.Binding
	Minimap  key.Binding
	Panel    key.Binding
	Search   key.Binding
	EditSeed key.Binding
	Dismiss  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var MapKeys = MapKeyMap{
	Next: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "next node"),
	),
	Prev: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "prev node"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open article"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit article"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy link"),
	),
	Mode: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next view"),
	),
	Modes: key.NewBinding(
		key.WithKeys("1", "2", "3", "4"),
		key.WithHelp("1-4", "view mode"),
	),
	ZoomIn: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "zoom in"),
	),
	ZoomOut: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "zoom out"),
	),
	PanLeft: key.NewBinding(
		key.WithKeys("H", "left"),
		key.WithHelp("H/←", "pan left"),
	),
	PanRight: key.NewBinding(
		key.WithKeys("L", "right"),
		key.WithHelp("L/→", "pan right"),
	),
	PanUp: key.NewBinding(
		key.WithKeys("K"),
		key.WithHelp("K", "pan up"),
	),
	PanDown: key.NewBinding(
		key.WithKeys("J"),
		key.WithHelp("J", "pan down"),
	),
	Rotate: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "auto-rotate"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset view"),
	),
	Minimap: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "minimap"),
	),
	Panel: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "filters"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	EditSeed: key.NewBinding(
		key.WithKeys("E"),
		key.WithHelp("E", "edit seed file"),
	),
	Dismiss: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
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

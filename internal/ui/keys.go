package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding

	// Map
	Locate      key.Binding
	StylePicker key.Binding
	PanUp       key.Binding
	PanDown     key.Binding
	PanLeft     key.Binding
	PanRight    key.Binding
	ZoomIn      key.Binding
	ZoomOut     key.Binding
	NextMarker  key.Binding

	// Dialogs and pickers
	Up      key.Binding
	Down    key.Binding
	Confirm key.Binding
	Close   key.Binding

	// Consent prompt
	Allow      key.Binding
	Deny       key.Binding
	DenyAlways key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),

		// Map
		Locate: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "My location"),
		),
		StylePicker: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Map style"),
		),
		PanUp: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "Pan north"),
		),
		PanDown: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "Pan south"),
		),
		PanLeft: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "Pan west"),
		),
		PanRight: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "Pan east"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "Zoom in"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "Zoom out"),
		),
		NextMarker: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "Next marker"),
		),

		// Dialogs and pickers
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "Previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "Next"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter", "y"),
			key.WithHelp("enter", "Confirm"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc", "n"),
			key.WithHelp("esc", "Close"),
		),

		// Consent prompt
		Allow: key.NewBinding(
			key.WithKeys("a", "enter"),
			key.WithHelp("a", "Allow"),
		),
		Deny: key.NewBinding(
			key.WithKeys("d", "esc"),
			key.WithHelp("d", "Deny"),
		),
		DenyAlways: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "Don't ask again"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Locate, k.StylePicker, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PanUp, k.PanDown, k.PanLeft, k.PanRight, k.ZoomIn, k.ZoomOut},
		{k.Locate, k.NextMarker, k.StylePicker},
		{k.CycleTheme, k.Help, k.Quit},
	}
}

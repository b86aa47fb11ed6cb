package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Pan          key.Binding
	ZoomIn       key.Binding
	ZoomOut      key.Binding
	OuterLooser  key.Binding
	OuterTighter key.Binding
	HoleLooser   key.Binding
	HoleTighter  key.Binding
	Raw          key.Binding
	Fill         key.Binding
	Layers       key.Binding
	Sidebar      key.Binding
	Focus        key.Binding
	Paste        key.Binding
	Stats        key.Binding
	Inspect      key.Binding
	Help         key.Binding
	Quit         key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Pan:          key.NewBinding(key.WithKeys("up", "down", "left", "right"), key.WithHelp("↑↓←→", "pan")),
		ZoomIn:       key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut:      key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "zoom out")),
		OuterLooser:  key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "outer ε+")),
		OuterTighter: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "outer ε-")),
		HoleLooser:   key.NewBinding(key.WithKeys("}"), key.WithHelp("}", "hole ε+")),
		HoleTighter:  key.NewBinding(key.WithKeys("{"), key.WithHelp("{", "hole ε-")),
		Raw:          key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "raw/simplified")),
		Fill:         key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fill")),
		Layers:       key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "layers")),
		Sidebar:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "sidebar")),
		Focus:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "focus")),
		Paste:        key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "paste wkt")),
		Stats:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "stats")),
		Inspect:      key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "inspect")),
		Help:         key.NewBinding(key.WithKeys("h", "?"), key.WithHelp("h", "help")),
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pan, k.ZoomIn, k.ZoomOut, k.OuterTighter, k.OuterLooser, k.Raw, k.Stats, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pan, k.ZoomIn, k.ZoomOut},
		{k.OuterTighter, k.OuterLooser, k.HoleTighter, k.HoleLooser, k.Raw},
		{k.Layers, k.Fill, k.Sidebar, k.Focus},
		{k.Paste, k.Stats, k.Inspect, k.Help, k.Quit},
	}
}

package tui

import (
	"fmt"

	list "github.com/charmbracelet/bubbles/list"
)

type layerItem struct {
	name   string
	detail string
}

func (it layerItem) Title() string       { return it.name }
func (it layerItem) Description() string { return it.detail }
func (it layerItem) FilterValue() string { return it.name }

// refreshLayers rebuilds the sidebar from the current rings.
func (m *Model) refreshLayers() {
	var items []list.Item
	for _, l := range m.allLayers() {
		detail := fmt.Sprintf("%d → %d pts  ε=%.2f", len(l.Raw), len(l.Simplified), l.Epsilon)
		if !l.Simplifies() {
			detail = fmt.Sprintf("%d pts  not simplified", len(l.Raw))
		}
		items = append(items, layerItem{name: l.Name, detail: detail})
	}
	if len(m.labels) > 0 {
		items = append(items, layerItem{name: "labels", detail: fmt.Sprintf("%d landmarks", len(m.labels))})
	}
	m.l.SetItems(items)
}

func (m Model) countsStatus() string {
	raw, simp := len(m.outer.Raw), len(m.outer.Simplified)
	for _, h := range m.holes {
		raw += len(h.Raw)
		simp += len(h.Simplified)
	}
	outerEps, holeEps := m.Epsilons()
	s := fmt.Sprintf("outer ε=%.2f", outerEps)
	if holeEps >= 0 {
		s += fmt.Sprintf(" hole ε=%.2f", holeEps)
	}
	return s + fmt.Sprintf("  points %d → %d  holes=%d labels=%d", raw, simp, len(m.holes), len(m.labels))
}

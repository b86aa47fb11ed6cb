package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"countypaths/internal/geom"
	"countypaths/internal/pipeline"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.showSidebar {
			lay := m.layout()
			m.l.SetSize(lay.sidebarW-2, lay.contentH-2)
		}
	case tea.KeyMsg:
		if m.pasteMode {
			return m.updatePaste(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.OuterLooser):
			m.setOuterEpsilon(m.outer.Epsilon + epsilonStep)
			m.tolerancesChanged()
		case key.Matches(msg, m.keys.OuterTighter):
			m.setOuterEpsilon(m.outer.Epsilon - epsilonStep)
			m.tolerancesChanged()
		case key.Matches(msg, m.keys.HoleLooser):
			if _, e := m.Epsilons(); e >= 0 {
				m.setHoleEpsilon(e + epsilonStep)
				m.tolerancesChanged()
			}
		case key.Matches(msg, m.keys.HoleTighter):
			if _, e := m.Epsilons(); e >= 0 {
				m.setHoleEpsilon(e - epsilonStep)
				m.tolerancesChanged()
			}
		case key.Matches(msg, m.keys.Raw):
			m.showRaw = !m.showRaw
			if m.showRaw {
				m.status = "showing raw projected rings"
			} else {
				m.status = m.countsStatus()
			}
		case key.Matches(msg, m.keys.Fill):
			m.fill = !m.fill
			m.status = fmt.Sprintf("fill: %v", m.fill)
		case key.Matches(msg, m.keys.Layers):
			m.toggleLayer(msg.String())
		case key.Matches(msg, m.keys.ZoomIn):
			if m.zoom < 64 {
				m.zoom *= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case key.Matches(msg, m.keys.ZoomOut):
			if m.zoom > 0.05 {
				m.zoom /= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case key.Matches(msg, m.keys.Pan) && !m.showSidebar && !m.showStats:
			switch msg.String() {
			case "up":
				m.offsetY++
			case "down":
				m.offsetY--
			case "left":
				m.offsetX++
			case "right":
				m.offsetX--
			}
		case key.Matches(msg, m.keys.Sidebar):
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshLayers()
				lay := m.layout()
				m.l.SetSize(lay.sidebarW-2, lay.contentH-2)
			}
		case key.Matches(msg, m.keys.Focus):
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(layerItem); ok {
					if m.focus == it.name {
						m.focus = ""
						m.status = "focus cleared"
					} else {
						m.focus = it.name
						m.status = "focus: " + it.name
					}
				}
			}
		case key.Matches(msg, m.keys.Paste):
			m.pasteMode = true
			m.ta.SetValue("")
			m.ta.Focus()
			m.status = "paste mode"
		case key.Matches(msg, m.keys.Stats):
			m.showStats = !m.showStats
			if m.showStats {
				m.refreshStats()
			}
		case key.Matches(msg, m.keys.Inspect):
			if m.inspectPopup != "" {
				m.inspectPopup = ""
				break
			}
			m.inspectPopup = m.inspect()
			m.status = "inspect"
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case msg.String() == "esc":
			m.inspectPopup = ""
			m.showStats = false
		}
	case tea.MouseMsg:
		m.hover(msg.X, msg.Y)
	}

	var cmd tea.Cmd
	switch {
	case m.showStats:
		m.tbl, cmd = m.tbl.Update(msg)
	case m.showSidebar:
		m.l, cmd = m.l.Update(msg)
	}
	return m, cmd
}

func (m Model) updatePaste(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pasteMode = false
		m.ta.Blur()
		m.status = "paste cancelled"
		return m, nil
	case "enter":
		w := strings.TrimSpace(m.ta.Value())
		if w == "" {
			m.status = "paste: empty"
			return m, nil
		}
		ring, err := geom.ParseWKTRing(w)
		if err != nil {
			m.status = "wkt error: " + err.Error()
			return m, nil
		}
		pts := m.proj.ProjectRing(ring)
		m.pasted = &pipeline.Layer{Name: "pasted", Raw: pts, Simplified: pts, Epsilon: -1}
		m.pasteMode = false
		m.ta.Blur()
		m.refreshLayers()
		m.status = fmt.Sprintf("pasted ring: %d pts", len(pts))
		return m, nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

func (m *Model) tolerancesChanged() {
	m.refreshLayers()
	if m.showStats {
		m.refreshStats()
	}
	m.status = m.countsStatus()
}

func (m *Model) toggleLayer(k string) {
	switch k {
	case "1":
		m.showOuter = !m.showOuter
		m.status = fmt.Sprintf("outer: %v", m.showOuter)
	case "2":
		m.showHoles = !m.showHoles
		m.status = fmt.Sprintf("holes: %v", m.showHoles)
	case "3":
		m.showOverlay = !m.showOverlay
		m.status = fmt.Sprintf("overlay: %v", m.showOverlay)
	case "4":
		m.showLabels = !m.showLabels
		m.status = fmt.Sprintf("labels: %v", m.showLabels)
	}
}

// hover tracks the mouse over the map area.
func (m *Model) hover(x, y int) {
	lay := m.layout()
	cx, cy := x-lay.mapOriginX, y-lay.headerH
	if cx < 0 || cx >= lay.mapW || cy < 0 || cy >= lay.mapH {
		m.hovering = false
		m.hoverHasPos = false
		return
	}
	mx, my := cx*2, cy*4
	if p, ok := m.microToDraw(mx, my, lay.mapW, lay.mapH); ok {
		m.hoverHasPos = true
		m.hoverX, m.hoverY = p.X, p.Y
	}
	if hit, ok := m.nearestVertex(mx, my, lay.mapW, lay.mapH); ok {
		m.hovering = true
		m.hoverMicX, m.hoverMicY = hit.mx, hit.my
	} else {
		m.hovering = false
	}
}

// inspect describes the vertex nearest the hover position, or the map
// center when the mouse is elsewhere.
func (m Model) inspect() string {
	lay := m.layout()
	mx, my := lay.mapW-1, lay.mapH*2-1
	if m.hovering {
		mx, my = m.hoverMicX, m.hoverMicY
	}
	hit, ok := m.nearestVertex(mx, my, lay.mapW, lay.mapH)
	if !ok {
		return "no ring nearby"
	}
	g := m.proj.Unproject(hit.point.X, hit.point.Y)
	lines := []string{
		"ring:   " + hit.layer,
		fmt.Sprintf("vertex: %d", hit.index),
		fmt.Sprintf("x,y:    %.1f, %.1f", hit.point.X, hit.point.Y),
		fmt.Sprintf("lon:    %.6f", g.Lon),
		fmt.Sprintf("lat:    %.6f", g.Lat),
		fmt.Sprintf("canvas: %.0fx%.0f", m.canvasW, m.canvasH),
	}
	return strings.Join(lines, "\n")
}

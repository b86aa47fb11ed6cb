package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const sidebarWidth = 30

// layout is the screen split shared by View and mouse handling.
type layout struct {
	headerH    int
	contentW   int
	contentH   int
	sidebarW   int
	mapOriginX int
	mapW       int
	mapH       int
}

func (m Model) layout() layout {
	lay := layout{headerH: 1, contentW: max(10, m.width)}
	footerH := 1 + lipgloss.Height(m.help.View(m.keys))
	lay.contentH = max(4, m.height-lay.headerH-footerH)
	if m.showSidebar {
		lay.sidebarW = sidebarWidth
		lay.mapOriginX = sidebarWidth + 1
	}
	lay.mapW = max(10, lay.contentW-lay.mapOriginX)
	lay.mapH = lay.contentH
	return lay
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	lay := m.layout()

	title := titleStyle.Render(" " + m.title + " ")
	coords := ""
	if m.hoverHasPos {
		p := m.proj.Unproject(m.hoverX, m.hoverY)
		coords = dimStyle.Render(fmt.Sprintf(" x=%.1f y=%.1f  lon=%.5f lat=%.5f ", m.hoverX, m.hoverY, p.Lon, p.Lat))
	}
	spacer := max(1, lay.contentW-lipgloss.Width(title)-lipgloss.Width(coords))
	header := lipgloss.NewStyle().MaxWidth(lay.contentW).MaxHeight(1).Render(title + strings.Repeat(" ", spacer) + coords)

	var mapView string
	switch {
	case m.showStats:
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		maxW := min(lay.mapW, max(32, colW))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(lay.mapH-2, 20))
		box := boxStyle.Width(maxW).Render(m.tbl.View())
		mapView = lipgloss.Place(lay.mapW, lay.mapH, lipgloss.Center, lipgloss.Center, box)
	case m.inspectPopup != "":
		box := boxStyle.MaxWidth(min(60, lay.mapW)).Render(m.inspectPopup)
		mapView = lipgloss.Place(lay.mapW, lay.mapH, lipgloss.Center, lipgloss.Center, box)
	case m.pasteMode:
		m.ta.SetWidth(lay.mapW)
		m.ta.SetHeight(min(lay.mapH, 12))
		mapView = lipgloss.NewStyle().Width(lay.mapW).Height(lay.mapH).Render(m.ta.View())
	default:
		mapView = lipgloss.NewStyle().Width(lay.mapW).Height(lay.mapH).Render(m.renderMap(lay.mapW, lay.mapH))
	}

	body := mapView
	if m.showSidebar {
		m.l.SetSize(lay.sidebarW-2, lay.contentH-2)
		sidebar := lipgloss.NewStyle().Width(lay.sidebarW).Height(lay.contentH).Render(m.l.View())
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	}

	status := dimStyle.MaxWidth(lay.contentW).Render(" " + m.status + " ")
	footer := lipgloss.JoinVertical(lipgloss.Left, status, m.help.View(m.keys))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(lay.contentW).Height(m.height).Render(ui)
}

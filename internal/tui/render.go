package tui

import (
	"math"
	"strings"

	"countypaths/internal/geom"
	"countypaths/internal/pipeline"
)

// viewScale is micro-pixels per drawing unit. The whole canvas fits the map
// at zoom 1; braille micro-pixels are roughly square, so one scale serves
// both axes.
func (m Model) viewScale(w, h int) float64 {
	return math.Min(float64(w*2-1)/m.canvasW, float64(h*4-1)/m.canvasH) * m.zoom
}

// microXY maps a drawing-surface point into the 2x4 microgrid of a w x h
// cell map, considering zoom and pan.
func (m Model) microXY(p geom.DrawPoint, w, h int) (int, int, bool) {
	if m.canvasW <= 0 || m.canvasH <= 0 || w <= 1 || h <= 1 {
		return 0, 0, false
	}
	s := m.viewScale(w, h)
	x := (p.X-m.canvasW/2)*s + float64(w*2-1)/2
	y := (p.Y-m.canvasH/2)*s + float64(h*4-1)/2
	return int(math.Round(x)) + m.offsetX*2, int(math.Round(y)) + m.offsetY*4, true
}

// microToDraw is the inverse of microXY.
func (m Model) microToDraw(mx, my, w, h int) (geom.DrawPoint, bool) {
	if m.canvasW <= 0 || m.canvasH <= 0 || w <= 1 || h <= 1 {
		return geom.DrawPoint{}, false
	}
	s := m.viewScale(w, h)
	x := float64(mx-m.offsetX*2) - float64(w*2-1)/2
	y := float64(my-m.offsetY*4) - float64(h*4-1)/2
	return geom.DrawPoint{X: x/s + m.canvasW/2, Y: y/s + m.canvasH/2}, true
}

func (m Model) microRing(pts []geom.DrawPoint, w, h int) [][2]int {
	out := make([][2]int, 0, len(pts))
	for _, p := range pts {
		if mx, my, ok := m.microXY(p, w, h); ok {
			out = append(out, [2]int{mx, my})
		}
	}
	return out
}

func (m Model) renderMap(w, h int) string {
	base := newBrailleBuf(w, h)
	over := newBrailleBuf(w, h)
	focus := newBrailleBuf(w, h)

	// Fill the county with even-odd so holes stay open.
	if m.fill && m.showOuter {
		rings := [][][2]int{m.microRing(m.points(m.outer), w, h)}
		if m.showHoles {
			for _, hl := range m.holes {
				rings = append(rings, m.microRing(m.points(hl), w, h))
			}
		}
		base.fillEvenOdd(rings)
	}

	for _, l := range m.visibleLayers() {
		r := m.microRing(m.points(l), w, h)
		if len(r) < 2 {
			continue
		}
		buf := base
		switch {
		case l.Name == m.focus || (m.pasted != nil && l.Name == m.pasted.Name):
			buf = focus
		case m.overlay != nil && l.Name == m.overlay.Name:
			buf = over
		}
		buf.drawRing(r)
	}

	// Compose per cell: focus over overlay over county.
	cells := make([][]string, h)
	for cy := range cells {
		row := make([]string, w)
		for cx := range row {
			switch r, ok := focus.cell(cx, cy); {
			case ok:
				row[cx] = focusStyle.Render(string(r))
			default:
				if r, ok := over.cell(cx, cy); ok {
					row[cx] = overlayStyle.Render(string(r))
				} else if r, ok := base.cell(cx, cy); ok {
					row[cx] = string(r)
				} else {
					row[cx] = " "
				}
			}
		}
		cells[cy] = row
	}

	if m.showLabels {
		for _, lb := range m.labels {
			mx, my, ok := m.microXY(lb.Point, w, h)
			if !ok {
				continue
			}
			cx, cy := mx/2, my/4
			if mx < 0 || my < 0 || cy >= h || cx >= w {
				continue
			}
			cells[cy][cx] = labelStyle.Render("•")
			for i, ch := range []rune(truncate(lb.Name, w-cx-2)) {
				cells[cy][cx+2+i] = labelStyle.Render(string(ch))
			}
		}
	}

	// Hover highlight: mark the nearest vertex cell
	if m.hovering {
		cx, cy := m.hoverMicX/2, m.hoverMicY/4
		if m.hoverMicX >= 0 && m.hoverMicY >= 0 && cy < h && cx < w {
			cells[cy][cx] = hoverStyle.Render("◯")
		}
	}

	lines := make([]string, h)
	for cy, row := range cells {
		lines[cy] = strings.Join(row, "")
	}
	return strings.Join(lines, "\n")
}

// vertexHit is the vertex closest to a probe location.
type vertexHit struct {
	layer    string
	index    int
	point    geom.DrawPoint
	mx, my   int
	distance int
}

// nearestVertex finds the visible vertex closest to micro coords (mx, my).
func (m Model) nearestVertex(mx, my, w, h int) (vertexHit, bool) {
	best := vertexHit{distance: math.MaxInt}
	consider := func(l pipeline.Layer) {
		for i, p := range m.points(l) {
			px, py, ok := m.microXY(p, w, h)
			if !ok {
				continue
			}
			dx, dy := px-mx, py-my
			if d := dx*dx + dy*dy; d < best.distance {
				best = vertexHit{layer: l.Name, index: i, point: p, mx: px, my: py, distance: d}
			}
		}
	}
	for _, l := range m.visibleLayers() {
		consider(l)
	}
	return best, best.distance != math.MaxInt
}

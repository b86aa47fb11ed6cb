package tui

import "sort"

// brailleBits maps a micro-pixel (row, column) inside a cell to its dot bit.
var brailleBits = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// brailleBuf is a 2x4 micro-pixel grid per terminal cell.
type brailleBuf struct {
	w, h int       // in cells
	m    [][]uint8 // per-cell 8-bit mask
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	for i := range m {
		m[i] = make([]uint8, w)
	}
	return &brailleBuf{w: w, h: h, m: m}
}

// setPixel sets a micro-pixel; out-of-range pixels are dropped.
func (b *brailleBuf) setPixel(mx, my int) {
	if mx < 0 || my < 0 {
		return
	}
	cx, cy := mx/2, my/4
	if cy >= b.h || cx >= b.w {
		return
	}
	b.m[cy][cx] |= brailleBits[my%4][mx%2]
}

// drawLine draws a segment on the micro-grid using Bresenham.
func (b *brailleBuf) drawLine(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// drawRing strokes a closed ring.
func (b *brailleBuf) drawRing(r [][2]int) {
	for i := range r {
		a := r[i]
		c := r[(i+1)%len(r)]
		b.drawLine(a[0], a[1], c[0], c[1])
	}
}

// fillEvenOdd fills the area enclosed by rings with the even-odd rule, so
// holes listed after the outer ring stay empty.
func (b *brailleBuf) fillEvenOdd(rings [][][2]int) {
	hMic := b.h * 4
	for yMic := 0; yMic < hMic; yMic++ {
		var xs []int
		for _, r := range rings {
			for i := range r {
				a := r[i]
				c := r[(i+1)%len(r)]
				if a[1] == c[1] { // horizontal edge: skip
					continue
				}
				y0, y1 := a[1], c[1]
				if (yMic >= y0 && yMic < y1) || (yMic >= y1 && yMic < y0) {
					t := float64(yMic-y0) / float64(y1-y0)
					xs = append(xs, int(float64(a[0])+t*float64(c[0]-a[0])))
				}
			}
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for xMic := max(0, xs[i]); xMic <= min(xs[i+1], b.w*2-1); xMic++ {
				b.setPixel(xMic, yMic)
			}
		}
	}
}

// cell returns the braille rune at a cell, or false when it is empty.
func (b *brailleBuf) cell(cx, cy int) (rune, bool) {
	if cy < 0 || cy >= b.h || cx < 0 || cx >= b.w {
		return 0, false
	}
	mask := b.m[cy][cx]
	if mask == 0 {
		return 0, false
	}
	return rune(0x2800 + int(mask)), true
}

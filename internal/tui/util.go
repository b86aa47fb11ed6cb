package tui

import (
	"strconv"

	"countypaths/internal/emit"
	"countypaths/internal/geom"
)

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func itoa(i int) string { return strconv.Itoa(i) }

// pathBytes is the size of the emitted path string for pts.
func pathBytes(pts []geom.DrawPoint) int {
	return len(emit.ToPath(pts))
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

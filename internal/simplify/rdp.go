// Package simplify reduces dense polylines with the Ramer-Douglas-Peucker
// algorithm.
package simplify

import (
	"math"

	"countypaths/internal/geom"
)

// Simplify returns the subsequence of points that approximates the polyline
// within epsilon drawing units. The first and last point are always kept;
// inputs of two points or fewer are returned unchanged.
//
// Spans are processed from an explicit stack rather than by recursion, so
// call depth stays constant for long or pathological inputs. The kept set is
// the same as the recursive formulation: each span picks its farthest interior
// point (earliest index on ties) and splits there when it exceeds epsilon.
func Simplify(points []geom.DrawPoint, epsilon float64) []geom.DrawPoint {
	if len(points) <= 2 {
		return points
	}

	keep := make([]bool, len(points))
	keep[0] = true
	keep[len(points)-1] = true
	found := 2

	stack := []int{0, len(points) - 1}
	for len(stack) > 0 {
		start, end := stack[len(stack)-2], stack[len(stack)-1]
		stack = stack[:len(stack)-2]

		maxDist, maxIndex := -1.0, -1
		for i := start + 1; i < end; i++ {
			d := PerpendicularDistance(points[i], points[start], points[end])
			if d > maxDist {
				maxDist, maxIndex = d, i
			}
		}
		// A negative epsilon keeps every point; NaN keeps none.
		if maxIndex < 0 || !(maxDist > epsilon) {
			continue
		}
		keep[maxIndex] = true
		found++
		stack = append(stack, start, maxIndex, maxIndex, end)
	}

	out := make([]geom.DrawPoint, 0, found)
	for i, p := range points {
		if keep[i] {
			out = append(out, p)
		}
	}
	return out
}

// PerpendicularDistance is the distance from p to the segment a-b. The
// projection of p onto the segment is clamped to its endpoints, so a
// zero-length segment yields the Euclidean distance to a.
func PerpendicularDistance(p, a, b geom.DrawPoint) float64 {
	return math.Sqrt(distanceSquared(p, a, b))
}

func distanceSquared(p, a, b geom.DrawPoint) float64 {
	x, y := a.X, a.Y
	dx, dy := b.X-x, b.Y-y

	if dx != 0 || dy != 0 {
		t := ((p.X-x)*dx + (p.Y-y)*dy) / (dx*dx + dy*dy)
		if t > 1 {
			x, y = b.X, b.Y
		} else if t > 0 {
			x += dx * t
			y += dy * t
		}
	}

	dx, dy = p.X-x, p.Y-y
	return dx*dx + dy*dy
}

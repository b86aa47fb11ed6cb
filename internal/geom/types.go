package geom

import (
	"math"

	"github.com/paulmach/orb"
)

// GeoPoint is a geographic coordinate in degrees.
type GeoPoint struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// Ring is an implicitly closed sequence of coordinates: an outer boundary or a hole.
type Ring []GeoPoint

// Polygon holds one outer ring and any number of holes.
type Polygon struct {
	Outer Ring
	Holes []Ring
}

// BBox is a geographic bounding box.
type BBox struct {
	MinLon float64 `json:"minLon"`
	MaxLon float64 `json:"maxLon"`
	MinLat float64 `json:"minLat"`
	MaxLat float64 `json:"maxLat"`
}

// DrawPoint is a drawing-surface coordinate, y increasing downward.
type DrawPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Finite reports whether both coordinates are finite numbers.
func (p DrawPoint) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Landmark is a named geographic point used for label placement.
type Landmark struct {
	Name  string
	Point GeoPoint
}

func ringFromOrb(r orb.Ring) Ring {
	out := make(Ring, len(r))
	for i, p := range r {
		out[i] = GeoPoint{Lon: p[0], Lat: p[1]}
	}
	return out
}

func (r Ring) orb() orb.Ring {
	out := make(orb.Ring, len(r))
	for i, p := range r {
		out[i] = orb.Point{p.Lon, p.Lat}
	}
	return out
}

// BoundsOf returns the bounding box of a ring.
func BoundsOf(r Ring) (BBox, error) {
	if len(r) == 0 {
		return BBox{}, degeneratef("bounds of empty ring")
	}
	b := r.orb().Bound()
	return BBox{MinLon: b.Min[0], MaxLon: b.Max[0], MinLat: b.Min[1], MaxLat: b.Max[1]}, nil
}

package geom

import "math"

// Projection maps lon/lat onto a flat drawing surface using an equirectangular
// approximation around the bounding box's center latitude. It is only accurate
// over small regional extents such as a single county.
type Projection struct {
	MinLon    float64 `json:"minLon"`
	MaxLon    float64 `json:"maxLon"`
	MinLat    float64 `json:"minLat"`
	MaxLat    float64 `json:"maxLat"`
	CenterLat float64 `json:"centerLat"`
	ScaleX    float64 `json:"scaleX"`
	ScaleY    float64 `json:"scaleY"`
	Padding   float64 `json:"padding"`

	// canvas size in drawing units
	Width  int `json:"-"`
	Height int `json:"-"`
}

// NewProjection derives projection parameters so that the bbox spans
// targetWidth drawing units horizontally, with padding on every side.
func NewProjection(b BBox, targetWidth, padding float64) (Projection, error) {
	for _, v := range []float64{b.MinLon, b.MaxLon, b.MinLat, b.MaxLat, targetWidth, padding} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Projection{}, degeneratef("non-finite projection input %v", v)
		}
	}
	if targetWidth <= 0 {
		return Projection{}, degeneratef("target width must be positive, got %v", targetWidth)
	}
	if padding < 0 {
		return Projection{}, degeneratef("padding must not be negative, got %v", padding)
	}
	lonSpan := b.MaxLon - b.MinLon
	latSpan := b.MaxLat - b.MinLat
	if lonSpan <= 0 || latSpan <= 0 {
		return Projection{}, degeneratef("bounding box has zero extent (%v x %v degrees)", lonSpan, latSpan)
	}

	centerLat := (b.MinLat + b.MaxLat) / 2
	cosCenter := math.Cos(centerLat * math.Pi / 180)
	if cosCenter < 1e-12 {
		return Projection{}, degeneratef("center latitude %v is too close to a pole", centerLat)
	}
	scaleX := targetWidth / lonSpan
	scaleY := scaleX / cosCenter

	p := Projection{
		MinLon:    b.MinLon,
		MaxLon:    b.MaxLon,
		MinLat:    b.MinLat,
		MaxLat:    b.MaxLat,
		CenterLat: centerLat,
		ScaleX:    scaleX,
		ScaleY:    scaleY,
		Padding:   padding,
	}
	// DrawWidth equals targetWidth up to float error.
	p.Width = int(math.Ceil(targetWidth + 2*padding))
	p.Height = int(math.Ceil(p.DrawHeight() + 2*padding))
	return p, nil
}

// NewProjectionFromRing computes the projection from the bounding box of ring.
func NewProjectionFromRing(r Ring, targetWidth, padding float64) (Projection, error) {
	b, err := BoundsOf(r)
	if err != nil {
		return Projection{}, err
	}
	return NewProjection(b, targetWidth, padding)
}

// DrawWidth is the unpadded width of the bbox on the drawing surface.
func (p Projection) DrawWidth() float64 {
	return (p.MaxLon - p.MinLon) * p.ScaleX
}

// DrawHeight is the unpadded height of the bbox on the drawing surface.
func (p Projection) DrawHeight() float64 {
	return (p.MaxLat - p.MinLat) * p.ScaleY
}

// Project converts a geographic point. North is up, so y is flipped.
func (p Projection) Project(g GeoPoint) DrawPoint {
	return DrawPoint{
		X: round1((g.Lon-p.MinLon)*p.ScaleX + p.Padding),
		Y: round1((p.MaxLat-g.Lat)*p.ScaleY + p.Padding),
	}
}

// ProjectRing projects every point of r.
func (p Projection) ProjectRing(r Ring) []DrawPoint {
	out := make([]DrawPoint, len(r))
	for i, g := range r {
		out[i] = p.Project(g)
	}
	return out
}

// Unproject is the inverse of Project, without rounding.
func (p Projection) Unproject(x, y float64) GeoPoint {
	return GeoPoint{
		Lon: (x-p.Padding)/p.ScaleX + p.MinLon,
		Lat: p.MaxLat - (y-p.Padding)/p.ScaleY,
	}
}

// round1 rounds half up to one decimal place.
func round1(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}

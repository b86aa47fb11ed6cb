package geom

import (
	"encoding/json"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Selector picks one polygon out of a GeoJSON document.
type Selector struct {
	Feature int
	Polygon int
}

// Boundary is the selected polygon plus how much of the document was skipped.
type Boundary struct {
	Polygon
	IgnoredFeatures int
	IgnoredPolygons int
}

// LoadBoundary reads a GeoJSON file and extracts the selected polygon.
func LoadBoundary(path string, sel Selector) (Boundary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Boundary{}, errors.Wrapf(err, "read boundary %s", path)
	}
	b, err := DecodeBoundary(data, sel)
	if err != nil {
		return Boundary{}, errors.Wrapf(err, "boundary %s", path)
	}
	return b, nil
}

// DecodeBoundary accepts a FeatureCollection, a Feature or a bare Polygon /
// MultiPolygon geometry.
func DecodeBoundary(data []byte, sel Selector) (Boundary, error) {
	if sel.Feature < 0 || sel.Polygon < 0 {
		return Boundary{}, malformedf("negative selector %+v", sel)
	}
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return Boundary{}, malformedWrap(err, "decode geojson")
	}

	var (
		g        orb.Geometry
		features = 1
	)
	switch head.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return Boundary{}, malformedWrap(err, "decode feature collection")
		}
		features = len(fc.Features)
		if sel.Feature >= features {
			return Boundary{}, malformedf("feature %d requested, collection has %d", sel.Feature, features)
		}
		g = fc.Features[sel.Feature].Geometry
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return Boundary{}, malformedWrap(err, "decode feature")
		}
		if sel.Feature != 0 {
			return Boundary{}, malformedf("feature %d requested, document is a single feature", sel.Feature)
		}
		g = f.Geometry
	case "":
		return Boundary{}, malformedf("geojson: missing type")
	default:
		gj, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return Boundary{}, malformedWrap(err, "decode geometry")
		}
		g = gj.Geometry()
	}
	if g == nil {
		return Boundary{}, malformedf("feature %d has no geometry", sel.Feature)
	}

	var (
		poly     orb.Polygon
		polygons = 1
	)
	switch gt := g.(type) {
	case orb.Polygon:
		if sel.Polygon != 0 {
			return Boundary{}, malformedf("polygon %d requested, geometry is a single polygon", sel.Polygon)
		}
		poly = gt
	case orb.MultiPolygon:
		polygons = len(gt)
		if sel.Polygon >= polygons {
			return Boundary{}, malformedf("polygon %d requested, multipolygon has %d", sel.Polygon, polygons)
		}
		poly = gt[sel.Polygon]
	default:
		return Boundary{}, malformedf("unsupported geometry %s, want Polygon or MultiPolygon", g.GeoJSONType())
	}

	p, err := ExtractRings(poly)
	if err != nil {
		return Boundary{}, err
	}
	return Boundary{
		Polygon:         p,
		IgnoredFeatures: features - 1,
		IgnoredPolygons: polygons - 1,
	}, nil
}

// ExtractRings splits a polygon into its outer ring (ring 0) and holes.
// Closure, winding and self-intersection are not checked.
func ExtractRings(poly orb.Polygon) (Polygon, error) {
	if len(poly) == 0 {
		return Polygon{}, malformedf("polygon has no rings")
	}
	if len(poly[0]) == 0 {
		return Polygon{}, degeneratef("outer ring is empty")
	}
	p := Polygon{Outer: ringFromOrb(poly[0])}
	for _, r := range poly[1:] {
		p.Holes = append(p.Holes, ringFromOrb(r))
	}
	return p, nil
}

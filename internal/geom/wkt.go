package geom

import (
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
)

// ParseWKTRing parses the outer ring of a WKT POLYGON, or the points of a
// LINESTRING, as an overlay ring. Holes of a POLYGON are ignored.
func ParseWKTRing(s string) (Ring, error) {
	if strings.TrimSpace(s) == "" {
		return nil, malformedf("empty wkt")
	}
	g, err := wkt.Unmarshal(s)
	if err != nil {
		return nil, malformedWrap(err, "decode wkt")
	}

	var r orb.Ring
	switch gt := g.(type) {
	case orb.Polygon:
		if len(gt) > 0 {
			r = gt[0]
		}
	case orb.LineString:
		r = orb.Ring(gt)
	default:
		return nil, malformedf("unsupported wkt %s, want POLYGON or LINESTRING", g.GeoJSONType())
	}
	if len(r) == 0 {
		return nil, degeneratef("wkt: no coordinates")
	}
	return ringFromOrb(r), nil
}

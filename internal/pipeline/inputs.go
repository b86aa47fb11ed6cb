package pipeline

import (
	"github.com/cockroachdb/errors"

	"countypaths/internal/config"
	"countypaths/internal/geom"
)

// loadOverlay resolves the hand-digitized overlay ring from whichever source
// is configured. No source means no overlay.
func loadOverlay(o config.OverlayConfig) (geom.Ring, error) {
	switch {
	case len(o.Coordinates) > 0:
		r := make(geom.Ring, 0, len(o.Coordinates))
		for _, c := range o.Coordinates {
			r = append(r, geom.GeoPoint{Lon: c[0], Lat: c[1]})
		}
		return r, nil
	case o.KML != "":
		return geom.LoadKMLRing(o.KML)
	case o.WKT != "":
		return geom.ParseWKTRing(o.WKT)
	}
	return nil, nil
}

// loadLandmarks merges inline landmarks with the CSV file, inline first.
// Names key the emitted label map, so they must be unique across both.
func loadLandmarks(cfg *config.Config) ([]geom.Landmark, error) {
	out := make([]geom.Landmark, 0, len(cfg.Landmarks))
	for _, l := range cfg.Landmarks {
		out = append(out, geom.Landmark{Name: l.Name, Point: geom.GeoPoint{Lon: l.Lon, Lat: l.Lat}})
	}
	if cfg.LandmarksCSV != "" {
		fromCSV, err := geom.LoadLandmarksCSV(cfg.LandmarksCSV)
		if err != nil {
			return nil, err
		}
		out = append(out, fromCSV...)
	}
	if err := uniqueNames(out); err != nil {
		return nil, errors.Wrap(err, "landmarks")
	}
	return out, nil
}

func uniqueNames(landmarks []geom.Landmark) error {
	seen := make(map[string]int, len(landmarks))
	for i, l := range landmarks {
		if j, ok := seen[l.Name]; ok {
			return errors.Mark(errors.Newf("duplicate landmark name %q (entries %d and %d)", l.Name, j, i), geom.ErrMalformedInput)
		}
		seen[l.Name] = i
	}
	return nil
}

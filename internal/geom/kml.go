package geom

import (
	"encoding/xml"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// LoadKMLRing reads the first polygon (outer boundary) or line string of a KML
// file. Hand-digitized overlays are usually traced in a KML editor.
func LoadKMLRing(path string) (Ring, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read kml %s", path)
	}
	r, err := DecodeKMLRing(data)
	if err != nil {
		return nil, errors.Wrapf(err, "kml %s", path)
	}
	return r, nil
}

// DecodeKMLRing is LoadKMLRing on an in-memory document.
func DecodeKMLRing(data []byte) (Ring, error) {
	type kmlCoords struct {
		Coordinates string `xml:"coordinates"`
	}
	type kmlPolygon struct {
		Outer struct {
			LinearRing kmlCoords `xml:"LinearRing"`
		} `xml:"outerBoundaryIs"`
	}
	type kmlPlacemark struct {
		Name       string      `xml:"name"`
		Polygon    *kmlPolygon `xml:"Polygon"`
		LineString *kmlCoords  `xml:"LineString"`
	}
	// Placemarks may sit directly under <kml> or inside <Document>/<Folder>.
	type kmlDoc struct {
		Placemarks []kmlPlacemark `xml:"Placemark"`
		Document   struct {
			Placemarks []kmlPlacemark `xml:"Placemark"`
			Folders    []struct {
				Placemarks []kmlPlacemark `xml:"Placemark"`
			} `xml:"Folder"`
		} `xml:"Document"`
	}

	var doc kmlDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, malformedWrap(err, "decode kml")
	}
	all := append([]kmlPlacemark{}, doc.Placemarks...)
	all = append(all, doc.Document.Placemarks...)
	for _, f := range doc.Document.Folders {
		all = append(all, f.Placemarks...)
	}
	for _, pm := range all {
		var raw string
		switch {
		case pm.Polygon != nil:
			raw = pm.Polygon.Outer.LinearRing.Coordinates
		case pm.LineString != nil:
			raw = pm.LineString.Coordinates
		default:
			continue
		}
		r, err := parseKMLCoordinates(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "placemark %q", pm.Name)
		}
		return r, nil
	}
	return nil, malformedf("kml: no polygon or line string placemark found")
}

// parseKMLCoordinates reads "lon,lat[,alt]" tuples separated by whitespace.
func parseKMLCoordinates(s string) (Ring, error) {
	var r Ring
	for _, tuple := range strings.Fields(s) {
		vals := strings.Split(tuple, ",")
		if len(vals) < 2 {
			return nil, malformedf("kml: bad coordinate tuple %q", tuple)
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
		if err1 != nil || err2 != nil {
			return nil, malformedf("kml: bad coordinate tuple %q", tuple)
		}
		r = append(r, GeoPoint{Lon: lon, Lat: lat})
	}
	if len(r) == 0 {
		return nil, degeneratef("kml: empty coordinates")
	}
	return r, nil
}

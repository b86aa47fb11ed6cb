package geom

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// LoadLandmarksCSV reads named label points from a CSV file.
// Column detection: name|label|title, lat|latitude|y and lon|lng|long|longitude|x
// (case-insensitive). Rows keep file order.
func LoadLandmarksCSV(path string) ([]Landmark, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open landmarks %s", path)
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	recs, err := r.ReadAll()
	if err != nil {
		return nil, malformedWrap(err, "read landmarks csv")
	}
	return parseLandmarkRecords(recs)
}

func parseLandmarkRecords(recs [][]string) ([]Landmark, error) {
	if len(recs) == 0 {
		return nil, malformedf("empty csv")
	}
	idxName, idxLat, idxLon := -1, -1, -1
	for i, h := range recs[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "name", "label", "title":
			if idxName == -1 {
				idxName = i
			}
		case "lat", "latitude", "y":
			if idxLat == -1 {
				idxLat = i
			}
		case "lon", "lng", "long", "longitude", "x":
			if idxLon == -1 {
				idxLon = i
			}
		}
	}
	if idxName == -1 || idxLat == -1 || idxLon == -1 {
		return nil, malformedf("csv: name/latitude/longitude columns not found")
	}
	var out []Landmark
	for n, row := range recs[1:] {
		if idxName >= len(row) || idxLon >= len(row) || idxLat >= len(row) {
			return nil, malformedf("csv row %d: too few columns", n+2)
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(row[idxLon]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(row[idxLat]), 64)
		if err1 != nil || err2 != nil {
			return nil, malformedf("csv row %d: bad coordinates", n+2)
		}
		name := strings.TrimSpace(row[idxName])
		if name == "" {
			return nil, malformedf("csv row %d: empty name", n+2)
		}
		out = append(out, Landmark{Name: name, Point: GeoPoint{Lon: lon, Lat: lat}})
	}
	return out, nil
}
